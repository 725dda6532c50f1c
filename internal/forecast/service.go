package forecast

import (
	"fmt"
	"sync"
	"time"
)

// Service orchestrates the session store, the trend classifier and the
// session exporter. It is the target for the three lifecycle commands:
// AddReading, NewSession and the shutdown flush.
type Service struct {
	// mu keeps export-then-clear from interleaving with appends; the
	// store's own locking only covers individual calls.
	mu         sync.Mutex
	store      Store
	exporter   Exporter
	threshold  float64
	minSamples int
}

// NewService creates a new Service. threshold <= 0 and minSamples below
// the classifier floor fall back to the defaults.
func NewService(store Store, exporter Exporter, threshold float64, minSamples int) *Service {
	if threshold <= 0 {
		threshold = DefaultSpreadThreshold
	}
	if minSamples < MinReadingsForTrend {
		minSamples = MinReadingsForTrend
	}
	return &Service{
		store:      store,
		exporter:   exporter,
		threshold:  threshold,
		minSamples: minSamples,
	}
}

// AddReading appends a reading to the current session and returns the
// new reading count. A zero timestamp is stamped with the current time.
func (s *Service) AddReading(r Reading) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	s.store.Append(r)
	return s.store.Len()
}

// Trend classifies the current session. Sessions shorter than the
// configured minimum yield ErrInsufficientData.
func (s *Service) Trend() (Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trendLocked()
}

func (s *Service) trendLocked() (Trend, error) {
	readings := s.store.Readings()
	if len(readings) < s.minSamples {
		return "", ErrInsufficientData
	}
	return Classify(readings, s.threshold)
}

// Session returns the identity of the current session together with a
// read-only copy of its readings.
func (s *Service) Session() (SessionInfo, []Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Info(), s.store.Readings()
}

// NewSession exports the current session and starts a fresh, empty one.
// An empty session writes no file; the bool reports whether a log was
// produced. On export failure the session is left untouched so the
// readings can still be flushed later.
func (s *Service) NewSession() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readings := s.store.Readings()
	if len(readings) == 0 {
		s.store.Clear()
		return "", false, nil
	}

	name, err := s.exporter.Export(readings)
	if err != nil {
		return "", false, fmt.Errorf("export session: %w", err)
	}

	s.store.Clear()
	return name, true, nil
}
