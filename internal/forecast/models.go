package forecast

import (
	"time"

	"github.com/google/uuid"
)

// Trend represents the short-term weather tendency derived from the
// dew-point spread of a session.
type Trend string

const (
	TrendBetter Trend = "BETTER"
	TrendStable Trend = "STABLE"
	TrendWorse  Trend = "WORSE"
)

// Reading is a single time-stamped observation entered by the operator.
type Reading struct {
	Timestamp    time.Time `json:"timestamp"`
	AltitudeM    float64   `json:"altitudeM"`
	TemperatureC float64   `json:"temperatureC"`
	DewPointC    float64   `json:"dewPointC"`
	HumidityPct  float64   `json:"humidityPercent"`
}

// Spread returns the dew-point spread: temperature minus dew point,
// a proxy for how dry the air is.
func (r Reading) Spread() float64 {
	return r.TemperatureC - r.DewPointC
}

// SessionInfo identifies the session currently being recorded.
type SessionInfo struct {
	ID        uuid.UUID `json:"id"`
	StartedAt time.Time `json:"startedAt"`
}

// Store is the contract the in-memory session store must satisfy.
// Readings live in insertion order; nothing is removed or mutated
// individually once appended.
type Store interface {
	Append(r Reading)
	Readings() []Reading
	Len() int
	Info() SessionInfo
	Clear() SessionInfo
}

// Exporter persists a finished session and returns the name of the
// artifact it produced.
type Exporter interface {
	Export(readings []Reading) (string, error)
}
