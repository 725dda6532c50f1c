package nowcast

import (
	"sync"
	"time"
)

// Verdict is the categorical nowcast outcome.
type Verdict string

const (
	VerdictBetter Verdict = "Better"
	VerdictStable Verdict = "Stable"
	VerdictWorse  Verdict = "Worse"
)

// Sample is a single nowcast observation. Unlike a session reading it
// carries barometric pressure and, optionally, a measured cloud base.
type Sample struct {
	Timestamp    time.Time `json:"timestamp"`
	TemperatureC float64   `json:"temperatureC"`
	DewPointC    float64   `json:"dewPointC"`
	HumidityPct  float64   `json:"humidityPercent"`
	AltitudeM    float64   `json:"altitudeM"`
	PressureHPa  float64   `json:"pressureHpa"`

	// MeasuredLCLM is an optional observed cloud base in meters AMSL,
	// used only to report estimate error.
	MeasuredLCLM *float64 `json:"measuredLclM,omitempty"`
}

// Config holds the rule thresholds and the sliding trend window.
type Config struct {
	TrendWindow time.Duration

	RapidFallHPaPerHour   float64 // NWS "falling rapidly"
	ThreeHourDropHPa      float64 // minimal deterioration flag over ~3h
	NearSaturationSpreadC float64 // near saturation when depression is at or below this
	DewPointRiseCPer3h    float64 // moisture loading threshold
	LCLLowAboveM          float64 // cloud base close overhead
	LCLFarAboveM          float64 // fair bias when base is this far up
	ImprovingRiseHPaPerHr float64 // pressure rise needed to call Better
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		TrendWindow:           3 * time.Hour,
		RapidFallHPaPerHour:   2.0,
		ThreeHourDropHPa:      3.0,
		NearSaturationSpreadC: 3.0,
		DewPointRiseCPer3h:    1.0,
		LCLLowAboveM:          500.0,
		LCLFarAboveM:          1500.0,
		ImprovingRiseHPaPerHr: 0.2,
	}
}

// Flags reports which rules fired during an evaluation.
type Flags struct {
	RapidFall       bool `json:"rapidFall"`
	ThreeHourDrop   bool `json:"threeHourDrop"`
	NearSaturation  bool `json:"nearSaturation"`
	DewPointRising  bool `json:"dewPointRising"`
	SpreadNarrowing bool `json:"spreadNarrowing"`
	LCLLow          bool `json:"lclLow"`
	LCLRisingFar    bool `json:"lclRisingFar"`
}

// LCLComparison reports the estimated cloud base and, when a measured
// value was supplied with the latest sample, the estimate error.
type LCLComparison struct {
	EstimatedAMSLM         float64  `json:"estimatedAmslM"`
	EstimatedAboveSensorM  float64  `json:"estimatedAboveSensorM"`
	MeasuredAMSLM          *float64 `json:"measuredAmslM,omitempty"`
	EstimateMinusMeasuredM *float64 `json:"estimateMinusMeasuredM,omitempty"`
}

// Result is the outcome of one evaluation: a verdict plus the expected
// window, in hours, for the change to materialize.
type Result struct {
	Verdict     Verdict        `json:"verdict"`
	ETAMinHours int            `json:"etaMinHours"`
	ETAMaxHours int            `json:"etaMaxHours"`
	Samples     int            `json:"samples"`
	Flags       Flags          `json:"flags"`
	LCL         *LCLComparison `json:"lcl,omitempty"`
	Note        string         `json:"note,omitempty"`
}

// Engine accumulates samples inside a sliding window and evaluates the
// nowcast rules on demand. Safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	cfg     Config
	refAltM float64
	haveRef bool
	samples []Sample
}

// NewEngine creates an Engine. A zero TrendWindow falls back to the
// default; the reference altitude is pinned to the first sample.
func NewEngine(cfg Config) *Engine {
	if cfg.TrendWindow <= 0 {
		cfg.TrendWindow = DefaultConfig().TrendWindow
	}
	return &Engine{cfg: cfg}
}

// AddSample appends a sample and drops samples that fell out of the
// trend window. A zero timestamp is stamped with the current time.
func (e *Engine) AddSample(s Sample) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	if !e.haveRef {
		e.refAltM = s.AltitudeM
		e.haveRef = true
	}

	e.samples = append(e.samples, s)

	cutoff := s.Timestamp.Add(-e.cfg.TrendWindow)
	kept := e.samples[:0]
	for _, old := range e.samples {
		if !old.Timestamp.Before(cutoff) {
			kept = append(kept, old)
		}
	}
	e.samples = kept
}

// Len returns the number of samples currently inside the window.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.samples)
}

// trends holds per-hour tendencies between the oldest and newest sample
// in the window, with both pressures moved to the reference altitude.
type trends struct {
	hours         float64
	dPressureHPa  float64
	dPressurePerH float64
	dSpreadPerH   float64
	dDewPointPerH float64
	dLCLPerH      float64
}

func (e *Engine) trendLocked() trends {
	if len(e.samples) < 2 {
		return trends{}
	}

	s0 := e.samples[0]
	s1 := e.samples[len(e.samples)-1]

	dtHours := s1.Timestamp.Sub(s0.Timestamp).Hours()
	if dtHours < 1e-6 {
		dtHours = 1e-6
	}

	pRef0 := AdjustPressureToReference(s0.PressureHPa, s0.AltitudeM, e.refAltM)
	pRef1 := AdjustPressureToReference(s1.PressureHPa, s1.AltitudeM, e.refAltM)
	dP := pRef1 - pRef0

	spread0 := s0.TemperatureC - s0.DewPointC
	spread1 := s1.TemperatureC - s1.DewPointC

	lcl0 := s0.AltitudeM + LCLAboveSensorM(s0.TemperatureC, s0.DewPointC)
	lcl1 := s1.AltitudeM + LCLAboveSensorM(s1.TemperatureC, s1.DewPointC)

	return trends{
		hours:         dtHours,
		dPressureHPa:  dP,
		dPressurePerH: dP / dtHours,
		dSpreadPerH:   (spread1 - spread0) / dtHours,
		dDewPointPerH: (s1.DewPointC - s0.DewPointC) / dtHours,
		dLCLPerH:      (lcl1 - lcl0) / dtHours,
	}
}

// Evaluate runs the rules against the current window. With no samples it
// reports Stable with a wide window and a note; it never guesses beyond
// that conservative default.
func (e *Engine) Evaluate() Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.samples) == 0 {
		return Result{
			Verdict:     VerdictStable,
			ETAMinHours: 6,
			ETAMaxHours: 12,
			Note:        "no samples yet",
		}
	}

	cfg := e.cfg
	tr := e.trendLocked()

	latest := e.samples[len(e.samples)-1]
	spread := latest.TemperatureC - latest.DewPointC
	lclAbove := LCLAboveSensorM(latest.TemperatureC, latest.DewPointC)
	lclAMSL := latest.AltitudeM + lclAbove

	lcl := &LCLComparison{
		EstimatedAMSLM:        lclAMSL,
		EstimatedAboveSensorM: lclAbove,
	}
	if latest.MeasuredLCLM != nil {
		measured := *latest.MeasuredLCLM
		diff := lclAMSL - measured
		lcl.MeasuredAMSLM = &measured
		lcl.EstimateMinusMeasuredM = &diff
	}

	flags := Flags{
		RapidFall:       tr.dPressurePerH <= -cfg.RapidFallHPaPerHour,
		ThreeHourDrop:   tr.dPressureHPa <= -cfg.ThreeHourDropHPa && tr.hours >= 2.0,
		NearSaturation:  spread <= cfg.NearSaturationSpreadC,
		DewPointRising:  tr.dDewPointPerH >= cfg.DewPointRiseCPer3h/3.0,
		SpreadNarrowing: tr.dSpreadPerH < 0,
		LCLLow:          lclAbove <= cfg.LCLLowAboveM,
		LCLRisingFar:    tr.dLCLPerH > 0 && lclAbove >= cfg.LCLFarAboveM,
	}

	falling := flags.RapidFall || flags.ThreeHourDrop

	var verdict Verdict
	var etaMin, etaMax int
	switch {
	case falling && (flags.NearSaturation || flags.DewPointRising || flags.LCLLow):
		verdict, etaMin, etaMax = VerdictWorse, 1, 6
	case falling || (flags.SpreadNarrowing && flags.DewPointRising):
		verdict, etaMin, etaMax = VerdictWorse, 3, 12
	case tr.dPressurePerH >= cfg.ImprovingRiseHPaPerHr && tr.dSpreadPerH > 0 && flags.LCLRisingFar:
		verdict, etaMin, etaMax = VerdictBetter, 3, 12
	default:
		verdict, etaMin, etaMax = VerdictStable, 6, 12
	}

	return Result{
		Verdict:     verdict,
		ETAMinHours: etaMin,
		ETAMaxHours: etaMax,
		Samples:     len(e.samples),
		Flags:       flags,
		LCL:         lcl,
	}
}
