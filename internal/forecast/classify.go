package forecast

import "errors"

// DefaultSpreadThreshold is the dew-point-spread widening (°C) required
// to call the trend BETTER (or, mirrored, WORSE).
const DefaultSpreadThreshold = 2.0

// MinReadingsForTrend is the hard floor below which no comparison exists.
const MinReadingsForTrend = 2

// ErrInsufficientData is returned when a session holds too few readings
// to compare its first and latest spread.
var ErrInsufficientData = errors.New("not enough readings to classify a trend")

// Classify compares the dew-point spread of the first and latest reading
// and maps the change onto a trend label. Thresholds are exclusive: a
// delta exactly at ±thr is STABLE. thr <= 0 falls back to the default.
func Classify(readings []Reading, thr float64) (Trend, error) {
	if len(readings) < MinReadingsForTrend {
		return "", ErrInsufficientData
	}
	if thr <= 0 {
		thr = DefaultSpreadThreshold
	}

	delta := readings[len(readings)-1].Spread() - readings[0].Spread()
	return classifyDelta(delta, thr), nil
}

func classifyDelta(delta, thr float64) Trend {
	switch {
	case delta > thr:
		return TrendBetter
	case delta < -thr:
		return TrendWorse
	default:
		return TrendStable
	}
}
