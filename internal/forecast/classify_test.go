package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juaquiro/forecastLocalWeather/internal/forecast"
)

func reading(ts time.Time, alt, temp, dew, rh float64) forecast.Reading {
	return forecast.Reading{
		Timestamp:    ts,
		AltitudeM:    alt,
		TemperatureC: temp,
		DewPointC:    dew,
		HumidityPct:  rh,
	}
}

func TestClassifyThresholds(t *testing.T) {
	t0 := time.Date(2025, 8, 9, 7, 0, 0, 0, time.UTC)
	t1 := t0.Add(30 * time.Minute)

	tests := []struct {
		name     string
		readings []forecast.Reading
		want     forecast.Trend
	}{
		{
			// Spreads 3 then 5: delta is exactly the threshold, which
			// must not count as widening.
			name: "delta at threshold is stable",
			readings: []forecast.Reading{
				reading(t0, 1500, 10, 7, 85),
				reading(t1, 1550, 9, 4, 83),
			},
			want: forecast.TrendStable,
		},
		{
			name: "delta above threshold is better",
			readings: []forecast.Reading{
				reading(t0, 1500, 10, 7, 85),
				reading(t1, 1550, 12, 4, 83),
			},
			want: forecast.TrendBetter,
		},
		{
			name: "delta below negative threshold is worse",
			readings: []forecast.Reading{
				reading(t0, 1500, 12, 4, 70),
				reading(t1, 1550, 10, 7, 85),
			},
			want: forecast.TrendWorse,
		},
		{
			// Spreads 5 then 3: delta is exactly -threshold.
			name: "delta at negative threshold is stable",
			readings: []forecast.Reading{
				reading(t0, 1500, 9, 4, 83),
				reading(t1, 1550, 10, 7, 85),
			},
			want: forecast.TrendStable,
		},
		{
			// Intermediate readings must not matter; only first and last do.
			name: "middle readings are ignored",
			readings: []forecast.Reading{
				reading(t0, 1500, 10, 7, 85),
				reading(t0.Add(10*time.Minute), 1520, 30, 0, 50),
				reading(t1, 1550, 12, 4, 83),
			},
			want: forecast.TrendBetter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := forecast.Classify(tt.readings, forecast.DefaultSpreadThreshold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyInsufficientData(t *testing.T) {
	_, err := forecast.Classify(nil, forecast.DefaultSpreadThreshold)
	assert.ErrorIs(t, err, forecast.ErrInsufficientData)

	single := []forecast.Reading{reading(time.Now(), 1500, 10, 7, 85)}
	_, err = forecast.Classify(single, forecast.DefaultSpreadThreshold)
	assert.ErrorIs(t, err, forecast.ErrInsufficientData)
}

func TestClassifyIdempotent(t *testing.T) {
	readings := []forecast.Reading{
		reading(time.Now(), 1500, 10, 7, 85),
		reading(time.Now(), 1550, 12, 4, 83),
	}

	first, err := forecast.Classify(readings, forecast.DefaultSpreadThreshold)
	require.NoError(t, err)
	second, err := forecast.Classify(readings, forecast.DefaultSpreadThreshold)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClassifyCustomThreshold(t *testing.T) {
	// Spreads 3 then 4.5: delta 1.5.
	readings := []forecast.Reading{
		reading(time.Now(), 1500, 10, 7, 85),
		reading(time.Now(), 1550, 10.5, 6, 83),
	}

	got, err := forecast.Classify(readings, 1.0)
	require.NoError(t, err)
	assert.Equal(t, forecast.TrendBetter, got)

	// Non-positive threshold falls back to the 2.0 default.
	got, err = forecast.Classify(readings, 0)
	require.NoError(t, err)
	assert.Equal(t, forecast.TrendStable, got)
}
