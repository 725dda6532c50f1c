package export_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juaquiro/forecastLocalWeather/internal/export"
	"github.com/juaquiro/forecastLocalWeather/internal/forecast"
)

var fileNamePattern = regexp.MustCompile(`^session_\d{8}_\d{6}\.txt$`)

func sessionFixture() []forecast.Reading {
	t0 := time.Date(2025, 8, 9, 7, 30, 0, 0, time.UTC)
	return []forecast.Reading{
		{Timestamp: t0, AltitudeM: 1500, TemperatureC: 10, DewPointC: 7, HumidityPct: 85},
		{Timestamp: t0.Add(45 * time.Minute), AltitudeM: 1550.5, TemperatureC: 9.2, DewPointC: 4, HumidityPct: 83},
	}
}

// parseLog reads a session log back into readings, the inverse of the
// exporter's fixed row format.
func parseLog(t *testing.T, path string) []forecast.Reading {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Equal(t, export.Header, lines[0])

	var readings []forecast.Reading
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		require.Len(t, fields, 5)

		ts, err := time.Parse(time.RFC3339, fields[0])
		require.NoError(t, err)

		nums := make([]float64, 4)
		for i, f := range fields[1:] {
			nums[i], err = strconv.ParseFloat(f, 64)
			require.NoError(t, err)
		}

		readings = append(readings, forecast.Reading{
			Timestamp:    ts,
			AltitudeM:    nums[0],
			TemperatureC: nums[1],
			DewPointC:    nums[2],
			HumidityPct:  nums[3],
		})
	}
	return readings
}

func TestExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := export.NewLogWriter(dir)
	session := sessionFixture()

	name, err := w.Export(session)
	require.NoError(t, err)
	assert.Regexp(t, fileNamePattern, name)

	parsed := parseLog(t, filepath.Join(dir, name))
	require.Len(t, parsed, len(session))
	for i := range session {
		assert.True(t, session[i].Timestamp.Equal(parsed[i].Timestamp))
		assert.Equal(t, session[i].AltitudeM, parsed[i].AltitudeM)
		assert.Equal(t, session[i].TemperatureC, parsed[i].TemperatureC)
		assert.Equal(t, session[i].DewPointC, parsed[i].DewPointC)
		assert.Equal(t, session[i].HumidityPct, parsed[i].HumidityPct)
	}
}

func TestExportCreatesLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	w := export.NewLogWriter(dir)

	name, err := w.Export(sessionFixture())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestExportEmptySession(t *testing.T) {
	dir := t.TempDir()
	w := export.NewLogWriter(dir)

	_, err := w.Export(nil)
	assert.ErrorIs(t, err, export.ErrEmptySession)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file for an empty session")
}

func TestExportUnwritableDestination(t *testing.T) {
	// A regular file where the log directory should be makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	w := export.NewLogWriter(blocker)
	_, err := w.Export(sessionFixture())
	assert.Error(t, err)
}
