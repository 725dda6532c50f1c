package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/juaquiro/forecastLocalWeather/internal/forecast"
)

// Header identifies the column order of a session log.
const Header = "# time_iso,alt_m,temp_C,dew_C,humidity_%"

// ErrEmptySession is returned when there is nothing to export.
var ErrEmptySession = errors.New("session has no readings")

// LogWriter persists finished sessions as plain-text logs, one file per
// session, named session_<YYYYMMDD>_<HHMMSS>.txt. Writes go through a
// circuit breaker so a destination that keeps failing (permissions,
// missing volume) stops being hammered.
type LogWriter struct {
	dir     string
	now     func() time.Time
	circuit *gobreaker.CircuitBreaker
}

// NewLogWriter creates a LogWriter targeting dir. The directory is
// created on first export if it does not exist.
func NewLogWriter(dir string) *LogWriter {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "session-log",
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
	})

	return &LogWriter{
		dir:     dir,
		now:     time.Now,
		circuit: cb,
	}
}

// Export writes one header line and one comma-separated row per reading,
// in insertion order, and returns the produced file name. The write is
// all-or-nothing: on error no session data is lost by the caller because
// clearing is the caller's responsibility and happens only on success.
func (w *LogWriter) Export(readings []forecast.Reading) (string, error) {
	if len(readings) == 0 {
		return "", ErrEmptySession
	}

	name := fmt.Sprintf("session_%s.txt", w.now().Format("20060102_150405"))

	_, err := w.circuit.Execute(func() (interface{}, error) {
		return nil, w.write(name, readings)
	})
	if err != nil {
		return "", fmt.Errorf("write session log: %w", err)
	}

	return name, nil
}

func (w *LogWriter) write(name string, readings []forecast.Reading) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteByte('\n')
	for _, r := range readings {
		buf.WriteString(formatRow(r))
		buf.WriteByte('\n')
	}

	return os.WriteFile(filepath.Join(w.dir, name), buf.Bytes(), 0o644)
}

// formatRow renders a reading as a log row. Floats use the shortest
// representation that survives a re-parse.
func formatRow(r forecast.Reading) string {
	return r.Timestamp.Format(time.RFC3339) + "," +
		formatFloat(r.AltitudeM) + "," +
		formatFloat(r.TemperatureC) + "," +
		formatFloat(r.DewPointC) + "," +
		formatFloat(r.HumidityPct)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
