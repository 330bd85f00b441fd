package metrics

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global logger. Logs go to file as JSON lines when file is set, otherwise to stderr for humans.
// The returned closer closes the log file.
func SetupLogger(level, file string) (io.Closer, error) {
	lv, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	if file == "" {
		SetupConsoleLogger(os.Stderr, lv)
		return nopCloser{}, nil
	}
	zerolog.SetGlobalLevel(lv)

	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// SetupConsoleLogger sends the global logger to w in human readable form.
// It is used until the configuration is loaded, so that loading itself logs at a sane level.
func SetupConsoleLogger(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

type LogContext struct {
	RunID   string
	URLs    int
	Kept    int
	Dropped int
	Browser string
	Profile string
	Err     error
	Latency float64
	Logger  zerolog.Logger
	timer   *prometheus.Timer
}

// StartLogging derives a logger tagged with a new run ID from the global logger and starts timing the run.
func StartLogging(urls int) *LogContext {
	c := &LogContext{
		RunID: uuid.NewString(),
		URLs:  urls,
	}
	c.Logger = log.Logger.With().Str("run_id", c.RunID).Logger()
	c.timer = prometheus.NewTimer(c)

	return c
}

func (c *LogContext) writeLog(e *zerolog.Event) *zerolog.Event {
	e.Int("urls", c.URLs)
	e.Int("kept", c.Kept)
	e.Int("dropped", c.Dropped)

	if c.Browser != "" {
		e.Str("browser", c.Browser)
		e.Str("profile", c.Profile)
	}

	if c.Err != nil {
		e.Err(c.Err)
	}

	return e
}

func (c *LogContext) Observe(v float64) {
	c.Latency = v

	if c.Err != nil {
		c.writeLog(c.Logger.Error()).
			Float64("latency_seconds", c.Latency).
			Msg("failed to route")
	} else {
		c.writeLog(c.Logger.Info()).
			Float64("latency_seconds", c.Latency).
			Msg("routed")
	}
}

func (c *LogContext) Close() error {
	if c.timer != nil {
		c.timer.ObserveDuration()
		c.timer = nil
	}

	return nil
}

func (c *LogContext) SetError(err error) {
	c.Err = err
}
