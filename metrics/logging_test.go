package metrics_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/macrat/foxroute/metrics"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	orig := log.Logger
	origLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = orig
		zerolog.SetGlobalLevel(origLevel)
	})

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	return &buf
}

func TestLogContext(t *testing.T) {
	buf := captureLog(t)

	c := metrics.StartLogging(3)
	c.Kept = 2
	c.Dropped = 1
	c.Browser = "/usr/bin/firefox"
	c.Profile = "work"
	c.Close()

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log %q: %s", buf.String(), err)
	}

	expect := map[string]interface{}{
		"level":   "info",
		"run_id":  c.RunID,
		"urls":    float64(3),
		"kept":    float64(2),
		"dropped": float64(1),
		"browser": "/usr/bin/firefox",
		"profile": "work",
		"message": "routed",
	}
	for k, v := range expect {
		if entry[k] != v {
			t.Errorf("%s: expected %#v but got %#v", k, v, entry[k])
		}
	}
	if _, ok := entry["latency_seconds"]; !ok {
		t.Errorf("latency_seconds is not logged: %s", buf.String())
	}
	if c.RunID == "" {
		t.Errorf("run ID is empty")
	}
}

func TestLogContext_Error(t *testing.T) {
	buf := captureLog(t)

	c := metrics.StartLogging(1)
	c.SetError(fmt.Errorf("something wrong"))
	c.Close()

	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), "something wrong") {
		t.Errorf("unexpected log: %s", buf.String())
	}
}

func TestSetupLogger(t *testing.T) {
	captureLog(t)

	path := filepath.Join(t.TempDir(), "foxroute.log")
	closer, err := metrics.SetupLogger("warn", path)
	if err != nil {
		t.Fatalf("failed to setup: %s", err)
	}

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	closer.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %s", err)
	}
	if strings.Contains(string(raw), "hidden") || !strings.Contains(string(raw), "shown") {
		t.Errorf("unexpected log output: %s", raw)
	}

	if _, err := metrics.SetupLogger("loud", ""); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestSetupConsoleLogger(t *testing.T) {
	captureLog(t)

	var buf bytes.Buffer
	metrics.SetupConsoleLogger(&buf, zerolog.InfoLevel)

	log.Debug().Msg("hidden")
	log.Info().Str("glob", "https://a***b").Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug log is written at info level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "https://a***b") {
		t.Errorf("unexpected log output: %s", buf.String())
	}
	if strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected console format but got JSON: %s", buf.String())
	}
}
