package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keel-relay/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitLevelFollowsAppEnv(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	prev := log.Logger
	defer func() { log.Logger = prev }()

	if _, err := Init(config.LogConfig{AppEnv: "prod"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("global level = %v, want info", zerolog.GlobalLevel())
	}

	if _, err := Init(config.LogConfig{AppEnv: "dev"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("global level = %v, want debug", zerolog.GlobalLevel())
	}

	if _, err := Init(config.LogConfig{AppEnv: "prod", Level: "warn"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("global level = %v, want warn", zerolog.GlobalLevel())
	}

	if _, err := Init(config.LogConfig{AppEnv: "dev", Level: "verbose"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("global level = %v, want debug fallback for unknown LOG_LEVEL", zerolog.GlobalLevel())
	}
}

func TestInitWritesLogFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	prev := log.Logger
	defer func() { log.Logger = prev }()
	defer setWriter(os.Stdout)

	path := filepath.Join(t.TempDir(), "relay.log")
	closeFn, err := Init(config.LogConfig{AppEnv: "prod", File: path, MaxMB: 1})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	log.Info().Str("delivery_id", "d1").Msg("keel notification relayed")
	if err := closeFn(); err != nil {
		t.Fatalf("close log file: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"delivery_id":"d1"`) {
		t.Fatalf("expected JSON line in log file, got %q", raw)
	}
}
