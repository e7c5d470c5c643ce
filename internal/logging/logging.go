package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"keel-relay/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	writerMu sync.RWMutex
	writer   io.Writer = os.Stdout
)

// Init configures the global zerolog logger. It returns a close func for the
// optional log file.
func Init(cfg config.LogConfig) (func() error, error) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.EffectiveLevel()); err == nil {
		level = parsed
	}

	var sink io.Writer = os.Stdout
	closer := func() error { return nil }
	if path := strings.TrimSpace(cfg.File); path != "" {
		fw, err := newSizeLimitedWriter(path, cfg.MaxMB)
		if err != nil {
			return closer, err
		}
		sink = io.MultiWriter(os.Stdout, fw)
		closer = fw.Close
	}
	setWriter(sink)

	var output = sink
	if cfg.UsePretty() {
		output = zerolog.ConsoleWriter{Out: sink}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if n := cfg.SampleEvery; n > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(n)})
	}
	log.Logger = logger
	return closer, nil
}

// Writer is the raw sink behind the global logger, for components that log
// through log/slog.
func Writer() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return writer
}

func setWriter(w io.Writer) {
	writerMu.Lock()
	defer writerMu.Unlock()
	writer = w
}
