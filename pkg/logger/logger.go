// Package logger is the application-wide structured logger. Calls take a
// message followed by alternating key/value pairs:
//
//	logger.Info("Server starting", "address", addr)
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = newLogger(os.Stderr, "development")
}

// Init configures the global logger for the given environment. "production"
// writes JSON at info level, anything else writes console output at debug level.
func Init(env string) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(os.Stderr, env)
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer, env string) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w, env)
}

func newLogger(w io.Writer, env string) zerolog.Logger {
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	level := zerolog.DebugLevel
	var out io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	if env == "production" {
		level = zerolog.InfoLevel
		out = w
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// fields turns key/value pairs into zerolog fields. A trailing key without a
// value, or a lone error, is logged under "error".
func fields(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2+1)
	for i := 0; i < len(kv); i++ {
		key, ok := kv[i].(string)
		if !ok || i+1 >= len(kv) {
			out["error"] = kv[i]
			continue
		}
		out[key] = kv[i+1]
		i++
	}
	return out
}

func Debug(msg string, kv ...any) {
	current().Debug().Fields(fields(kv)).Msg(msg)
}

func Info(msg string, kv ...any) {
	current().Info().Fields(fields(kv)).Msg(msg)
}

func Warn(msg string, kv ...any) {
	current().Warn().Fields(fields(kv)).Msg(msg)
}

func Error(msg string, kv ...any) {
	current().Error().Fields(fields(kv)).Msg(msg)
}

// Fatal logs and exits the process.
func Fatal(msg string, kv ...any) {
	current().Fatal().Fields(fields(kv)).Msg(msg)
}
