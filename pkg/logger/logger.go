package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// log is the process-wide logger. It discards everything until Init runs.
var log = zerolog.Nop()

type ctxKey struct{}

// Init initializes the global logger on stdout.
func Init(env string, logLevel string) {
	InitTo(os.Stdout, env, logLevel)
}

// InitTo initializes the global logger on w. The command line client logs to
// stderr so its stdout stays machine readable.
func InitTo(w io.Writer, env string, logLevel string) {
	zerolog.TimeFieldFormat = time.RFC3339

	output := w
	if env == "development" || env == "dev" || env == "" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}

	zerolog.SetGlobalLevel(parseLevel(logLevel))

	log = zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &log
}

// WithContext returns the request-scoped logger, falling back to the global one.
func WithContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &log
}

func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

func WithUserID(l zerolog.Logger, userID string) zerolog.Logger {
	return l.With().Str("user_id", userID).Logger()
}

// Component returns a child of the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

// HTTPRequest logs a served request on the context logger. 4xx responses are
// logged at warn and 5xx at error.
func HTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	l := WithContext(ctx)

	event := l.Info()
	switch {
	case statusCode >= 500:
		event = l.Error()
	case statusCode >= 400:
		event = l.Warn()
	}

	event.
		Str("method", method).
		Str("path", path).
		Int("status", statusCode).
		Dur("duration_ms", duration).
		Msg("HTTP Request")
}

// DBQuery logs a repository query at debug level.
func DBQuery(ctx context.Context, query string, duration time.Duration, err error) {
	event := WithContext(ctx).Debug().
		Str("query", query).
		Dur("duration_ms", duration)

	if err != nil {
		event.Err(err).Msg("DB Query Failed")
	} else {
		event.Msg("DB Query")
	}
}

func ServiceStart(name, version, port string) {
	log.Info().
		Str("service", name).
		Str("version", version).
		Str("port", port).
		Msg("Service Started")
}

func ServiceStop(name string) {
	log.Info().
		Str("service", name).
		Msg("Service Stopped")
}
