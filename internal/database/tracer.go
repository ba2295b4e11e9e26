package database

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// newQueryTracer routes pgx query logs into logger. Statements are only
// logged when the logger runs at debug level; failures always are.
func newQueryTracer(logger zerolog.Logger) *tracelog.TraceLog {
	level := tracelog.LogLevelWarn
	if logger.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel {
		level = tracelog.LogLevelDebug
	}

	l := logger.With().Str("component", "pgx").Logger()
	return &tracelog.TraceLog{
		Logger: tracelog.LoggerFunc(func(ctx context.Context, lvl tracelog.LogLevel, msg string, data map[string]any) {
			l.WithLevel(zerologLevel(lvl)).Fields(data).Msg(msg)
		}),
		LogLevel: level,
	}
}

func zerologLevel(lvl tracelog.LogLevel) zerolog.Level {
	switch lvl {
	case tracelog.LogLevelTrace:
		return zerolog.TraceLevel
	case tracelog.LogLevelDebug:
		return zerolog.DebugLevel
	case tracelog.LogLevelInfo:
		return zerolog.InfoLevel
	case tracelog.LogLevelWarn:
		return zerolog.WarnLevel
	case tracelog.LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.NoLevel
	}
}
