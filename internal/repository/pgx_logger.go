package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

var pgxLevels = map[tracelog.LogLevel]zerolog.Level{
	tracelog.LogLevelTrace: zerolog.TraceLevel,
	tracelog.LogLevelDebug: zerolog.DebugLevel,
	tracelog.LogLevelInfo:  zerolog.InfoLevel,
	tracelog.LogLevelWarn:  zerolog.WarnLevel,
	tracelog.LogLevelError: zerolog.ErrorLevel,
}

// pgxLogger routes pgx tracelog output into the service logger.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	return &pgxLogger{logger: logger.With().Str("component", "pgx").Logger()}
}

// Log implements tracelog.Logger. Statement text and bind args are kept
// only for trace events; "time" is renamed to a typed "took" duration.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}
	zl, known := pgxLevels[level]
	if !known {
		zl = zerolog.InfoLevel
	}
	event := l.logger.WithLevel(zl)
	if !known {
		event = event.Str("pgx_log_level", level.String())
	}

	fields := make(map[string]any, len(data))
	for k, v := range data {
		switch k {
		case "sql", "args":
			if level == tracelog.LogLevelTrace {
				fields[k] = v
			}
		case "time":
			if d, ok := v.(time.Duration); ok {
				event = event.Dur("took", d)
				continue
			}
			fields[k] = v
		default:
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}
