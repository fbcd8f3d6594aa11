// Package logger configures zerolog for the service and bridges stripe-go's
// leveled logger onto it.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to stdout at the given level.
// Unknown levels fall back to info.
func New(level string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "booking-payment").Logger()
}

// StripeLogger satisfies stripe.LeveledLoggerInterface.
type StripeLogger struct {
	log zerolog.Logger
}

func NewStripeLogger(log zerolog.Logger) *StripeLogger {
	return &StripeLogger{log: log.With().Str("component", "stripe").Logger()}
}

func (l *StripeLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msgf(format, v...)
}

func (l *StripeLogger) Infof(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

func (l *StripeLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msgf(format, v...)
}

func (l *StripeLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msgf(format, v...)
}
