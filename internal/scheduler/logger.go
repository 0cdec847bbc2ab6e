package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// cronLogger writes cron library events to zerolog
type cronLogger struct {
	logger zerolog.Logger
}

var _ cron.Logger = cronLogger{}

// Info implements cron.Logger. Routine scheduling chatter goes to debug.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

// Error implements cron.Logger
func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
