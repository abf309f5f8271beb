package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// OutputRouterHook routes log entries to different outputs based on log_type
type OutputRouterHook struct {
	UserFormatter logrus.Formatter
	OpFormatter   logrus.Formatter
	UserWriter    io.Writer
	OpWriter      io.Writer
}

// NewOutputRouterHook creates a hook writing user logs to user and everything else to op
func NewOutputRouterHook(user, op io.Writer) *OutputRouterHook {
	return &OutputRouterHook{
		UserFormatter: &CLIFormatter{
			DisableTimestamp: true,
			DisableLevel:     true,
		},
		OpFormatter: &CLIFormatter{},
		UserWriter:  user,
		OpWriter:    op,
	}
}

// Levels returns all log levels (this hook processes all levels)
func (h *OutputRouterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire is called when a log event is fired
func (h *OutputRouterHook) Fire(entry *logrus.Entry) error {
	logType, _ := entry.Data["log_type"].(string)

	formatter := h.OpFormatter
	writer := h.OpWriter

	if logType == string(UserLog) {
		formatter = h.UserFormatter
		writer = h.UserWriter

		if emoji, ok := entry.Data["emoji"].(string); ok && emoji != "" {
			// copy so other hooks see the undecorated message
			decorated := *entry
			decorated.Message = emoji + " " + entry.Message
			entry = &decorated
		}
	}

	bytes, err := formatter.Format(entry)
	if err != nil {
		return err
	}

	_, err = writer.Write(bytes)
	return err
}
