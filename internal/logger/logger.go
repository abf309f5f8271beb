package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	User *UserLogger // Clean messages for the person at the desk (stdout)
	Op   *OpLogger   // Detailed operational logs (stderr)

	// Unified logger instance (preferred for new code)
	log *UnifiedLogger

	userWriter io.Writer = os.Stdout
	opWriter   io.Writer = os.Stderr
)

// init ensures loggers are never nil
func init() {
	log = GetLogger()
	User = &UserLogger{logger: log.GetInternalLogger()}
	Op = &OpLogger{logger: log.GetInternalLogger()}
}

type UserLogger struct {
	logger *logrus.Logger
}

type OpLogger struct {
	logger *logrus.Logger
}

func (u *UserLogger) entry(emoji string) *logrus.Entry {
	fields := logrus.Fields{"log_type": string(UserLog)}
	if emoji != "" {
		fields["emoji"] = emoji
	}
	return u.logger.WithFields(fields)
}

func (u *UserLogger) Info(msg string) {
	u.entry("").Info(msg)
}

func (u *UserLogger) Infof(format string, args ...interface{}) {
	u.entry("").Infof(format, args...)
}

func (u *UserLogger) Error(msg string) {
	u.entry("❌").Error(msg)
}

func (u *UserLogger) Errorf(format string, args ...interface{}) {
	u.entry("❌").Errorf(format, args...)
}

func (u *UserLogger) Warn(msg string) {
	u.entry("⚠️").Warn(msg)
}

func (u *UserLogger) Warnf(format string, args ...interface{}) {
	u.entry("⚠️").Warnf(format, args...)
}

// Workflow outcome messages with relevant emojis
func (u *UserLogger) Starting(msg string) {
	u.entry("🚀").Info(msg)
}

func (u *UserLogger) Success(msg string) {
	u.entry("✅").Info(msg)
}

func (u *UserLogger) Successf(format string, args ...interface{}) {
	u.entry("✅").Infof(format, args...)
}

func (u *UserLogger) Cancelled(msg string) {
	u.entry("🛑").Warn(msg)
}

func (u *UserLogger) Skipped(msg string) {
	u.entry("⏭️").Info(msg)
}

func (u *UserLogger) Printf(format string, args ...interface{}) {
	u.entry("🖨️").Infof(format, args...)
}

// Raw writes a pre-rendered block (dialogs, tables) without decoration
func (u *UserLogger) Raw(block string) {
	u.logger.WithFields(logrus.Fields{"log_type": string(UserLog), "raw": true}).Info(block)
}

func (o *OpLogger) Info(msg string) {
	o.logger.WithField("log_type", string(OpLog)).Info(msg)
}

func (o *OpLogger) Infof(format string, args ...interface{}) {
	o.logger.WithField("log_type", string(OpLog)).Infof(format, args...)
}

func (o *OpLogger) Error(msg string) {
	o.logger.WithField("log_type", string(OpLog)).Error(msg)
}

func (o *OpLogger) Errorf(format string, args ...interface{}) {
	o.logger.WithField("log_type", string(OpLog)).Errorf(format, args...)
}

func (o *OpLogger) Warn(msg string) {
	o.logger.WithField("log_type", string(OpLog)).Warn(msg)
}

func (o *OpLogger) Warnf(format string, args ...interface{}) {
	o.logger.WithField("log_type", string(OpLog)).Warnf(format, args...)
}

func (o *OpLogger) Debug(msg string) {
	o.logger.WithField("log_type", string(OpLog)).Debug(msg)
}

func (o *OpLogger) Debugf(format string, args ...interface{}) {
	o.logger.WithField("log_type", string(OpLog)).Debugf(format, args...)
}

func (o *OpLogger) WithFields(fields map[string]interface{}) *logrus.Entry {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["log_type"] = string(OpLog)
	return o.logger.WithFields(fields)
}

// CLIFormatter provides clean output for CLI applications
type CLIFormatter struct {
	DisableTimestamp bool
	DisableLevel     bool
	DisableColors    bool
}

// internal fields never printed as key=value pairs
var hiddenFields = map[string]bool{"log_type": true, "emoji": true, "raw": true}

func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if raw, _ := entry.Data["raw"].(bool); raw || (f.DisableLevel && f.DisableTimestamp) {
		b.WriteString(entry.Message)
		b.WriteByte('\n')
		return b.Bytes(), nil
	}

	if !f.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteString(" ")
	}

	if !f.DisableLevel {
		levelColor := ""
		resetColor := ""
		if !f.DisableColors {
			switch entry.Level {
			case logrus.ErrorLevel:
				levelColor = "\033[31m" // Red
			case logrus.WarnLevel:
				levelColor = "\033[33m" // Yellow
			case logrus.InfoLevel:
				levelColor = "\033[36m" // Cyan
			case logrus.DebugLevel:
				levelColor = "\033[37m" // White
			}
			resetColor = "\033[0m"
		}

		b.WriteString(levelColor)
		b.WriteString(strings.ToUpper(entry.Level.String()))
		b.WriteString(resetColor)
		b.WriteString(": ")
	}

	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if !hiddenFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// SetOutputs redirects user and operational output. Call before Setup.
func SetOutputs(user, op io.Writer) {
	userWriter = user
	opWriter = op
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func Setup(verbose bool, jsonLogs bool, quiet bool) {
	// Environment variables override CLI flags
	if envLogMode := os.Getenv("LOG_MODE"); envLogMode != "" {
		switch envLogMode {
		case "quiet":
			quiet = true
			verbose = false
		case "verbose", "debug":
			verbose = true
			quiet = false
		}
	}

	if envLogFormat := os.Getenv("LOG_FORMAT"); envLogFormat != "" {
		switch envLogFormat {
		case "json":
			jsonLogs = true
		case "text":
			jsonLogs = false
		}
	}

	ul := GetLogger()
	internalLogger := ul.GetInternalLogger()

	var level logrus.Level
	if quiet {
		level = logrus.ErrorLevel
	} else if verbose {
		level = logrus.DebugLevel
	} else {
		level = logrus.InfoLevel
	}

	internalLogger.Hooks = make(logrus.LevelHooks)
	internalLogger.SetOutput(io.Discard) // Output handled by hooks
	internalLogger.SetLevel(level)

	hook := NewOutputRouterHook(userWriter, opWriter)
	if jsonLogs {
		internalLogger.SetFormatter(&logrus.JSONFormatter{})
		hook.UserFormatter = &logrus.JSONFormatter{}
		hook.OpFormatter = &logrus.JSONFormatter{}
	} else {
		internalLogger.SetFormatter(&logrus.TextFormatter{})

		hook.UserFormatter = &CLIFormatter{
			DisableTimestamp: true,
			DisableLevel:     true,
			DisableColors:    !isTerminal(userWriter),
		}

		if verbose {
			hook.OpFormatter = &logrus.TextFormatter{
				FullTimestamp: true,
				ForceColors:   isTerminal(opWriter),
			}
		} else {
			hook.OpFormatter = &CLIFormatter{
				DisableTimestamp: true,
				DisableLevel:     false,
				DisableColors:    !isTerminal(opWriter),
			}
		}
	}
	internalLogger.AddHook(hook)

	User = &UserLogger{logger: internalLogger}
	Op = &OpLogger{logger: internalLogger}
}

// ForTask returns an operational entry tagged with the task name
func ForTask(task string) *logrus.Entry {
	return log.ForTask(task)
}
