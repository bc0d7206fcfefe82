// Package logger provides leveled, module-tagged loggers for bpsim.
package logger

import (
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const defaultLogFormat = "%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset}: %{message}"

// LogLevelFlag selects the verbosity of the command line tools.
var LogLevelFlag = cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
	Value:   "info",
}

// Logger is the logging surface used throughout bpsim.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Notice(args ...interface{})
	Noticef(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	IsEnabledFor(level logging.Level) bool
}

// NewLogger returns a logger for module writing to stderr. An unknown level
// falls back to INFO.
func NewLogger(level string, module string) Logger {
	log := logging.MustGetLogger(module)

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultLogFormat))
	leveled := logging.AddModuleLevel(formatter)

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled.SetLevel(lvl, module)
	log.SetBackend(leveled)

	return log
}

// ParseTime splits an elapsed duration into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	total := uint32(elapsed.Round(time.Second).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return hours, minutes, seconds
}
