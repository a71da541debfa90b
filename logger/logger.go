// Package logger provides the prefixed, colored leveled logger used across
// the service.
package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/sirupsen/logrus"
)

var (
	ErrNilWriter = errors.New("logger: writer is nil")
)

// Logger writes lines of the form "<color>[PREFIX]<reset> [LEVEL] message".
type Logger struct {
	base *logrus.Logger
}

// New creates a logger tagging every line with prefix in the given color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})

	return &Logger{base: l}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.base.Info(msg)
}

// Warning logs a message about a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.base.Warn(msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.base.Error(msg)
}

type prefixFormatter struct {
	prefix string
	color  string
}

// Format implements logrus.Formatter.
func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	levelColor := config.LogInfoColor
	if e.Level <= logrus.WarnLevel {
		levelColor = config.LogErrorColor
	}

	line := fmt.Sprintf("%s %s[%s]%s %s[%s]%s %s\n",
		e.Time.Format("2006/01/02 15:04:05"),
		f.color, f.prefix, config.ColorReset,
		levelColor, strings.ToUpper(e.Level.String()), config.LogColorReset,
		e.Message,
	)
	return []byte(line), nil
}
