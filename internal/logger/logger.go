// Package logger configures the operational log written to stderr.
//
// User-facing prompts and messages are not logged; they are written
// directly to the command's output.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide operational logger. It is never nil.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&CLIFormatter{DisableColors: true})
	return l
}

// Setup points the logger at w and picks the level.
// debug enables debug output; quiet limits output to errors.
// The LOG_MODE environment variable ("debug", "quiet") overrides both flags.
func Setup(w io.Writer, debug, quiet bool) {
	switch os.Getenv("LOG_MODE") {
	case "debug", "verbose":
		debug, quiet = true, false
	case "quiet":
		debug, quiet = false, true
	}

	level := logrus.WarnLevel
	if quiet {
		level = logrus.ErrorLevel
	} else if debug {
		level = logrus.DebugLevel
	}

	Log.SetOutput(w)
	Log.SetLevel(level)
	Log.SetFormatter(&CLIFormatter{DisableColors: !isTerminal(w)})
}

// CLIFormatter renders "LEVEL: message key=value ..." lines.
type CLIFormatter struct {
	DisableColors bool
}

// Format implements logrus.Formatter.
func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	levelColor, resetColor := "", ""
	if !f.DisableColors {
		switch entry.Level {
		case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
			levelColor = "\033[31m"
		case logrus.WarnLevel:
			levelColor = "\033[33m"
		case logrus.InfoLevel:
			levelColor = "\033[36m"
		default:
			levelColor = "\033[37m"
		}
		resetColor = "\033[0m"
	}

	b.WriteString(levelColor)
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString(resetColor)
	b.WriteString(": ")
	b.WriteString(entry.Message)

	// Sorted so output is stable
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
