package logger

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

// Setup configures the standard logrus logger. format is "text" (default)
// or "json"; level is any logrus level name.
func Setup(out io.Writer, level, format string) error {
	return Configure(log.StandardLogger(), out, level, format)
}

func Configure(logger *log.Logger, out io.Writer, level, format string) error {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{
			DisableTimestamp:       false,
			FullTimestamp:          true,
			TimestampFormat:        timestampFormat,
			DisableLevelTruncation: true,
			QuoteEmptyFields:       false,
			DisableQuote:           true,
		})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	if out != nil {
		logger.SetOutput(out)
	}
	logger.SetLevel(lvl)
	return nil
}
