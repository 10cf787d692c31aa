package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger initializes the structured logger. An empty logLevel falls back
// to LOG_LEVEL, then to debug in development and info elsewhere. Output is
// JSON outside development, or whenever logFormat (else LOG_FORMAT) is "json".
func InitLogger(logLevel, logFormat string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	if logFormat == "" {
		logFormat = os.Getenv("LOG_FORMAT")
	}

	if !isDevelopment || strings.ToLower(logFormat) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	// Console output of the diagnostic commands goes to stdout, logs to stderr
	log.SetOutput(os.Stderr)

	Logger = log

	return log
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger("info", "", false)
	}
	return Logger
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func base(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return GetLogger()
	}
	return log
}

// WithService creates a logger with service context
func WithService(log logrus.FieldLogger, serviceName string) *logrus.Entry {
	return base(log).WithField("service", serviceName)
}

// WithLeagueContext creates a logger scoped to one fantasy league
func WithLeagueContext(log logrus.FieldLogger, platform, leagueID string) *logrus.Entry {
	return base(log).WithFields(logrus.Fields{
		"platform":  platform,
		"league_id": leagueID,
	})
}

func WithTable(log logrus.FieldLogger, table string) *logrus.Entry {
	return base(log).WithField("table", table)
}

// WithRequestID creates a logger with request context
func WithRequestID(log logrus.FieldLogger, requestID string) *logrus.Entry {
	return base(log).WithField("request_id", requestID)
}
