package logger

import (
	"fmt"
	"os"

	"pizza-store/session"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the global logger instance
	Log = zap.NewNop()
)

// Initialize sets up the logger for the given environment. Output goes to stderr so it never
// interleaves with the menus on stdout.
func Initialize(env string) {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	config.OutputPaths = []string{"stderr"}

	l, err := config.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	Log = l
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = Log.Sync()
}

func sessionFields(s *session.Session, fields []zap.Field) []zap.Field {
	if s == nil {
		return fields
	}
	return append(fields,
		zap.String("session_id", s.ID),
		zap.String("login", s.Login),
		zap.String("role", string(s.Role)),
	)
}

// Error logs an error with the session attached
func Error(s *session.Session, msg string, err error, fields ...zap.Field) {
	fields = sessionFields(s, fields)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	Log.Error(msg, fields...)
}

// Info logs an info message with the session attached
func Info(s *session.Session, msg string, fields ...zap.Field) {
	Log.Info(msg, sessionFields(s, fields)...)
}

// Warn logs a warning message with the session attached
func Warn(s *session.Session, msg string, fields ...zap.Field) {
	Log.Warn(msg, sessionFields(s, fields)...)
}

// Action names the workflow a log entry belongs to.
func Action(name string) zap.Field {
	return zap.String("action", name)
}

// Err attaches err without the stack trace zap.Error adds at error level.
func Err(err error) zap.Field {
	return zap.String("error", err.Error())
}
