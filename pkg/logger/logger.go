// Package logger provides structured logging for userhub
package logger

import (
	"fmt"
	"log"
	"os"
)

// Logger is the logging interface used across the service
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

var levelOrder = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// ConsoleLogger writes leveled key=value log lines to the standard logger
type ConsoleLogger struct {
	Level  string
	fields map[string]interface{}
}

// NewConsoleLogger creates a new console logger at the given level
func NewConsoleLogger(level string) Logger {
	if _, ok := levelOrder[level]; !ok {
		level = "info"
	}
	return &ConsoleLogger{Level: level}
}

// NewTestLogger creates a logger for tests
func NewTestLogger() Logger {
	return &ConsoleLogger{Level: "debug"}
}

// Debug logs debug level messages
func (l *ConsoleLogger) Debug(msg string, fields ...map[string]interface{}) {
	l.logWithFields("debug", msg, fields...)
}

// Info logs info level messages
func (l *ConsoleLogger) Info(msg string, fields ...map[string]interface{}) {
	l.logWithFields("info", msg, fields...)
}

// Warn logs warning level messages
func (l *ConsoleLogger) Warn(msg string, fields ...map[string]interface{}) {
	l.logWithFields("warn", msg, fields...)
}

// Error logs error level messages
func (l *ConsoleLogger) Error(msg string, err error, fields ...map[string]interface{}) {
	var allFields []map[string]interface{}
	if err != nil {
		allFields = append(allFields, map[string]interface{}{"error": err.Error()})
	}
	allFields = append(allFields, fields...)
	l.logWithFields("error", msg, allFields...)
}

// Fatal logs the message and exits
func (l *ConsoleLogger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Error(msg, err, fields...)
	os.Exit(1)
}

// WithFields returns a logger that includes the given fields on every line
func (l *ConsoleLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &ConsoleLogger{Level: l.Level, fields: merged}
}

func (l *ConsoleLogger) logWithFields(level, msg string, fields ...map[string]interface{}) {
	if levelOrder[level] < levelOrder[l.Level] {
		return
	}

	logMsg := fmt.Sprintf("[%s] %s", level, msg)

	for k, v := range l.fields {
		logMsg += fmt.Sprintf(" %s=%v", k, v)
	}
	for _, fieldMap := range fields {
		for k, v := range fieldMap {
			logMsg += fmt.Sprintf(" %s=%v", k, v)
		}
	}

	log.Println(logMsg)
}
