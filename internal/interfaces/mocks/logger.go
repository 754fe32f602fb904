package mocks

import "github.com/haguru/booknest/internal/interfaces"

// NoopLogger discards all log output; it keeps test wiring quiet.
type NoopLogger struct{}

func (NoopLogger) Info(msg string, keyvals ...interface{})  {}
func (NoopLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoopLogger) Error(msg string, keyvals ...interface{}) {}
func (NoopLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoopLogger) SetLevel(level string)                    {}
func (l NoopLogger) WithContext(ctx map[string]interface{}) interfaces.Logger {
	return l
}
