package core

// Logger is the application-wide structured logger.
// args may carry extra context values; an error arg is reported with its
// stack trace when the backing service supports it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
