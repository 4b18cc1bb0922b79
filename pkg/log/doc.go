// Package log provides the logging abstraction used across photocat.
//
// It defines a small Logger interface that can be implemented by any
// logging library. A zerolog adapter is provided for real output and a
// no-op logger for tests and for library consumers who do not want
// logging.
//
// Custom loggers only need the four level methods:
//
//	type MyLogger struct{ ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field)  { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field)  { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
package log
