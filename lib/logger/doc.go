// Package logger provides named, levelled loggers with a uniform output
// format. Components obtain their logger once via GetLogger and log through
// it; the serve command sets the global level from configuration at startup.
package logger
