package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// --------------------------------------------------------------------------
// Log Levels
// --------------------------------------------------------------------------

// LogLevel controls which messages a logger emits.
type LogLevel int

const (
	ERROR LogLevel = iota
	WARNING
	INFO
	DEBUG
)

// ParseLevel converts a string level to a LogLevel.
// It returns an error for unknown levels.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warning", "warn":
		return WARNING, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger
// --------------------------------------------------------------------------

// ILogger is the logging interface used throughout the application.
type ILogger interface {
	SetLevel(level LogLevel)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// bkvLogger implements the ILogger interface with custom formatting
type bkvLogger struct {
	name   string
	level  LogLevel
	logger *log.Logger
}

func (l *bkvLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *bkvLogger) Debugf(format string, args ...interface{}) {
	if l.level >= DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *bkvLogger) Infof(format string, args ...interface{}) {
	if l.level >= INFO {
		l.log("INFO", format, args...)
	}
}

func (l *bkvLogger) Warningf(format string, args ...interface{}) {
	if l.level >= WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *bkvLogger) Errorf(format string, args ...interface{}) {
	if l.level >= ERROR {
		l.log("ERROR", format, args...)
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *bkvLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Registry
// --------------------------------------------------------------------------

var (
	mu      sync.Mutex
	loggers = map[string]*bkvLogger{}
	// log lines go to stderr so they never interleave with data written
	// to stdout (e.g. the state dump on shutdown)
	output io.Writer = os.Stderr
)

// GetLogger returns the named logger, creating it with level INFO if it
// does not exist yet. The same instance is returned for the same name.
func GetLogger(pkgName string) ILogger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[pkgName]; ok {
		return l
	}

	l := &bkvLogger{
		name:   pkgName,
		level:  INFO,
		logger: log.New(output, "", log.Ldate|log.Ltime),
	}
	loggers[pkgName] = l
	return l
}

// SetGlobalLevel sets the level of all existing loggers. Loggers created
// afterwards start at INFO and must be configured individually.
func SetGlobalLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()

	for _, l := range loggers {
		l.level = level
	}
}

// InitLoggers configures all application loggers from a string level
// (as given on the command line or via environment variables).
func InitLoggers(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}

	// ensure the well-known loggers exist before levelling them
	for _, name := range []string{"store", "bootstrap", "rpc", "transport/rpc"} {
		GetLogger(name)
	}

	SetGlobalLevel(parsed)
	return nil
}
