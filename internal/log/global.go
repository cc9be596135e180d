package log

import "sync"

var (
	defaultLogger *Logger
	loggerMu      sync.RWMutex
)

// SetDefaultLogger sets the process-wide default logger.
func SetDefaultLogger(logger *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = logger
}

// DefaultLogger returns the process-wide default logger, initializing
// one lazily if none was configured.
func DefaultLogger() *Logger {
	loggerMu.RLock()
	if defaultLogger != nil {
		defer loggerMu.RUnlock()
		return defaultLogger
	}
	loggerMu.RUnlock()

	logger := Default()
	SetDefaultLogger(logger)
	return logger
}
