package logger

import "log"

// A LoggerOptFn is a functional option configuring a BotLogger when constructing a new one.
type LoggerOptFn func(*BotLogger)

// WithEnv sets the environment BotLogger is operating in.
func WithEnv(env string) LoggerOptFn {
	return func(l *BotLogger) {
		l.env = env
	}
}

// WithLevel sets the log level BotLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *BotLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger BotLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *BotLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *BotLogger) {
		l.skip = skip
	}
}
