package logger

import (
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

const (
	callerTmpl  = "%s:%d"
	knownFrames = 2
)

var webbotPathRegex = regexp.MustCompile("webbot/.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// NewLogLevel parses val, case-insensitively, into a LogLevel.
// Unknown values return LogLevelUnk.
func NewLogLevel(val string) LogLevel {
	switch strings.ToUpper(val) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "FATAL":
		return LogLevelFatal
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	case LogLevelFatal:
		return "[FATAL]"
	default:
		return "[UNK]"
	}
}

// BotLogger implements Logger using log.
type BotLogger struct {
	skip int
	env  string
	l    *log.Logger
	ll   LogLevel
}

// New constructs a Logger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default environment is DEVELOPMENT.
// The default log level is INFO.
//
// If the SENTRY_DSN env var is set, a *SentryLogger wrapping the *BotLogger returns.
func New(opts ...LoggerOptFn) Logger {
	l := NewBotLogger(opts...)
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
		return NewSentryLogger(l, dsn)
	}

	return l
}

// NewBotLogger constructs a *BotLogger, never wrapping it.
func NewBotLogger(opts ...LoggerOptFn) *BotLogger {
	l := &BotLogger{
		env: getEnvOrString("ENVIRONMENT", "DEVELOPMENT"),
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *BotLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *BotLogger) Debug(msg string, ctx *LogContext) {
	if l.ll > LogLevelDebug {
		return
	}

	l.log(color.WhiteString, LogLevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *BotLogger) Error(msg string, ctx *LogContext) {
	if l.ll > LogLevelError {
		return
	}

	l.log(color.RedString, LogLevelError, msg, ctx)
}

// Fatal writes a fatal log.
func (l *BotLogger) Fatal(msg string, ctx *LogContext) {
	if l.ll > LogLevelFatal {
		return
	}

	l.log(color.MagentaString, LogLevelFatal, msg, ctx)
}

// Info writes an info log.
func (l *BotLogger) Info(msg string, ctx *LogContext) {
	if l.ll > LogLevelInfo {
		return
	}

	l.log(color.BlueString, LogLevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *BotLogger) Warn(msg string, ctx *LogContext) {
	if l.ll > LogLevelWarn {
		return
	}

	l.log(color.YellowString, LogLevelWarn, msg, ctx)
}

// LogLevel returns the LogLevel set for the BotLogger.
func (l *BotLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *BotLogger) Skip() int { return l.skip }

// log executes printing the log message,
// including any context if available.
func (l *BotLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, ctx *LogContext) {
	var site string
	if ctx != nil && ctx.Caller != "" {
		site = ctx.Caller
	} else {
		// NOTE: skip the frames BotLogger adds
		// and however many the BotLogger is configured with
		_, file, line, _ := runtime.Caller(knownFrames + l.skip)
		site = fmt.Sprintf(callerTmpl, immediateFilepath(file), line)
	}

	msg = colorizer("%s %s '%s'", level, site, msg)
	if ctx == nil {
		l.l.Println(msg)
		return
	}

	l.l.Println(msg, "log_context:", ctx)
}

// immediateFilepath trims file down to the portion inside the webbot module
// or, otherwise, the file and the directory it is in.
//
// e.g.,:
// /home/dev/my-project/main.go => my-project/main.go
// /home/dev/my-project/internal/internal.go => internal/internal.go
func immediateFilepath(file string) string {
	if match := webbotPathRegex.FindString(file); match != "" {
		return match
	}

	dir, name := path.Split(file)
	return path.Base(dir) + "/" + name
}

func getEnvOrString(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	return val
}
