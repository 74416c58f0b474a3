/*
Package logger provides logging functionality to a webbot app by defining the required behavior in [Logger]
and providing an implementation of it with [BotLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [BotLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*BotLogger.Warn], [*BotLogger.Error], and [*BotLogger.Fatal] produce messages.

# BotLogger

Log messages emitted by [BotLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [ERROR] dispatch/node.go:213 'home-comments failed rendering' log_context: {"data":{"accessor":"home-comments"},"error":"boom"}

The file, line number, and parent directory of where a [BotLogger] method was called comprise the call site.
The log context is a JSON-encoded [*LogContext].

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.

# SentryLogger

When the SENTRY_DSN env var is set, [New] wraps the [BotLogger] in a [SentryLogger],
which ships any [LogContext.Error] logged at or above [LogLevelWarn] to Sentry.
*/
package logger
