// Copyright 2024 The Aletheia Authors
//
// https://github.com/aurel3d/aletheia-go
//
// Licensed under the MIT License. See LICENSE file in the project root for
// full license information.

package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

const (

	// LogLevelDisabled maps to zerolog.Disabled logging level
	LogLevelDisabled string = "disabled"

	// LogLevelError maps to zerolog.ErrorLevel logging level
	LogLevelError string = "error"

	// LogLevelWarn maps to zerolog.WarnLevel logging level
	LogLevelWarn string = "warn"

	// LogLevelInfo maps to zerolog.InfoLevel logging level
	LogLevelInfo string = "info"

	// LogLevelDebug maps to zerolog.DebugLevel logging level
	LogLevelDebug string = "debug"

	// LogLevelTrace maps to zerolog.TraceLevel logging level
	LogLevelTrace string = "trace"
)

// LoggingLevels maps user-facing level names to zerolog levels.
var LoggingLevels = map[string]zerolog.Level{
	LogLevelDisabled: zerolog.Disabled,
	LogLevelError:    zerolog.ErrorLevel,
	LogLevelWarn:     zerolog.WarnLevel,
	LogLevelInfo:     zerolog.InfoLevel,
	LogLevelDebug:    zerolog.DebugLevel,
	LogLevelTrace:    zerolog.TraceLevel,
}

// SetLoggingLevel applies the requested logging level to filter out messages
// with a lower level than the one configured.
func SetLoggingLevel(logLevel string) error {

	level, ok := LoggingLevels[logLevel]
	if !ok {
		return fmt.Errorf("invalid option provided: %v", logLevel)
	}

	zerolog.SetGlobalLevel(level)

	return nil
}

// NewConsoleLogger returns a human-friendly logger for CLI use, writing
// colorized output with timestamps to out.
func NewConsoleLogger(out io.Writer, app string, version string) zerolog.Logger {

	consoleWriter := zerolog.ConsoleWriter{Out: out}

	return zerolog.New(consoleWriter).With().
		Timestamp().
		Str("app", app).
		Str("version", version).
		Logger()
}
