// Package logging prints leveled, colored console output and mirrors
// every message into a structured log file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"lecturr/internal/domain/consts"
	"lecturr/internal/domain/regex"

	"github.com/rs/zerolog"
)

var (
	// Level controls debug verbosity. D(l, ...) prints when l <= Level.
	Level int

	mu       sync.Mutex
	loggable bool
	fileLog  zerolog.Logger
	logFile  *os.File
)

// Setup opens (or creates) the log file and attaches the zerolog sink.
func Setup(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}

	logFile = f
	fileLog = zerolog.New(f).With().Timestamp().Logger()
	loggable = true
	return nil
}

// Close flushes and closes the log file if one was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
		logFile = nil
		loggable = false
	}
}

// I prints an info message.
func I(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	msg := sprintfOrPlain(format, args...)
	fmt.Println(consts.BlueInfo + msg)
	writeLog(zerolog.InfoLevel, msg)
}

// S prints a success message.
func S(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	msg := sprintfOrPlain(format, args...)
	fmt.Println(consts.GreenSuccess + msg)
	writeLog(zerolog.InfoLevel, msg)
}

// W prints a warning message.
func W(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	msg := sprintfOrPlain(format, args...)
	fmt.Println(consts.YellowWarn + msg)
	writeLog(zerolog.WarnLevel, msg)
}

// E prints an error message with the calling location appended.
func E(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	msg := sprintfOrPlain(format, args...)
	fmt.Println(consts.RedError + msg + callerTag())
	writeLog(zerolog.ErrorLevel, msg)
}

// D prints a debug message with the calling location appended, when the
// requested level is within the configured verbosity.
func D(l int, format string, args ...interface{}) {
	if l > Level {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	msg := sprintfOrPlain(format, args...)
	fmt.Println(consts.YellowDebug + msg + callerTag())
	writeLog(zerolog.DebugLevel, msg)
}

// P prints a plain message with no tag.
func P(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	msg := sprintfOrPlain(format, args...)
	fmt.Println(msg)
	writeLog(zerolog.InfoLevel, msg)
}

func sprintfOrPlain(format string, args ...interface{}) string {
	if len(args) != 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// callerTag locates the logging call site two frames up.
func callerTag() string {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(" [")
	b.WriteString(consts.ColorBlue)
	b.WriteString("Function: ")
	b.WriteString(consts.ColorReset)
	b.WriteString(filepath.Base(runtime.FuncForPC(pc).Name()))
	b.WriteString(" - ")
	b.WriteString(consts.ColorBlue)
	b.WriteString("File: ")
	b.WriteString(consts.ColorReset)
	b.WriteString(filepath.Base(file))
	b.WriteString(" : ")
	b.WriteString(consts.ColorBlue)
	b.WriteString("Line: ")
	b.WriteString(consts.ColorReset)
	b.WriteString(strconv.Itoa(line))
	b.WriteString("]")
	return b.String()
}

func writeLog(lvl zerolog.Level, msg string) {
	if !loggable {
		return
	}
	fileLog.WithLevel(lvl).Msg(stripAnsiCodes(msg))
}

// stripAnsiCodes removes ANSI escape codes from a string
func stripAnsiCodes(input string) string {
	return regex.AnsiEscapeCompile().ReplaceAllString(input, "")
}
