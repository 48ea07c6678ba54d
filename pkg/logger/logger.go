package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Chative-core-poc-v1/questionnaire/internal/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FileTimeLayout is the timestamp embedded in log file names.
const FileTimeLayout = "20060102_150405"

var DefaultLoggerOpts = &LoggerOpts{
	Environment: core.Development,
}

type LoggerOpts struct {
	Environment core.Environment
	// Dir enables the file sink; empty keeps console output only.
	Dir string
	// Name prefixes the log file name, e.g. "questionnaire" -> questionnaire_20250101_120000.log.
	Name string
	// Console overrides the console sink, os.Stderr when nil.
	Console io.Writer
}

var logFile *os.File

func safe(otps ...LoggerOpts) *LoggerOpts {
	if len(otps) == 0 {
		return DefaultLoggerOpts
	}
	return &otps[0]
}

// Init configures the global logger once at startup and returns the path of
// the log file, or "" when no file sink was requested.
func Init(otps ...LoggerOpts) (string, error) {
	opts := safe(otps...)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	level := zerolog.DebugLevel
	var consoleSink io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: time.DateTime}
	if opts.Environment.IsProduction() {
		level = zerolog.InfoLevel
		consoleSink = console
	}

	path := ""
	writers := []io.Writer{consoleSink}
	if opts.Dir != "" {
		f, p, err := openLogFile(opts.Dir, opts.Name, time.Now())
		if err != nil {
			return "", err
		}
		Close()
		logFile = f
		path = p
		writers = append(writers, f)
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().Timestamp().Caller().Logger().
		Level(level)

	if path != "" {
		log.Info().Str("file", path).Msg("Logger initialised")
	}
	return path, nil
}

// LogFileName builds the timestamped file name used by Init.
func LogFileName(name string, at time.Time) string {
	if name == "" {
		name = "app"
	}
	return fmt.Sprintf("%s_%s.log", name, at.Format(FileTimeLayout))
}

func openLogFile(dir, name string, at time.Time) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, LogFileName(name, at))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("open log file: %w", err)
	}
	return f, path, nil
}

// Close releases the file sink opened by Init, if any.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Panic() *zerolog.Event {
	return log.Panic()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
