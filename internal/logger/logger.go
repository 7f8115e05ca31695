package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/timetable/internal/constants"
)

// Logger is nil until Init or UseWriter; the package helpers are no-ops then,
// so library packages can log without caring whether a host set logging up.
var Logger *log.Logger

var rotating *lumberjack.Logger

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

type Config struct {
	Debug  bool
	LogDir string
}

// Init logs to <LogDir>/timetable.log at warn level. Debug lowers the level,
// reports callers and mirrors output to stderr.
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	_ = Close()

	rotating = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, constants.AppName+".log"),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	opts := log.Options{
		ReportTimestamp: true,
		Level:           log.WarnLevel,
		Prefix:          constants.AppName,
	}
	var w io.Writer = rotating
	if cfg.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
		// without --debug the TUI owns the terminal
		w = io.MultiWriter(os.Stderr, rotating)
	}
	Logger = log.NewWithOptions(w, opts)
	return nil
}

// UseWriter replaces the logger with one writing to w
func UseWriter(w io.Writer, level log.Level) {
	_ = Close()
	Logger = log.NewWithOptions(w, log.Options{Level: level, Prefix: constants.AppName})
}

// Close releases the log file and turns logging off
func Close() error {
	Logger = nil
	if rotating == nil {
		return nil
	}
	err := rotating.Close()
	rotating = nil
	return err
}

func Debug(msg string, keyvals ...any) {
	if l := Logger; l != nil {
		l.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if l := Logger; l != nil {
		l.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if l := Logger; l != nil {
		l.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if l := Logger; l != nil {
		l.Error(msg, keyvals...)
	}
}
