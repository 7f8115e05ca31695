package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/timetable/internal/logger"
)

// Setup errors are raised before any grid is built and are never corrected silently.
var (
	ErrInvalidConfig   = stderrors.New("invalid timetable configuration")
	ErrInvalidAccessor = stderrors.New("invalid property accessor")
	ErrInvalidColumn   = stderrors.New("invalid column name")
	ErrNoService       = stderrors.New("no grid service registered for display type")
)

// Content errors fail a single row or field.
var (
	ErrInvalidContent = stderrors.New("invalid cell content")
	ErrConversion     = stderrors.New("value conversion failed")
)

// ErrInvalidOperation reports a mutation whose scope and data do not fit together,
// e.g. a group-scoped delete on an event without a group id.
var ErrInvalidOperation = stderrors.New("invalid operation")

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
