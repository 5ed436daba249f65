package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/miaomotion/internal/engine"
	"github.com/julianstephens/miaomotion/internal/logger"
)

// Format prefixes err for the terminal. Rejections of a user action read
// differently from failures.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, engine.ErrRejected) {
		return fmt.Sprintf("Rejected: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
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

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
