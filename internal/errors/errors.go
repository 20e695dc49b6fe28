package errors

import (
	"fmt"
	"os"

	"github.com/habitline/habitline/internal/logger"
)

// Fatal reports a command failure on stderr with the single user-facing
// "Error: " format and exits. The failure also lands in the log file, which
// is where any detail beyond the message lives.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// Fatalf is Fatal over a formatted message.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
