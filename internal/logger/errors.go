package logger

import (
	"errors"
	"fmt"
	"os"
)

// ErrNameIsEmpty is returned if Log.Name was not defined.
var ErrNameIsEmpty = errors.New("config Log.Name can not be empty")

// writeErrorHandler reports events zerolog failed to write.
func writeErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "jls-web: dropped log event: %v\n", err)
}
