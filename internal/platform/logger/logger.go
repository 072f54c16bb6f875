package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger. Services and handlers receive it
// by injection so tests can swap in a silent one.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
