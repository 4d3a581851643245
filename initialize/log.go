package initialize

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns console output for development, plain JSON
// otherwise.
func NewLogger(production bool) zerolog.Logger {
	if production {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	return zerolog.New(cw).With().Timestamp().Logger()
}
