package log

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// SetupWarnings routes errors.Warn through a zerolog logger writing to w.
// Warnings that implement zerolog.LogObjectMarshaler are embedded as objects.
func SetupWarnings(w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Str(ComponentKey, "warnings").Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(obj)
		}
		ev.Msg(warning.Error())
	})
	return logger
}
