package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// SessionComponent is Component with the run's session ID attached, for
// loggers that outlive a single context.
func SessionComponent(name, sessionID string) zerolog.Logger {
	ctx := log.With().Str("cmp", name)
	if sessionID != "" {
		ctx = ctx.Str("session_id", sessionID)
	}
	return ctx.Logger()
}
