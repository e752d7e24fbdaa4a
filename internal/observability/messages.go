package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/biosim/internal/game/character"
)

// MessageLevel is the log level a character message is written at. Warnings
// reach the default info level; routine flavor stays at debug.
func MessageLevel(k character.MessageKind) zapcore.Level {
	if k == character.Warning {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// LogMessages writes msgs, drained from c, to logger.
func LogMessages(logger *zap.Logger, c *character.Character, msgs []character.Message) {
	for _, m := range msgs {
		if ce := logger.Check(MessageLevel(m.Kind), m.Text); ce != nil {
			ce.Write(
				zap.String("character", c.Name),
				zap.Int("turn", m.Turn),
				zap.Stringer("kind", m.Kind),
			)
		}
	}
}
