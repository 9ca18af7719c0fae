package logs

import (
	"log/slog"

	"github.com/reusee/regvm/modes"
)

type Level slog.Level

var _ slog.Leveler = Level(0)

func (l Level) Level() slog.Level {
	return slog.Level(l)
}

func (Module) Level(
	mode modes.Mode,
) Level {
	if mode == modes.ModeProduction {
		return Level(slog.LevelInfo)
	}
	return Level(slog.LevelDebug)
}
