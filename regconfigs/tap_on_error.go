package regconfigs

import (
	"github.com/reusee/regvm/configs"
)

// TapOnError opens a debugging REPL over the failing frame when a run
// fails. It has no effect unless stdin is a terminal.
type TapOnError bool

func (Module) TapOnError(
	loader configs.Loader,
) TapOnError {
	if b, ok := envBool(envTapOnError); ok {
		return TapOnError(b)
	}
	return TapOnError(configs.First[bool](loader, "tap_on_error"))
}
