package regconfigs

import (
	"github.com/reusee/regvm/configs"
)

// LogFilter is a starlark expression over `value`. Logged values for which
// it is false are dropped. Empty keeps everything.
type LogFilter string

func (Module) LogFilter(
	loader configs.Loader,
) LogFilter {
	return LogFilter(configs.First[string](loader, "log_filter"))
}
