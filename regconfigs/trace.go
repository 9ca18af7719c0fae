package regconfigs

import (
	"github.com/reusee/regvm/configs"
)

type Trace bool

func (Module) Trace(
	loader configs.Loader,
) Trace {
	if b, ok := envBool(envTrace); ok {
		return Trace(b)
	}
	return Trace(configs.First[bool](loader, "trace"))
}
