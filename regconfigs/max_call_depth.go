package regconfigs

import (
	"github.com/reusee/regvm/configs"
)

// MaxCallDepth bounds the VM frame stack. Zero means unlimited.
type MaxCallDepth int

func (Module) MaxCallDepth(
	loader configs.Loader,
) MaxCallDepth {
	if n, ok := envInt(envMaxCallDepth); ok {
		return MaxCallDepth(n)
	}
	return MaxCallDepth(configs.First[int](loader, "max_call_depth"))
}
