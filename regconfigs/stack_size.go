package regconfigs

import (
	"github.com/reusee/regvm/configs"
	"github.com/samber/lo"
)

const defaultStackSize = 256

// StackSize is the initial number of register slots of a VM.
type StackSize int

func (Module) StackSize(
	loader configs.Loader,
) StackSize {
	n, _ := envInt(envStackSize)
	return StackSize(lo.CoalesceOrEmpty(
		n,
		configs.First[int](loader, "stack_size"),
		defaultStackSize,
	))
}
