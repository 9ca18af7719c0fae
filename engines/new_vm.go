package engines

import (
	"github.com/reusee/regvm/logs"
	"github.com/reusee/regvm/regconfigs"
	"github.com/reusee/regvm/vm"
)

type NewVM func(sink vm.Sink) *vm.VM

func (Module) NewVM(
	maxCallDepth regconfigs.MaxCallDepth,
	stackSize regconfigs.StackSize,
	trace regconfigs.Trace,
	logger logs.Logger,
) NewVM {
	return func(sink vm.Sink) *vm.VM {
		return vm.NewVM(sink, &vm.Options{
			MaxCallDepth: int(maxCallDepth),
			StackSize:    int(stackSize),
			Logger:       logger,
			Trace:        bool(trace),
		})
	}
}
