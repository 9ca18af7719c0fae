package vm

import (
	"log/slog"

	"github.com/reusee/regvm/bytecode"
)

type Value = bytecode.Value

// Sink receives logged values synchronously, in program order.
type Sink func(Value)

type Options struct {
	// MaxCallDepth limits the frame stack, 0 means unlimited
	MaxCallDepth int
	// StackSize is the initial number of register slots
	StackSize int
	Logger    *slog.Logger
	// Trace logs every executed instruction at debug level
	Trace bool
}

const defaultStackSize = 256

type VM struct {
	Stack     []Value
	Top       int
	CallStack []Frame

	sink      Sink
	options   Options
	result    Value
	validated map[*bytecode.Method]bool
}

func NewVM(sink Sink, options *Options) *VM {
	v := &VM{
		sink:      sink,
		validated: make(map[*bytecode.Method]bool),
	}
	if options != nil {
		v.options = *options
	}
	size := v.options.StackSize
	if size <= 0 {
		size = defaultStackSize
	}
	v.Stack = make([]Value, size)
	v.CallStack = make([]Frame, 0, 64)
	return v
}

func (v *VM) reserve(n int) {
	for v.Top+n > len(v.Stack) {
		v.growStack()
	}
}

func (v *VM) growStack() {
	newCap := len(v.Stack) * 2
	if newCap == 0 {
		newCap = 8
	}
	newStack := make([]Value, newCap)
	copy(newStack, v.Stack)
	v.Stack = newStack
}

func (v *VM) debug(msg string, args ...any) {
	if v.options.Logger == nil {
		return
	}
	v.options.Logger.Debug(msg, args...)
}
