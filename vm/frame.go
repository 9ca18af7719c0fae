package vm

import "github.com/reusee/regvm/bytecode"

type Frame struct {
	Method *bytecode.Method
	Block  bytecode.BlockID
	IP     int
	// Base is the stack index of register 0
	Base int
}

func (f *Frame) Registers(stack []Value) []Value {
	return stack[f.Base : f.Base+f.Method.FrameSize]
}
