package vm

import (
	"fmt"

	"github.com/reusee/regvm/bytecode"
)

// Run executes method to completion and returns the value of its final
// return. args fill the method's receiver and parameter registers.
func (v *VM) Run(method *bytecode.Method, args ...Value) (Value, error) {
	v.CallStack = v.CallStack[:0]
	clear(v.Stack[:v.Top])
	v.Top = 0
	v.result = nil

	if err := v.call(method, args); err != nil {
		return nil, &RuntimeError{
			Method: method.QualifiedName(),
			Code:   method,
			Block:  method.Entry,
			Op:     bytecode.OpInvalid,
			Err:    err,
		}
	}

	for {
		frame := &v.CallStack[len(v.CallStack)-1]
		block := frame.Method.Block(frame.Block)

		if frame.IP >= len(block.Code) {
			if block.Next != bytecode.NoBlock {
				frame.Block = block.Next
				frame.IP = 0
				continue
			}
			// falling off a terminal block returns null
			if v.ret(nil) {
				return nil, nil
			}
			continue
		}

		inst := block.Code[frame.IP]
		frame.IP++
		regs := frame.Registers(v.Stack)
		if v.options.Trace {
			v.debug("exec",
				"method", frame.Method.QualifiedName(),
				"block", frame.Block,
				"inst", inst.String(),
			)
		}

		switch inst.Op {

		case bytecode.OpLoadConst:
			regs[inst.A] = inst.Const

		case bytecode.OpReadField:
			obj, ok := regs[inst.B].(*Struct)
			if !ok {
				return nil, fault(frame, inst, regs, fmt.Errorf("%w: read %s of %s", ErrNotStruct, inst.Name, typeName(regs[inst.B])))
			}
			regs[inst.A] = obj.Get(inst.Name)

		case bytecode.OpWriteField:
			obj, ok := regs[inst.A].(*Struct)
			if !ok {
				return nil, fault(frame, inst, regs, fmt.Errorf("%w: write %s of %s", ErrNotStruct, inst.Name, typeName(regs[inst.A])))
			}
			obj.Set(inst.Name, regs[inst.B])

		case bytecode.OpMove:
			regs[inst.A] = regs[inst.B]

		case bytecode.OpMoveResult:
			regs[inst.A] = v.result
			v.result = nil

		case bytecode.OpNewObject:
			regs[inst.A] = NewStruct(inst.Class)

		case bytecode.OpInvokeStatic:
			if err := v.call(inst.Method, gather(regs, inst.Args)); err != nil {
				return nil, fault(frame, inst, regs, err)
			}

		case bytecode.OpInvokeVirtual:
			receiver, ok := regs[inst.Args[0]].(*Struct)
			if !ok {
				return nil, fault(frame, inst, regs, fmt.Errorf("%w: call %s on %s", ErrNotStruct, inst.Name, typeName(regs[inst.Args[0]])))
			}
			if receiver.Class == nil {
				return nil, fault(frame, inst, regs, fmt.Errorf("%w: %s", ErrMethodNotFound, inst.Name))
			}
			method, ok := receiver.Class.Lookup(inst.Name)
			if !ok {
				return nil, fault(frame, inst, regs, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, receiver.Class.Name, inst.Name))
			}
			if err := v.call(method, gather(regs, inst.Args)); err != nil {
				return nil, fault(frame, inst, regs, err)
			}

		case bytecode.OpBranchEqual:
			if Equal(regs[inst.A], regs[inst.B]) {
				v.jump(frame, inst.Target)
			}

		case bytecode.OpBranchLess:
			ok, err := less(regs[inst.A], regs[inst.B])
			if err != nil {
				return nil, fault(frame, inst, regs, err)
			}
			if ok {
				v.jump(frame, inst.Target)
			}

		case bytecode.OpBranchFalse:
			if !Truthy(regs[inst.A]) {
				v.jump(frame, inst.Target)
			}

		case bytecode.OpLog:
			if v.sink != nil {
				v.sink(regs[inst.A])
			}

		case bytecode.OpReturn:
			var value Value
			if inst.A != bytecode.NoRegister {
				value = regs[inst.A]
			}
			if v.ret(value) {
				return value, nil
			}

		default:
			return nil, fault(frame, inst, regs, fmt.Errorf("%w: %v", bytecode.ErrBadInstruction, inst.Op))

		}
	}
}

func fault(frame *Frame, inst bytecode.Instruction, regs []Value, err error) error {
	return &RuntimeError{
		Method:    frame.Method.QualifiedName(),
		Code:      frame.Method,
		Block:     frame.Block,
		Op:        inst.Op,
		Registers: append([]Value(nil), regs...),
		Err:       err,
	}
}

func gather(regs []Value, args []bytecode.Register) []Value {
	ret := make([]Value, len(args))
	for i, r := range args {
		ret[i] = regs[r]
	}
	return ret
}

func (v *VM) jump(frame *Frame, target bytecode.BlockID) {
	frame.Block = target
	frame.IP = 0
}

// call pushes a frame for method directly above the caller's window.
func (v *VM) call(method *bytecode.Method, args []Value) error {
	if method == nil || !method.Defined {
		name := "<nil>"
		if method != nil {
			name = method.QualifiedName()
		}
		return fmt.Errorf("%w: %s", ErrUndefinedMethod, name)
	}
	if len(args) != method.Params() {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrArity, method.QualifiedName(), method.Params(), len(args))
	}
	if limit := v.options.MaxCallDepth; limit > 0 && len(v.CallStack) >= limit {
		return fmt.Errorf("%w: %d", ErrCallDepth, limit)
	}
	if !v.validated[method] {
		if err := method.Validate(); err != nil {
			return err
		}
		v.validated[method] = true
	}

	base := v.Top
	v.reserve(method.FrameSize)
	window := v.Stack[base : base+method.FrameSize]
	clear(window)
	copy(window, args)
	v.Top = base + method.FrameSize

	v.CallStack = append(v.CallStack, Frame{
		Method: method,
		Block:  method.Entry,
		Base:   base,
	})
	v.debug("push frame",
		"method", method.QualifiedName(),
		"depth", len(v.CallStack),
		"base", base,
	)
	return nil
}

// ret pops the current frame and reports whether the frame stack is empty.
func (v *VM) ret(value Value) bool {
	frame := v.CallStack[len(v.CallStack)-1]
	v.CallStack = v.CallStack[:len(v.CallStack)-1]
	clear(v.Stack[frame.Base:v.Top])
	v.Top = frame.Base
	v.debug("pop frame",
		"method", frame.Method.QualifiedName(),
		"depth", len(v.CallStack),
	)
	if len(v.CallStack) == 0 {
		return true
	}
	v.result = value
	return false
}
