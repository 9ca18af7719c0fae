package bytecode

import "fmt"

type Register int

const NoRegister Register = -1

func (r Register) String() string {
	if r == NoRegister {
		return "_"
	}
	return fmt.Sprintf("r%d", int(r))
}

// Value is a run-time value: nil, bool, string, float64, a struct or a *Class.
type Value = any

// Instruction operand usage by op:
//
//	OpLoadConst      A = Const
//	OpReadField      A = B.Name
//	OpWriteField     A.Name = B
//	OpMove           A = B
//	OpMoveResult     A = pending call result
//	OpNewObject      A = new instance of Class
//	OpInvokeStatic   Method(Args...)
//	OpInvokeVirtual  Args[0].Name(Args[1:]...)
//	OpBranchEqual    if A == B goto Target
//	OpBranchLess     if A < B goto Target
//	OpBranchFalse    if !A goto Target
//	OpLog            emit A
//	OpReturn         return A, or nothing if A is NoRegister
type Instruction struct {
	Op     Op
	A      Register
	B      Register
	Args   []Register
	Name   string
	Const  Value
	Target BlockID
	Method *Method
	Class  *Class
}

func LoadConst(dst Register, value Value) Instruction {
	return Instruction{Op: OpLoadConst, A: dst, B: NoRegister, Const: value, Target: NoBlock}
}

func ReadField(dst, object Register, name string) Instruction {
	return Instruction{Op: OpReadField, A: dst, B: object, Name: name, Target: NoBlock}
}

func WriteField(object Register, name string, value Register) Instruction {
	return Instruction{Op: OpWriteField, A: object, B: value, Name: name, Target: NoBlock}
}

func Move(dst, src Register) Instruction {
	return Instruction{Op: OpMove, A: dst, B: src, Target: NoBlock}
}

func MoveResult(dst Register) Instruction {
	return Instruction{Op: OpMoveResult, A: dst, B: NoRegister, Target: NoBlock}
}

func NewObject(dst Register, class *Class) Instruction {
	return Instruction{Op: OpNewObject, A: dst, B: NoRegister, Class: class, Target: NoBlock}
}

func InvokeStatic(method *Method, args ...Register) Instruction {
	return Instruction{Op: OpInvokeStatic, A: NoRegister, B: NoRegister, Method: method, Args: args, Target: NoBlock}
}

func InvokeVirtual(name string, args ...Register) Instruction {
	return Instruction{Op: OpInvokeVirtual, A: NoRegister, B: NoRegister, Name: name, Args: args, Target: NoBlock}
}

func BranchEqual(a, b Register, target BlockID) Instruction {
	return Instruction{Op: OpBranchEqual, A: a, B: b, Target: target}
}

func BranchLess(a, b Register, target BlockID) Instruction {
	return Instruction{Op: OpBranchLess, A: a, B: b, Target: target}
}

func BranchFalse(a Register, target BlockID) Instruction {
	return Instruction{Op: OpBranchFalse, A: a, B: NoRegister, Target: target}
}

func Log(value Register) Instruction {
	return Instruction{Op: OpLog, A: value, B: NoRegister, Target: NoBlock}
}

func Return(value Register) Instruction {
	return Instruction{Op: OpReturn, A: value, B: NoRegister, Target: NoBlock}
}

// Registers lists every register operand.
func (i Instruction) Registers() []Register {
	var ret []Register
	if i.A != NoRegister {
		ret = append(ret, i.A)
	}
	if i.B != NoRegister {
		ret = append(ret, i.B)
	}
	ret = append(ret, i.Args...)
	return ret
}
