package bytecode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

func FormatValue(v Value) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", v)
}

func formatRegisters(regs []Register) string {
	return strings.Join(lo.Map(regs, func(r Register, _ int) string {
		return r.String()
	}), ", ")
}

func (i Instruction) String() string {
	switch i.Op {
	case OpLoadConst:
		return fmt.Sprintf("%v = const %s", i.A, FormatValue(i.Const))
	case OpReadField:
		return fmt.Sprintf("%v = %v.%s", i.A, i.B, i.Name)
	case OpWriteField:
		return fmt.Sprintf("%v.%s = %v", i.A, i.Name, i.B)
	case OpMove:
		return fmt.Sprintf("%v = %v", i.A, i.B)
	case OpMoveResult:
		return fmt.Sprintf("%v = result", i.A)
	case OpNewObject:
		name := "?"
		if i.Class != nil {
			name = i.Class.Name
		}
		return fmt.Sprintf("%v = new %s", i.A, name)
	case OpInvokeStatic:
		name := "?"
		if i.Method != nil {
			name = i.Method.QualifiedName()
		}
		return fmt.Sprintf("invoke-static %s(%s)", name, formatRegisters(i.Args))
	case OpInvokeVirtual:
		return fmt.Sprintf("invoke-virtual %s(%s)", i.Name, formatRegisters(i.Args))
	case OpBranchEqual:
		return fmt.Sprintf("if %v == %v goto %v", i.A, i.B, i.Target)
	case OpBranchLess:
		return fmt.Sprintf("if %v < %v goto %v", i.A, i.B, i.Target)
	case OpBranchFalse:
		return fmt.Sprintf("if !%v goto %v", i.A, i.Target)
	case OpLog:
		return fmt.Sprintf("log %v", i.A)
	case OpReturn:
		if i.A == NoRegister {
			return "return"
		}
		return fmt.Sprintf("return %v", i.A)
	}
	return i.Op.String()
}

// String lists the reachable blocks of m.
func (m *Method) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "method %s arity=%d frame=%d entry=%v\n", m.QualifiedName(), m.Arity, m.FrameSize, m.Entry)
	for _, id := range m.Reachable() {
		block := &m.Blocks[id]
		fmt.Fprintf(&sb, "%v:\n", id)
		for _, inst := range block.Code {
			fmt.Fprintf(&sb, "\t%v\n", inst)
		}
		if block.Next != NoBlock {
			fmt.Fprintf(&sb, "\t-> %v\n", block.Next)
		}
	}
	return sb.String()
}

func (p *Program) String() string {
	var sb strings.Builder
	for i, m := range p.Methods() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
