package bytecode

import (
	"errors"
	"fmt"
)

var (
	ErrRegisterOutOfFrame = errors.New("register out of frame")
	ErrBadBlock           = errors.New("bad block reference")
	ErrBadInstruction     = errors.New("bad instruction")
)

// Validate checks that every register operand lies inside the frame and that
// every block reference resolves.
func (m *Method) Validate() error {
	if !m.HasBlock(m.Entry) {
		return fmt.Errorf("%s: entry %v: %w", m.QualifiedName(), m.Entry, ErrBadBlock)
	}
	for id := range m.Blocks {
		block := &m.Blocks[id]
		if block.Next != NoBlock && !m.HasBlock(block.Next) {
			return fmt.Errorf("%s: %v next %v: %w", m.QualifiedName(), BlockID(id), block.Next, ErrBadBlock)
		}
		for i, inst := range block.Code {
			where := func(err error) error {
				return fmt.Errorf("%s: %v[%d] %v: %w", m.QualifiedName(), BlockID(id), i, inst.Op, err)
			}
			for _, reg := range inst.Registers() {
				if reg < 0 || int(reg) >= m.FrameSize {
					return where(fmt.Errorf("%v >= %d: %w", reg, m.FrameSize, ErrRegisterOutOfFrame))
				}
			}
			if inst.Op.IsBranch() && !m.HasBlock(inst.Target) {
				return where(ErrBadBlock)
			}
			switch inst.Op {
			case OpInvokeStatic:
				if inst.Method == nil {
					return where(ErrBadInstruction)
				}
			case OpInvokeVirtual:
				if inst.Name == "" || len(inst.Args) == 0 {
					return where(ErrBadInstruction)
				}
			case OpNewObject:
				if inst.Class == nil {
					return where(ErrBadInstruction)
				}
			case OpInvalid:
				return where(ErrBadInstruction)
			}
		}
	}
	return nil
}
