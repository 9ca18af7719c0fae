package bytecode

import "fmt"

type BlockID int

const NoBlock BlockID = -1

func (b BlockID) String() string {
	if b == NoBlock {
		return "-"
	}
	return fmt.Sprintf("b%d", int(b))
}

// Block is a straight-line instruction list. Next is followed when control
// runs off the end of Code.
type Block struct {
	Code []Instruction
	Next BlockID
}

type Method struct {
	Name      string
	Class     *Class
	Arity     int
	FrameSize int
	Entry     BlockID
	Blocks    []Block
	Defined   bool
}

func NewMethod(name string, class *Class) *Method {
	return &Method{
		Name:  name,
		Class: class,
		Entry: NoBlock,
	}
}

// Params is the number of registers filled by the caller: the receiver, if
// any, followed by the declared parameters.
func (m *Method) Params() int {
	if m.Class != nil {
		return m.Arity + 1
	}
	return m.Arity
}

func (m *Method) QualifiedName() string {
	if m.Class != nil {
		return m.Class.Name + "." + m.Name
	}
	return m.Name
}

func (m *Method) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(m.Blocks) {
		panic(fmt.Errorf("%s: block id out of range: %d", m.QualifiedName(), id))
	}
	return &m.Blocks[id]
}

func (m *Method) HasBlock(id BlockID) bool {
	return id >= 0 && int(id) < len(m.Blocks)
}

// Reachable returns the ids of blocks reachable from the entry, in
// depth-first discovery order.
func (m *Method) Reachable() []BlockID {
	if !m.HasBlock(m.Entry) {
		return nil
	}
	seen := make([]bool, len(m.Blocks))
	var ret []BlockID
	stack := []BlockID{m.Entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !m.HasBlock(id) || seen[id] {
			continue
		}
		seen[id] = true
		ret = append(ret, id)
		block := &m.Blocks[id]
		if block.Next != NoBlock {
			stack = append(stack, block.Next)
		}
		for i := len(block.Code) - 1; i >= 0; i-- {
			if block.Code[i].Op.IsBranch() {
				stack = append(stack, block.Code[i].Target)
			}
		}
	}
	return ret
}
