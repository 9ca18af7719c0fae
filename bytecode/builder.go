package bytecode

// Builder appends blocks and instructions to a method under construction.
type Builder struct {
	method  *Method
	current BlockID
}

// NewBuilder resets m's blocks and opens its entry block.
func NewBuilder(m *Method) *Builder {
	m.Blocks = m.Blocks[:0]
	b := &Builder{
		method: m,
	}
	m.Entry = b.Label(NoBlock)
	b.current = m.Entry
	return b
}

// Label opens a new empty block falling through to next.
func (b *Builder) Label(next BlockID) BlockID {
	b.method.Blocks = append(b.method.Blocks, Block{
		Next: next,
	})
	return BlockID(len(b.method.Blocks) - 1)
}

func (b *Builder) Emit(inst Instruction) {
	block := b.method.Block(b.current)
	block.Code = append(block.Code, inst)
}

func (b *Builder) Goto(id BlockID) {
	// bounds check
	b.method.Block(id)
	b.current = id
}

func (b *Builder) Current() BlockID {
	return b.current
}

func (b *Builder) SetNext(id BlockID, next BlockID) {
	b.method.Block(id).Next = next
}
