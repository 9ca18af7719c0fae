package regalloc

import (
	"errors"
	"fmt"

	"github.com/reusee/regvm/bytecode"
)

type Register = bytecode.Register

const NoRegister = bytecode.NoRegister

var (
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	ErrUndeclaredVariable   = errors.New("undeclared variable")
)

type Binding struct {
	Name string
	Reg  Register
}

// Allocator hands out registers for a single method and tracks the local
// bindings that own some of them.
type Allocator struct {
	inUse      []bool
	cursor     int
	highWater  int
	bindings   []Binding
	blockStart int
	written    Written
}

func New() *Allocator {
	return &Allocator{
		highWater: -1,
	}
}

// Allocate returns the smallest register not in use.
func (a *Allocator) Allocate() Register {
	r := a.cursor
	for r < len(a.inUse) && a.inUse[r] {
		r++
	}
	if r == len(a.inUse) {
		a.inUse = append(a.inUse, false)
	}
	a.inUse[r] = true
	a.cursor = r + 1
	if r > a.highWater {
		a.highWater = r
	}
	return Register(r)
}

func (a *Allocator) Free(r Register) {
	if r < 0 || int(r) >= len(a.inUse) || !a.inUse[r] {
		return
	}
	a.inUse[r] = false
	if int(r) < a.cursor {
		a.cursor = int(r)
	}
}

func (a *Allocator) InUse(r Register) bool {
	return r >= 0 && int(r) < len(a.inUse) && a.inUse[r]
}

func (a *Allocator) Live() []Register {
	var ret []Register
	for r, used := range a.inUse {
		if used {
			ret = append(ret, Register(r))
		}
	}
	return ret
}

// FrameSize is the number of registers the method needs.
func (a *Allocator) FrameSize() int {
	return a.highWater + 1
}

// Declare pushes an unbound local and returns its binding index.
func (a *Allocator) Declare(name string) (int, error) {
	for i := len(a.bindings) - 1; i >= a.blockStart; i-- {
		if a.bindings[i].Name == name {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateDeclaration, name)
		}
	}
	a.bindings = append(a.bindings, Binding{
		Name: name,
		Reg:  NoRegister,
	})
	index := len(a.bindings) - 1
	a.written.Unset(index)
	return index, nil
}

// Bind gives the local at index its register.
func (a *Allocator) Bind(index int, r Register) {
	a.bindings[index].Reg = r
}

// Resolve finds the innermost binding of name.
func (a *Allocator) Resolve(name string) (int, Binding, error) {
	for i := len(a.bindings) - 1; i >= 0; i-- {
		if a.bindings[i].Name == name {
			return i, a.bindings[i], nil
		}
	}
	return 0, Binding{}, fmt.Errorf("%w: %s", ErrUndeclaredVariable, name)
}

func (a *Allocator) Bindings() []Binding {
	return a.bindings
}

type Mark struct {
	size       int
	blockStart int
}

func (m Mark) Size() int {
	return m.size
}

// Mark opens a lexical block. Pass the result to Truncate when the block
// ends.
func (a *Allocator) Mark() Mark {
	m := Mark{
		size:       len(a.bindings),
		blockStart: a.blockStart,
	}
	a.blockStart = len(a.bindings)
	return m
}

// Truncate drops the bindings declared since m and frees their registers.
func (a *Allocator) Truncate(m Mark) {
	for i := len(a.bindings) - 1; i >= m.size; i-- {
		if r := a.bindings[i].Reg; r != NoRegister {
			a.Free(r)
		}
		a.written.Unset(i)
	}
	a.bindings = a.bindings[:m.size]
	a.blockStart = m.blockStart
}
