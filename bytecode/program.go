package bytecode

import (
	"slices"

	"github.com/samber/lo"
)

type Program struct {
	Main    *Method
	Classes map[string]*Class
}

func NewProgram() *Program {
	main := NewMethod("main", nil)
	return &Program{
		Main:    main,
		Classes: make(map[string]*Class),
	}
}

// Class returns the class named name, creating it on first reference.
func (p *Program) Class(name string) *Class {
	if c, ok := p.Classes[name]; ok {
		return c
	}
	c := NewClass(name)
	p.Classes[name] = c
	return c
}

func (p *Program) ClassNames() []string {
	names := lo.Keys(p.Classes)
	slices.Sort(names)
	return names
}

// Methods returns the main method followed by every class method, classes
// in name order.
func (p *Program) Methods() []*Method {
	ret := []*Method{p.Main}
	for _, name := range p.ClassNames() {
		ret = append(ret, p.Classes[name].Methods()...)
	}
	return ret
}
