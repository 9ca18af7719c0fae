package bytecode

// Class maps method names to methods. Entries are created on first
// reference and filled in when the method body is compiled.
type Class struct {
	Name    string
	methods map[string]*Method
	order   []string
}

func NewClass(name string) *Class {
	return &Class{
		Name:    name,
		methods: make(map[string]*Method),
	}
}

// Method returns the entry for name, creating an undefined placeholder if
// it does not exist yet.
func (c *Class) Method(name string) *Method {
	if m, ok := c.methods[name]; ok {
		return m
	}
	m := NewMethod(name, c)
	c.methods[name] = m
	c.order = append(c.order, name)
	return m
}

// Lookup returns a compiled method.
func (c *Class) Lookup(name string) (*Method, bool) {
	m, ok := c.methods[name]
	if !ok || !m.Defined {
		return nil, false
	}
	return m, true
}

// Methods returns the entries in creation order.
func (c *Class) Methods() []*Method {
	ret := make([]*Method, 0, len(c.order))
	for _, name := range c.order {
		ret = append(ret, c.methods[name])
	}
	return ret
}

func (c *Class) String() string {
	return "class " + c.Name
}
