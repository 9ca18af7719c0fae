package vm

import (
	"slices"
	"strings"

	"github.com/reusee/regvm/bytecode"
	"github.com/samber/lo"
)

type Struct struct {
	Class  *bytecode.Class
	Fields map[string]Value
}

func NewStruct(class *bytecode.Class) *Struct {
	return &Struct{
		Class:  class,
		Fields: make(map[string]Value),
	}
}

func (s *Struct) Get(name string) Value {
	return s.Fields[name]
}

func (s *Struct) Set(name string, value Value) {
	s.Fields[name] = value
}

// String renders one level of fields; nested structs print as their class.
func (s *Struct) String() string {
	var sb strings.Builder
	sb.WriteString(s.className())
	sb.WriteString("{")
	keys := lo.Keys(s.Fields)
	slices.Sort(keys)
	for i, key := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		if nested, ok := s.Fields[key].(*Struct); ok {
			sb.WriteString("<" + nested.className() + ">")
		} else {
			sb.WriteString(bytecode.FormatValue(s.Fields[key]))
		}
	}
	sb.WriteString("}")
	return sb.String()
}

func (s *Struct) className() string {
	if s.Class == nil {
		return "struct"
	}
	return s.Class.Name
}
