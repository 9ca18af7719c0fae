package debugs

import (
	"fmt"

	"github.com/reusee/regvm/bytecode"
	"github.com/reusee/regvm/vm"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// classKey holds the class name in dicts converted from structs.
const classKey = "__class__"

func toStarlarkValue(v any) starlark.Value {
	c := &converter{
		structs: make(map[*vm.Struct]*starlark.Dict),
	}
	return c.convert(v)
}

type converter struct {
	// converted structs, so cycles map to cyclic dicts
	structs map[*vm.Struct]*starlark.Dict
}

func (c *converter) convert(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case *vm.Struct:
		if d, ok := c.structs[v]; ok {
			return d
		}
		d := starlark.NewDict(len(v.Fields) + 1)
		c.structs[v] = d
		className := ""
		if v.Class != nil {
			className = v.Class.Name
		}
		d.SetKey(starlark.String(classKey), starlark.String(className))
		for name, field := range v.Fields {
			d.SetKey(starlark.String(name), c.convert(field))
		}
		return d

	case *bytecode.Class:
		return starlark.String(v.Name)

	case bool:
		return starlark.Bool(v)
	case string:
		return starlark.String(v)
	case float64:
		return starlark.Float(v)

	case func() string:
		return starlarkutil.MakeFunc("", v)

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}
