package debugs

import (
	"fmt"
	"strings"

	"github.com/reusee/regvm/vm"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Filter reports whether a logged value should reach the sink.
type Filter func(value vm.Value) (bool, error)

// NewFilter compiles a starlark expression over `value` into a Filter. An
// empty expression keeps every value.
type NewFilter func(expr string) (Filter, error)

func (Module) NewFilter() NewFilter {
	return func(expr string) (Filter, error) {
		if strings.TrimSpace(expr) == "" {
			return func(vm.Value) (bool, error) {
				return true, nil
			}, nil
		}

		src := "def filter(value):\n    return " + expr + "\n"
		_, program, err := starlark.SourceProgramOptions(
			&syntax.FileOptions{},
			"log_filter",
			src,
			func(string) bool {
				return false
			},
		)
		if err != nil {
			return nil, fmt.Errorf("log filter: %w", err)
		}

		thread := &starlark.Thread{
			Name: "log_filter",
		}
		globals, err := program.Init(thread, nil)
		if err != nil {
			return nil, fmt.Errorf("log filter: %w", err)
		}
		fn, ok := globals["filter"].(starlark.Callable)
		if !ok {
			return nil, fmt.Errorf("log filter: not callable")
		}

		return func(value vm.Value) (bool, error) {
			ret, err := starlark.Call(thread, fn, starlark.Tuple{toStarlarkValue(value)}, nil)
			if err != nil {
				return false, fmt.Errorf("log filter: %w", err)
			}
			return bool(ret.Truth()), nil
		}, nil
	}
}
