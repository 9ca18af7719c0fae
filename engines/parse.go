package engines

import (
	"github.com/reusee/regvm/syntax"
)

type Parse func(name, src string) (*syntax.AST, error)

func (Module) Parse() Parse {
	return func(name, src string) (*syntax.AST, error) {
		ast, err := syntax.Parse(name, src)
		if err != nil {
			return nil, wrap(err)
		}
		return ast, nil
	}
}
