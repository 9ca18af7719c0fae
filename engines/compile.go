package engines

import (
	"context"

	"github.com/reusee/regvm/bytecode"
	"github.com/reusee/regvm/compiler"
	"github.com/reusee/regvm/logs"
)

type Compile func(ctx context.Context, name, src string) (*bytecode.Program, error)

func (Module) Compile(
	parse Parse,
	logger logs.Logger,
) Compile {
	return func(ctx context.Context, name, src string) (*bytecode.Program, error) {
		ast, err := parse(name, src)
		if err != nil {
			return nil, err
		}

		// the compiler logs without a context
		methodLogger := logger
		if v := ctx.Value(logs.SpanKey); v != nil {
			methodLogger = logger.With("logs.span", v.(logs.Span))
		}
		program, err := compiler.Compile(ast, &compiler.Options{
			Logger: methodLogger,
		})
		if err != nil {
			return nil, wrap(err)
		}

		logger.DebugContext(ctx, "program compiled",
			"source", name,
			"classes", len(program.Classes),
		)
		return program, nil
	}
}
