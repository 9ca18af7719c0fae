package engines

import (
	"context"
	"errors"

	"github.com/reusee/regvm/bytecode"
	"github.com/reusee/regvm/debugs"
	"github.com/reusee/regvm/logs"
	"github.com/reusee/regvm/regconfigs"
	"github.com/reusee/regvm/vm"
)

// Execute compiles src and runs its top-level code, sending logged values
// that pass the configured filter to sink.
type Execute func(ctx context.Context, name, src string, sink vm.Sink) (bytecode.Value, error)

func (Module) Execute(
	compile Compile,
	newVM NewVM,
	newSpan logs.NewSpan,
	newFilter debugs.NewFilter,
	filterExpr regconfigs.LogFilter,
	tap debugs.Tap,
	tapOnError regconfigs.TapOnError,
	logger logs.Logger,
) Execute {
	return func(ctx context.Context, name, src string, sink vm.Sink) (ret bytecode.Value, err error) {
		ctx, _ = newSpan(ctx, "")
		defer func() {
			if err != nil {
				err = logs.WrapSpan(ctx, err)
			}
		}()

		filter, err := newFilter(string(filterExpr))
		if err != nil {
			return nil, wrap(err)
		}

		program, err := compile(ctx, name, src)
		if err != nil {
			return nil, err
		}

		var filterErr error
		machine := newVM(func(value vm.Value) {
			if filterErr != nil || sink == nil {
				return
			}
			ok, err := filter(value)
			if err != nil {
				filterErr = err
				return
			}
			if ok {
				sink(value)
			}
		})

		ret, err = machine.Run(program.Main)
		if err != nil {
			logger.ErrorContext(ctx, "run failed",
				"source", name,
				"error", err,
			)
			var runtimeErr *vm.RuntimeError
			if bool(tapOnError) && errors.As(err, &runtimeErr) {
				tap(ctx, name, debugs.FrameGlobals(runtimeErr))
			}
			return nil, wrap(err)
		}
		if filterErr != nil {
			return nil, wrap(filterErr)
		}

		logger.DebugContext(ctx, "run done",
			"source", name,
			"result", bytecode.FormatValue(ret),
		)
		return ret, nil
	}
}
