package vm

import (
	"errors"
	"fmt"

	"github.com/reusee/regvm/bytecode"
)

var (
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrNotStruct       = errors.New("not a struct")
	ErrMethodNotFound  = errors.New("method not found")
	ErrUndefinedMethod = errors.New("undefined method")
	ErrArity           = errors.New("wrong number of arguments")
	ErrCallDepth       = errors.New("call depth exceeded")
)

type RuntimeError struct {
	Method string
	Code   *bytecode.Method
	Block  bytecode.BlockID
	Op     bytecode.Op
	// Registers is a copy of the failing frame's registers
	Registers []Value
	Err       error
}

func (r *RuntimeError) Error() string {
	return fmt.Sprintf("%s %v: %v: %v", r.Method, r.Block, r.Op, r.Err)
}

func (r *RuntimeError) Unwrap() error {
	return r.Err
}
