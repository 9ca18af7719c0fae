package compiler

import (
	"errors"

	"github.com/reusee/regvm/regalloc"
)

var (
	ErrDuplicateDeclaration       = regalloc.ErrDuplicateDeclaration
	ErrUndeclaredVariable         = regalloc.ErrUndeclaredVariable
	ErrUninitializedRead          = errors.New("read of uninitialized variable")
	ErrThisOutsideMethod          = errors.New("this outside method")
	ErrUnresolvedLabel            = errors.New("unresolved label")
	ErrMalformedBooleanExpression = errors.New("malformed boolean expression")
	ErrUncallableOperand          = errors.New("uncallable operand")
	ErrMalformedExpression        = errors.New("malformed expression")
	ErrInvalidAssignment          = errors.New("invalid assignment target")
)
