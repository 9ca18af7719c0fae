package compiler

import (
	"strconv"

	"github.com/reusee/regvm/bytecode"
	"github.com/reusee/regvm/syntax"
)

func (c *methodCompiler) compileExpr(id syntax.NodeID) (operand, error) {
	children := c.tree.Children(id)

	switch c.tree.Category(id) {

	case syntax.StringLit:
		return c.constant(c.tree.Lexeme(id)), nil

	case syntax.BoolLit:
		return c.constant(c.tree.Lexeme(id) == "true"), nil

	case syntax.NullLit:
		return c.constant(nil), nil

	case syntax.NumberLit:
		f, err := strconv.ParseFloat(c.tree.Lexeme(id), 64)
		if err != nil {
			return operand{}, c.errorf(id, ErrMalformedExpression, "number %q", c.tree.Lexeme(id))
		}
		return c.constant(f), nil

	case syntax.Identifier:
		return c.readLocal(id, c.tree.Lexeme(id))

	case syntax.This:
		index, binding, err := c.alloc.Resolve(thisName)
		if err != nil || binding.Reg == bytecode.NoRegister || !c.alloc.IsWritten(index) {
			return operand{}, c.errorf(id, ErrThisOutsideMethod, "%s", c.method.QualifiedName())
		}
		return operand{reg: binding.Reg}, nil

	case syntax.Field:
		if len(children) != 1 {
			return operand{}, c.errorf(id, ErrMalformedExpression, "bad field access")
		}
		receiver, err := c.compileExpr(children[0])
		if err != nil {
			return operand{}, err
		}
		// allocated before the receiver is released so the two never share
		dst := c.temp()
		c.emit(bytecode.ReadField(dst.reg, receiver.reg, c.tree.Lexeme(id)))
		c.release(receiver)
		return dst, nil

	case syntax.Call:
		return c.compileCall(id)

	case syntax.New:
		return c.compileNew(id)

	case syntax.Binary, syntax.Unary:
		return c.materialize(id)

	}

	return operand{}, c.errorf(id, ErrMalformedExpression, "unexpected %v", c.tree.Category(id))
}

func (c *methodCompiler) constant(value bytecode.Value) operand {
	dst := c.temp()
	c.emit(bytecode.LoadConst(dst.reg, value))
	return dst
}

func (c *methodCompiler) readLocal(id syntax.NodeID, name string) (operand, error) {
	index, binding, err := c.alloc.Resolve(name)
	if err != nil {
		return operand{}, syntax.WithPos(err, c.tree.Pos(id))
	}
	if binding.Reg == bytecode.NoRegister || !c.alloc.IsWritten(index) {
		return operand{}, c.errorf(id, ErrUninitializedRead, "%s", name)
	}
	return operand{reg: binding.Reg}, nil
}

func (c *methodCompiler) compileArgs(ids []syntax.NodeID) ([]operand, error) {
	args := make([]operand, 0, len(ids))
	for _, id := range ids {
		arg, err := c.compileExpr(id)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func registers(ops []operand) []bytecode.Register {
	ret := make([]bytecode.Register, 0, len(ops))
	for _, op := range ops {
		ret = append(ret, op.reg)
	}
	return ret
}

func (c *methodCompiler) compileCall(id syntax.NodeID) (operand, error) {
	children := c.tree.Children(id)
	if len(children) == 0 {
		return operand{}, c.errorf(id, ErrMalformedExpression, "call without callee")
	}
	callee := children[0]
	if c.tree.Category(callee) != syntax.Field || len(c.tree.Children(callee)) != 1 {
		return operand{}, c.errorf(callee, ErrUncallableOperand, "%v", c.tree.Category(callee))
	}

	receiver, err := c.compileExpr(c.tree.Children(callee)[0])
	if err != nil {
		return operand{}, err
	}
	args, err := c.compileArgs(children[1:])
	if err != nil {
		return operand{}, err
	}
	args = append([]operand{receiver}, args...)

	c.emit(bytecode.InvokeVirtual(c.tree.Lexeme(callee), registers(args)...))
	c.release(args...)
	dst := c.temp()
	c.emit(bytecode.MoveResult(dst.reg))
	return dst, nil
}

func (c *methodCompiler) compileNew(id syntax.NodeID) (operand, error) {
	// the class may be declared later in the source
	class := c.program.Class(c.tree.Lexeme(id))
	instance := c.temp()
	c.emit(bytecode.NewObject(instance.reg, class))

	args, err := c.compileArgs(c.tree.Children(id))
	if err != nil {
		return operand{}, err
	}
	c.emit(bytecode.InvokeStatic(
		class.Method("new"),
		append([]bytecode.Register{instance.reg}, registers(args)...)...,
	))
	c.release(args...)
	return instance, nil
}

// materialize turns a condition into a boolean value.
func (c *methodCompiler) materialize(id syntax.NodeID) (operand, error) {
	dst := c.temp()
	falseBlock := c.label()
	join := c.label()
	if err := c.branch(id, falseBlock, false); err != nil {
		return operand{}, err
	}
	c.emit(bytecode.LoadConst(dst.reg, true))
	c.jumpTo(join, falseBlock)
	c.emit(bytecode.LoadConst(dst.reg, false))
	c.jumpTo(join, join)
	return dst, nil
}
