package compiler

import (
	"github.com/reusee/regvm/bytecode"
	"github.com/reusee/regvm/syntax"
)

// compileStmts stops at the first statement that ends its block; whatever
// follows is unreachable and never emitted.
func (c *methodCompiler) compileStmts(ids []syntax.NodeID) error {
	for _, id := range ids {
		if c.dead {
			break
		}
		if err := c.compileStmt(id); err != nil {
			return err
		}
	}
	return nil
}

func (c *methodCompiler) compileStmt(id syntax.NodeID) error {
	children := c.tree.Children(id)

	switch c.tree.Category(id) {

	case syntax.Block:
		mark := c.alloc.Mark()
		defer c.alloc.Truncate(mark)
		return c.compileStmts(children)

	case syntax.ClassDecl:
		return c.compileClass(id)

	case syntax.VarDecl:
		return c.compileVarDecl(id)

	case syntax.Assign:
		if len(children) != 2 {
			return c.errorf(id, ErrMalformedExpression, "bad assignment")
		}
		switch c.tree.Category(children[0]) {
		case syntax.Identifier:
			return c.assignLocal(children[0], children[1])
		case syntax.Field:
			return c.assignField(children[0], children[1])
		}
		return c.errorf(children[0], ErrInvalidAssignment, "%v", c.tree.Category(children[0]))

	case syntax.If:
		return c.compileIf(id)

	case syntax.While:
		return c.compileWhile(id, "")

	case syntax.Labeled:
		if len(children) != 1 || c.tree.Category(children[0]) != syntax.While {
			return c.errorf(id, ErrMalformedExpression, "label %s must name a loop", c.tree.Lexeme(id))
		}
		return c.compileWhile(children[0], c.tree.Lexeme(id))

	case syntax.Break, syntax.Continue:
		loop, err := c.findLoop(id)
		if err != nil {
			return err
		}
		if c.tree.Category(id) == syntax.Break {
			c.jump(loop.exit)
		} else {
			c.jump(loop.cond)
		}
		c.dead = true
		return nil

	case syntax.Return:
		if len(children) == 0 {
			c.emitReturn(bytecode.NoRegister)
			return nil
		}
		value, err := c.compileExpr(children[0])
		if err != nil {
			return err
		}
		c.emitReturn(value.reg)
		c.release(value)
		return nil

	case syntax.Log:
		if len(children) != 1 {
			return c.errorf(id, ErrMalformedExpression, "bad log statement")
		}
		value, err := c.compileExpr(children[0])
		if err != nil {
			return err
		}
		c.emit(bytecode.Log(value.reg))
		c.release(value)
		return nil

	case syntax.ExprStmt:
		if len(children) != 1 {
			return c.errorf(id, ErrMalformedExpression, "bad expression statement")
		}
		value, err := c.compileExpr(children[0])
		if err != nil {
			return err
		}
		c.release(value)
		return nil

	}

	return c.errorf(id, ErrMalformedExpression, "unexpected %v", c.tree.Category(id))
}

func (c *methodCompiler) compileVarDecl(id syntax.NodeID) error {
	name := c.tree.Lexeme(id)
	children := c.tree.Children(id)

	if len(children) == 0 {
		if _, err := c.alloc.Declare(name); err != nil {
			return syntax.WithPos(err, c.tree.Pos(id))
		}
		return nil
	}

	// the initializer is compiled before the name is in scope
	value, err := c.compileExpr(children[0])
	if err != nil {
		return err
	}
	index, err := c.alloc.Declare(name)
	if err != nil {
		return syntax.WithPos(err, c.tree.Pos(id))
	}
	c.bindValue(index, value)
	return nil
}

// bindValue gives an unbound local its first register. A temporary is
// adopted as is, a register owned by another local is copied.
func (c *methodCompiler) bindValue(index int, value operand) {
	reg := value.reg
	if !value.temp {
		reg = c.alloc.Allocate()
		c.emit(bytecode.Move(reg, value.reg))
	}
	c.alloc.Bind(index, reg)
	c.alloc.MarkWritten(index)
}

func (c *methodCompiler) assignLocal(target, valueID syntax.NodeID) error {
	value, err := c.compileExpr(valueID)
	if err != nil {
		return err
	}
	index, binding, err := c.alloc.Resolve(c.tree.Lexeme(target))
	if err != nil {
		return syntax.WithPos(err, c.tree.Pos(target))
	}
	if binding.Reg == bytecode.NoRegister {
		c.bindValue(index, value)
		return nil
	}
	if binding.Reg != value.reg {
		c.emit(bytecode.Move(binding.Reg, value.reg))
	}
	c.release(value)
	c.alloc.MarkWritten(index)
	return nil
}

func (c *methodCompiler) assignField(target, valueID syntax.NodeID) error {
	value, err := c.compileExpr(valueID)
	if err != nil {
		return err
	}
	receiver, err := c.compileExpr(c.tree.Children(target)[0])
	if err != nil {
		return err
	}
	c.emit(bytecode.WriteField(receiver.reg, c.tree.Lexeme(target), value.reg))
	c.release(receiver, value)
	return nil
}

func (c *methodCompiler) compileIf(id syntax.NodeID) error {
	children := c.tree.Children(id)
	if len(children) < 2 || len(children) > 3 {
		return c.errorf(id, ErrMalformedExpression, "bad if statement")
	}
	hasElse := len(children) == 3

	join := c.label()
	falseTarget := join
	var elseBlock bytecode.BlockID
	if hasElse {
		elseBlock = c.label()
		falseTarget = elseBlock
	}

	if err := c.branch(children[0], falseTarget, false); err != nil {
		return err
	}
	entry := c.alloc.Written().Clone()

	if err := c.compileStmt(children[1]); err != nil {
		return err
	}
	thenDead := c.dead
	thenWritten := c.alloc.Written().Clone()
	if !thenDead {
		c.builder.SetNext(c.builder.Current(), join)
	}

	elseDead := false
	elseWritten := entry
	if hasElse {
		c.dead = false
		c.builder.Goto(elseBlock)
		c.alloc.SetWritten(entry.Clone())
		if err := c.compileStmt(children[2]); err != nil {
			return err
		}
		elseDead = c.dead
		elseWritten = c.alloc.Written().Clone()
		if !elseDead {
			c.builder.SetNext(c.builder.Current(), join)
		}
	}

	c.builder.Goto(join)
	c.dead = thenDead && elseDead
	switch {
	case thenDead && elseDead:
		c.alloc.SetWritten(entry)
	case thenDead:
		c.alloc.SetWritten(elseWritten)
	case elseDead:
		c.alloc.SetWritten(thenWritten)
	default:
		c.alloc.SetWritten(thenWritten.Intersect(elseWritten))
	}
	return nil
}

func (c *methodCompiler) compileWhile(id syntax.NodeID, label string) error {
	children := c.tree.Children(id)
	if len(children) != 2 {
		return c.errorf(id, ErrMalformedExpression, "bad while statement")
	}

	loop := &loopContext{
		label: label,
		cond:  c.label(),
		exit:  c.label(),
	}
	c.jumpTo(loop.cond, loop.cond)
	if err := c.branch(children[0], loop.exit, false); err != nil {
		return err
	}

	// locals first written in the body are not written after the loop,
	// which may run zero times
	entry := c.alloc.Written().Clone()

	c.loops = append(c.loops, loop)
	if err := c.compileStmt(children[1]); err != nil {
		return err
	}
	c.loops = c.loops[:len(c.loops)-1]
	if !c.dead {
		c.builder.SetNext(c.builder.Current(), loop.cond)
	}

	c.dead = false
	c.builder.Goto(loop.exit)
	c.alloc.SetWritten(entry)
	return nil
}

func (c *methodCompiler) findLoop(id syntax.NodeID) (*loopContext, error) {
	label := c.tree.Lexeme(id)
	for i := len(c.loops) - 1; i >= 0; i-- {
		if label == "" || c.loops[i].label == label {
			return c.loops[i], nil
		}
	}
	if label == "" {
		return nil, c.errorf(id, ErrUnresolvedLabel, "%v outside loop", c.tree.Category(id))
	}
	return nil, c.errorf(id, ErrUnresolvedLabel, "%s", label)
}
