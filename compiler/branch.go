package compiler

import (
	"github.com/reusee/regvm/bytecode"
	"github.com/reusee/regvm/syntax"
)

// branch emits code that transfers control to target when the expression at
// id evaluates to when, and falls through into a new block otherwise.
// && and || never evaluate their right operand when the left one decides
// the result.
func (c *methodCompiler) branch(id syntax.NodeID, target bytecode.BlockID, when bool) error {
	children := c.tree.Children(id)

	switch c.tree.Category(id) {

	case syntax.BoolLit:
		if (c.tree.Lexeme(id) == "true") == when {
			c.jump(target)
		}
		return nil

	case syntax.Unary:
		if c.tree.Lexeme(id) != "!" || len(children) != 1 {
			return c.errorf(id, ErrMalformedBooleanExpression, "operator %q", c.tree.Lexeme(id))
		}
		return c.branch(children[0], target, !when)

	case syntax.Binary:
		if len(children) != 2 {
			return c.errorf(id, ErrMalformedBooleanExpression, "operator %q", c.tree.Lexeme(id))
		}
		left, right := children[0], children[1]

		switch op := c.tree.Lexeme(id); op {

		case "&&":
			if !when {
				// either operand false
				if err := c.branch(left, target, false); err != nil {
					return err
				}
				return c.branch(right, target, false)
			}
			skip := c.label()
			if err := c.branch(left, skip, false); err != nil {
				return err
			}
			if err := c.branch(right, target, true); err != nil {
				return err
			}
			c.jumpTo(skip, skip)
			return nil

		case "||":
			if when {
				// either operand true
				if err := c.branch(left, target, true); err != nil {
					return err
				}
				return c.branch(right, target, true)
			}
			mid := c.label()
			join := c.label()
			if err := c.branch(left, mid, false); err != nil {
				return err
			}
			c.jumpTo(join, mid)
			if err := c.branch(right, target, false); err != nil {
				return err
			}
			c.jumpTo(join, join)
			return nil

		case "==", "!=", "<", ">", "<=", ">=":
			return c.compare(op, left, right, target, when)

		}
		return c.errorf(id, ErrMalformedBooleanExpression, "operator %q", c.tree.Lexeme(id))

	}

	// any other expression is tested for truthiness
	value, err := c.compileExpr(id)
	if err != nil {
		return err
	}
	c.conditional(bytecode.BranchFalse(value.reg, bytecode.NoBlock), target, !when)
	c.release(value)
	return nil
}

func (c *methodCompiler) compare(op string, leftID, rightID syntax.NodeID, target bytecode.BlockID, when bool) error {
	// operands are evaluated left to right whatever the instruction order
	left, err := c.compileExpr(leftID)
	if err != nil {
		return err
	}
	right, err := c.compileExpr(rightID)
	if err != nil {
		return err
	}

	var inst bytecode.Instruction
	negated := false
	switch op {
	case "==":
		inst = bytecode.BranchEqual(left.reg, right.reg, bytecode.NoBlock)
	case "!=":
		inst = bytecode.BranchEqual(left.reg, right.reg, bytecode.NoBlock)
		negated = true
	case "<":
		inst = bytecode.BranchLess(left.reg, right.reg, bytecode.NoBlock)
	case ">":
		inst = bytecode.BranchLess(right.reg, left.reg, bytecode.NoBlock)
	case "<=":
		// a <= b is !(b < a)
		inst = bytecode.BranchLess(right.reg, left.reg, bytecode.NoBlock)
		negated = true
	case ">=":
		inst = bytecode.BranchLess(left.reg, right.reg, bytecode.NoBlock)
		negated = true
	}

	c.conditional(inst, target, when != negated)
	c.release(left, right)
	return nil
}

// conditional ends the current block with inst. When onTrue is set control
// reaches target if inst's condition holds, otherwise if it does not.
func (c *methodCompiler) conditional(inst bytecode.Instruction, target bytecode.BlockID, onTrue bool) {
	if onTrue {
		inst.Target = target
		c.emit(inst)
		fall := c.label()
		c.jumpTo(fall, fall)
		return
	}
	skip := c.label()
	inst.Target = skip
	c.emit(inst)
	c.jumpTo(target, skip)
}
