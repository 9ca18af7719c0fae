package compiler

import (
	"fmt"
	"log/slog"

	"github.com/reusee/regvm/bytecode"
	"github.com/reusee/regvm/regalloc"
	"github.com/reusee/regvm/syntax"
)

type Options struct {
	Logger *slog.Logger // if nil, nothing is logged
}

type compiler struct {
	tree     syntax.Tree
	program  *bytecode.Program
	declared map[string]bool
	logger   *slog.Logger
}

// Compile lowers tree into bytecode. The first error aborts compilation and
// no program is returned.
func Compile(tree syntax.Tree, options *Options) (*bytecode.Program, error) {
	c := &compiler{
		tree:     tree,
		program:  bytecode.NewProgram(),
		declared: make(map[string]bool),
	}
	if options != nil {
		c.logger = options.Logger
	}

	root := tree.Root()
	if tree.Category(root) != syntax.Program {
		return nil, c.errorf(root, ErrMalformedExpression, "expecting program, got %v", tree.Category(root))
	}

	main := c.newMethodCompiler(c.program.Main)
	for _, id := range tree.Children(root) {
		if tree.Category(id) == syntax.ClassDecl {
			if err := c.compileClass(id); err != nil {
				return nil, err
			}
			continue
		}
		if main.dead {
			continue
		}
		if err := main.compileStmt(id); err != nil {
			return nil, err
		}
	}
	if err := main.finish(); err != nil {
		return nil, err
	}

	return c.program, nil
}

func (c *compiler) errorf(id syntax.NodeID, err error, format string, args ...any) error {
	return syntax.WithPos(
		fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)),
		c.tree.Pos(id),
	)
}

func (c *compiler) compileClass(id syntax.NodeID) error {
	name := c.tree.Lexeme(id)
	if c.declared[name] {
		return c.errorf(id, ErrDuplicateDeclaration, "class %s", name)
	}
	c.declared[name] = true
	class := c.program.Class(name)

	for _, decl := range c.tree.Children(id) {
		if c.tree.Category(decl) != syntax.MethodDecl {
			return c.errorf(decl, ErrMalformedExpression, "expecting method in class %s, got %v", name, c.tree.Category(decl))
		}
		if err := c.compileMethod(class, decl); err != nil {
			return err
		}
	}
	return nil
}

const thisName = "this"

func (c *compiler) compileMethod(class *bytecode.Class, id syntax.NodeID) error {
	name := c.tree.Lexeme(id)
	method := class.Method(name)
	if method.Defined {
		return c.errorf(id, ErrDuplicateDeclaration, "method %s.%s", class.Name, name)
	}

	children := c.tree.Children(id)
	if len(children) == 0 || c.tree.Category(children[len(children)-1]) != syntax.Block {
		return c.errorf(id, ErrMalformedExpression, "method %s.%s has no body", class.Name, name)
	}
	params := children[:len(children)-1]
	body := children[len(children)-1]

	mc := c.newMethodCompiler(method)
	method.Arity = len(params)

	// receiver then parameters occupy the low registers in call order
	if err := mc.declareIncoming(id, thisName); err != nil {
		return err
	}
	for _, param := range params {
		if c.tree.Category(param) != syntax.Identifier {
			return c.errorf(param, ErrMalformedExpression, "bad parameter")
		}
		if err := mc.declareIncoming(param, c.tree.Lexeme(param)); err != nil {
			return err
		}
	}

	if err := mc.compileStmts(c.tree.Children(body)); err != nil {
		return err
	}
	return mc.finish()
}

type loopContext struct {
	label string
	cond  bytecode.BlockID
	exit  bytecode.BlockID
}

type methodCompiler struct {
	*compiler
	method  *bytecode.Method
	builder *bytecode.Builder
	alloc   *regalloc.Allocator
	loops   []*loopContext
	// set when the current block ends in return, break or continue
	dead bool
}

func (c *compiler) newMethodCompiler(method *bytecode.Method) *methodCompiler {
	return &methodCompiler{
		compiler: c,
		method:   method,
		builder:  bytecode.NewBuilder(method),
		alloc:    regalloc.New(),
	}
}

func (c *methodCompiler) declareIncoming(id syntax.NodeID, name string) error {
	index, err := c.alloc.Declare(name)
	if err != nil {
		return syntax.WithPos(err, c.tree.Pos(id))
	}
	c.alloc.Bind(index, c.alloc.Allocate())
	c.alloc.MarkWritten(index)
	return nil
}

func (c *methodCompiler) finish() error {
	if !c.dead {
		c.emitReturn(bytecode.NoRegister)
	}
	c.method.FrameSize = c.alloc.FrameSize()
	bytecode.Simplify(c.method)
	if err := c.method.Validate(); err != nil {
		return err
	}
	c.method.Defined = true
	if c.logger != nil {
		c.logger.Debug("method compiled",
			"method", c.method.QualifiedName(),
			"arity", c.method.Arity,
			"frame", c.method.FrameSize,
			"blocks", len(c.method.Reachable()),
		)
	}
	return nil
}

// operand is a register holding an expression value. Temporaries belong to
// the expression and are released by its consumer; other registers belong
// to locals.
type operand struct {
	reg  bytecode.Register
	temp bool
}

func (c *methodCompiler) temp() operand {
	return operand{
		reg:  c.alloc.Allocate(),
		temp: true,
	}
}

func (c *methodCompiler) release(ops ...operand) {
	for _, op := range ops {
		if op.temp {
			c.alloc.Free(op.reg)
		}
	}
}

func (c *methodCompiler) emit(inst bytecode.Instruction) {
	c.builder.Emit(inst)
}

func (c *methodCompiler) label() bytecode.BlockID {
	return c.builder.Label(bytecode.NoBlock)
}

// jumpTo ends the current block with a transfer to target and continues
// emitting into resume.
func (c *methodCompiler) jumpTo(target, resume bytecode.BlockID) {
	c.builder.SetNext(c.builder.Current(), target)
	c.builder.Goto(resume)
}

// jump ends the current block with a transfer to target. Code emitted
// afterwards lands in a fresh block nothing falls into.
func (c *methodCompiler) jump(target bytecode.BlockID) {
	c.jumpTo(target, c.label())
}

func (c *methodCompiler) emitReturn(reg bytecode.Register) {
	c.emit(bytecode.Return(reg))
	c.builder.SetNext(c.builder.Current(), bytecode.NoBlock)
	c.dead = true
}
