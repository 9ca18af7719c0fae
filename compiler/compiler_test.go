package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/reusee/regvm/bytecode"
	"github.com/reusee/regvm/syntax"
)

func compile(src string) (*bytecode.Program, error) {
	ast, err := syntax.Parse("test", src)
	if err != nil {
		return nil, err
	}
	return Compile(ast, nil)
}

func mustCompile(t *testing.T, src string) *bytecode.Program {
	t.Helper()
	program, err := compile(src)
	if err != nil {
		t.Fatal(err)
	}
	return program
}

func reachableCode(m *bytecode.Method) []bytecode.Instruction {
	var ret []bytecode.Instruction
	for _, id := range m.Reachable() {
		ret = append(ret, m.Block(id).Code...)
	}
	return ret
}

func countOp(m *bytecode.Method, op bytecode.Op) int {
	n := 0
	for _, inst := range reachableCode(m) {
		if inst.Op == op {
			n++
		}
	}
	return n
}

func TestCompileClass(t *testing.T) {
	program := mustCompile(t, `
class A {
  method new(v) { this.v = v; }
  method get() { return this.v; }
}
var a = new A("hello");
log a.get();
`)
	class := program.Class("A")
	newMethod, ok := class.Lookup("new")
	if !ok {
		t.Fatal("new not defined")
	}
	if newMethod.Arity != 1 || newMethod.Params() != 2 || newMethod.FrameSize < 2 {
		t.Fatalf("got %d %d %d", newMethod.Arity, newMethod.Params(), newMethod.FrameSize)
	}
	get, ok := class.Lookup("get")
	if !ok || get.Arity != 0 {
		t.Fatalf("got %v", get)
	}
	if n := countOp(program.Main, bytecode.OpInvokeStatic); n != 1 {
		t.Fatalf("got %d", n)
	}
	if n := countOp(program.Main, bytecode.OpInvokeVirtual); n != 1 {
		t.Fatalf("got %d", n)
	}
	for _, inst := range reachableCode(program.Main) {
		if inst.Op == bytecode.OpInvokeStatic && inst.Method != newMethod {
			t.Fatalf("got %v", inst.Method)
		}
	}
	if !strings.Contains(program.String(), "invoke-static A.new") {
		t.Fatalf("got %s", program)
	}
}

func TestForwardReference(t *testing.T) {
	program := mustCompile(t, `
var b = new B();
log b.f();
class B {
  method new() {}
  method f() { return "f"; }
}
`)
	var target *bytecode.Method
	for _, inst := range reachableCode(program.Main) {
		if inst.Op == bytecode.OpInvokeStatic {
			target = inst.Method
		}
	}
	if target == nil || !target.Defined || target != program.Class("B").Method("new") {
		t.Fatalf("got %v", target)
	}
}

func TestRegisterReuse(t *testing.T) {
	program := mustCompile(t, `
log "a";
log "b";
log "c";
`)
	if program.Main.FrameSize != 1 {
		t.Fatalf("got %d", program.Main.FrameSize)
	}

	program = mustCompile(t, `
{ var a = "a"; log a; }
{ var b = "b"; log b; }
`)
	if program.Main.FrameSize != 1 {
		t.Fatalf("got %d", program.Main.FrameSize)
	}
}

func TestDefiniteAssignment(t *testing.T) {
	for _, src := range []string{
		`var x = "a"; log x;`,
		`var x; x = "a"; log x;`,
		`var x; if true { x = "a"; } else { x = "b"; } log x;`,
		`var x; if true { x = "a"; } else { return; } log x;`,
		`var x; while true { x = "a"; log x; }`,
		`var x; var c = true; if c { x = 1; } else { if c { x = 2; } else { x = 3; } } log x;`,
	} {
		if _, err := compile(src); err != nil {
			t.Fatalf("%s: %v", src, err)
		}
	}

	for _, src := range []string{
		`var x; log x;`,
		`var x; if true { x = "a"; } log x;`,
		`var x; var c = true; while c { x = "a"; c = false; } log x;`,
		`var x; var c = true; while c { log x; x = "a"; }`,
		`var x; if true { x = "a"; } else { var x = "b"; } log x;`,
	} {
		if _, err := compile(src); !errors.Is(err, ErrUninitializedRead) {
			t.Fatalf("%s: got %v", src, err)
		}
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		src string
		err error
	}{
		{`log this;`, ErrThisOutsideMethod},
		{`log y;`, ErrUndeclaredVariable},
		{`y = 1;`, ErrUndeclaredVariable},
		{`var a = 1; var a = 2;`, ErrDuplicateDeclaration},
		{`class A { method f(x, x) {} }`, ErrDuplicateDeclaration},
		{`class A { method f() {} method f() {} }`, ErrDuplicateDeclaration},
		{`class A {} class A {}`, ErrDuplicateDeclaration},
		{`break;`, ErrUnresolvedLabel},
		{`while true { continue nope; }`, ErrUnresolvedLabel},
		{`var a = 1; a();`, ErrUncallableOperand},
		{`"a" = 1;`, ErrInvalidAssignment},
	}
	for _, c := range cases {
		_, err := compile(c.src)
		if !errors.Is(err, c.err) {
			t.Fatalf("%s: got %v", c.src, err)
		}
		var posErr syntax.PosError
		if !errors.As(err, &posErr) {
			t.Fatalf("%s: no position in %v", c.src, err)
		}
	}
}

func TestMalformedBoolean(t *testing.T) {
	ast := syntax.NewAST()
	pos := syntax.Pos{Line: 1, Column: 1}
	a := ast.Add(syntax.StringLit, "a", pos)
	b := ast.Add(syntax.StringLit, "b", pos)
	expr := ast.Add(syntax.Binary, "+", pos, a, b)
	stmt := ast.Add(syntax.Log, "", pos, expr)
	ast.SetRoot(ast.Add(syntax.Program, "", pos, stmt))
	if _, err := Compile(ast, nil); !errors.Is(err, ErrMalformedBooleanExpression) {
		t.Fatalf("got %v", err)
	}
}

func TestShadowing(t *testing.T) {
	program := mustCompile(t, `
var x = "outer";
{
  var x = "inner";
  log x;
}
log x;
`)
	code := reachableCode(program.Main)
	var logged []bytecode.Register
	for _, inst := range code {
		if inst.Op == bytecode.OpLog {
			logged = append(logged, inst.A)
		}
	}
	if len(logged) != 2 || logged[0] == logged[1] {
		t.Fatalf("got %v", logged)
	}
}

func TestShortCircuitUnreachable(t *testing.T) {
	program := mustCompile(t, `
class A { method new() {} }
var a = new A();
log false && a.crash();
log true || a.crash();
`)
	if n := countOp(program.Main, bytecode.OpInvokeVirtual); n != 0 {
		t.Fatalf("got %d\n%s", n, program.Main)
	}
}

func TestLabeledLoops(t *testing.T) {
	program := mustCompile(t, `
var c = true;
outer: while c {
  while true {
    c = false;
    continue outer;
  }
}
inner: while true {
  break inner;
}
log "done";
`)
	if n := countOp(program.Main, bytecode.OpLog); n != 1 {
		t.Fatalf("got %d", n)
	}
}

func TestNoEmptyReachableBlocks(t *testing.T) {
	program := mustCompile(t, `
var a = "a";
var b = "b";
if a == b || !(a < b) && a != "c" {
  log "x";
} else if a >= b {
  log "y";
}
while a <= b {
  a = b;
}
log a;
`)
	for _, m := range program.Methods() {
		for _, id := range m.Reachable() {
			block := m.Block(id)
			if len(block.Code) == 0 && !(id == m.Entry && block.Next == id) {
				t.Fatalf("%s: empty block %v\n%s", m.QualifiedName(), id, m)
			}
		}
		if err := m.Validate(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestImplicitReturn(t *testing.T) {
	program := mustCompile(t, `
class A {
  method new() {}
  method f() { return "x"; }
}
`)
	for _, name := range []string{"new", "f"} {
		m, _ := program.Class("A").Lookup(name)
		if n := countOp(m, bytecode.OpReturn); n != 1 {
			t.Fatalf("%s: got %d", name, n)
		}
	}
}
