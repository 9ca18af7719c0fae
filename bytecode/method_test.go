package bytecode

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	m := NewMethod("m", nil)
	m.FrameSize = 1
	b := NewBuilder(m)
	b.Emit(Move(0, 1))
	if err := m.Validate(); !errors.Is(err, ErrRegisterOutOfFrame) {
		t.Fatalf("got %v", err)
	}

	m = NewMethod("m", nil)
	m.FrameSize = 1
	b = NewBuilder(m)
	b.Emit(BranchFalse(0, 42))
	if err := m.Validate(); !errors.Is(err, ErrBadBlock) {
		t.Fatalf("got %v", err)
	}

	m = NewMethod("m", nil)
	m.FrameSize = 1
	b = NewBuilder(m)
	b.Emit(InvokeVirtual("f"))
	if err := m.Validate(); !errors.Is(err, ErrBadInstruction) {
		t.Fatalf("got %v", err)
	}
}

func TestClassLazyMethods(t *testing.T) {
	p := NewProgram()
	a := p.Class("A")
	if p.Class("A") != a {
		t.Fatal("class not memoized")
	}
	f := a.Method("f")
	if _, ok := a.Lookup("f"); ok {
		t.Fatal("placeholder should not resolve")
	}
	if a.Method("f") != f {
		t.Fatal("method not memoized")
	}
	f.Defined = true
	if got, ok := a.Lookup("f"); !ok || got != f {
		t.Fatal("lookup failed")
	}
	if f.Params() != 1 || f.QualifiedName() != "A.f" {
		t.Fatalf("got %d %s", f.Params(), f.QualifiedName())
	}
	p.Class("B")
	if names := p.ClassNames(); len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Fatalf("got %v", names)
	}
	if methods := p.Methods(); len(methods) != 2 || methods[0] != p.Main || methods[1] != f {
		t.Fatalf("got %v", methods)
	}
}

func TestDisassemble(t *testing.T) {
	p := NewProgram()
	a := p.Class("A")
	m := p.Main
	m.FrameSize = 3
	b := NewBuilder(m)
	exit := b.Label(NoBlock)
	b.Emit(LoadConst(0, "x"))
	b.Emit(NewObject(1, a))
	b.Emit(InvokeStatic(a.Method("new"), 1, 0))
	b.Emit(InvokeVirtual("get", 1))
	b.Emit(MoveResult(2))
	b.Emit(BranchLess(2, 0, exit))
	b.SetNext(m.Entry, exit)
	b.Goto(exit)
	b.Emit(Return(2))

	got := m.String()
	want := `method main arity=0 frame=3 entry=b0
b0:
	r0 = const "x"
	r1 = new A
	invoke-static A.new(r1, r0)
	invoke-virtual get(r1)
	r2 = result
	if r2 < r0 goto b1
	-> b1
b1:
	return r2
`
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
	if !strings.Contains(p.String(), "method A.new arity=0 frame=0 entry=-") {
		t.Fatalf("got %s", p.String())
	}
}
