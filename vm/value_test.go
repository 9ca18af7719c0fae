package vm

import (
	"testing"

	"github.com/reusee/regvm/bytecode"
)

func TestEqual(t *testing.T) {
	a := bytecode.NewClass("A")
	b := bytecode.NewClass("B")

	x := NewStruct(a)
	y := NewStruct(a)
	x.Set("self", x)
	y.Set("self", y)
	if !Equal(x, y) {
		t.Fatal("cyclic structs should be equal")
	}
	y.Set("extra", 1.0)
	if Equal(x, y) {
		t.Fatal("field sets differ")
	}
	if Equal(NewStruct(a), NewStruct(b)) {
		t.Fatal("classes differ")
	}

	cases := []struct {
		a, b     Value
		expected bool
	}{
		{nil, nil, true},
		{nil, false, false},
		{"a", "a", true},
		{1.0, 1.0, true},
		{1.0, "1", false},
		{true, true, true},
		{a, a, true},
		{a, b, false},
		{[]int{1}, []int{1}, false},
	}
	for _, c := range cases {
		if got := Equal(c.a, c.b); got != c.expected {
			t.Fatalf("%v == %v: got %v", c.a, c.b, got)
		}
	}
}

func TestTruthy(t *testing.T) {
	for _, v := range []Value{nil, false, "", 0.0} {
		if Truthy(v) {
			t.Fatalf("got %v", v)
		}
	}
	for _, v := range []Value{true, "a", 1.0, NewStruct(nil)} {
		if !Truthy(v) {
			t.Fatalf("got %v", v)
		}
	}
}

func TestStructString(t *testing.T) {
	s := NewStruct(bytecode.NewClass("A"))
	s.Set("b", "x")
	s.Set("a", 1.0)
	s.Set("self", s)
	if got := s.String(); got != `A{a: 1, b: "x", self: <A>}` {
		t.Fatalf("got %s", got)
	}
}
