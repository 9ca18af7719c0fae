package engines

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/regvm/compiler"
	"github.com/reusee/regvm/logs"
	"github.com/reusee/regvm/modes"
	"github.com/reusee/regvm/regconfigs"
	"github.com/reusee/regvm/syntax"
	"github.com/reusee/regvm/vm"
)

func testScope(t *testing.T, buf *bytes.Buffer, paths ...string) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() regconfigs.ConfigPaths {
			return paths
		},
		func() logs.Writer {
			return buf
		},
	)
}

func collect(t *testing.T, scope dscope.Scope, src string) ([]vm.Value, error) {
	var logged []vm.Value
	var err error
	scope.Call(func(
		execute Execute,
	) {
		_, err = execute(t.Context(), "test", src, func(value vm.Value) {
			logged = append(logged, value)
		})
	})
	return logged, err
}

func TestScenarios(t *testing.T) {
	scope := testScope(t, new(bytes.Buffer))
	for _, c := range []struct {
		src      string
		expected []vm.Value
	}{
		{
			`var x = "Hello, World!"; log x;`,
			[]vm.Value{"Hello, World!"},
		},
		{
			`var x = "no"; if true { x = "a" } else { x = "b" } log x;`,
			[]vm.Value{"a"},
		},
		{
			`var x = "no"; if false { x = "a" } else { x = "b" } log x;`,
			[]vm.Value{"b"},
		},
		{
			`var i = "a"; while i != "stop" { i = "stop" } log i;`,
			[]vm.Value{"stop"},
		},
	} {
		logged, err := collect(t, scope, c.src)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(logged, c.expected) {
			t.Fatalf("%s: got %v", c.src, logged)
		}
	}
}

func TestErrors(t *testing.T) {
	scope := testScope(t, new(bytes.Buffer))

	_, err := collect(t, scope, `var x; log x;`)
	if !errors.Is(err, compiler.ErrUninitializedRead) {
		t.Fatalf("got %v", err)
	}

	_, err = collect(t, scope, `log (;`)
	if !errors.Is(err, syntax.ErrUnexpectedToken) {
		t.Fatalf("got %v", err)
	}

	logged, err := collect(t, scope, `log "before"; log 1 < "a";`)
	if !errors.Is(err, vm.ErrTypeMismatch) {
		t.Fatalf("got %v", err)
	}
	if !reflect.DeepEqual(logged, []vm.Value{"before"}) {
		t.Fatalf("got %v", logged)
	}
	if !strings.Contains(err.Error(), "span: ") {
		t.Fatalf("got %v", err)
	}
}

func TestLogFilter(t *testing.T) {
	scope := testScope(t, new(bytes.Buffer), "testdata/filter.cue")
	logged, err := collect(t, scope, `log "a"; log "skip"; log "b";`)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(logged, []vm.Value{"a", "b"}) {
		t.Fatalf("got %v", logged)
	}

	scope = testScope(t, new(bytes.Buffer), "testdata/bad_filter.cue")
	if _, err := collect(t, scope, `log "a";`); err == nil {
		t.Fatal("should error")
	}
}

func TestCallDepthFromConfig(t *testing.T) {
	scope := testScope(t, new(bytes.Buffer), "testdata/depth.yaml")
	_, err := collect(t, scope, `
class R {
  method new() {}
  method down() { return this.down(); }
}
new R().down();
`)
	if !errors.Is(err, vm.ErrCallDepth) {
		t.Fatalf("got %v", err)
	}
}

func TestReturnValue(t *testing.T) {
	testScope(t, new(bytes.Buffer)).Call(func(
		execute Execute,
	) {
		ret, err := execute(t.Context(), "test", `return "done";`, nil)
		if err != nil {
			t.Fatal(err)
		}
		if ret != "done" {
			t.Fatalf("got %v", ret)
		}
	})
}

func TestCompileLogs(t *testing.T) {
	buf := new(bytes.Buffer)
	testScope(t, buf).Call(func(
		compile Compile,
	) {
		program, err := compile(t.Context(), "test", `
class A {
  method new() {}
}
log new A();
`)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := program.Class("A").Lookup("new"); !ok {
			t.Fatal("expecting A.new")
		}
		if !strings.Contains(buf.String(), "method=A.new") {
			t.Fatalf("got %s", buf.String())
		}
	})
}
