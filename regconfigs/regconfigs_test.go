package regconfigs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/regvm/modes"
)

func testScope(t *testing.T, paths ...string) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() ConfigPaths {
			return paths
		},
	)
}

func TestDefaults(t *testing.T) {
	testScope(t).Call(func(
		depth MaxCallDepth,
		size StackSize,
		trace Trace,
		filter LogFilter,
		tap TapOnError,
	) {
		if depth != 0 || size != defaultStackSize || bool(trace) || filter != "" || bool(tap) {
			t.Fatalf("got %v %v %v %v %v", depth, size, trace, filter, tap)
		}
	})
}

func TestFiles(t *testing.T) {
	testScope(t,
		"testdata/regvm.cue",
		"testdata/regvm.yaml",
		"testdata/regvm.toml",
	).Call(func(
		depth MaxCallDepth,
		size StackSize,
		trace Trace,
		filter LogFilter,
	) {
		if depth != 64 {
			t.Fatalf("got %v", depth)
		}
		if size != 16 {
			t.Fatalf("got %v", size)
		}
		if !trace {
			t.Fatal("expecting trace")
		}
		if filter != `value != "skip"` {
			t.Fatalf("got %v", filter)
		}
	})

	testScope(t, "testdata/regvm.toml").Call(func(
		depth MaxCallDepth,
		size StackSize,
	) {
		if depth != 8 || size != 32 {
			t.Fatalf("got %v %v", depth, size)
		}
	})
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(envMaxCallDepth, "3")
	t.Setenv(envTrace, "false")
	testScope(t, "testdata/regvm.cue").Call(func(
		depth MaxCallDepth,
		trace Trace,
	) {
		if depth != 3 || trace {
			t.Fatalf("got %v %v", depth, trace)
		}
	})
}

func TestInvalidConfig(t *testing.T) {
	defer func() {
		if p := recover(); p == nil {
			t.Fatal("should panic")
		}
	}()
	testScope(t, "testdata/invalid.cue").Call(func(
		depth MaxCallDepth,
	) {
	})
}
