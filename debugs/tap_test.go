package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/regvm/modes"
)

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		tap Tap,
	) {
		// stdin is not a terminal under go test, so this returns at once
		tap(t.Context(), "test", map[string]any{
			"foo": 42.0,
			"disasm": func() string {
				return ""
			},
		})
	})
}
