package logs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/regvm/modes"
)

func TestLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
		level Level,
	) {
		if level.Level() != Level(-4).Level() {
			t.Fatalf("got %v", level)
		}
		logger.Debug("test", "hello", "world!")
		if !strings.Contains(buf.String(), "hello=world!") {
			t.Fatalf("got %s", buf.String())
		}
	})
}

func TestProductionLevel(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		level Level,
	) {
		if level.Level().String() != "INFO" {
			t.Fatalf("got %v", level.Level())
		}
	})
}
