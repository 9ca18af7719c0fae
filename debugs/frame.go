package debugs

import (
	"fmt"

	"github.com/reusee/regvm/vm"
)

// FrameGlobals exposes a failed frame to Tap: its registers as r0, r1, ...
// plus the failure site. disasm() returns the failing method's listing.
func FrameGlobals(err *vm.RuntimeError) map[string]any {
	globals := map[string]any{
		"method": err.Method,
		"block":  err.Block.String(),
		"op":     err.Op.String(),
		"error":  err.Err.Error(),
	}
	if err.Code != nil {
		code := err.Code
		globals["disasm"] = func() string {
			return code.String()
		}
	}
	for i, value := range err.Registers {
		globals[fmt.Sprintf("r%d", i)] = value
	}
	return globals
}
