package bytecode

import "fmt"

type Op uint8

const (
	OpInvalid Op = iota
	OpLoadConst
	OpReadField
	OpWriteField
	OpMove
	OpMoveResult
	OpNewObject
	OpInvokeStatic
	OpInvokeVirtual
	OpBranchEqual
	OpBranchLess
	OpBranchFalse
	OpLog
	OpReturn
)

var opNames = [...]string{
	OpInvalid:       "invalid",
	OpLoadConst:     "const",
	OpReadField:     "get",
	OpWriteField:    "set",
	OpMove:          "move",
	OpMoveResult:    "move-result",
	OpNewObject:     "new",
	OpInvokeStatic:  "invoke-static",
	OpInvokeVirtual: "invoke-virtual",
	OpBranchEqual:   "if-eq",
	OpBranchLess:    "if-lt",
	OpBranchFalse:   "if-false",
	OpLog:           "log",
	OpReturn:        "return",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", o)
}

// IsBranch reports whether the op carries a Target.
func (o Op) IsBranch() bool {
	switch o {
	case OpBranchEqual, OpBranchLess, OpBranchFalse:
		return true
	}
	return false
}
