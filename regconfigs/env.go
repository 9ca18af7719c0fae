package regconfigs

import (
	"os"
	"strconv"
)

// environment variables override configuration files
const (
	envMaxCallDepth = "REGVM_MAX_CALL_DEPTH"
	envStackSize    = "REGVM_STACK_SIZE"
	envTrace        = "REGVM_TRACE"
	envTapOnError   = "REGVM_TAP_ON_ERROR"
)

func envInt(name string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func envBool(name string) (bool, bool) {
	b, err := strconv.ParseBool(os.Getenv(name))
	if err != nil {
		return false, false
	}
	return b, true
}
