package engines

import (
	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/regvm/debugs"
	"github.com/reusee/regvm/logs"
	"github.com/reusee/regvm/regconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs regconfigs.Module
	Debugs  debugs.Module
}

var wrap = e5.Wrap.With(e5.WrapStacktrace)
