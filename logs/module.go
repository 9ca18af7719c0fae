package logs

import (
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

type Span string

type spanKey struct{}

var SpanKey = spanKey{}
