package logs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWrapSpan(t *testing.T) {
	base := errors.New("boom")
	if err := WrapSpan(context.Background(), base); err != base {
		t.Fatalf("got %v", err)
	}
	ctx := context.WithValue(context.Background(), SpanKey, Span("abc"))
	err := WrapSpan(ctx, base)
	if !errors.Is(err, base) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "span: abc") {
		t.Fatalf("got %v", err)
	}
}
