package ctxutil

import (
	"context"
	"testing"
)

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected req-123, got %q", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestWithProfileID_And_ProfileIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithProfileID(context.Background(), 7)
	got, ok := ProfileIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for a set profile")
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestProfileIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := ProfileIDFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestProfileIDFromCtx_ZeroID(t *testing.T) {
	t.Parallel()

	ctx := WithProfileID(context.Background(), 0)
	if _, ok := ProfileIDFromCtx(ctx); ok {
		t.Fatal("expected ok=false for zero profile ID")
	}
}
