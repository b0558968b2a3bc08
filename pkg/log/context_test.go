package log

import (
	"context"
	"testing"
)

func TestWithRunID_AddsToContext(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-123")

	id := RunIDFromContext(ctx)
	if id != "run-123" {
		t.Errorf("RunIDFromContext() = %q, want %q", id, "run-123")
	}
}

func TestRunIDFromContext_NoID_ReturnsEmpty(t *testing.T) {
	ctx := context.Background()

	id := RunIDFromContext(ctx)
	if id != "" {
		t.Errorf("RunIDFromContext() = %q, want empty", id)
	}
}

func TestRunIDFromContext_NilContext_ReturnsEmpty(t *testing.T) {
	id := RunIDFromContext(nil)
	if id != "" {
		t.Errorf("RunIDFromContext(nil) = %q, want empty", id)
	}
}

func TestWithRunID_OverwritesPrevious(t *testing.T) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "first")
	ctx = WithRunID(ctx, "second")

	id := RunIDFromContext(ctx)
	if id != "second" {
		t.Errorf("RunIDFromContext() = %q, want %q", id, "second")
	}
}

func TestWithFields_AddsFieldsToContext(t *testing.T) {
	ctx := context.Background()
	ctx = WithFields(ctx, "nasa_id", "PIA00001", "media_type", "image")

	fields := FieldsFromContext(ctx)
	if fields["nasa_id"] != "PIA00001" {
		t.Errorf("fields[nasa_id] = %v, want %q", fields["nasa_id"], "PIA00001")
	}
	if fields["media_type"] != "image" {
		t.Errorf("fields[media_type] = %v, want %q", fields["media_type"], "image")
	}
}

func TestFieldsFromContext_NoFields_ReturnsNil(t *testing.T) {
	ctx := context.Background()

	fields := FieldsFromContext(ctx)
	if fields != nil {
		t.Errorf("FieldsFromContext() = %v, want nil", fields)
	}
}

func TestWithFields_MergesWithExisting(t *testing.T) {
	ctx := context.Background()
	ctx = WithFields(ctx, "a", "1")
	ctx = WithFields(ctx, "b", "2")

	fields := FieldsFromContext(ctx)
	if fields["a"] != "1" {
		t.Errorf("fields[a] = %v, want %q", fields["a"], "1")
	}
	if fields["b"] != "2" {
		t.Errorf("fields[b] = %v, want %q", fields["b"], "2")
	}
}

func TestWithFields_DoesNotMutateParent(t *testing.T) {
	parent := WithFields(context.Background(), "stage", "pick")
	_ = WithFields(parent, "stage", "resolve")

	if got := FieldsFromContext(parent)["stage"]; got != "pick" {
		t.Errorf("parent fields[stage] = %v, want %q", got, "pick")
	}
}
