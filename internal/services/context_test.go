package services_test

import (
	"context"
	"testing"

	"panostitch/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStepIndex(ctx, 4)
	ctx = services.WithImage(ctx, "img5.png")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if idx, ok := services.StepIndexFromContext(ctx); !ok || idx != 4 {
		t.Fatalf("unexpected step index: %v %v", idx, ok)
	}
	if img, ok := services.ImageFromContext(ctx); !ok || img != "img5.png" {
		t.Fatalf("unexpected image: %v %v", img, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "")
	ctx = services.WithImage(ctx, "")
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
	if _, ok := services.ImageFromContext(ctx); ok {
		t.Fatal("expected no image value")
	}
	if _, ok := services.StepIndexFromContext(ctx); ok {
		t.Fatal("expected no step index value")
	}
}
