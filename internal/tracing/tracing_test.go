package tracing

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/shop-queue/internal/config"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), &config.Config{OTelEnabled: false})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	ctx, span := Start(context.Background(), "noop")
	defer span.End()
	if ctx == nil {
		t.Fatal("nil context")
	}
}
