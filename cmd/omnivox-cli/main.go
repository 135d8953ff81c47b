package main

import (
	"context"
	"errors"
	"log/slog"
	"omnivox-backend/cmd/omnivox-cli/commands"
	"omnivox-backend/internal/components/serviceutil"
	"omnivox-backend/internal/components/telemetry"
	"os"
	"time"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()

	otel, err := telemetry.SetupFromEnv(ctx, "omnivox-cli")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to setup telemetry", "err", err)
	}

	err = commands.ExecuteContext(ctx)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), time.Second*5)
	defer cancelShutdown()
	if err := otel.Shutdown(shutdownCtx); err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}

	if err != nil {
		serviceutil.Fatal("command failed", err)
	}
}
