package main

import (
	"context"
	"log/slog"
	"os"

	"redditauto/cmd/reddit-cli/commands"
	"redditauto/lib/osutil"
	"redditauto/lib/telemetry"
)

func main() {
	ctx := osutil.SignalContext()

	telemetry.InitSlog(true)
	tel, err := telemetry.SetupFromEnv(ctx, "reddit-cli")
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to set up telemetry", "err", err)
	}
	defer tel.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
