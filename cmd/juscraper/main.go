package main

import (
	"juscraper/cmd/juscraper/commands"
	"juscraper/lib/telemetry"
	"juscraper/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	t, err := telemetry.SetupFromEnv(ctx, "juscraper")
	if err != nil {
		serviceutil.Fatal("failed to initialize telemetry", err)
	}
	defer t.Shutdown(ctx)

	commands.ExecuteContext(ctx)
}
