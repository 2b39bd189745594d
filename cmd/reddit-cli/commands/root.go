package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"redditauto/lib/browser/webdriver"
	"redditauto/lib/configutil"
	"redditauto/lib/scrapers/reddit"

	"github.com/spf13/cobra"
)

// Config is read from reddit-cli.json5, searched upward from the working
// directory. Every field is optional.
type Config struct {
	// webdriver endpoint, http://localhost:9515 if empty
	WebdriverUrl string `json:"webdriver_url"`
	// capabilities passed to the driver under alwaysMatch
	Capabilities map[string]any `json:"capabilities"`
	// when set, the raw webdriver traffic is dumped here
	DebugHttpDir string `json:"debug_http_dir"`
}

var rootCmd = &cobra.Command{
	Use:   "reddit-cli",
	Short: "reddit-cli drives a reddit session through a webdriver endpoint.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

// newClient opens a browser session against the configured webdriver
// endpoint. The returned cleanup closes the browser window.
func newClient(ctx context.Context) (*reddit.Client, func()) {
	config, err := configutil.ReadRecursively[Config]("reddit-cli.json5")
	if err != nil && !os.IsNotExist(err) {
		fatal("failed to read config", err)
	}
	if config.WebdriverUrl == "" {
		config.WebdriverUrl = "http://localhost:9515"
	}

	session, err := webdriver.New(ctx, webdriver.Options{
		Endpoint:     config.WebdriverUrl,
		Capabilities: config.Capabilities,
		DebugDumpDir: config.DebugHttpDir,
	})
	if err != nil {
		fatal("failed to open browser session", err)
	}

	cleanup := func() {
		if err := session.Close(context.Background()); err != nil {
			slog.Warn("failed to close browser session", "err", err)
		}
	}
	return reddit.NewClient(session, reddit.ClientOptions{}), cleanup
}
