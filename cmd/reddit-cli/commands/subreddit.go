package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(subredditCmd)
}

var subredditCmd = &cobra.Command{
	Use:   "subreddit [name]",
	Short: "Prints a subreddit's profile; defaults to the front page's top community.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client, cleanup := newClient(ctx)
		defer cleanup()

		name := "popular"
		if len(args) > 0 {
			name = args[0]
		}

		sub, err := client.GetSubreddit(ctx, name)
		if err != nil {
			fatal("failed to read subreddit", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRow(table.Row{"Name", sub.Name})
		t.AppendRow(table.Row{"Subscribers", sub.Subscribers})
		t.AppendRow(table.Row{"Users online", sub.UsersOnline})
		t.AppendRow(table.Row{"Moderators", strings.Join(sub.Moderators, ", ")})
		t.SetStyle(table.StyleRounded)
		t.Render()

		fmt.Println()
		fmt.Println(sub.Sidebar)
	},
}
