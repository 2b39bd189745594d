package commands

import (
	"errors"
	"os"
	"strings"

	"redditauto/lib/scrapers/reddit"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	userSort  *string
	userPages *int
)

func init() {
	userSort = userCmd.Flags().String(
		"sort", "new", "Activity sort order: new, hot, top or controversial.")
	userPages = userCmd.Flags().Int(
		"pages", 1, "Activity pages to read; 0 reads until the listing ends.")
	rootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user <name>",
	Short: "Prints a user's profile and recent activity.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client, cleanup := newClient(ctx)
		defer cleanup()

		user, err := client.GetUser(ctx, args[0])
		if err != nil {
			fatal("failed to read user profile", err)
		}
		if user == nil {
			fatal("failed to read user profile", errors.New("no such user"))
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRow(table.Row{"Name", user.Name})
		t.AppendRow(table.Row{"Post karma", user.PostKarma})
		t.AppendRow(table.Row{"Comment karma", user.CommentKarma})
		t.AppendRow(table.Row{"Moderates", strings.Join(user.Moderating, ", ")})
		t.SetStyle(table.StyleRounded)
		t.Render()

		activities, err := client.GetUserActivities(
			ctx, args[0], reddit.SortBy(*userSort), *userPages)
		if err != nil {
			fatal("failed to read user activity", err)
		}

		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Type", "Subreddit", "Karma", "Title"})
		for _, activity := range activities {
			t.AppendRow(table.Row{
				string(activity.Type), activity.Subreddit, activity.Karma, activity.Title,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
