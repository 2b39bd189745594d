package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"redditauto/lib/scrapers/reddit"

	"github.com/spf13/cobra"
)

var commentsNoExpand *bool

func init() {
	commentsNoExpand = commentsCmd.Flags().Bool(
		"no-expand", false, "Skip loading collapsed comment branches.")
	rootCmd.AddCommand(commentsCmd)
}

var commentsCmd = &cobra.Command{
	Use:   "comments <subreddit>",
	Short: "Dumps the comment tree of a subreddit's first hot post as JSON.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client, cleanup := newClient(ctx)
		defer cleanup()

		posts, err := client.GetPosts(ctx, args[0], reddit.SubpageHot, 1)
		if err != nil {
			fatal("failed to read subreddit listing", err)
		}
		if len(posts) == 0 {
			fatal("failed to pick a post", errors.New("the listing is empty"))
		}

		slog.Info("reading comments", "post", posts[0].Title)
		comments, err := client.GetComments(ctx, posts[0].Target(), !*commentsNoExpand)
		if err != nil {
			fatal("failed to read comments", err)
		}

		out, err := json.MarshalIndent(comments, "", "  ")
		if err != nil {
			fatal("failed to encode comments", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
	},
}
