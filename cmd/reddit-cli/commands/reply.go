package commands

import (
	"errors"
	"log/slog"

	"redditauto/lib/scrapers/reddit"

	"github.com/spf13/cobra"
)

var replyMessage *string

func init() {
	replyMessage = replyCmd.Flags().String(
		"message", "Nice post, thanks for sharing!", "The comment text to post.")
	rootCmd.AddCommand(replyCmd)
}

var replyCmd = &cobra.Command{
	Use:   "reply <username> <password> <subreddit>",
	Short: "Logs in and replies to the first hot post of a subreddit.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client, cleanup := newClient(ctx)
		defer cleanup()

		if err := client.Login(ctx, args[0], args[1]); err != nil {
			fatal("failed to log in", err)
		}
		posts, err := client.GetPosts(ctx, args[2], reddit.SubpageHot, 1)
		if err != nil {
			fatal("failed to read subreddit listing", err)
		}
		if len(posts) == 0 {
			fatal("failed to pick a post", errors.New("the listing is empty"))
		}

		slog.Info("replying", "post", posts[0].Title, "author", posts[0].Author)
		if err := client.ReplyPost(ctx, posts[0].Target(), *replyMessage); err != nil {
			fatal("failed to reply", err)
		}
	},
}
