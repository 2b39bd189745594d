package commands

import (
	"os"

	"redditauto/lib/scrapers/reddit"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	postsSubpage *string
	postsPages   *int
)

func init() {
	postsSubpage = postsCmd.Flags().String(
		"subpage", "hot", "Listing sort view: hot, new, rising, top or gilded.")
	postsPages = postsCmd.Flags().Int(
		"pages", 1, "Listing pages to read; 0 reads until the listing ends.")
	rootCmd.AddCommand(postsCmd)
}

var postsCmd = &cobra.Command{
	Use:   "posts <subreddit>",
	Short: "Prints a subreddit's post listing.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client, cleanup := newClient(ctx)
		defer cleanup()

		posts, err := client.GetPosts(ctx, args[0], reddit.Subpage(*postsSubpage), *postsPages)
		if err != nil {
			fatal("failed to read subreddit listing", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Karma", "Comments", "Author", "Title"})
		for _, post := range posts {
			t.AppendRow(table.Row{post.Karma, post.NumberOfComments, post.Author, post.Title})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
