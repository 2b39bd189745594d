package reddit

import (
	"context"
	"testing"

	"redditauto/lib/browser/domtest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const subredditFrontPage = `<html><body>
<div id="siteTable"></div>
<div class="side">
  <span class="subscribers"><span class="number">1,234,567</span> readers</span>
  <p class="users-online"><span class="number">4,321</span> users here now</p>
  <div class="usertext-body">Ask questions and post articles about Go.</div>
</div>
</body></html>`

const moderatorsPage = `<html><body>
<div class="moderator-table">
  <span class="user"><a>gopher_one</a></span>
  <span class="user"><a>gopher_two</a></span>
</div>
</body></html>`

func TestGetSubreddit(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	b.Route(pageSubreddit+"golang/hot", subredditFrontPage)
	b.Route(pageSubreddit+"golang/about/moderators", moderatorsPage)

	got, err := c.GetSubreddit(ctx, "golang")
	require.NoError(t, err)

	want := Subreddit{
		Name:        "golang",
		Subscribers: 1234567,
		UsersOnline: 4321,
		Sidebar:     "Ask questions and post articles about Go.",
		Moderators:  []string{"gopher_one", "gopher_two"},
	}
	require.Empty(t, cmp.Diff(want, got))
}

func TestIsSubredditBanned(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	b.Route(pageSubreddit+"banned_sub", `<html><body><h3>This community has been banned</h3></body></html>`)
	b.Route(pageSubreddit+"golang", subredditFrontPage)

	banned, err := c.IsSubredditBanned(ctx, "banned_sub")
	require.NoError(t, err)
	require.True(t, banned)

	banned, err = c.IsSubredditBanned(ctx, "golang")
	require.NoError(t, err)
	require.False(t, banned)
}

const createSubredditPage = `<html><body>
<form id="create_subreddit">
  <input id="name">
  <input id="title">
  <textarea name="public_description"></textarea>
  <textarea name="description"></textarea>
  <textarea name="submit_text"></textarea>
  <input type="radio" id="type_public" name="type">
  <input type="radio" id="type_private" name="type">
  <input type="radio" id="link_type_any" name="link_type">
  <input type="radio" id="link_type_self" name="link_type">
  <button class="create-button">create</button>
</form>
</body></html>`

func TestCreateSubreddit(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	b.Route(pageCreateSub, createSubredditPage)
	b.HandleClick("button.create-button", func(b *domtest.Browser) {
		b.SetHTML(`<html><body><p>your subreddit has been created</p></body></html>`)
	})

	err := c.CreateSubreddit(ctx, NewSubreddit{
		Name:        "gotests",
		Title:       "Testing in Go",
		Description: "All about testing Go code.",
		Sidebar:     "Be nice.",
		Subtext:     "No homework dumps.",
		Type:        SubredditPublic,
		Content:     ContentAny,
	})
	require.NoError(t, err)
}

func TestCreateSubredditInvalidType(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	err := c.CreateSubreddit(ctx, NewSubreddit{
		Name:    "gotests",
		Type:    SubredditType("secret"),
		Content: ContentAny,
	})
	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "subreddit type", invalid.Param)
	require.Empty(t, b.Navigations())
}

func TestCreateSubredditTimeout(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	// the create button does nothing, so the confirmation never shows
	b.Route(pageCreateSub, createSubredditPage)

	err := c.CreateSubreddit(ctx, NewSubreddit{
		Name:    "gotests",
		Type:    SubredditPublic,
		Content: ContentAny,
	})
	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, "subreddit creation", timeout.Op)
}
