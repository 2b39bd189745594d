package reddit

import (
	"context"
	"testing"

	"redditauto/lib/browser/domtest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const commentTreePage = `<html><body>
<div id="siteTable">
  <div class="thing" data-type="link" data-permalink="/r/golang/comments/1/first/">
    <div class="midcol"><div class="up"></div><div class="down"></div></div>
    <div class="entry"><a class="title">First post</a></div>
  </div>
</div>
<div class="commentarea">
<div class="sitetable nestedlisting">
  <div class="thing" data-type="comment" data-author="alice" data-permalink="/r/golang/comments/1/first/c1/" data-replies="1">
    <div class="midcol"><div class="up"></div><div class="down"></div></div>
    <div class="entry likes">
      <p class="tagline"><span class="score">9 points</span><span class="score">10 points</span><span class="score">11 points</span></p>
      <div class="usertext-body">top comment</div>
      <ul><li class="reply-link">reply</li></ul>
      <form class="usertext"><textarea name="text"></textarea><button class="save">save</button></form>
    </div>
    <div class="child">
      <div class="sitetable listing">
        <div class="thing" data-type="comment" data-author="bob" data-permalink="/r/golang/comments/1/first/c2/" data-replies="0">
          <div class="midcol"><div class="up"></div><div class="down"></div></div>
          <div class="entry"><div class="usertext-body">child comment</div></div>
        </div>
      </div>
    </div>
  </div>
  <div class="thing" data-type="comment" data-author="carol" data-permalink="/r/golang/comments/1/first/c3/" data-replies="2">
    <div class="midcol"><div class="up"></div><div class="down"></div></div>
    <div class="entry"><div class="usertext-body">no child container</div></div>
  </div>
</div>
</div>
</body></html>`

func TestGetComments(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	target := TargetLink("/r/golang/comments/1/first/")
	b.Route(target.URL(), commentTreePage)

	got, err := c.GetComments(ctx, target, false)
	require.NoError(t, err)

	eleven := 11
	want := []Comment{
		{
			Author:  "alice",
			Link:    "/r/golang/comments/1/first/c1/",
			Content: "top comment",
			Vote:    VoteUp,
			Karma:   &eleven,
			Replies: []Comment{
				{Author: "bob", Link: "/r/golang/comments/1/first/c2/", Content: "child comment"},
			},
		},
		{
			Author:  "carol",
			Link:    "/r/golang/comments/1/first/c3/",
			Content: "no child container",
			// declares replies but renders no child container
			Replies: []Comment{},
		},
	}
	require.Empty(t, cmp.Diff(want, got))

	// reading is idempotent
	again, err := c.GetComments(ctx, target, false)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(got, again))
}

func TestExpandAllComments(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	collapsedPage := `<html><body>
<div class="commentarea">
<div class="sitetable nestedlisting">
  <div class="thing" data-type="comment" data-author="alice" data-permalink="/c1/" data-replies="0">
    <div class="entry"><div class="usertext-body">always visible</div></div>
  </div>
  <span class="morecomments"><a>load more comments</a></span>
</div>
</div>
</body></html>`
	expandedPage := `<html><body>
<div class="commentarea">
<div class="sitetable nestedlisting">
  <div class="thing" data-type="comment" data-author="alice" data-permalink="/c1/" data-replies="0">
    <div class="entry"><div class="usertext-body">always visible</div></div>
  </div>
  <div class="thing" data-type="comment" data-author="dave" data-permalink="/c9/" data-replies="0">
    <div class="entry"><div class="usertext-body">was collapsed</div></div>
  </div>
</div>
</div>
</body></html>`

	target := TargetLink("/r/golang/comments/1/first/")
	b.Route(target.URL(), collapsedPage)
	b.HandleClick("span.morecomments", func(b *domtest.Browser) {
		b.SetHTML(expandedPage)
	})

	got, err := c.GetComments(ctx, target, true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "alice", got[0].Author)
	require.Equal(t, "dave", got[1].Author)
}

func TestVoteComment(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	target := TargetLink("/r/golang/comments/1/first/")
	b.Route(target.URL(), commentTreePage)
	require.NoError(t, c.openPost(ctx, target))

	clicked := ""
	b.HandleClick("div.up", func(*domtest.Browser) { clicked = "up" })
	b.HandleClick("div.down", func(*domtest.Browser) { clicked = "down" })

	// alice is already upvoted
	require.NoError(t, c.VoteComment(ctx, "/r/golang/comments/1/first/c1/", VoteUp))
	require.Equal(t, "", clicked)

	require.NoError(t, c.VoteComment(ctx, "/r/golang/comments/1/first/c3/", VoteUp))
	require.Equal(t, "up", clicked)
}

func TestReplyComment(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	target := TargetLink("/r/golang/comments/1/first/")
	b.Route(target.URL(), commentTreePage)
	require.NoError(t, c.openPost(ctx, target))

	saved := false
	b.HandleClick("button.save", func(*domtest.Browser) { saved = true })

	require.NoError(t, c.ReplyComment(ctx, "/r/golang/comments/1/first/c1/", "agreed"))
	require.True(t, saved)
}
