package reddit

import (
	"context"
	"testing"

	"redditauto/lib/browser/domtest"

	"github.com/stretchr/testify/require"
)

const legacySubmitPage = `<html><body>
<form class="submit">
  <input id="url" name="url">
  <textarea name="title"></textarea>
  <textarea name="text"></textarea>
  <button name="submit">submit</button>
</form>
</body></html>`

const submittedPage = `<html><body><div id="siteTable"></div></body></html>`

func TestSubmitLink(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	b.Route(pageSubreddit+"golang/submit", legacySubmitPage)
	b.HandleClick("button[name='submit']", func(b *domtest.Browser) {
		b.SetHTML(submittedPage)
	})

	err := c.SubmitLink(ctx, "golang", "https://example.com/article", "A great article")
	require.NoError(t, err)
}

func TestSubmitText(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	b.Route(pageSubreddit+"golang/submit?selftext=true", legacySubmitPage)
	b.HandleClick("button[name='submit']", func(b *domtest.Browser) {
		b.SetHTML(submittedPage)
	})

	err := c.SubmitText(ctx, "golang", "A question", "How do I test this?")
	require.NoError(t, err)
}

func TestSubmitTimeout(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	// the submit button does nothing, so the form never closes
	b.Route(pageSubreddit+"golang/submit", legacySubmitPage)

	err := c.SubmitLink(ctx, "golang", "https://example.com/article", "A great article")
	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, "submit", timeout.Op)
}

func TestHasSubmitError(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	b.SetHTML(`<html><body>
<span class="error">you are doing that too much. try again in 4 minutes.</span>
</body></html>`)

	flagged, err := c.HasSubmitError(ctx)
	require.NoError(t, err)
	require.True(t, flagged)

	b.SetHTML(submittedPage)
	flagged, err = c.HasSubmitError(ctx)
	require.NoError(t, err)
	require.False(t, flagged)
}

const modernSubmitPage = `<html><body>
<button class="tab">Link</button>
<textarea placeholder="Title"></textarea>
<textarea placeholder="Url"></textarea>
<div aria-label="Add flair">Add flair</div>
<div aria-label="flair_picker">
  <div><span>discussion</span></div>
  <div><span>show and tell</span></div>
</div>
<button class="apply">Apply</button>
<button class="post-nav">Post</button>
<button class="post-submit">Post</button>
</body></html>`

func TestSubmitLinkNew(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	b.Route(pageSubredditNew+"golang/submit", modernSubmitPage)

	flairPicked := false
	b.HandleClick("div[aria-label='flair_picker'] span", func(*domtest.Browser) {
		flairPicked = true
	})
	b.HandleClick("button.post-submit", func(b *domtest.Browser) {
		b.SetHTML(submittedPage)
	})

	err := c.SubmitLinkNew(ctx, "golang", "https://example.com/article", "A great article", "discussion")
	require.NoError(t, err)
	require.True(t, flairPicked)
}

func TestSubmitLinkNewWithoutFlair(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	noFlairPage := `<html><body>
<textarea placeholder="Title"></textarea>
<textarea placeholder="Url"></textarea>
<div aria-label="Not available for this community"></div>
<button class="post-nav">Post</button>
<button class="post-submit">Post</button>
</body></html>`
	b.Route(pageSubredditNew+"golang/submit", noFlairPage)
	b.HandleClick("button.post-submit", func(b *domtest.Browser) {
		b.SetHTML(submittedPage)
	})

	err := c.SubmitLinkNew(ctx, "golang", "https://example.com/article", "A great article", "")
	require.NoError(t, err)
}
