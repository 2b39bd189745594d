package reddit

import (
	"context"
	"errors"
	"testing"
	"time"

	"redditauto/lib/browser/domtest"
	"redditauto/lib/telemetry"

	"github.com/stretchr/testify/require"
)

// newTestClient returns a client over a fake browser, with every wait
// shrunk so timeout paths finish in milliseconds.
func newTestClient(t *testing.T) (*Client, *domtest.Browser) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/reddit")
	t.Cleanup(cleanup)

	b := domtest.New()
	c := NewClient(b, ClientOptions{
		PollInterval:     time.Millisecond,
		PollTimeout:      10 * time.Millisecond,
		ExpandInterval:   time.Millisecond,
		ReplySettleDelay: time.Millisecond,
		WizardPause:      time.Millisecond,
	})
	return c, b
}

const loginPage = `<html><body>
<div id="header-bottom-right">
<form id="login_login-main">
<input name="user">
<input name="passwd">
<input id="rem-login-main" type="checkbox">
<button class="login-button">login</button>
</form>
</div>
</body></html>`

const loggedInPage = `<html><body>
<div id="header-bottom-right">
<a>tester</a>
<a class="logout-link">logout</a>
</div>
</body></html>`

const loggedOutPage = `<html><body>
<div id="header-bottom-right"></div>
</body></html>`

func TestLogin(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	b.Route(pageMain, loginPage)
	b.HandleClick("button.login-button", func(b *domtest.Browser) {
		b.SetHTML(loggedInPage)
	})

	err := c.Login(ctx, "tester", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "tester", c.Username())
}

func TestLoginTimeout(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	// the login button does nothing, so the logged-in marker never appears
	b.Route(pageMain, loginPage)

	err := c.Login(ctx, "tester", "wrong")
	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, "login", timeout.Op)
	require.Equal(t, "tester", timeout.Ident)
	require.Equal(t, "", c.Username())
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	b.Route(pageMain, loginPage)
	b.HandleClick("button.login-button", func(b *domtest.Browser) {
		b.SetHTML(loggedInPage)
	})
	b.HandleClick("a.logout-link", func(b *domtest.Browser) {
		b.SetHTML(loggedOutPage)
	})

	require.NoError(t, c.Login(ctx, "tester", "hunter2"))
	require.NoError(t, c.Logout(ctx))
	require.Equal(t, "", c.Username())
}

func TestDismissAgeGate(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)

	gatePage := `<html><body>
<h1>You must be over eighteen</h1>
<button name="over18" class="c-btn">continue</button>
</body></html>`

	b.Route(pageSubreddit+"gonewild/hot", gatePage)
	b.HandleClick("button[name='over18']", func(b *domtest.Browser) {
		b.SetHTML(golangListingPage2)
	})

	posts, err := c.GetPosts(ctx, "gonewild", SubpageHot, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "carol", posts[0].Author)
}

func TestContextCancelStopsWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c, b := newTestClient(t)

	b.Route(pageMain, loginPage)
	cancel()

	err := c.Login(ctx, "tester", "hunter2")
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}
