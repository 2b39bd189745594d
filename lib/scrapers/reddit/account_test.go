package reddit

import (
	"context"
	"strings"
	"testing"

	"redditauto/lib/browser/domtest"

	"github.com/stretchr/testify/require"
)

const signupFrontPage = `<html><body>
<div id="header-bottom-right"><a class="signup-link">sign up</a></div>
</body></html>`

const signupIntroPage = `<html><body>
<button class="intro-next">Next</button>
</body></html>`

const signupPickerPage = `<html><body>
<button class="c-btn c-btn-primary subreddit-picker__subreddit-button">r/golang</button>
<button class="c-btn c-btn-primary subreddit-picker__subreddit-button">r/programming</button>
<button class="picker-next">Next</button>
</body></html>`

const signupRegisterPage = `<html><body>
<a class="username-generator__item">Suggested_Gopher</a>
<input id="user_reg">
<input id="passwd_reg">
<div id="g-recaptcha-response"></div>
<button class="reg-submit">Submit</button>
</body></html>`

func routeSignupWizard(b *domtest.Browser, username string) {
	b.Route(pageMain, signupFrontPage)
	b.HandleClick("a.signup-link", func(b *domtest.Browser) {
		b.SetHTML(signupIntroPage)
	})
	b.HandleClick("button.intro-next", func(b *domtest.Browser) {
		b.SetHTML(signupPickerPage)
	})
	b.HandleClick("button.picker-next", func(b *domtest.Browser) {
		b.SetHTML(signupRegisterPage)
	})
	b.HandleClick("button.reg-submit", func(b *domtest.Browser) {
		b.SetHTML(`<html><body><a>` + username + `</a></body></html>`)
	})
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)
	routeSignupWizard(b, "new_gopher")

	creds, err := c.CreateAccount(ctx, "new_gopher", "hunter2", "captcha-token")
	require.NoError(t, err)
	require.Equal(t, "new_gopher", creds.Username)
	require.Equal(t, "hunter2", creds.Password)

	// the community-picking script and the captcha injection both ran
	scripts := strings.Join(b.Scripts(), "\n")
	require.Contains(t, scripts, "subreddit-picker__subreddit-button")
	require.Contains(t, scripts, "g-recaptcha-response")
	require.Contains(t, scripts, "captcha-token")
}

func TestCreateAccountSuggestedUsername(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)
	routeSignupWizard(b, "Suggested_Gopher")

	creds, err := c.CreateAccount(ctx, "", "hunter2", "captcha-token")
	require.NoError(t, err)
	require.Equal(t, "Suggested_Gopher", creds.Username)
}
