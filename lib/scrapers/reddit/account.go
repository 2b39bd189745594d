package reddit

import (
	"context"
	"fmt"
	"log/slog"

	"redditauto/lib/browser"
)

// The signup wizard is a two-phase flow: a community-picking screen, then a
// registration screen. Which one is showing is only discoverable from a
// phase-specific marker element, and the order is not guaranteed, so the
// wizard is driven as a small state machine with at most two phase moves.

type wizardPhase string

const (
	phasePickCommunities wizardPhase = "picking-communities"
	phaseEnterData       wizardPhase = "entering-registration-data"
)

const pickerButtonSelector = "button.c-btn.c-btn-primary.subreddit-picker__subreddit-button"

// pickCommunitiesScript clicks a handful of suggested communities; the
// wizard refuses to advance with none picked.
const pickCommunitiesScript = `var buttons = document.getElementsByClassName('c-btn c-btn-primary subreddit-picker__subreddit-button');
for (var i = 0; i < 8; i++) {
buttons[i].click();
}`

func (c *Client) currentPhase(ctx context.Context) (wizardPhase, error) {
	picking, err := browser.Exists(ctx, c.browser, browser.CSS(pickerButtonSelector))
	if err != nil {
		return "", err
	}
	if picking {
		return phasePickCommunities, nil
	}
	return phaseEnterData, nil
}

// enterRegistrationData fills the registration screen. An empty username
// accepts the first site-suggested one; the CAPTCHA solution token is
// injected directly into the response field, obtaining it is the caller's
// problem.
func (c *Client) enterRegistrationData(ctx context.Context, username, password, captchaToken string) (Credentials, error) {
	creds := Credentials{Password: password}

	if username == "" {
		suggestion, err := c.browser.Find(ctx, browser.CSS("a.username-generator__item"))
		if err != nil {
			return creds, err
		}
		creds.Username, err = suggestion.Text(ctx)
		if err != nil {
			return creds, err
		}
		if err := suggestion.Click(ctx); err != nil {
			return creds, err
		}
	} else {
		creds.Username = username
		field, err := c.browser.Find(ctx, browser.CSS("#user_reg"))
		if err != nil {
			return creds, err
		}
		if err := field.SetValue(ctx, username); err != nil {
			return creds, err
		}
	}

	passwd, err := c.browser.Find(ctx, browser.CSS("#passwd_reg"))
	if err != nil {
		return creds, err
	}
	if err := passwd.SetValue(ctx, password); err != nil {
		return creds, err
	}

	if err := c.pause(ctx, c.wizardPause); err != nil {
		return creds, err
	}
	script := fmt.Sprintf(`document.getElementById("g-recaptcha-response").innerHTML=%q`, captchaToken)
	if err := c.browser.ExecuteScript(ctx, script); err != nil {
		return creds, err
	}
	if err := c.pause(ctx, c.wizardPause); err != nil {
		return creds, err
	}
	return creds, nil
}

// advanceWizard clicks whichever advance button the current phase renders.
func (c *Client) advanceWizard(ctx context.Context) error {
	for _, label := range []string{"Submit", "Next"} {
		button, err := c.browser.Find(ctx, browser.Text("button", label))
		if err == browser.ErrElementNotFound {
			continue
		}
		if err != nil {
			return err
		}
		if err := button.Click(ctx); err != nil {
			return err
		}
		return c.pause(ctx, c.wizardPause)
	}
	return nil
}

// CreateAccount drives the signup wizard and waits for the new account to
// show up as logged in. An empty username accepts a site-suggested one; the
// returned credentials carry whichever name was registered.
func (c *Client) CreateAccount(ctx context.Context, username, password, captchaToken string) (Credentials, error) {
	ctx, span := tracer.Start(ctx, "client:CreateAccount")
	defer span.End()

	if err := c.open(ctx, pageMain); err != nil {
		return Credentials{}, err
	}
	header, err := c.browser.Find(ctx, browser.CSS("#header-bottom-right"))
	if err != nil {
		return Credentials{}, err
	}
	signup, err := header.Find(ctx, browser.Text("a", "sign up"))
	if err != nil {
		return Credentials{}, err
	}
	if err := signup.Click(ctx); err != nil {
		return Credentials{}, err
	}
	if err := c.pause(ctx, c.wizardPause); err != nil {
		return Credentials{}, err
	}

	next, err := c.browser.Find(ctx, browser.Text("button", "Next"))
	if err != nil {
		return Credentials{}, err
	}
	if err := next.Click(ctx); err != nil {
		return Credentials{}, err
	}
	if err := c.pause(ctx, c.wizardPause); err != nil {
		return Credentials{}, err
	}

	var creds Credentials
	registered := false
	for move := 0; move < 2; move++ {
		phase, err := c.currentPhase(ctx)
		if err != nil {
			return creds, err
		}
		slog.DebugContext(ctx, "signup wizard phase", "phase", string(phase))

		switch phase {
		case phasePickCommunities:
			if err := c.browser.ExecuteScript(ctx, pickCommunitiesScript); err != nil {
				return creds, err
			}
		case phaseEnterData:
			if registered {
				break
			}
			creds, err = c.enterRegistrationData(ctx, username, password, captchaToken)
			if err != nil {
				return creds, err
			}
			registered = true
		}

		if err := c.advanceWizard(ctx); err != nil {
			return creds, err
		}
	}

	if !registered {
		return creds, fmt.Errorf("signup wizard never reached the registration screen")
	}
	if err := c.awaitLogin(ctx, creds.Username); err != nil {
		return creds, err
	}
	return creds, nil
}
