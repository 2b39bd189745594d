// Package reddit automates a logged-in reddit session through a browser.
// Every operation is a sequence of DOM lookups and clicks against the live
// page; records it returns are snapshots, not synced views.
//
// One Client owns one browser session and must be driven from one goroutine;
// there is no internal locking because there is no concurrent access.
package reddit

import (
	"context"
	"log/slog"
	"time"

	"redditauto/lib/browser"

	"go.opentelemetry.io/otel/codes"
)

const (
	pageMain        = "https://old.reddit.com/"
	pageMainNoSlash = "https://old.reddit.com"
	pageMessages    = "https://old.reddit.com/message/"
	pageSubreddit   = "https://old.reddit.com/r/"
	pageUser        = "https://old.reddit.com/user/"
	pageCreateSub   = "https://old.reddit.com/subreddits/create"
	// the modern UI, used only where the old one has no equivalent
	pageSubredditNew = "https://www.reddit.com/r/"
)

// Client is the session facade. The zero value is not usable; construct
// with NewClient.
type Client struct {
	browser browser.Browser
	// the authenticated identity: set by Login, cleared by Logout, empty
	// when nobody is logged in
	username string

	pollInterval   time.Duration
	pollTimeout    time.Duration
	expandInterval time.Duration
	replySettle    time.Duration
	wizardPause    time.Duration
}

type ClientOptions struct {
	// marker-poll cadence, 250ms if zero
	PollInterval time.Duration
	// marker-poll bound, 10s if zero
	PollTimeout time.Duration
	// "load more comments" poll cadence, 500ms if zero
	ExpandInterval time.Duration
	// delay before checking a reply for rejection, 2s if zero
	ReplySettleDelay time.Duration
	// pause between account-wizard phase moves, 5s if zero
	WizardPause time.Duration
}

func NewClient(b browser.Browser, opts ClientOptions) *Client {
	c := &Client{
		browser:        b,
		pollInterval:   opts.PollInterval,
		pollTimeout:    opts.PollTimeout,
		expandInterval: opts.ExpandInterval,
		replySettle:    opts.ReplySettleDelay,
		wizardPause:    opts.WizardPause,
	}
	if c.pollInterval == 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.pollTimeout == 0 {
		c.pollTimeout = defaultPollTimeout
	}
	if c.expandInterval == 0 {
		c.expandInterval = defaultExpandInterval
	}
	if c.replySettle == 0 {
		c.replySettle = defaultReplySettle
	}
	if c.wizardPause == 0 {
		c.wizardPause = defaultWizardPause
	}
	return c
}

// Username returns the authenticated identity, or "" when logged out.
func (c *Client) Username() string { return c.username }

// IsLoggedIn reports whether the page shows the given account as logged in.
func (c *Client) IsLoggedIn(ctx context.Context, username string) (bool, error) {
	return browser.Exists(ctx, c.browser, browser.Text("a", username))
}

// Login signs the account in and waits for the page to confirm it.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	if err := c.open(ctx, pageMain); err != nil {
		return err
	}

	user, err := c.browser.Find(ctx, browser.CSS("input[name='user']"))
	if err != nil {
		return err
	}
	if err := user.SetValue(ctx, username); err != nil {
		return err
	}
	passwd, err := c.browser.Find(ctx, browser.CSS("input[name='passwd']"))
	if err != nil {
		return err
	}
	if err := passwd.SetValue(ctx, password); err != nil {
		return err
	}
	// keep the session alive across navigations
	remember, err := c.browser.Find(ctx, browser.CSS("#rem-login-main"))
	if err != nil {
		return err
	}
	if err := remember.Click(ctx); err != nil {
		return err
	}
	submit, err := c.browser.Find(ctx, browser.Text("button", "login"))
	if err != nil {
		return err
	}
	if err := submit.Click(ctx); err != nil {
		return err
	}

	if err := c.awaitLogin(ctx, username); err != nil {
		span.SetStatus(codes.Error, "login did not confirm")
		return err
	}
	c.username = username
	slog.DebugContext(ctx, "logged in", "username", username)
	return nil
}

// Logout signs the current account out and waits for the page to confirm it.
func (c *Client) Logout(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Logout")
	defer span.End()

	link, err := c.browser.Find(ctx, browser.Text("a", "logout"))
	if err != nil {
		return err
	}
	if err := link.Click(ctx); err != nil {
		return err
	}
	if err := c.awaitLogout(ctx, c.username); err != nil {
		return err
	}
	c.username = ""
	return nil
}

// open navigates and dismisses the over-18 interstitial when one appears.
// Both interstitial generations are checked: the legacy button form and the
// modern heading form.
func (c *Client) open(ctx context.Context, url string) error {
	if err := c.browser.Navigate(ctx, url); err != nil {
		return err
	}
	return c.dismissAgeGate(ctx)
}

func (c *Client) dismissAgeGate(ctx context.Context) error {
	legacy, err := browser.Exists(ctx, c.browser, browser.CSS("button[name='over18']"))
	if err != nil {
		return err
	}
	if legacy {
		slog.DebugContext(ctx, "dismissing over-18 interstitial")
		button, err := c.browser.Find(ctx, browser.Text("button", "continue"))
		if err != nil {
			return err
		}
		return button.Click(ctx)
	}

	modern, err := browser.Exists(ctx, c.browser,
		browser.Text("h3", "You must be 18+ to view this community"))
	if err != nil {
		return err
	}
	if modern {
		slog.DebugContext(ctx, "dismissing over-18 interstitial (new ui)")
		link, err := c.browser.Find(ctx, browser.Text("a", "Yes"))
		if err != nil {
			return err
		}
		return link.Click(ctx)
	}
	return nil
}
