package reddit

import (
	"context"
	"log/slog"
	"time"
)

// The site is eventually consistent from the browser's point of view:
// logins, submissions and subreddit creation settle some time after the
// click. Each wait polls a presence/absence marker at a fixed interval up
// to a fixed bound and fails with a TimeoutError naming the operation.

const (
	defaultPollInterval   = 250 * time.Millisecond
	defaultPollTimeout    = 10 * time.Second
	defaultExpandInterval = 500 * time.Millisecond
	defaultReplySettle    = 2 * time.Second
	defaultWizardPause    = 5 * time.Second
)

func (c *Client) await(ctx context.Context, op, ident string, done func(ctx context.Context) (bool, error)) error {
	var elapsed time.Duration
	for {
		ok, err := done(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if elapsed >= c.pollTimeout {
			slog.WarnContext(ctx, "wait exhausted", "op", op, "ident", ident)
			return &TimeoutError{Op: op, Ident: ident, After: c.pollTimeout}
		}
		if err := c.pause(ctx, c.pollInterval); err != nil {
			return err
		}
		elapsed += c.pollInterval
	}
}

func (c *Client) pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) awaitLogin(ctx context.Context, username string) error {
	return c.await(ctx, "login", username, func(ctx context.Context) (bool, error) {
		return c.IsLoggedIn(ctx, username)
	})
}

func (c *Client) awaitLogout(ctx context.Context, username string) error {
	return c.await(ctx, "logout", username, func(ctx context.Context) (bool, error) {
		loggedIn, err := c.IsLoggedIn(ctx, username)
		return !loggedIn, err
	})
}

// awaitSubmitClosed waits for the submission form to go away, which is the
// only signal the page gives that a submit went through.
func (c *Client) awaitSubmitClosed(ctx context.Context) error {
	return c.await(ctx, "submit", "", func(ctx context.Context) (bool, error) {
		open, err := c.isSubmitOpen(ctx)
		return !open, err
	})
}

func (c *Client) awaitSubredditCreated(ctx context.Context, name string) error {
	return c.await(ctx, "subreddit creation", name, c.didCreateSubreddit)
}

// awaitReplySettled is not a poll: replies have no reliable completion
// marker, only an error marker that may appear shortly after submission. A
// fixed delay followed by an error check is the strongest contract the page
// offers.
func (c *Client) awaitReplySettled(ctx context.Context) error {
	if err := c.pause(ctx, c.replySettle); err != nil {
		return err
	}
	reason, failed, err := c.replyError(ctx)
	if err != nil {
		return err
	}
	if failed {
		return &ReplyError{Reason: reason}
	}
	return nil
}
