package reddit

import (
	"context"
	"fmt"

	"redditauto/lib/browser"
)

// isSubmitOpen reports whether a submission form (either UI generation) is
// on the page.
func (c *Client) isSubmitOpen(ctx context.Context) (bool, error) {
	legacy, err := browser.Exists(ctx, c.browser, browser.CSS("textarea[name='title']"))
	if err != nil {
		return false, err
	}
	if legacy {
		return true, nil
	}
	return browser.Exists(ctx, c.browser, browser.CSS("textarea[placeholder='Title']"))
}

// HasSubmitError reports whether the page shows the submission-cooldown
// error, the usual reason a submit refuses to go through.
func (c *Client) HasSubmitError(ctx context.Context) (bool, error) {
	return browser.Exists(ctx, c.browser,
		browser.Text("span", "you are doing that too much. try again in"))
}

// SubmitLink submits a link post through the legacy submission form and
// waits for the form to close.
func (c *Client) SubmitLink(ctx context.Context, subreddit, url, title string) error {
	ctx, span := tracer.Start(ctx, "client:SubmitLink")
	defer span.End()

	if err := c.open(ctx, pageSubreddit+subreddit+"/submit"); err != nil {
		return err
	}
	field, err := c.browser.Find(ctx, browser.CSS("#url"))
	if err != nil {
		return err
	}
	if err := field.SetValue(ctx, url); err != nil {
		return err
	}
	titleField, err := c.browser.Find(ctx, browser.CSS("textarea[name='title']"))
	if err != nil {
		return err
	}
	if err := titleField.SetValue(ctx, title); err != nil {
		return err
	}
	submit, err := c.browser.Find(ctx, browser.CSS("button[name='submit']"))
	if err != nil {
		return err
	}
	if err := submit.Click(ctx); err != nil {
		return err
	}
	return c.awaitSubmitClosed(ctx)
}

// SubmitText submits a self post through the legacy submission form and
// waits for the form to close.
func (c *Client) SubmitText(ctx context.Context, subreddit, title, text string) error {
	ctx, span := tracer.Start(ctx, "client:SubmitText")
	defer span.End()

	if err := c.open(ctx, pageSubreddit+subreddit+"/submit?selftext=true"); err != nil {
		return err
	}
	titleField, err := c.browser.Find(ctx, browser.CSS("textarea[name='title']"))
	if err != nil {
		return err
	}
	if err := titleField.SetValue(ctx, title); err != nil {
		return err
	}
	textField, err := c.browser.Find(ctx, browser.CSS("textarea[name='text']"))
	if err != nil {
		return err
	}
	if err := textField.SetValue(ctx, text); err != nil {
		return err
	}
	submit, err := c.browser.Find(ctx, browser.CSS("button[name='submit']"))
	if err != nil {
		return err
	}
	if err := submit.Click(ctx); err != nil {
		return err
	}
	return c.awaitSubmitClosed(ctx)
}

// subredditHasFlair reports whether the modern submission form offers a
// flair picker for the subreddit.
func (c *Client) subredditHasFlair(ctx context.Context) (bool, error) {
	unavailable, err := browser.Exists(ctx, c.browser,
		browser.CSS("div[aria-label='Not available for this community']"))
	if err != nil {
		return false, err
	}
	return !unavailable, nil
}

// setFlair opens the flair picker and selects the named flair, or the first
// offered one when flair is empty. A no-op for subreddits without flair.
func (c *Client) setFlair(ctx context.Context, flair string) error {
	hasFlair, err := c.subredditHasFlair(ctx)
	if err != nil {
		return err
	}
	if !hasFlair {
		return nil
	}

	opener, err := c.browser.Find(ctx, browser.CSS("div[aria-label='Add flair']"))
	if err != nil {
		return err
	}
	if err := opener.Click(ctx); err != nil {
		return err
	}

	picker, err := c.browser.Find(ctx, browser.CSS("div[aria-label='flair_picker']"))
	if err != nil {
		return err
	}
	var choice browser.Element
	if flair == "" {
		choice, err = picker.Find(ctx, browser.CSS("div"))
	} else {
		choice, err = picker.Find(ctx, browser.Text("span", flair))
	}
	if err != nil {
		return err
	}
	if err := choice.Click(ctx); err != nil {
		return err
	}

	apply, err := c.browser.Find(ctx, browser.Text("button", "Apply"))
	if err != nil {
		return err
	}
	return apply.Click(ctx)
}

// SubmitLinkNew submits a link post through the modern UI, optionally
// attaching a flair (empty picks the subreddit's first flair when one is
// offered), and waits for the form to close.
func (c *Client) SubmitLinkNew(ctx context.Context, subreddit, url, title, flair string) error {
	ctx, span := tracer.Start(ctx, "client:SubmitLinkNew")
	defer span.End()

	if err := c.open(ctx, pageSubredditNew+subreddit+"/submit"); err != nil {
		return err
	}

	linkTab, err := c.browser.Find(ctx, browser.Text("button", "Link"))
	if err == nil {
		if err := linkTab.Click(ctx); err != nil {
			return err
		}
	} else if err != browser.ErrElementNotFound {
		return err
	}

	titleField, err := c.browser.Find(ctx, browser.CSS("textarea[placeholder='Title']"))
	if err != nil {
		return err
	}
	if err := titleField.SetValue(ctx, title); err != nil {
		return err
	}
	urlField, err := c.browser.Find(ctx, browser.CSS("textarea[placeholder='Url']"))
	if err != nil {
		return err
	}
	if err := urlField.SetValue(ctx, url); err != nil {
		return err
	}

	if err := c.setFlair(ctx, flair); err != nil {
		return err
	}

	// the first Post button is the navbar's; the second submits
	buttons, err := c.browser.FindAll(ctx, browser.Text("button", "Post"))
	if err != nil {
		return err
	}
	if len(buttons) < 2 {
		return fmt.Errorf("submit button: %w", browser.ErrElementNotFound)
	}
	if err := buttons[1].Click(ctx); err != nil {
		return err
	}
	return c.awaitSubmitClosed(ctx)
}
