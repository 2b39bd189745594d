package reddit

import (
	"context"

	"redditauto/lib/browser"
)

// GetModerators returns the usernames listed on the subreddit's moderators
// page, in listing order.
func (c *Client) GetModerators(ctx context.Context, subreddit string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "client:GetModerators")
	defer span.End()

	if err := c.open(ctx, pageSubreddit+subreddit+"/about/moderators"); err != nil {
		return nil, err
	}
	spans, err := c.browser.FindAll(ctx, browser.CSS("div.moderator-table span.user"))
	if err != nil {
		return nil, err
	}
	mods := make([]string, 0, len(spans))
	for _, span := range spans {
		link, err := span.Find(ctx, browser.CSS("a"))
		if err != nil {
			return nil, err
		}
		name, err := link.Text(ctx)
		if err != nil {
			return nil, err
		}
		mods = append(mods, name)
	}
	return mods, nil
}

func (c *Client) sidebarCount(ctx context.Context, selector string) (int, error) {
	number, err := c.browser.Find(ctx, browser.CSS(selector))
	if err != nil {
		return 0, err
	}
	text, err := number.Text(ctx)
	if err != nil {
		return 0, err
	}
	return parseCount(text), nil
}

// GetSubreddit snapshots a subreddit's profile: subscriber and online
// counts, sidebar text and moderator list.
func (c *Client) GetSubreddit(ctx context.Context, subreddit string) (Subreddit, error) {
	ctx, span := tracer.Start(ctx, "client:GetSubreddit")
	defer span.End()

	result := Subreddit{Name: subreddit}
	if err := c.openSubreddit(ctx, subreddit, SubpageHot); err != nil {
		return result, err
	}

	var err error
	result.Subscribers, err = c.sidebarCount(ctx, "span.subscribers span.number")
	if err != nil {
		return result, err
	}
	result.UsersOnline, err = c.sidebarCount(ctx, "p.users-online span.number")
	if err != nil {
		return result, err
	}

	sidebar, err := c.browser.Find(ctx, browser.CSS("div.usertext-body"))
	if err != nil {
		return result, err
	}
	result.Sidebar, err = sidebar.Text(ctx)
	if err != nil {
		return result, err
	}

	result.Moderators, err = c.GetModerators(ctx, subreddit)
	if err != nil {
		return result, err
	}
	return result, nil
}

func (c *Client) didCreateSubreddit(ctx context.Context) (bool, error) {
	return browser.Exists(ctx, c.browser,
		browser.Text("p", "your subreddit has been created"))
}

// CreateSubreddit fills in the community-creation form and waits for the
// created confirmation.
func (c *Client) CreateSubreddit(ctx context.Context, sub NewSubreddit) error {
	ctx, span := tracer.Start(ctx, "client:CreateSubreddit")
	defer span.End()

	typeId, ok := subredditTypeIds[sub.Type]
	if !ok {
		return &InvalidArgumentError{Param: "subreddit type", Value: string(sub.Type)}
	}
	contentId, ok := contentPolicyIds[sub.Content]
	if !ok {
		return &InvalidArgumentError{Param: "content option", Value: string(sub.Content)}
	}

	if err := c.open(ctx, pageCreateSub); err != nil {
		return err
	}

	fields := []struct {
		selector string
		value    string
	}{
		{"#name", sub.Name},
		{"#title", sub.Title},
		{"textarea[name='public_description']", sub.Description},
		{"textarea[name='description']", sub.Sidebar},
		{"textarea[name='submit_text']", sub.Subtext},
	}
	for _, f := range fields {
		el, err := c.browser.Find(ctx, browser.CSS(f.selector))
		if err != nil {
			return err
		}
		if err := el.SetValue(ctx, f.value); err != nil {
			return err
		}
	}

	for _, radio := range []string{"#" + typeId, "#" + contentId} {
		el, err := c.browser.Find(ctx, browser.CSS(radio))
		if err != nil {
			return err
		}
		if err := el.Click(ctx); err != nil {
			return err
		}
	}

	create, err := c.browser.Find(ctx, browser.Text("button", "create"))
	if err != nil {
		return err
	}
	if err := create.Click(ctx); err != nil {
		return err
	}
	return c.awaitSubredditCreated(ctx, sub.Name)
}

// IsSubredditBanned reports whether the subreddit's page shows the
// community-ban notice.
func (c *Client) IsSubredditBanned(ctx context.Context, subreddit string) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:IsSubredditBanned")
	defer span.End()

	if err := c.open(ctx, pageSubreddit+subreddit); err != nil {
		return false, err
	}
	return browser.Exists(ctx, c.browser,
		browser.Text("h3", "This community has been banned"))
}
