package reddit

import (
	"context"
	"fmt"
	"strings"

	"redditauto/lib/browser"
)

func (c *Client) openUserPage(ctx context.Context, user string) error {
	return c.open(ctx, pageUser+user)
}

// isFriend reports whether the open user page marks the user as a friend of
// the logged-in account. The toggle renders both friend links; the active
// one tells the state.
func (c *Client) isFriend(ctx context.Context) (bool, error) {
	toggle, err := c.browser.Find(ctx, browser.CSS("span.fancy-toggle-button"))
	if err != nil {
		return false, err
	}
	remove, err := toggle.Find(ctx, browser.Text("a", "- friends"))
	if err != nil {
		return false, err
	}
	class, err := remove.Attr(ctx, "class")
	if err != nil {
		return false, err
	}
	return strings.Contains(class, "active"), nil
}

// moderating returns the subreddit names in the open user page's moderator
// sidebar list.
func (c *Client) moderating(ctx context.Context) ([]string, error) {
	items, err := c.browser.FindAll(ctx, browser.CSS("#side-mod-list li"))
	if err != nil {
		return nil, err
	}
	subs := make([]string, 0, len(items))
	for _, item := range items {
		link, err := item.Find(ctx, browser.CSS("a"))
		if err != nil {
			return nil, err
		}
		// the link title is "r/<name>"
		title, err := link.Attr(ctx, "title")
		if err != nil {
			return nil, err
		}
		parts := strings.SplitN(title, "/", 2)
		if len(parts) == 2 {
			subs = append(subs, parts[1])
		}
	}
	return subs, nil
}

// GetUser snapshots a user's profile. Returns nil without error when the
// site renders its profile-not-found page. Friend status is always false
// when no account is logged in.
func (c *Client) GetUser(ctx context.Context, user string) (*User, error) {
	ctx, span := tracer.Start(ctx, "client:GetUser")
	defer span.End()

	if err := c.openUserPage(ctx, user); err != nil {
		return nil, err
	}
	missing, err := browser.Exists(ctx, c.browser, browser.CSS("#classy-error"))
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}

	result := &User{Name: user}

	karma, err := c.browser.FindAll(ctx, browser.CSS("span.karma"))
	if err != nil {
		return nil, err
	}
	if len(karma) < 2 {
		return nil, fmt.Errorf("karma spans: %w", browser.ErrElementNotFound)
	}
	postKarma, err := karma[0].Text(ctx)
	if err != nil {
		return nil, err
	}
	result.PostKarma = parseCount(postKarma)
	commentKarma, err := karma[1].Text(ctx)
	if err != nil {
		return nil, err
	}
	result.CommentKarma = parseCount(commentKarma)

	if c.username != "" {
		result.IsFriend, err = c.isFriend(ctx)
		if err != nil {
			return nil, err
		}
	}

	isMod, err := browser.Exists(ctx, c.browser, browser.CSS("#side-mod-list"))
	if err != nil {
		return nil, err
	}
	if isMod {
		result.Moderating, err = c.moderating(ctx)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// AddFriend friends the user; a no-op when already friends.
func (c *Client) AddFriend(ctx context.Context, user string) error {
	ctx, span := tracer.Start(ctx, "client:AddFriend")
	defer span.End()

	if err := c.openUserPage(ctx, user); err != nil {
		return err
	}
	already, err := c.isFriend(ctx)
	if err != nil {
		return err
	}
	if already {
		return nil
	}
	link, err := c.browser.Find(ctx, browser.Text("a", "+ friends"))
	if err != nil {
		return err
	}
	return link.Click(ctx)
}

// RemoveFriend unfriends the user; a no-op when not friends.
func (c *Client) RemoveFriend(ctx context.Context, user string) error {
	ctx, span := tracer.Start(ctx, "client:RemoveFriend")
	defer span.End()

	if err := c.openUserPage(ctx, user); err != nil {
		return err
	}
	friends, err := c.isFriend(ctx)
	if err != nil {
		return err
	}
	if !friends {
		return nil
	}
	link, err := c.browser.Find(ctx, browser.Text("a", "- friends"))
	if err != nil {
		return err
	}
	return link.Click(ctx)
}

// IsUserBanned reports whether the user's page is gone or shows the
// suspension notice.
func (c *Client) IsUserBanned(ctx context.Context, user string) (bool, error) {
	ctx, span := tracer.Start(ctx, "client:IsUserBanned")
	defer span.End()

	if err := c.openUserPage(ctx, user); err != nil {
		return false, err
	}
	gone, err := browser.Exists(ctx, c.browser, browser.CSS("#classy-error"))
	if err != nil {
		return false, err
	}
	if gone {
		return true, nil
	}
	return browser.Exists(ctx, c.browser,
		browser.Text("h3", "This account has been suspended"))
}

// GetBannedSubreddits scans the full messages box for permanent-ban notices
// and returns the subreddits that sent them. Ban notices arrive as messages
// whose pseudo-subreddit (the author) is the banning subreddit.
func (c *Client) GetBannedSubreddits(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "client:GetBannedSubreddits")
	defer span.End()

	msgs, err := c.GetMessages(ctx, BoxMessages, true)
	if err != nil {
		return nil, err
	}
	var banned []string
	for _, msg := range msgs {
		if strings.Contains(msg.Content, "You have been permanently banned") {
			banned = append(banned, msg.Author)
		}
	}
	return banned, nil
}

// activityRows returns the profile listing's activity divs in document
// order.
func (c *Client) activityRows(ctx context.Context) ([]browser.Element, error) {
	return c.browser.FindAll(ctx, browser.CSS("#siteTable > div[id*='thing']"))
}

// activityKarma extracts an activity's score. Comment activities carry the
// comment tagline's indexed score spans; link activities carry one of three
// score divs whose title attribute holds the number, selected by vote
// state.
func (c *Client) activityKarma(ctx context.Context, el browser.Element, typ ActivityType, vote Vote) (int, error) {
	switch typ {
	case ActivityComment:
		return scoreSpanKarma(ctx, el, vote)
	case ActivityLink:
		variant := "unvoted"
		switch vote {
		case VoteUp:
			variant = "likes"
		case VoteDown:
			variant = "dislikes"
		}
		score, err := el.Find(ctx, browser.CSS("div.score."+variant))
		if err != nil {
			return 0, err
		}
		title, err := score.Attr(ctx, "title")
		if err != nil {
			return 0, err
		}
		return parseCount(title), nil
	}
	return 0, &UnknownActivityTypeError{Type: string(typ)}
}

func (c *Client) buildActivity(ctx context.Context, el browser.Element) (UserActivity, error) {
	var activity UserActivity

	typ, err := el.Attr(ctx, "data-type")
	if err != nil {
		return activity, err
	}
	activity.Type = ActivityType(typ)
	if activity.Type != ActivityLink && activity.Type != ActivityComment {
		return activity, &UnknownActivityTypeError{Type: typ}
	}

	activity.Link, err = el.Attr(ctx, "data-permalink")
	if err != nil {
		return activity, err
	}
	activity.Subreddit, err = el.Attr(ctx, "data-subreddit")
	if err != nil {
		return activity, err
	}
	title, err := el.Find(ctx, browser.CSS("a.title"))
	if err != nil {
		return activity, err
	}
	activity.Title, err = title.Text(ctx)
	if err != nil {
		return activity, err
	}

	if activity.Type == ActivityLink {
		activity.Content = activity.Title
	} else {
		body, err := el.Find(ctx, browser.CSS("div.usertext-body"))
		if err != nil {
			return activity, err
		}
		activity.Content, err = body.Text(ctx)
		if err != nil {
			return activity, err
		}
	}

	activity.Vote, err = entryVote(ctx, el)
	if err != nil {
		return activity, err
	}
	activity.Karma, err = c.activityKarma(ctx, el, activity.Type, activity.Vote)
	if err != nil {
		return activity, err
	}
	return activity, nil
}

// GetUserActivities reads a user's profile listing in the given sort order,
// following the next-page button up to maxPages pages (maxPages <= 0 reads
// until the listing ends).
func (c *Client) GetUserActivities(ctx context.Context, user string, sortby SortBy, maxPages int) ([]UserActivity, error) {
	ctx, span := tracer.Start(ctx, "client:GetUserActivities")
	defer span.End()

	if err := sortby.validate(); err != nil {
		return nil, err
	}
	if err := c.open(ctx, pageUser+user+"/?sort="+string(sortby)); err != nil {
		return nil, err
	}

	return collectPages(ctx, maxPages,
		func(ctx context.Context) ([]UserActivity, error) {
			rows, err := c.activityRows(ctx)
			if err != nil {
				return nil, err
			}
			activities := make([]UserActivity, 0, len(rows))
			for _, row := range rows {
				activity, err := c.buildActivity(ctx, row)
				if err != nil {
					return nil, err
				}
				activities = append(activities, activity)
			}
			return activities, nil
		},
		func(ctx context.Context) (bool, error) {
			return c.movePage(ctx, "next")
		},
	)
}

// VoteActivity votes the index-th activity on the open profile listing's
// first page.
func (c *Client) VoteActivity(ctx context.Context, user string, sortby SortBy, index int, vote Vote) error {
	ctx, span := tracer.Start(ctx, "client:VoteActivity")
	defer span.End()

	if err := vote.validate(); err != nil {
		return err
	}
	if err := sortby.validate(); err != nil {
		return err
	}
	if err := c.open(ctx, pageUser+user+"/?sort="+string(sortby)); err != nil {
		return err
	}
	rows, err := c.activityRows(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(rows) {
		return &InvalidArgumentError{Param: "activity index", Value: fmt.Sprint(index)}
	}
	current, err := entryVote(ctx, rows[index])
	if err != nil {
		return err
	}
	return clickVoteArrow(ctx, rows[index], current, vote)
}
