package reddit

import (
	"context"
	"strings"

	"redditauto/lib/browser"
)

// PostTarget is a navigable reference to a post page, built either from a
// previously fetched Post or from a bare link.
type PostTarget struct {
	url string
}

// TargetLink builds a target from a permalink or a full URL.
func TargetLink(link string) PostTarget {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return PostTarget{url: link}
	}
	return PostTarget{url: pageMainNoSlash + link}
}

// Target returns a navigable reference to the post's page.
func (p Post) Target() PostTarget {
	return TargetLink(p.Link)
}

func (t PostTarget) URL() string { return t.url }

func (c *Client) openPost(ctx context.Context, target PostTarget) error {
	return c.open(ctx, target.url)
}

// openSubreddit navigates to a subreddit's listing. The subreddit may be a
// bare name or a full listing URL (anything containing a slash).
func (c *Client) openSubreddit(ctx context.Context, subreddit string, subpage Subpage) error {
	if err := subpage.validate(); err != nil {
		return err
	}
	if strings.Contains(subreddit, "/") {
		return c.open(ctx, subreddit)
	}
	return c.open(ctx, pageSubreddit+subreddit+"/"+string(subpage))
}

// postRows returns the listing's post divs in document order.
func (c *Client) postRows(ctx context.Context) ([]browser.Element, error) {
	return c.browser.FindAll(ctx, browser.CSS("#siteTable > div[data-type='link']"))
}

func (c *Client) buildPost(ctx context.Context, el browser.Element) (Post, error) {
	var post Post
	var err error

	post.Author, err = el.Attr(ctx, "data-author")
	if err != nil {
		return post, err
	}
	post.Link, err = el.Attr(ctx, "data-permalink")
	if err != nil {
		return post, err
	}
	post.Karma, err = attrCount(ctx, el, "data-score")
	if err != nil {
		return post, err
	}
	title, err := el.Find(ctx, browser.CSS("a.title"))
	if err != nil {
		return post, err
	}
	post.Title, err = title.Text(ctx)
	if err != nil {
		return post, err
	}
	post.Vote, err = entryVote(ctx, el)
	if err != nil {
		return post, err
	}
	post.NumberOfComments, err = attrCount(ctx, el, "data-comments-count")
	if err != nil {
		return post, err
	}
	return post, nil
}

// GetPosts reads a subreddit listing, following the next-page button up to
// maxPages pages (maxPages <= 0 reads until the listing ends).
func (c *Client) GetPosts(ctx context.Context, subreddit string, subpage Subpage, maxPages int) ([]Post, error) {
	ctx, span := tracer.Start(ctx, "client:GetPosts")
	defer span.End()

	if err := subpage.validate(); err != nil {
		return nil, err
	}
	if err := c.openSubreddit(ctx, subreddit, subpage); err != nil {
		return nil, err
	}

	return collectPages(ctx, maxPages,
		func(ctx context.Context) ([]Post, error) {
			rows, err := c.postRows(ctx)
			if err != nil {
				return nil, err
			}
			posts := make([]Post, 0, len(rows))
			for _, row := range rows {
				post, err := c.buildPost(ctx, row)
				if err != nil {
					return nil, err
				}
				posts = append(posts, post)
			}
			return posts, nil
		},
		func(ctx context.Context) (bool, error) {
			return c.movePage(ctx, "next")
		},
	)
}

// originalPostVote reads the vote state of the post a permalink page is
// about. Unlike listing rows, the opened post marks its vote on the arrow
// column itself.
func (c *Client) originalPostVote(ctx context.Context) (Vote, error) {
	midcol, err := c.browser.Find(ctx, browser.CSS("#siteTable div.midcol"))
	if err != nil {
		return VoteNone, err
	}
	class, err := midcol.Attr(ctx, "class")
	if err != nil {
		return VoteNone, err
	}
	for _, field := range strings.Fields(class) {
		switch field {
		case "likes":
			return VoteUp, nil
		case "dislikes":
			return VoteDown, nil
		}
	}
	return VoteNone, nil
}

// VotePost opens the post and votes it. Voting the already-cast direction
// is a no-op.
func (c *Client) VotePost(ctx context.Context, target PostTarget, vote Vote) error {
	ctx, span := tracer.Start(ctx, "client:VotePost")
	defer span.End()

	if err := vote.validate(); err != nil {
		return err
	}
	if err := c.openPost(ctx, target); err != nil {
		return err
	}
	current, err := c.originalPostVote(ctx)
	if err != nil {
		return err
	}
	if current == vote {
		return nil
	}
	arrow, err := c.browser.Find(ctx, browser.CSS("#siteTable div.midcol div."+string(vote)))
	if err != nil {
		return err
	}
	return arrow.Click(ctx)
}

// ReplyPost opens the post, submits a top-level comment and checks for the
// rejection marker after a settle delay. There is no positive completion
// signal to wait on.
func (c *Client) ReplyPost(ctx context.Context, target PostTarget, answer string) error {
	ctx, span := tracer.Start(ctx, "client:ReplyPost")
	defer span.End()

	if err := c.openPost(ctx, target); err != nil {
		return err
	}
	area, err := c.browser.Find(ctx, browser.CSS("div.commentarea"))
	if err != nil {
		return err
	}
	field, err := area.Find(ctx, browser.CSS("textarea[name='text']"))
	if err != nil {
		return err
	}
	if err := field.SetValue(ctx, answer); err != nil {
		return err
	}
	save, err := area.Find(ctx, browser.Text("button", "save"))
	if err != nil {
		return err
	}
	if err := save.Click(ctx); err != nil {
		return err
	}
	return c.awaitReplySettled(ctx)
}

// replyError reports whether the visible reply-error marker is present,
// along with its text.
func (c *Client) replyError(ctx context.Context) (string, bool, error) {
	marker, err := c.browser.Find(ctx, browser.CSS("span.error[style='']"))
	if err == browser.ErrElementNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	reason, err := marker.Text(ctx)
	if err != nil {
		return "", true, err
	}
	return reason, true, nil
}
