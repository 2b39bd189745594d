package reddit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"redditauto/lib/browser"
)

func (c *Client) buildComment(ctx context.Context, el browser.Element) (Comment, error) {
	var comment Comment
	var err error

	comment.Author, err = el.Attr(ctx, "data-author")
	if err != nil {
		return comment, err
	}
	comment.Link, err = el.Attr(ctx, "data-permalink")
	if err != nil {
		return comment, err
	}
	body, err := el.Find(ctx, browser.CSS("div.usertext-body"))
	if err != nil {
		return comment, err
	}
	comment.Content, err = body.Text(ctx)
	if err != nil {
		return comment, err
	}
	comment.Vote, err = entryVote(ctx, el)
	if err != nil {
		return comment, err
	}

	// the score is hidden by site policy on some comments; karma stays
	// nil in that case
	scored, err := browser.ExistsIn(ctx, el, browser.CSS("span.score"))
	if err != nil {
		return comment, err
	}
	if scored {
		karma, err := scoreSpanKarma(ctx, el, comment.Vote)
		if err != nil {
			return comment, err
		}
		comment.Karma = &karma
	}
	return comment, nil
}

func commentsOnly(ctx context.Context, els []browser.Element) ([]browser.Element, error) {
	var out []browser.Element
	for _, el := range els {
		typ, err := el.Attr(ctx, "data-type")
		if err != nil {
			return nil, err
		}
		if typ == "comment" {
			out = append(out, el)
		}
	}
	return out, nil
}

// topLevelCommentRows returns the top-level comment divs of the open post
// page in document order.
func (c *Client) topLevelCommentRows(ctx context.Context) ([]browser.Element, error) {
	listing, err := c.browser.Find(ctx, browser.CSS("div.commentarea div.sitetable.nestedlisting"))
	if err != nil {
		return nil, err
	}
	children, err := listing.Children(ctx)
	if err != nil {
		return nil, err
	}
	return commentsOnly(ctx, children)
}

// replyRows returns the reply divs nested under a comment. The page
// sometimes declares a reply count but renders no child container at all;
// that is an empty reply list, not an error.
func (c *Client) replyRows(ctx context.Context, el browser.Element) ([]browser.Element, error) {
	child, err := el.Find(ctx, browser.CSS("div.child"))
	if errors.Is(err, browser.ErrElementNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	listing, err := child.Find(ctx, browser.CSS("div"))
	if errors.Is(err, browser.ErrElementNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	children, err := listing.Children(ctx)
	if err != nil {
		return nil, err
	}
	return commentsOnly(ctx, children)
}

// walkComments builds a sibling set of comment rows and recurses into the
// replies of any row whose declared reply count is nonzero. Tree depth
// mirrors the page's nesting and is unbounded.
func (c *Client) walkComments(ctx context.Context, rows []browser.Element) ([]Comment, error) {
	comments := make([]Comment, 0, len(rows))
	for _, row := range rows {
		comment, err := c.buildComment(ctx, row)
		if err != nil {
			return nil, err
		}

		declared, err := row.Attr(ctx, "data-replies")
		if err != nil {
			return nil, err
		}
		if declared != "" && declared != "0" {
			replyEls, err := c.replyRows(ctx, row)
			if err != nil {
				return nil, err
			}
			comment.Replies, err = c.walkComments(ctx, replyEls)
			if err != nil {
				return nil, err
			}
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// ExpandAllComments clicks "load more comments" until none remains. Lookup
// and click failures during the loop mean the page is mid-update and are
// treated as "try again", not as fatal.
func (c *Client) ExpandAllComments(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:ExpandAllComments")
	defer span.End()

	for {
		more, err := c.browser.Find(ctx, browser.CSS("span.morecomments"))
		if errors.Is(err, browser.ErrElementNotFound) {
			return nil
		}
		if err != nil {
			slog.DebugContext(ctx, "transient failure while expanding comments", "err", err)
		} else if err := more.Click(ctx); err != nil {
			slog.DebugContext(ctx, "transient failure clicking load-more", "err", err)
		}
		if err := c.pause(ctx, c.expandInterval); err != nil {
			return err
		}
	}
}

// GetComments opens the post and walks its full comment tree. With expand
// it first loads every collapsed branch.
func (c *Client) GetComments(ctx context.Context, target PostTarget, expand bool) ([]Comment, error) {
	ctx, span := tracer.Start(ctx, "client:GetComments")
	defer span.End()

	if err := c.openPost(ctx, target); err != nil {
		return nil, err
	}
	if expand {
		if err := c.ExpandAllComments(ctx); err != nil {
			return nil, err
		}
	}
	rows, err := c.topLevelCommentRows(ctx)
	if err != nil {
		return nil, err
	}
	return c.walkComments(ctx, rows)
}

// findCommentRow locates a comment's row on the currently open page by its
// permalink.
func (c *Client) findCommentRow(ctx context.Context, permalink string) (browser.Element, error) {
	return c.browser.Find(ctx, browser.CSS(fmt.Sprintf("div[data-permalink='%s']", permalink)))
}

// VoteComment votes a comment on the currently open post page, addressed by
// permalink. Voting the already-cast direction is a no-op.
func (c *Client) VoteComment(ctx context.Context, permalink string, vote Vote) error {
	ctx, span := tracer.Start(ctx, "client:VoteComment")
	defer span.End()

	if err := vote.validate(); err != nil {
		return err
	}
	row, err := c.findCommentRow(ctx, permalink)
	if err != nil {
		return err
	}
	current, err := entryVote(ctx, row)
	if err != nil {
		return err
	}
	return clickVoteArrow(ctx, row, current, vote)
}

// ReplyComment replies to a comment on the currently open post page,
// addressed by permalink.
func (c *Client) ReplyComment(ctx context.Context, permalink, answer string) error {
	ctx, span := tracer.Start(ctx, "client:ReplyComment")
	defer span.End()

	row, err := c.findCommentRow(ctx, permalink)
	if err != nil {
		return err
	}
	replyLink, err := row.Find(ctx, browser.Text("li", "reply"))
	if err != nil {
		return err
	}
	if err := replyLink.Click(ctx); err != nil {
		return err
	}
	field, err := row.Find(ctx, browser.CSS("textarea[name='text']"))
	if err != nil {
		return err
	}
	if err := field.SetValue(ctx, answer); err != nil {
		return err
	}
	save, err := row.Find(ctx, browser.CSS("button.save"))
	if err != nil {
		return err
	}
	return save.Click(ctx)
}
