package reddit

import (
	"context"
	"fmt"

	"redditauto/lib/browser"
)

// messageRows returns the message divs of the currently open box page in
// document order.
func (c *Client) messageRows(ctx context.Context) ([]browser.Element, error) {
	return c.browser.FindAll(ctx, browser.CSS("#siteTable div[id^='thing_']"))
}

// buildMessage extracts one Message. Comment-type messages carry the post
// they reply to, the post's subreddit and a votable arrow column; plain
// messages have none of those, and their pseudo-subreddit is the sender.
func (c *Client) buildMessage(ctx context.Context, el browser.Element) (Message, error) {
	var msg Message

	typ, err := el.Attr(ctx, "data-type")
	if err != nil {
		return msg, err
	}
	msg.Type = MessageType(typ)

	msg.Author, err = el.Attr(ctx, "data-author")
	if err != nil {
		return msg, err
	}

	if msg.Type == MessageTypeComment {
		title, err := el.Find(ctx, browser.CSS("p.subject a.title"))
		if err != nil {
			return msg, err
		}
		msg.Post, err = title.Attr(ctx, "href")
		if err != nil {
			return msg, err
		}
		msg.Subreddit, err = el.Attr(ctx, "data-subreddit")
		if err != nil {
			return msg, err
		}
		msg.Vote, err = midcolVote(ctx, el)
		if err != nil {
			return msg, err
		}
	} else {
		msg.Subreddit = msg.Author
	}

	body, err := el.Find(ctx, browser.CSS("div.md"))
	if err != nil {
		return msg, err
	}
	msg.Content, err = body.Text(ctx)
	if err != nil {
		return msg, err
	}
	return msg, nil
}

// movePage clicks the listing's next/prev button. Reports false without
// clicking when the button is absent, i.e. the listing has no further page
// in that direction.
func (c *Client) movePage(ctx context.Context, direction string) (bool, error) {
	button, err := c.browser.Find(ctx, browser.CSS("span."+direction+"-button"))
	if err == browser.ErrElementNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := button.Click(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) openMessageBox(ctx context.Context, box MessageBox) error {
	if err := box.validate(); err != nil {
		return err
	}
	return c.open(ctx, pageMessages+string(box))
}

// GetMessages reads the given message box. With allPages it follows the
// next-page button until the box is exhausted; otherwise only the first
// page is read.
func (c *Client) GetMessages(ctx context.Context, box MessageBox, allPages bool) ([]Message, error) {
	ctx, span := tracer.Start(ctx, "client:GetMessages")
	defer span.End()

	if err := c.openMessageBox(ctx, box); err != nil {
		return nil, err
	}

	maxPages := 1
	if allPages {
		maxPages = 0
	}
	return collectPages(ctx, maxPages,
		func(ctx context.Context) ([]Message, error) {
			rows, err := c.messageRows(ctx)
			if err != nil {
				return nil, err
			}
			msgs := make([]Message, 0, len(rows))
			for _, row := range rows {
				msg, err := c.buildMessage(ctx, row)
				if err != nil {
					return nil, err
				}
				msgs = append(msgs, msg)
			}
			return msgs, nil
		},
		func(ctx context.Context) (bool, error) {
			return c.movePage(ctx, "next")
		},
	)
}

func (c *Client) messageRowAt(ctx context.Context, box MessageBox, index int) (browser.Element, error) {
	if err := c.openMessageBox(ctx, box); err != nil {
		return nil, err
	}
	rows, err := c.messageRows(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(rows) {
		return nil, &InvalidArgumentError{Param: "message index", Value: fmt.Sprint(index)}
	}
	return rows[index], nil
}

// VoteMessage votes the index-th message on the box's first page. Voting an
// already-cast direction is a no-op.
func (c *Client) VoteMessage(ctx context.Context, box MessageBox, index int, vote Vote) error {
	ctx, span := tracer.Start(ctx, "client:VoteMessage")
	defer span.End()

	if err := vote.validate(); err != nil {
		return err
	}
	row, err := c.messageRowAt(ctx, box, index)
	if err != nil {
		return err
	}
	current, err := midcolVote(ctx, row)
	if err != nil {
		return err
	}
	return clickVoteArrow(ctx, row, current, vote)
}

// ReplyMessage replies to the index-th message on the box's first page.
func (c *Client) ReplyMessage(ctx context.Context, box MessageBox, index int, answer string) error {
	ctx, span := tracer.Start(ctx, "client:ReplyMessage")
	defer span.End()

	row, err := c.messageRowAt(ctx, box, index)
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
	field, err := row.Find(ctx, browser.CSS("textarea"))
	if err != nil {
		return err
	}
	if err := field.SetValue(ctx, answer); err != nil {
		return err
	}
	save, err := row.Find(ctx, browser.Text("button", "save"))
	if err != nil {
		return err
	}
	return save.Click(ctx)
}
