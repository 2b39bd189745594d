package reddit

// The extraction layer: small pure helpers that turn element handles into
// scalars. Optional fields never error on absence; structurally mandatory
// lookups propagate whatever the browser reports.

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"redditauto/lib/browser"
)

// parseCount parses an integer out of page text, stripping digit-grouping
// commas first ("12,345" -> 12345). Like the page counters themselves it is
// forgiving: trailing junk is ignored ("56 points" -> 56) and text with no
// leading number at all counts as zero.
func parseCount(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0
	}
	return n
}

func attrCount(ctx context.Context, el browser.Element, name string) (int, error) {
	v, err := el.Attr(ctx, name)
	if err != nil {
		return 0, err
	}
	return parseCount(v), nil
}

// entryVote reads the vote state the page marks on a post, comment or
// activity row: the row's div.entry carries a "likes" or "dislikes" class
// for the logged-in account's vote. The result is always exactly one of
// up, down or none.
func entryVote(ctx context.Context, el browser.Element) (Vote, error) {
	entry, err := el.Find(ctx, browser.CSS("div.entry"))
	if err != nil {
		return VoteNone, err
	}
	class, err := entry.Attr(ctx, "class")
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

// midcolVote reads vote state from the vote-arrow column, which marks the
// cast arrow with an upmod/downmod class. Used for message rows, which have
// no entry marker.
func midcolVote(ctx context.Context, el browser.Element) (Vote, error) {
	up, err := browser.ExistsIn(ctx, el, browser.CSS("div.midcol div.upmod"))
	if err != nil {
		return VoteNone, err
	}
	if up {
		return VoteUp, nil
	}
	down, err := browser.ExistsIn(ctx, el, browser.CSS("div.midcol div.downmod"))
	if err != nil {
		return VoteNone, err
	}
	if down {
		return VoteDown, nil
	}
	return VoteNone, nil
}

// clickVoteArrow casts a vote by clicking the row's up or down arrow. A
// no-op when the row is already voted that way.
func clickVoteArrow(ctx context.Context, el browser.Element, current, want Vote) error {
	if err := want.validate(); err != nil {
		return err
	}
	if current == want {
		return nil
	}
	arrow, err := el.Find(ctx, browser.CSS("div.midcol div."+string(want)))
	if err != nil {
		return err
	}
	return arrow.Click(ctx)
}

// scoreSpanKarma reads one of the three tagline score spans on a comment
// row. The span order is fixed by the page: index 0 is the downvoted score,
// 1 the current score, 2 the upvoted score; which one is live depends on
// the account's vote.
func scoreSpanKarma(ctx context.Context, el browser.Element, vote Vote) (int, error) {
	idx := 1
	switch vote {
	case VoteUp:
		idx = 2
	case VoteDown:
		idx = 0
	}
	spans, err := el.FindAll(ctx, browser.CSS("p.tagline span.score"))
	if err != nil {
		return 0, err
	}
	if idx >= len(spans) {
		return 0, fmt.Errorf("tagline score span %d: %w", idx, browser.ErrElementNotFound)
	}
	text, err := spans[idx].Text(ctx)
	if err != nil {
		return 0, err
	}
	return parseCount(text), nil
}
