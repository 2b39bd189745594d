package reddit

import (
	"fmt"
	"time"
)

// InvalidArgumentError reports a value outside one of the closed parameter
// sets (subpage, sort, vote, message box, subreddit type, content policy).
// It is returned before any navigation happens.
type InvalidArgumentError struct {
	Param string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Param, e.Value)
}

// TimeoutError reports that a wait loop exhausted its bound.
type TimeoutError struct {
	Op string
	// the identifier the wait was about, e.g. the username for a login
	// wait; empty where there is none
	Ident string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Ident == "" {
		return fmt.Sprintf("timed out waiting for %s after %s", e.Op, e.After)
	}
	return fmt.Sprintf("timed out waiting for %s (%s) after %s", e.Op, e.Ident, e.After)
}

// UnknownActivityTypeError reports a user-activity row whose data-type is
// neither "link" nor "comment".
type UnknownActivityTypeError struct {
	Type string
}

func (e *UnknownActivityTypeError) Error() string {
	return fmt.Sprintf("unknown activity type: %q", e.Type)
}

// ReplyError reports that the site flagged a reply as rejected after
// submission.
type ReplyError struct {
	Reason string
}

func (e *ReplyError) Error() string {
	if e.Reason == "" {
		return "reply rejected"
	}
	return fmt.Sprintf("reply rejected: %s", e.Reason)
}
