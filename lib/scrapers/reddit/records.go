package reddit

// Records are immutable snapshots of page state at extraction time; nothing
// here is kept in sync with the site afterwards.

// Vote is the logged-in account's vote on an item. The zero value means not
// voted.
type Vote string

const (
	VoteNone Vote = ""
	VoteUp   Vote = "up"
	VoteDown Vote = "down"
)

func (v Vote) validate() error {
	switch v {
	case VoteUp, VoteDown:
		return nil
	}
	return &InvalidArgumentError{Param: "vote type", Value: string(v)}
}

// MessageBox is one of the message-center listing pages.
type MessageBox string

const (
	BoxInbox    MessageBox = "inbox"
	BoxUnread   MessageBox = "unread"
	BoxMessages MessageBox = "messages"
	BoxComments MessageBox = "comments"
	BoxSent     MessageBox = "sent"
)

func (b MessageBox) validate() error {
	switch b {
	case BoxInbox, BoxUnread, BoxMessages, BoxComments, BoxSent:
		return nil
	}
	return &InvalidArgumentError{Param: "message subpage", Value: string(b)}
}

// Subpage is one of a subreddit's listing sort views.
type Subpage string

const (
	SubpageHot    Subpage = "hot"
	SubpageNew    Subpage = "new"
	SubpageRising Subpage = "rising"
	SubpageTop    Subpage = "top"
	SubpageGilded Subpage = "gilded"
)

func (s Subpage) validate() error {
	switch s {
	case SubpageHot, SubpageNew, SubpageRising, SubpageTop, SubpageGilded:
		return nil
	}
	return &InvalidArgumentError{Param: "subreddit subpage", Value: string(s)}
}

// SortBy is one of a user profile's activity sort orders.
type SortBy string

const (
	SortNew           SortBy = "new"
	SortHot           SortBy = "hot"
	SortTop           SortBy = "top"
	SortControversial SortBy = "controversial"
)

func (s SortBy) validate() error {
	switch s {
	case SortNew, SortHot, SortTop, SortControversial:
		return nil
	}
	return &InvalidArgumentError{Param: "user sortby", Value: string(s)}
}

type MessageType string

const (
	MessageTypeComment MessageType = "comment"
	MessageTypeMessage MessageType = "message"
)

type ActivityType string

const (
	ActivityLink    ActivityType = "link"
	ActivityComment ActivityType = "comment"
)

type Post struct {
	Author string
	// site-relative permalink
	Link             string
	Karma            int
	Title            string
	Vote             Vote
	NumberOfComments int
}

type Comment struct {
	Author  string
	Link    string
	Content string
	Vote    Vote
	// nil when the page hides the comment's score
	Karma   *int
	Replies []Comment
}

type Message struct {
	Type   MessageType
	Author string
	// permalink of the post replied to; only set for comment messages
	Post string
	// for non-comment messages this is the sender's pseudo-subreddit,
	// which equals the author
	Subreddit string
	// only set for comment messages
	Vote    Vote
	Content string
}

type Subreddit struct {
	Name        string
	Subscribers int
	UsersOnline int
	Sidebar     string
	Moderators  []string
}

// SubredditType selects the visibility of a subreddit being created.
type SubredditType string

const (
	SubredditPublic      SubredditType = "public"
	SubredditRestricted  SubredditType = "restricted"
	SubredditPrivate     SubredditType = "private"
	SubredditPremiumOnly SubredditType = "premium only"
)

// radio ids on the creation form
var subredditTypeIds = map[SubredditType]string{
	SubredditPublic:      "type_public",
	SubredditRestricted:  "type_restricted",
	SubredditPrivate:     "type_private",
	SubredditPremiumOnly: "type_gold_only",
}

// ContentPolicy selects what kind of submissions a new subreddit accepts.
type ContentPolicy string

const (
	ContentAny       ContentPolicy = "any"
	ContentLinksOnly ContentPolicy = "links only"
	ContentTextOnly  ContentPolicy = "text posts only"
)

var contentPolicyIds = map[ContentPolicy]string{
	ContentAny:       "link_type_any",
	ContentLinksOnly: "link_type_link",
	ContentTextOnly:  "link_type_self",
}

// NewSubreddit carries the parameters for CreateSubreddit. Input only.
type NewSubreddit struct {
	Name        string
	Title       string
	Description string
	Sidebar     string
	Subtext     string
	Type        SubredditType
	Content     ContentPolicy
}

type User struct {
	Name         string
	PostKarma    int
	CommentKarma int
	// names of subreddits the user moderates; nil when none
	Moderating []string
	// always false when no account is logged in
	IsFriend bool
}

type UserActivity struct {
	Type      ActivityType
	Link      string
	Subreddit string
	Title     string
	// equals Title for link activities
	Content string
	Karma   int
	Vote    Vote
}

// Credentials of an account created through the signup wizard.
type Credentials struct {
	Username string
	Password string
}
