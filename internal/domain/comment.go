package domain

import "time"

// MaxCommentLength caps comment content.
const MaxCommentLength = 600

// Comment is a deck comment. A nil ParentID marks a top-level comment;
// a non-nil ParentID marks a reply. Replies are exactly one level deep:
// a reply's parent is always a top-level comment.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	DeckID    string    `json:"deck_id"`
	ParentID  *string   `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields, populated on read paths.
	AuthorUsername string    `json:"author_username,omitempty"`
	DeckTitle      string    `json:"deck_title,omitempty"`
	Replies        []Comment `json:"replies,omitempty"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
