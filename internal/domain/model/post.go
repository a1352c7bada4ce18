package model

import (
	"time"

	"inkwell/internal/common"
)

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostAction enumerates the mutations gated by CanMutate.
type PostAction string

const (
	PostCreate PostAction = "create"
	PostUpdate PostAction = "update"
	PostDelete PostAction = "delete"
)

// CanMutate is the ownership guard for post mutations. Creation is open to
// any authenticated user; update and delete require the acting user to own
// the post.
func CanMutate(userID int64, post *Post, action PostAction) error {
	switch action {
	case PostCreate:
		return nil
	case PostUpdate, PostDelete:
		if post == nil || post.AuthorID != userID {
			return common.ErrForbidden
		}
		return nil
	default:
		return common.ErrForbidden
	}
}
