package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentPreview is the correlated-comment snapshot on enriched notifications.
type CommentPreview struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

func (c *Comment) ToPreview() CommentPreview {
	return CommentPreview{ID: c.ID, Content: c.Content}
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
