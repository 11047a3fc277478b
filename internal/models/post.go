package models

import "time"

// Post must carry text content, an image, or both.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostPreview is the correlated-post snapshot on enriched notifications.
type PostPreview struct {
	ID       uint   `json:"id"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

func (p *Post) ToPreview() PostPreview {
	return PostPreview{ID: p.ID, Content: p.Content, ImageURL: p.ImageURL}
}

type CreatePostRequest struct {
	Content  string `json:"content" validate:"omitempty,max=2000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type UpdatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
