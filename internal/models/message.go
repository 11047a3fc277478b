package models

import "time"

// Message is one directional entry in a conversation. IsRead flips once,
// when the recipient views the thread; editing the body leaves it untouched.
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Body        string    `json:"body"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ConversationSummary is the derived per-partner thread row. It is computed
// from the message log on every request, never stored.
type ConversationSummary struct {
	PartnerID       uint      `json:"partner_id"`
	Username        string    `json:"username"`
	DisplayName     string    `json:"display_name"`
	AvatarURL       string    `json:"avatar_url"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int64     `json:"unread_count"`
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required,min=1,max=2000"`
}

type UpdateMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}
