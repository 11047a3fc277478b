package models

import "time"

// Notification kinds. The kind is fixed at creation and determines which
// correlation fields are populated:
//
//	like    -> PostID
//	comment -> PostID + CommentID
//	follow  -> none
const (
	NotificationKindLike    = "like"
	NotificationKindComment = "comment"
	NotificationKindFollow  = "follow"
)

// Notification is a recipient's activity record, created as a side effect
// of a like, comment, or follow.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Kind        string    `json:"kind" gorm:"size:20;index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	PostID      *uint     `json:"post_id,omitempty"`
	CommentID   *uint     `json:"comment_id,omitempty"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func NewLikeNotification(recipientID, actorID, postID uint) *Notification {
	return &Notification{
		Kind:        NotificationKindLike,
		RecipientID: recipientID,
		ActorID:     actorID,
		PostID:      &postID,
	}
}

func NewCommentNotification(recipientID, actorID, postID, commentID uint) *Notification {
	return &Notification{
		Kind:        NotificationKindComment,
		RecipientID: recipientID,
		ActorID:     actorID,
		PostID:      &postID,
		CommentID:   &commentID,
	}
}

func NewFollowNotification(recipientID, actorID uint) *Notification {
	return &Notification{
		Kind:        NotificationKindFollow,
		RecipientID: recipientID,
		ActorID:     actorID,
	}
}
