package services

import (
	"errors"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// notificationPageSize caps a single activity-stream fetch.
const notificationPageSize = 100

// NotificationItem is a notification enriched with the actor snapshot and,
// where correlated, the referenced post/comment content. Correlates that no
// longer exist (e.g. a since-deleted comment) stay nil instead of failing
// the listing.
type NotificationItem struct {
	models.Notification
	Actor   *models.UserCompact    `json:"actor,omitempty"`
	Post    *models.PostPreview    `json:"post,omitempty"`
	Comment *models.CommentPreview `json:"comment,omitempty"`
}

// NotificationService produces the recipient's activity stream and manages
// read state.
type NotificationService struct {
	notificationRepo  repositories.NotificationRepository
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
}

func NewNotificationService(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
) *NotificationService {
	return &NotificationService{
		notificationRepo:  notifRepo,
		userRepository:    userRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
	}
}

// List returns the owner's notifications newest-first, capped at the page
// size, enriched in three batch lookups.
func (s *NotificationService) List(ownerID uint) ([]NotificationItem, error) {
	notifications, err := s.notificationRepo.GetByRecipientID(ownerID, notificationPageSize)
	if err != nil {
		return nil, err
	}

	actorIDs := make([]uint, 0, len(notifications))
	postIDs := make([]uint, 0, len(notifications))
	commentIDs := make([]uint, 0, len(notifications))
	seenActors := make(map[uint]bool)
	for _, n := range notifications {
		if !seenActors[n.ActorID] {
			seenActors[n.ActorID] = true
			actorIDs = append(actorIDs, n.ActorID)
		}
		if n.PostID != nil {
			postIDs = append(postIDs, *n.PostID)
		}
		if n.CommentID != nil {
			commentIDs = append(commentIDs, *n.CommentID)
		}
	}

	users, err := s.userRepository.GetUsersByIDs(actorIDs)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepository.GetPostsByIDs(postIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepository.GetCommentsByIDs(commentIDs)
	if err != nil {
		return nil, err
	}

	actorByID := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		actorByID[u.ID] = u.ToCompact()
	}
	postByID := make(map[uint]models.PostPreview, len(posts))
	for _, p := range posts {
		postByID[p.ID] = p.ToPreview()
	}
	commentByID := make(map[uint]models.CommentPreview, len(comments))
	for _, c := range comments {
		commentByID[c.ID] = c.ToPreview()
	}

	items := make([]NotificationItem, len(notifications))
	for i, n := range notifications {
		items[i] = NotificationItem{Notification: n}
		if actor, ok := actorByID[n.ActorID]; ok {
			items[i].Actor = &actor
		}
		if n.PostID != nil {
			if post, ok := postByID[*n.PostID]; ok {
				items[i].Post = &post
			}
		}
		if n.CommentID != nil {
			if comment, ok := commentByID[*n.CommentID]; ok {
				items[i].Comment = &comment
			}
		}
	}
	return items, nil
}

// MarkRead sets the notification read. Marking an already-read notification
// succeeds; a notification that does not exist or belongs to someone else is
// NotFound.
func (s *NotificationService) MarkRead(ownerID, notificationID uint) error {
	notification, err := s.notificationRepo.GetNotificationByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if notification.RecipientID != ownerID {
		return ErrNotFound
	}
	if notification.IsRead {
		return nil
	}
	return s.notificationRepo.MarkAsRead(notificationID)
}

// MarkAllRead marks every unread notification owned by the user and reports
// how many changed. Zero is a valid outcome.
func (s *NotificationService) MarkAllRead(ownerID uint) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(ownerID)
}

// UnreadCount reports the number of unread notifications.
func (s *NotificationService) UnreadCount(ownerID uint) (int64, error) {
	return s.notificationRepo.GetUnreadCount(ownerID)
}
