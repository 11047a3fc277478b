package services

import (
	"errors"
	"strings"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/pulsefeed/backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentView is a comment with its author snapshot attached.
type CommentView struct {
	models.Comment
	Author models.UserCompact `json:"author"`
}

// CommentService creates, lists, and deletes comments and fans out the
// comment notification.
type CommentService struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	notificationRepo  repositories.NotificationRepository
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *CommentService {
	return &CommentService{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
		notificationRepo:  notifRepo,
	}
}

// Create adds a comment to the post and notifies the post owner, the
// commenter included when they comment on their own post. The notification
// is best-effort: the created comment is returned even if the insert fails.
func (s *CommentService) Create(actorID, postID uint, content string) (*CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidArgument
	}

	post, err := s.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	actor, err := s.userRepository.GetUserByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.Comment{PostID: postID, UserID: actorID, Content: content}
	if err := s.commentRepository.CreateComment(comment); err != nil {
		return nil, err
	}

	notif := models.NewCommentNotification(post.UserID, actorID, postID, comment.ID)
	if err := s.notificationRepo.CreateNotification(notif); err != nil {
		logger.Warn("failed to insert comment notification",
			zap.Uint("actor_id", actorID),
			zap.Uint("post_id", postID),
			zap.Uint("comment_id", comment.ID),
			zap.Error(err))
	}

	return &CommentView{Comment: *comment, Author: actor.ToCompact()}, nil
}

// Delete removes the comment, owner-only. The correlated comment
// notification is intentionally left in place; its preview degrades to
// absent on the next fetch.
func (s *CommentService) Delete(actorID, commentID uint) error {
	comment, err := s.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.UserID != actorID {
		return ErrForbidden
	}
	return s.commentRepository.DeleteComment(commentID)
}

// ListByPost returns the post's comments oldest-first with author snapshots.
func (s *CommentService) ListByPost(postID uint) ([]CommentView, error) {
	if _, err := s.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint, 0, len(comments))
	seen := make(map[uint]bool)
	for _, c := range comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}
	authors, err := s.userRepository.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	authorByID := make(map[uint]models.UserCompact, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = a.ToCompact()
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = CommentView{Comment: c, Author: authorByID[c.UserID]}
	}
	return views, nil
}
