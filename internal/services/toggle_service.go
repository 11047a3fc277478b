package services

import (
	"errors"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/pulsefeed/backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeResult reports the state a like toggle settled on.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// FollowResult reports the state a follow toggle settled on.
type FollowResult struct {
	Following bool `json:"following"`
}

// ToggleService flips the Like and Follow relations. Each flip runs in a
// single transaction with the unique pair index as the authority, so two
// concurrent toggles from the same actor can never produce a duplicate row:
// a losing create becomes a no-op (the state it wanted already holds) and a
// losing delete is idempotent. Correlated notifications are written after
// the flip commits and are best-effort only.
type ToggleService struct {
	db               *gorm.DB
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
	likeRepository   repositories.LikeRepository
	notificationRepo repositories.NotificationRepository
}

func NewToggleService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	notifRepo repositories.NotificationRepository,
) *ToggleService {
	return &ToggleService{
		db:               db,
		userRepository:   userRepo,
		postRepository:   postRepo,
		likeRepository:   likeRepo,
		notificationRepo: notifRepo,
	}
}

// ToggleLike flips the (user, post) like and returns the new state with the
// recomputed like count.
func (s *ToggleService) ToggleLike(userID, postID uint) (*LikeResult, error) {
	post, err := s.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var liked, flipped bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var like models.Like
		findErr := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
		switch {
		case findErr == nil:
			res := tx.Delete(&models.Like{}, like.ID)
			if res.Error != nil {
				return res.Error
			}
			// RowsAffected 0 means a concurrent unlike won; same outcome.
			flipped = res.RowsAffected > 0
			liked = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Like{PostID: postID, UserID: userID})
			if res.Error != nil {
				return res.Error
			}
			// RowsAffected 0 means a concurrent like won the unique index.
			flipped = res.RowsAffected > 0
			liked = true
		default:
			return findErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The relation change is durable at this point. Notification maintenance
	// must not fail the toggle; failures are logged and swallowed. The
	// self-like case is notified too, matching the rest of the fan-out.
	if flipped {
		if liked {
			notif := models.NewLikeNotification(post.UserID, userID, postID)
			if err := s.notificationRepo.CreateNotification(notif); err != nil {
				logger.Warn("failed to insert like notification",
					zap.Uint("actor_id", userID),
					zap.Uint("post_id", postID),
					zap.Error(err))
			}
		} else {
			if err := s.notificationRepo.DeleteLikeNotification(userID, postID); err != nil {
				logger.Warn("failed to delete like notification",
					zap.Uint("actor_id", userID),
					zap.Uint("post_id", postID),
					zap.Error(err))
			}
		}
	}

	count, err := s.likeRepository.GetLikesCountByPostID(postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: liked, LikeCount: count}, nil
}

// ToggleFollow flips the follower -> followee edge. Self-follow is rejected
// and the target must exist.
func (s *ToggleService) ToggleFollow(followerID, followeeID uint) (*FollowResult, error) {
	if followerID == followeeID {
		return nil, ErrInvalidArgument
	}
	if _, err := s.userRepository.GetUserByID(followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var following, flipped bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var follow models.Follow
		findErr := tx.Where("follower_id = ? AND following_id = ?", followerID, followeeID).First(&follow).Error
		switch {
		case findErr == nil:
			res := tx.Delete(&models.Follow{}, follow.ID)
			if res.Error != nil {
				return res.Error
			}
			flipped = res.RowsAffected > 0
			following = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Follow{FollowerID: followerID, FollowingID: followeeID})
			if res.Error != nil {
				return res.Error
			}
			flipped = res.RowsAffected > 0
			following = true
		default:
			return findErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if flipped {
		if following {
			notif := models.NewFollowNotification(followeeID, followerID)
			if err := s.notificationRepo.CreateNotification(notif); err != nil {
				logger.Warn("failed to insert follow notification",
					zap.Uint("actor_id", followerID),
					zap.Uint("recipient_id", followeeID),
					zap.Error(err))
			}
		} else {
			if err := s.notificationRepo.DeleteFollowNotification(followerID, followeeID); err != nil {
				logger.Warn("failed to delete follow notification",
					zap.Uint("actor_id", followerID),
					zap.Uint("recipient_id", followeeID),
					zap.Error(err))
			}
		}
	}

	return &FollowResult{Following: following}, nil
}
