package services

import (
	"testing"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newToggleService(db *gorm.DB) *ToggleService {
	return NewToggleService(
		db,
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresNotificationRepository(db),
	)
}

func TestToggleLikeFlipAndFlipBack(t *testing.T) {
	db := newTestDB(t)
	svc := newToggleService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "first post")

	result, err := svc.ToggleLike(bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.LikeCount)

	var notif models.Notification
	require.NoError(t, db.Where("recipient_id = ?", alice.ID).First(&notif).Error)
	assert.Equal(t, models.NotificationKindLike, notif.Kind)
	assert.Equal(t, bob.ID, notif.ActorID)
	require.NotNil(t, notif.PostID)
	assert.Equal(t, post.ID, *notif.PostID)

	result, err = svc.ToggleLike(bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(0), result.LikeCount)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("recipient_id = ?", alice.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "unlike must remove the correlated notification")
}

func TestToggleLikeMissingPost(t *testing.T) {
	db := newTestDB(t)
	svc := newToggleService(db)
	bob := seedUser(t, db, "bob")

	_, err := svc.ToggleLike(bob.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLikeOwnPostNotifiesSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newToggleService(db)
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID, "self five")

	result, err := svc.ToggleLike(alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)

	var notif models.Notification
	require.NoError(t, db.First(&notif).Error)
	assert.Equal(t, alice.ID, notif.RecipientID)
	assert.Equal(t, alice.ID, notif.ActorID)
}

func TestDuplicateLikeInsertIsNoOp(t *testing.T) {
	db := newTestDB(t)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "racy post")

	require.NoError(t, likeRepo.CreateLike(&models.Like{PostID: post.ID, UserID: bob.ID}))
	require.NoError(t, likeRepo.CreateLike(&models.Like{PostID: post.ID, UserID: bob.ID}))

	count, err := likeRepo.GetLikesCountByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "the unique pair index must absorb the duplicate")
}

func TestToggleFollowFlipAndFlipBack(t *testing.T) {
	db := newTestDB(t)
	svc := newToggleService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	result, err := svc.ToggleFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, result.Following)

	var notif models.Notification
	require.NoError(t, db.Where("recipient_id = ?", alice.ID).First(&notif).Error)
	assert.Equal(t, models.NotificationKindFollow, notif.Kind)
	assert.Equal(t, bob.ID, notif.ActorID)
	assert.Nil(t, notif.PostID)

	result, err = svc.ToggleFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, result.Following)

	var followCount, notifCount int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifCount).Error)
	assert.Equal(t, int64(0), followCount)
	assert.Equal(t, int64(0), notifCount)
}

func TestToggleFollowSelfRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newToggleService(db)
	alice := seedUser(t, db, "alice")

	_, err := svc.ToggleFollow(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestToggleFollowMissingTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newToggleService(db)
	alice := seedUser(t, db, "alice")

	_, err := svc.ToggleFollow(alice.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
