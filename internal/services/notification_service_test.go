package services

import (
	"testing"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(db *gorm.DB) *NotificationService {
	return NewNotificationService(
		repositories.NewPostgresNotificationRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresCommentRepository(db),
	)
}

func TestNotificationListEnrichment(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)
	toggles := newToggleService(db)
	comments := newCommentService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "hello world")

	_, err := toggles.ToggleLike(bob.ID, post.ID)
	require.NoError(t, err)
	view, err := comments.Create(bob.ID, post.ID, "nice one")
	require.NoError(t, err)

	items, err := svc.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Newest first: the comment arrived after the like.
	assert.Equal(t, models.NotificationKindComment, items[0].Kind)
	require.NotNil(t, items[0].Actor)
	assert.Equal(t, "bob", items[0].Actor.Username)
	require.NotNil(t, items[0].Post)
	assert.Equal(t, "hello world", items[0].Post.Content)
	require.NotNil(t, items[0].Comment)
	assert.Equal(t, "nice one", items[0].Comment.Content)

	assert.Equal(t, models.NotificationKindLike, items[1].Kind)
	require.NotNil(t, items[1].Post)
	assert.Nil(t, items[1].Comment)

	// Deleting the comment degrades its preview without failing the listing.
	require.NoError(t, comments.Delete(bob.ID, view.ID))
	items, err = svc.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Comment)
	require.NotNil(t, items[0].Post)
}

func TestMarkReadOwnershipAndIdempotence(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "p")

	notif := models.NewLikeNotification(alice.ID, bob.ID, post.ID)
	require.NoError(t, db.Create(notif).Error)

	assert.ErrorIs(t, svc.MarkRead(bob.ID, notif.ID), ErrNotFound)
	assert.ErrorIs(t, svc.MarkRead(alice.ID, 999), ErrNotFound)

	require.NoError(t, svc.MarkRead(alice.ID, notif.ID))
	require.NoError(t, svc.MarkRead(alice.ID, notif.ID), "re-marking a read notification succeeds")

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, notif.ID).Error)
	assert.True(t, reloaded.IsRead)
}

func TestMarkAllReadCountsOnlyUnread(t *testing.T) {
	db := newTestDB(t)
	svc := newNotificationService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "p")

	first := models.NewLikeNotification(alice.ID, bob.ID, post.ID)
	require.NoError(t, db.Create(first).Error)
	second := models.NewFollowNotification(alice.ID, bob.ID)
	require.NoError(t, db.Create(second).Error)
	require.NoError(t, svc.MarkRead(alice.ID, first.ID))

	unread, err := svc.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	updated, err := svc.MarkAllRead(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	updated, err = svc.MarkAllRead(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated, "zero is a valid outcome")

	unread, err = svc.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
