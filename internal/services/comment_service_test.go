package services

import (
	"testing"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresNotificationRepository(db),
	)
}

func TestCreateCommentNotifiesPostOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "hello")

	view, err := svc.Create(bob.ID, post.ID, "  great post  ")
	require.NoError(t, err)
	assert.Equal(t, "great post", view.Content)
	assert.Equal(t, "bob", view.Author.Username)

	var notif models.Notification
	require.NoError(t, db.Where("recipient_id = ?", alice.ID).First(&notif).Error)
	assert.Equal(t, models.NotificationKindComment, notif.Kind)
	assert.Equal(t, bob.ID, notif.ActorID)
	require.NotNil(t, notif.CommentID)
	assert.Equal(t, view.ID, *notif.CommentID)
}

func TestCreateCommentOnOwnPostNotifiesSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID, "hello")

	_, err := svc.Create(alice.ID, post.ID, "replying to myself")
	require.NoError(t, err)

	var notif models.Notification
	require.NoError(t, db.First(&notif).Error)
	assert.Equal(t, alice.ID, notif.RecipientID)
	assert.Equal(t, alice.ID, notif.ActorID)
}

func TestCreateCommentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID, "hello")

	_, err := svc.Create(alice.ID, post.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create(alice.ID, 999, "text")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCommentOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "hello")

	view, err := svc.Create(bob.ID, post.ID, "mine")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(alice.ID, view.ID), ErrForbidden)
	require.NoError(t, svc.Delete(bob.ID, view.ID))
	assert.ErrorIs(t, svc.Delete(bob.ID, view.ID), ErrNotFound)

	// The comment notification stays; its preview degrades on fetch instead.
	var notifCount int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifCount).Error)
	assert.Equal(t, int64(1), notifCount)
}

func TestListByPostOrderAndAuthors(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "hello")

	_, err := svc.Create(bob.ID, post.ID, "first")
	require.NoError(t, err)
	_, err = svc.Create(alice.ID, post.ID, "second")
	require.NoError(t, err)

	views, err := svc.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "first", views[0].Content)
	assert.Equal(t, "bob", views[0].Author.Username)
	assert.Equal(t, "second", views[1].Content)
	assert.Equal(t, "alice", views[1].Author.Username)

	_, err = svc.ListByPost(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
