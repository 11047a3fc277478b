package services

import (
	"testing"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRequiresContentOrImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repositories.NewPostgresPostRepository(db))
	alice := seedUser(t, db, "alice")

	_, err := svc.Create(alice.ID, "   ", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	post, err := svc.Create(alice.ID, "", "https://cdn.example.com/pic.png")
	require.NoError(t, err)
	assert.Empty(t, post.Content)
	assert.Equal(t, "https://cdn.example.com/pic.png", post.ImageURL)

	post, err = svc.Create(alice.ID, "just text", "")
	require.NoError(t, err)
	assert.Equal(t, "just text", post.Content)
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(repositories.NewPostgresPostRepository(db))
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "original")

	_, err := svc.Update(bob.ID, post.ID, "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(alice.ID, post.ID, "revised")
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Content)

	_, err = svc.Update(alice.ID, 999, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePostSweepsDependents(t *testing.T) {
	db := newTestDB(t)
	postSvc := NewPostService(repositories.NewPostgresPostRepository(db))
	toggles := newToggleService(db)
	comments := newCommentService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "doomed")
	survivor := seedPost(t, db, alice.ID, "survivor")

	_, err := toggles.ToggleLike(bob.ID, post.ID)
	require.NoError(t, err)
	_, err = comments.Create(bob.ID, post.ID, "so long")
	require.NoError(t, err)
	_, err = toggles.ToggleLike(bob.ID, survivor.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, postSvc.Delete(bob.ID, post.ID), ErrForbidden)
	require.NoError(t, postSvc.Delete(alice.ID, post.ID))

	var likes, commentRows, notifs int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentRows).Error)
	require.NoError(t, db.Model(&models.Notification{}).Where("post_id = ?", post.ID).Count(&notifs).Error)
	assert.Zero(t, likes)
	assert.Zero(t, commentRows)
	assert.Zero(t, notifs)

	// The other post's rows are untouched.
	var survivorLikes int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", survivor.ID).Count(&survivorLikes).Error)
	assert.Equal(t, int64(1), survivorLikes)
}
