package repositories

import (
	"testing"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
		&models.Comment{},
		&models.Notification{},
		&models.Message{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", DisplayName: username}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestDeleteUserSweepsEverything(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	bobPost := &models.Post{UserID: bob.ID, Content: "bob's post"}
	require.NoError(t, db.Create(bobPost).Error)
	alicePost := &models.Post{UserID: alice.ID, Content: "alice's post"}
	require.NoError(t, db.Create(alicePost).Error)

	// Alice engages with bob's post, bob engages with alice's.
	require.NoError(t, db.Create(&models.Like{PostID: bobPost.ID, UserID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Like{PostID: alicePost.ID, UserID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: bobPost.ID, UserID: alice.ID, Content: "hi"}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: alice.ID, RecipientID: bob.ID, Body: "dm"}).Error)
	require.NoError(t, db.Create(models.NewLikeNotification(bob.ID, alice.ID, bobPost.ID)).Error)
	require.NoError(t, db.Create(models.NewLikeNotification(alice.ID, bob.ID, alicePost.ID)).Error)

	require.NoError(t, repo.DeleteUser(bob.ID))

	countRows := func(model interface{}, query string, args ...interface{}) int64 {
		var n int64
		require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
		return n
	}

	assert.Zero(t, countRows(&models.User{}, "id = ?", bob.ID))
	assert.Zero(t, countRows(&models.Post{}, "user_id = ?", bob.ID))
	assert.Zero(t, countRows(&models.Like{}, "post_id = ?", bobPost.ID), "likes on bob's posts go with the posts")
	assert.Zero(t, countRows(&models.Like{}, "user_id = ?", bob.ID), "bob's own likes go too")
	assert.Zero(t, countRows(&models.Comment{}, "post_id = ?", bobPost.ID))
	assert.Zero(t, countRows(&models.Follow{}, "follower_id = ? OR following_id = ?", bob.ID, bob.ID))
	assert.Zero(t, countRows(&models.Message{}, "sender_id = ? OR recipient_id = ?", bob.ID, bob.ID))
	assert.Zero(t, countRows(&models.Notification{}, "recipient_id = ? OR actor_id = ?", bob.ID, bob.ID))

	// Alice's own content survives.
	assert.Equal(t, int64(1), countRows(&models.User{}, "id = ?", alice.ID))
	assert.Equal(t, int64(1), countRows(&models.Post{}, "user_id = ?", alice.ID))
}

func TestDeleteUserMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	err := repo.DeleteUser(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSearchUsersMatchesUsernameAndDisplayName(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	bob.DisplayName = "Alicia's Friend"
	require.NoError(t, db.Save(bob).Error)
	seedUser(t, db, "carol")

	users, err := repo.SearchUsers("alic", 20)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
