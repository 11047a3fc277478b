package services

import (
	"testing"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newConversationService(db *gorm.DB) *ConversationService {
	return NewConversationService(
		repositories.NewPostgresMessageRepository(db),
		repositories.NewPostgresUserRepository(db),
	)
}

func TestConversationFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.SendMessage(alice.ID, bob.ID, "hello")
	require.NoError(t, err)
	_, err = svc.SendMessage(bob.ID, alice.ID, "hi back")
	require.NoError(t, err)
	_, err = svc.SendMessage(alice.ID, bob.ID, "cool")
	require.NoError(t, err)

	// Both sides see the same thread with the same last message.
	bobConvs, err := svc.ListConversations(bob.ID)
	require.NoError(t, err)
	require.Len(t, bobConvs, 1)
	assert.Equal(t, alice.ID, bobConvs[0].PartnerID)
	assert.Equal(t, "alice", bobConvs[0].Username)
	assert.Equal(t, "cool", bobConvs[0].LastMessage)
	assert.Equal(t, int64(2), bobConvs[0].UnreadCount)

	aliceConvs, err := svc.ListConversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceConvs, 1)
	assert.Equal(t, bob.ID, aliceConvs[0].PartnerID)
	assert.Equal(t, "cool", aliceConvs[0].LastMessage)
	assert.Equal(t, int64(1), aliceConvs[0].UnreadCount)

	// Fetching the thread marks the partner's messages read.
	thread, err := svc.GetThread(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "hello", thread[0].Body)
	assert.Equal(t, "hi back", thread[1].Body)
	assert.Equal(t, "cool", thread[2].Body)

	bobConvs, err = svc.ListConversations(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bobConvs[0].UnreadCount)

	// Bob reading his side must not touch alice's unread count.
	aliceConvs, err = svc.ListConversations(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceConvs[0].UnreadCount)
}

func TestSendMessageValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	alice := seedUser(t, db, "alice")

	_, err := svc.SendMessage(alice.ID, alice.ID, "note to self")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.SendMessage(alice.ID, 999, "   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.SendMessage(alice.ID, 999, "anyone there")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditMessageSenderOnlyPreservesReadFlag(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	sent, err := svc.SendMessage(alice.ID, bob.ID, "helo")
	require.NoError(t, err)

	_, err = svc.GetThread(bob.ID, alice.ID)
	require.NoError(t, err)

	_, err = svc.EditMessage(bob.ID, sent.ID, "not yours")
	assert.ErrorIs(t, err, ErrForbidden)

	edited, err := svc.EditMessage(alice.ID, sent.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", edited.Body)

	var reloaded models.Message
	require.NoError(t, db.First(&reloaded, sent.ID).Error)
	assert.Equal(t, "hello", reloaded.Body)
	assert.True(t, reloaded.IsRead, "editing must not reset the read flag")
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	sent, err := svc.SendMessage(alice.ID, bob.ID, "oops")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteMessage(bob.ID, sent.ID), ErrForbidden)
	require.NoError(t, svc.DeleteMessage(alice.ID, sent.ID))
	assert.ErrorIs(t, svc.DeleteMessage(alice.ID, sent.ID), ErrNotFound)
}

func TestDeleteThreadRemovesBothDirections(t *testing.T) {
	db := newTestDB(t)
	svc := newConversationService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := svc.SendMessage(alice.ID, bob.ID, "one")
	require.NoError(t, err)
	_, err = svc.SendMessage(bob.ID, alice.ID, "two")
	require.NoError(t, err)
	_, err = svc.SendMessage(alice.ID, carol.ID, "unrelated")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteThread(bob.ID, alice.ID))

	convs, err := svc.ListConversations(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, convs)

	// The unrelated thread survives.
	convs, err = svc.ListConversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, carol.ID, convs[0].PartnerID)
}
