package repositories

import (
	"github.com/pulsefeed/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetMessageByID(id uint) (*models.Message, error)
	UpdateMessageBody(id uint, body string) error
	DeleteMessage(id uint) error
	DeleteThread(userA, userB uint) error
	ListConversations(userID uint) ([]models.ConversationSummary, error)
	FetchThread(userID, partnerID uint) ([]models.Message, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *PostgresMessageRepository) GetMessageByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// UpdateMessageBody changes the text only. The read flag survives an edit.
func (r *PostgresMessageRepository) UpdateMessageBody(id uint, body string) error {
	return r.db.Model(&models.Message{}).Where("id = ?", id).Update("body", body).Error
}

func (r *PostgresMessageRepository) DeleteMessage(id uint) error {
	res := r.db.Delete(&models.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteThread purges the conversation in both directions.
func (r *PostgresMessageRepository) DeleteThread(userA, userB uint) error {
	return r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA,
	).Delete(&models.Message{}).Error
}

// ListConversations derives one summary row per partner from the message
// log: the partner's profile snapshot, the most recent message between the
// two parties, and how many of the partner's messages the user has not read
// yet. Message ids are monotonic in insertion order, so MAX(id) per partner
// picks the latest message and breaks same-timestamp ties the right way.
func (r *PostgresMessageRepository) ListConversations(userID uint) ([]models.ConversationSummary, error) {
	var summaries []models.ConversationSummary
	err := r.db.Raw(`
		SELECT
			u.id AS partner_id,
			u.username,
			u.display_name,
			u.avatar_url,
			lm.body AS last_message,
			lm.created_at AS last_message_time,
			(
				SELECT COUNT(*)
				FROM messages m2
				WHERE m2.sender_id = u.id
				  AND m2.recipient_id = ?
				  AND m2.is_read = ?
			) AS unread_count
		FROM (
			SELECT
				CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS partner_id,
				MAX(id) AS last_msg_id
			FROM messages
			WHERE sender_id = ? OR recipient_id = ?
			GROUP BY partner_id
		) conv
		JOIN users u ON u.id = conv.partner_id
		JOIN messages lm ON lm.id = conv.last_msg_id
		ORDER BY lm.created_at DESC, lm.id DESC
	`, userID, false, userID, userID, userID).Scan(&summaries).Error
	return summaries, err
}

// FetchThread returns the full two-way message list in send order and marks
// the partner's unread messages as read. Both run in one transaction, so a
// message arriving mid-fetch is either returned unread or left untouched,
// never marked read without being returned.
func (r *PostgresMessageRepository) FetchThread(userID, partnerID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, partnerID, partnerID, userID,
		).Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
			return err
		}
		ids := make([]uint, 0, len(messages))
		for _, m := range messages {
			if m.SenderID == partnerID && m.RecipientID == userID && !m.IsRead {
				ids = append(ids, m.ID)
			}
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&models.Message{}).Where("id IN ?", ids).Update("is_read", true).Error
	})
	return messages, err
}
