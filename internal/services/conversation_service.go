package services

import (
	"errors"
	"strings"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// ConversationService projects the flat directional message log into
// per-partner threads and handles message lifecycle. A thread exists once at
// least one message has been sent; there is no stored conversation entity.
type ConversationService struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
}

func NewConversationService(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
) *ConversationService {
	return &ConversationService{
		messageRepository: messageRepo,
		userRepository:    userRepo,
	}
}

// ListConversations returns one summary row per partner, most recent thread
// first.
func (s *ConversationService) ListConversations(meID uint) ([]models.ConversationSummary, error) {
	return s.messageRepository.ListConversations(meID)
}

// GetThread returns the two-way message list in send order and, as a side
// effect, marks the partner's messages to the caller as read.
func (s *ConversationService) GetThread(meID, partnerID uint) ([]models.Message, error) {
	if _, err := s.userRepository.GetUserByID(partnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.messageRepository.FetchThread(meID, partnerID)
}

// SendMessage creates a message. Self-messaging is rejected and the
// recipient must exist.
func (s *ConversationService) SendMessage(senderID, recipientID uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" || senderID == recipientID {
		return nil, ErrInvalidArgument
	}
	if _, err := s.userRepository.GetUserByID(recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	message := &models.Message{SenderID: senderID, RecipientID: recipientID, Body: body}
	if err := s.messageRepository.CreateMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

// EditMessage changes the body, sender-only. The read flag is untouched.
func (s *ConversationService) EditMessage(senderID, messageID uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrInvalidArgument
	}

	message, err := s.messageRepository.GetMessageByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if message.SenderID != senderID {
		return nil, ErrForbidden
	}

	if err := s.messageRepository.UpdateMessageBody(messageID, body); err != nil {
		return nil, err
	}
	message.Body = body
	return message, nil
}

// DeleteMessage removes a single message, sender-only.
func (s *ConversationService) DeleteMessage(senderID, messageID uint) error {
	message, err := s.messageRepository.GetMessageByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if message.SenderID != senderID {
		return ErrForbidden
	}
	return s.messageRepository.DeleteMessage(messageID)
}

// DeleteThread purges the whole conversation in both directions. Either
// party may do this.
func (s *ConversationService) DeleteThread(meID, partnerID uint) error {
	return s.messageRepository.DeleteThread(meID, partnerID)
}
