package handlers

import (
	"net/http"
	"strconv"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct message and conversation HTTP requests
type MessageHandler struct {
	conversationService *services.ConversationService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(conversationService *services.ConversationService) *MessageHandler {
	return &MessageHandler{conversationService: conversationService}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages/conversations", h.GetConversations)
	g.GET("/messages/:user_id", h.GetThread)
	g.POST("/messages", h.SendMessage)
	g.PUT("/messages/:id", h.UpdateMessage)
	g.DELETE("/messages/:id", h.DeleteMessage)
	g.DELETE("/messages/chat/:user_id", h.DeleteThread)
}

// GetConversations returns one summary row per partner, newest thread first
func (h *MessageHandler) GetConversations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conversations, err := h.conversationService.ListConversations(currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, conversations)
}

// GetThread returns the full message list with a partner and marks their
// messages as read
func (h *MessageHandler) GetThread(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	partnerID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	messages, err := h.conversationService.GetThread(currentUserID, uint(partnerID))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, messages)
}

// SendMessage sends a message to another user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.conversationService.SendMessage(currentUserID, req.RecipientID, req.Body)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, message)
}

// UpdateMessage edits a message's body (sender only)
func (h *MessageHandler) UpdateMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid message ID")
	}

	var req models.UpdateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	message, err := h.conversationService.EditMessage(currentUserID, uint(messageID), req.Body)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, message)
}

// DeleteMessage deletes a single message (sender only)
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid message ID")
	}

	if err := h.conversationService.DeleteMessage(currentUserID, uint(messageID)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Message deleted"})
}

// DeleteThread deletes the whole conversation with a user, both directions
func (h *MessageHandler) DeleteThread(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	partnerID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.conversationService.DeleteThread(currentUserID, uint(partnerID)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Chat deleted"})
}
