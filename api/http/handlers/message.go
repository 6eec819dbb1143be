package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/skill-bridge/server/api/http/presenter"
	"github.com/skill-bridge/server/pkg/application"
	"github.com/skill-bridge/server/pkg/message"
	"github.com/skill-bridge/server/pkg/security/jwt"
)

// MessageHandler serves the conversation endpoints shared by both sides of
// an application.
type MessageHandler struct {
	messages message.UseCase
}

func NewMessageHandler(messages message.UseCase) *MessageHandler {
	return &MessageHandler{messages: messages}
}

func messageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, message.ErrMissingFields),
		errors.Is(err, message.ErrEmptyContent),
		errors.Is(err, message.ErrInvalidReceiver):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, message.ErrForbidden):
		return presenter.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, application.ErrNotFound), errors.Is(err, message.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "application not found")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "failed to process message")
	}
}

type sendMessageRequest struct {
	ApplicationID string   `json:"applicationId"`
	Content       string   `json:"content"`
	ReceiverID    string   `json:"receiverId"`
	ReceiverType  string   `json:"receiverType"`
	Attachments   []string `json:"attachments"`
}

// Send posts a message into an application's conversation.
// @Summary Send message
// @Tags    messages
// @Accept  json
// @Produce json
// @Param   input body sendMessageRequest true "message payload"
// @Security BearerAuth
// @Success 201 {object} presenter.Response
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /messages/send [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	p, ok := jwt.PrincipalFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.ApplicationID == "" {
		return presenter.Error(c, http.StatusBadRequest, message.ErrMissingFields.Error())
	}
	appID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid applicationId")
	}

	m, err := h.messages.Send(c.Context(), p, message.SendInput{
		ApplicationID: appID,
		Content:       req.Content,
		ReceiverID:    req.ReceiverID,
		ReceiverType:  req.ReceiverType,
		Attachments:   req.Attachments,
	})
	if err != nil {
		return messageError(c, err)
	}
	return presenter.Data(c, http.StatusCreated, messageView(m))
}

// ListApplication returns the conversation oldest first and marks the
// caller's unread messages as read.
// @Summary List application messages
// @Tags    messages
// @Produce json
// @Param   applicationId path string true "application id (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /messages/application/{applicationId} [get]
func (h *MessageHandler) ListApplication(c *fiber.Ctx) error {
	p, ok := jwt.PrincipalFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	appID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid application id")
	}

	list, err := h.messages.ListForApplication(c.Context(), p, appID)
	if err != nil {
		return messageError(c, err)
	}
	views := make([]fiber.Map, 0, len(list))
	for _, m := range list {
		views = append(views, messageView(m))
	}
	return presenter.Data(c, http.StatusOK, views)
}

// Unread returns how many unread messages the caller has across all
// conversations.
// @Summary Unread message count
// @Tags    messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Response
// @Router  /messages/unread [get]
func (h *MessageHandler) Unread(c *fiber.Ctx) error {
	p, ok := jwt.PrincipalFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authorized")
	}
	count, err := h.messages.UnreadCount(c.Context(), p)
	if err != nil {
		return messageError(c, err)
	}
	return presenter.Data(c, http.StatusOK, fiber.Map{"unreadCount": count})
}
