package devapi

import (
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/message/dto"
	"anoa.com/leadercircle/pkg/logger"
)

const actionSendMessage = "send_message"

type messageHandler struct {
	store  Store
	rdb    *redis.Client
	limit  time.Duration
	policy *bluemonday.Policy
	now    func() time.Time
}

func (h *messageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	me := currentUserID(c)
	if req.ReceiverID == me {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot message yourself"})
		return
	}

	content := strings.TrimSpace(plainText(h.policy, req.Content))
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
		return
	}

	if _, err := h.store.FindUserByID(ctx, req.ReceiverID); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "receiver not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	allowed, err := CheckAndSetRateLimit(ctx, h.rdb, me, actionSendMessage, h.limit)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", me).Msg("rate limit check failed, allowing")
		allowed = true
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "you are sending messages too quickly"})
		return
	}

	msg := &entity.Message{
		SenderID:   me,
		ReceiverID: req.ReceiverID,
		Content:    content,
		SentAt:     h.now().UTC(),
	}
	if err := h.store.CreateMessage(ctx, msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *messageHandler) Thread(c *gin.Context) {
	msgs, err := h.store.Thread(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// MarkRead is idempotent and only allowed for the receiver.
func (h *messageHandler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()
	msg, err := h.store.FindMessage(ctx, c.Param("id"))
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if msg.ReceiverID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the receiver can mark a message as read"})
		return
	}

	if !msg.IsRead {
		if err := h.store.MarkMessageRead(ctx, msg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, msg)
}

// plainText strips markup from user text and decodes the entities the
// policy escapes, so "a & b" is stored as typed.
func plainText(policy *bluemonday.Policy, s string) string {
	return html.UnescapeString(policy.Sanitize(s))
}
