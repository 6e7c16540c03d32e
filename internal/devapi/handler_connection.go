package devapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/connection/dto"
)

type connectionHandler struct {
	store Store
	now   func() time.Time
}

func (h *connectionHandler) Create(c *gin.Context) {
	var req dto.CreateConnectionRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	me := currentUserID(c)
	if req.TargetID == me {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot connect with yourself"})
		return
	}
	if _, err := h.store.FindUserByID(ctx, req.TargetID); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.store.FindOpenConnection(ctx, me, req.TargetID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "connection already exists"})
		return
	} else if !isNotFound(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Message != nil {
		msg := strings.TrimSpace(*req.Message)
		req.Message = &msg
	}
	conn := &entity.Connection{
		RequesterID: me,
		TargetID:    req.TargetID,
		Type:        req.Type,
		Status:      entity.ConnectionStatusPending,
		Message:     req.Message,
		RequestedAt: h.now().UTC(),
	}
	if err := h.store.CreateConnection(ctx, conn); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, http.StatusCreated, conn.ID)
}

// Update answers a pending request. Only its target may answer, and only once.
func (h *connectionHandler) Update(c *gin.Context) {
	var req dto.UpdateConnectionRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	conn, err := h.store.FindConnection(ctx, c.Param("id"))
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "connection not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if conn.TargetID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the recipient can answer this request"})
		return
	}
	if conn.Status.IsTerminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "connection already answered"})
		return
	}

	respondedAt := h.now().UTC()
	conn.Status = req.Status
	conn.RespondedAt = &respondedAt
	err = h.store.UpdateConnection(ctx, conn)
	if errors.Is(err, ErrConnectionAnswered) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, http.StatusOK, conn.ID)
}

func (h *connectionHandler) Pending(c *gin.Context) {
	h.list(c, entity.ConnectionStatusPending)
}

func (h *connectionHandler) Accepted(c *gin.Context) {
	h.list(c, entity.ConnectionStatusAccepted)
}

func (h *connectionHandler) list(c *gin.Context, status entity.ConnectionStatus) {
	conns, err := h.store.ListConnections(c.Request.Context(), currentUserID(c), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conns)
}

func (h *connectionHandler) respond(c *gin.Context, status int, id string) {
	conn, err := h.store.FindConnection(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, conn)
}
