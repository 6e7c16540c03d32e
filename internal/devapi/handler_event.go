package devapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/event/dto"
)

type eventHandler struct {
	store Store
	now   func() time.Time
}

func (h *eventHandler) List(c *gin.Context) {
	h.list(c, EventFilter{})
}

func (h *eventHandler) Public(c *gin.Context) {
	h.list(c, EventFilter{PublicOnly: true})
}

func (h *eventHandler) Upcoming(c *gin.Context) {
	from := h.now().UTC()
	h.list(c, EventFilter{From: &from})
}

func (h *eventHandler) ByUser(c *gin.Context) {
	h.list(c, EventFilter{AttendeeID: c.Param("id")})
}

func (h *eventHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	event, err := h.store.FindEvent(ctx, c.Param("id"))
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	events := []entity.Event{*event}
	if err := h.store.AttachRSVPs(ctx, currentUserID(c), events); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events[0])
}

func (h *eventHandler) Attendees(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.store.FindEvent(ctx, c.Param("id")); isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	users, err := h.store.ListAttendees(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// RSVP replaces any earlier answer by the same user.
func (h *eventHandler) RSVP(c *gin.Context) {
	var req dto.RSVPRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.FindEvent(ctx, req.EventID); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rsvp := &entity.EventRSVP{
		EventID:   req.EventID,
		UserID:    currentUserID(c),
		Status:    req.Status,
		UpdatedAt: h.now().UTC(),
	}
	if err := h.store.UpsertRSVP(ctx, rsvp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rsvp)
}

func (h *eventHandler) list(c *gin.Context, filter EventFilter) {
	ctx := c.Request.Context()
	events, err := h.store.ListEvents(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.AttachRSVPs(ctx, currentUserID(c), events); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
