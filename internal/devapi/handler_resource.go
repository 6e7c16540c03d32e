package devapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"anoa.com/leadercircle/internal/entity"
)

// resourceHandler only ever returns resources visible to the caller's role.
type resourceHandler struct {
	store  Store
	search Search
}

func (h *resourceHandler) List(c *gin.Context) {
	h.list(c, ResourceFilter{})
}

func (h *resourceHandler) ByType(c *gin.Context) {
	t := entity.ResourceType(strings.ToUpper(c.Param("type")))
	if !t.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown resource type"})
		return
	}
	h.list(c, ResourceFilter{Type: t})
}

func (h *resourceHandler) ByModule(c *gin.Context) {
	h.list(c, ResourceFilter{Module: c.Param("module")})
}

func (h *resourceHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	role, ok := h.callerRole(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	ids, err := h.search.SearchResources(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resources, err := h.store.FindResources(ctx, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, visible(resources, role))
}

func (h *resourceHandler) Get(c *gin.Context) {
	role, ok := h.callerRole(c)
	if !ok {
		return
	}

	resource, err := h.store.FindResource(c.Request.Context(), c.Param("id"))
	if isNotFound(err) || (err == nil && !resource.VisibleTo(role)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *resourceHandler) list(c *gin.Context, filter ResourceFilter) {
	role, ok := h.callerRole(c)
	if !ok {
		return
	}

	resources, err := h.store.ListResources(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, visible(resources, role))
}

func (h *resourceHandler) callerRole(c *gin.Context) (entity.Role, bool) {
	user, err := h.store.FindUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return "", false
	}
	return user.Role, true
}

func visible(resources []entity.Resource, role entity.Role) []entity.Resource {
	out := []entity.Resource{}
	for _, r := range resources {
		if r.VisibleTo(role) {
			out = append(out, r)
		}
	}
	return out
}
