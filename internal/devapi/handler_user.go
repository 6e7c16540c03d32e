package devapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/profile/dto"
	"anoa.com/leadercircle/pkg/logger"
	"anoa.com/leadercircle/pkg/validator"
)

type userHandler struct {
	store Store
}

func (h *userHandler) Me(c *gin.Context) {
	user, err := h.store.FindUserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) List(c *gin.Context) {
	h.list(c, "", "")
}

func (h *userHandler) ByRole(c *gin.Context) {
	role := entity.Role(strings.ToUpper(c.Param("role")))
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	h.list(c, role, "")
}

func (h *userHandler) ByCohort(c *gin.Context) {
	h.list(c, "", c.Param("id"))
}

func (h *userHandler) Get(c *gin.Context) {
	user, err := h.store.FindUserByID(c.Request.Context(), c.Param("id"))
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *userHandler) list(c *gin.Context, role entity.Role, cohortID string) {
	users, err := h.store.ListUsers(c.Request.Context(), role, cohortID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

type profileHandler struct {
	store  Store
	search Search
	policy *bluemonday.Policy
}

func (h *profileHandler) Get(c *gin.Context) {
	profile, err := h.store.FindProfile(c.Request.Context(), c.Param("userId"))
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *profileHandler) Update(c *gin.Context) {
	userID := c.Param("userId")
	if userID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own profile"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Skills = dto.NormalizeSkills(req.Skills)
	if err := validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.store.FindProfile(c.Request.Context(), userID)
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.FullName != nil {
		profile.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Position != nil {
		profile.Position = req.Position
	}
	if req.Company != nil {
		profile.Company = req.Company
	}
	if req.Bio != nil {
		bio := strings.TrimSpace(plainText(h.policy, *req.Bio))
		profile.Bio = &bio
	}
	if req.ImageURL != nil {
		profile.ImageURL = req.ImageURL
	}
	if req.LinkedInURL != nil {
		profile.LinkedInURL = req.LinkedInURL
	}
	if req.WebsiteURL != nil {
		profile.WebsiteURL = req.WebsiteURL
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
	}

	if err := h.store.SaveProfile(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.search.IndexProfile(profile); err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("failed to index profile")
	}

	c.JSON(http.StatusOK, profile)
}

// Search matches q against name, position, company and bio, then keeps
// profiles listing skill (case-insensitive) when one is given.
func (h *profileHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	skill := strings.TrimSpace(c.Query("skill"))
	if query == "" && skill == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q or skill is required"})
		return
	}

	ctx := c.Request.Context()
	var profiles []entity.Profile
	var err error
	if query == "" {
		profiles, err = h.store.SearchProfiles(ctx, "")
	} else {
		var ids []string
		ids, err = h.search.SearchProfiles(ctx, query)
		if err == nil {
			profiles, err = h.store.FindProfiles(ctx, ids)
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if skill != "" {
		profiles = withSkill(profiles, skill)
	}
	c.JSON(http.StatusOK, profiles)
}

func withSkill(profiles []entity.Profile, skill string) []entity.Profile {
	out := []entity.Profile{}
	for _, p := range profiles {
		for _, s := range p.Skills {
			if strings.EqualFold(s, skill) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
