package devapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/auth/dto"
	"anoa.com/leadercircle/pkg/logger"
	"anoa.com/leadercircle/pkg/validator"
)

type authHandler struct {
	store  Store
	tokens *Tokens
	search Search
}

func (h *authHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.store.FindUserByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	} else if !isNotFound(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = entity.RoleApplicant
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CohortID:     req.CohortID,
		Profile: &entity.Profile{
			FullName: strings.TrimSpace(req.FullName),
			Skills:   []string{},
		},
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.search.IndexProfile(user.Profile); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to index profile")
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *authHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.store.FindUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *authHandler) respondWithToken(c *gin.Context, status int, user *entity.User) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(status, dto.AuthResponse{
		Token:     token,
		ExpiresIn: int64(h.tokens.ttl.Seconds()),
		User:      *user,
	})
}

// bindJSON decodes the body into req and applies its validate tags. It
// writes the 400 response itself and reports whether the handler may go on.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
