package transport

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenHolder owns the bearer token shared by every outgoing request.
// Login and logout write it; the request interceptor reads it.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
	// generation changes on every Clear, ending the session it belonged to.
	generation uint64
}

func NewTokenHolder() *TokenHolder {
	return &TokenHolder{}
}

func (h *TokenHolder) Set(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *TokenHolder) Get() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *TokenHolder) Clear() {
	h.mu.Lock()
	h.token = ""
	h.generation++
	h.mu.Unlock()
}

// Generation identifies the current session. Capture it before a sign-in
// request and pass it to SetFor when the token arrives.
func (h *TokenHolder) Generation() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.generation
}

// SetFor stores token only if no Clear happened since generation was read.
func (h *TokenHolder) SetFor(generation uint64, token string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.generation != generation {
		return false
	}
	h.token = token
	return true
}

// Claims decodes the token payload without verifying the signature. The
// server remains the authority; the client only reads who it is and when
// the token lapses.
func (h *TokenHolder) Claims() (*jwt.RegisteredClaims, bool) {
	token := h.Get()
	if token == "" {
		return nil, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// Subject returns the user id the token was issued for, or "".
func (h *TokenHolder) Subject() string {
	claims, ok := h.Claims()
	if !ok {
		return ""
	}
	return claims.Subject
}

// Active reports whether a token is held and has not expired at now.
// Tokens without an exp claim count as active.
func (h *TokenHolder) Active(now time.Time) bool {
	claims, ok := h.Claims()
	if !ok {
		return false
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return now.Before(claims.ExpiresAt.Time)
}
