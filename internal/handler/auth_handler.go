package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fbauth/internal/auth"
	"fbauth/internal/config"
	"fbauth/internal/middleware"
	"fbauth/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	facebookAuthService service.FacebookAuthService
	sessionCfg          config.SessionConfig
	log                 *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(facebookAuthService service.FacebookAuthService, sessionCfg config.SessionConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{facebookAuthService: facebookAuthService, sessionCfg: sessionCfg, log: log}
}

// FacebookLogin handles POST /api/v1/auth/facebook
func (h *AuthHandler) FacebookLogin(c *gin.Context) {
	var input service.FacebookLoginInput
	// The body is optional: a session may already hold the access token.
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.SessionID = h.ensureSession(c)
	input.Attributes = requestAttributes(c)

	output, err := h.facebookAuthService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, output)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input service.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.SessionID = h.sessionID(c)
	input.Attributes = requestAttributes(c)

	output, err := h.facebookAuthService.Refresh(c.Request.Context(), input)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, output)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.facebookAuthService.Logout(c.Request.Context(), h.sessionID(c)); err != nil {
		HandleError(c, h.log, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCfg.CookieName, "", -1, "/", "", h.sessionCfg.CookieSecure, true)
	RespondOK(c, gin.H{"message": "logged out"})
}

// Me handles GET /api/v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
		return
	}
	RespondOK(c, gin.H{
		"subject":      claims.Subject,
		"user_id":      claims.UserID,
		"facebook_id":  claims.FacebookID,
		"roles":        claims.Roles,
		"provider_key": claims.ProviderKey,
	})
}

func (h *AuthHandler) sessionID(c *gin.Context) string {
	sid, err := c.Cookie(h.sessionCfg.CookieName)
	if err != nil {
		return ""
	}
	return sid
}

// ensureSession returns the request's session ID, issuing a new session
// cookie when the client has none.
func (h *AuthHandler) ensureSession(c *gin.Context) string {
	if sid := h.sessionID(c); sid != "" {
		return sid
	}
	sid := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCfg.CookieName, sid, int(h.sessionCfg.TTL.Seconds()), "/", "", h.sessionCfg.CookieSecure, true)
	return sid
}

// requestAttributes collects request metadata carried on the auth token.
func requestAttributes(c *gin.Context) auth.Attributes {
	attrs := auth.Attributes{
		"client_ip":  c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
	}
	if requestID, ok := c.Get("request_id"); ok {
		attrs["request_id"] = requestID
	}
	return attrs
}
