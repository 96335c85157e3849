package http

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evanlin/lifeboard/internal/domain/auth"
	apperrors "github.com/evanlin/lifeboard/pkg/errors"
)

// AuthHandler wires the owner authentication endpoints.
type AuthHandler struct {
	svc    auth.Service
	logger *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger.With("component", "http.auth")}
}

// Register claims the site. It only succeeds once.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, authError(err, "register_failed"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login exchanges credentials for tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, authError(err, "login_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh issues fresh tokens against a refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortWithError(c, authError(err, "refresh_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleLogin redirects the browser to the Google consent screen.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "auth_failed", "failed to generate state", err))
		return
	}
	url, err := h.svc.GoogleAuthURL(c.Request.Context(), state)
	if err != nil {
		abortWithError(c, authError(err, "google_failed"))
		return
	}
	setOAuthStateCookie(c, state)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the OAuth exchange and logs the owner in.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	stored, ok := readOAuthStateCookie(c)
	clearOAuthStateCookie(c)
	if !ok || stored != c.Query("state") {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_state", "oauth state mismatch", nil))
		return
	}
	code := c.Query("code")
	if code == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "missing authorization code", nil))
		return
	}

	resp, err := h.svc.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		abortWithError(c, authError(err, "google_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func randomState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func authError(err error, fallback string) *HTTPError {
	status := http.StatusInternalServerError
	code := fallback
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "invalid_credentials"):
		status = http.StatusUnauthorized
		code = "invalid_credentials"
	case apperrors.IsCode(err, "invalid_token"):
		status = http.StatusUnauthorized
		code = "invalid_token"
	case apperrors.IsCode(err, "registration_closed"):
		status = http.StatusForbidden
		code = "registration_closed"
	case apperrors.IsCode(err, "auth_disabled"):
		status = http.StatusNotImplemented
		code = "auth_disabled"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}
