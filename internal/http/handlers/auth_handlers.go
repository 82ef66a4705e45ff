package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/http/middleware"
)

// CookieConfig describes the session cookie one guard hands to the browser
// frontend. The cookie is an alternative carrier for the same bearer token.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

// SessionHandlers serves the session lifecycle for one guard. The user and
// admin guards each get an instance wired to their own session service.
type SessionHandlers struct {
	sessions domain.SessionService
	cookie   CookieConfig
	debug    bool
	logger   *slog.Logger
}

// NewSessionHandlers creates session handlers for one guard.
func NewSessionHandlers(sessions domain.SessionService, cookie CookieConfig, debug bool, logger *slog.Logger) *SessionHandlers {
	return &SessionHandlers{
		sessions: sessions,
		cookie:   cookie,
		debug:    debug,
		logger:   logger,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// TwoFactorRequest represents a two-factor completion request.
type TwoFactorRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Remember bool   `json:"remember"`
}

// ProfileUpdateRequest represents a profile update request.
type ProfileUpdateRequest struct {
	Name                 *string `json:"name"`
	Email                *string `json:"email"`
	Phone                *string `json:"phone"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation"`
	CurrentPassword      string  `json:"current_password"`
}

// Login handles POST /auth/login.
func (h *SessionHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	meta := loginMeta(c, req.Remember)
	result, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password, meta)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	if result.Requires2FA {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Two-factor verification required",
			"data":    gin.H{"requires_2fa": true},
		})
		return
	}

	h.setSessionCookie(c, result.Token, meta.Remember)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in successfully",
		"data":    authResultJSON(result),
	})
}

// VerifyTwoFactor handles POST /admin/auth/2fa/verify.
func (h *SessionHandlers) VerifyTwoFactor(c *gin.Context) {
	var req TwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	meta := loginMeta(c, req.Remember)
	result, err := h.sessions.VerifyTwoFactor(c.Request.Context(), req.Email, req.Code, meta)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	h.setSessionCookie(c, result.Token, meta.Remember)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in successfully",
		"data":    authResultJSON(result),
	})
}

// Register handles POST /auth/register. Registration succeeds when the
// principal is persisted; the token is best-effort.
func (h *SessionHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	result, err := h.sessions.Register(c.Request.Context(), domain.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Meta:                 loginMeta(c, false),
	})
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	if result.Token != nil {
		h.setSessionCookie(c, result.Token, false)
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registered successfully",
		"data":    authResultJSON(result),
	})
}

// Refresh handles POST /auth/refresh.
func (h *SessionHandlers) Refresh(c *gin.Context) {
	raw := h.tokenFromRequest(c)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No token presented"})
		return
	}

	token, err := h.sessions.Refresh(c.Request.Context(), raw)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	h.setSessionCookie(c, token, false)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token refreshed",
		"data": gin.H{
			"token":      token.Token,
			"token_type": token.TokenType,
			"expires_in": token.ExpiresIn,
		},
	})
}

// Logout handles POST /auth/logout. Logging out an already-dead token still
// succeeds so the endpoint does not reveal token validity.
func (h *SessionHandlers) Logout(c *gin.Context) {
	raw := h.tokenFromRequest(c)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No token presented"})
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), raw); err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Profile handles GET /auth/profile.
func (h *SessionHandlers) Profile(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated"})
		return
	}

	snapshot, err := h.sessions.Profile(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"data":    gin.H{"principal": principalJSON(snapshot)},
	})
}

// UpdateProfile handles PUT /auth/profile.
func (h *SessionHandlers) UpdateProfile(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated"})
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	snapshot, err := h.sessions.UpdateProfile(c.Request.Context(), principal.ID, domain.ProfileUpdateInput{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		CurrentPassword:      req.CurrentPassword,
	})
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated",
		"data":    gin.H{"principal": principalJSON(snapshot)},
	})
}

// tokenFromRequest extracts the bearer token from the Authorization header
// or the guard's cookie.
func (h *SessionHandlers) tokenFromRequest(c *gin.Context) string {
	if raw := middleware.RawTokenFrom(c); raw != "" {
		return raw
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(h.cookie.Name); err == nil {
		return cookie
	}
	return ""
}

func (h *SessionHandlers) setSessionCookie(c *gin.Context, token *domain.IssuedToken, remember bool) {
	maxAge := 0 // session cookie
	if remember {
		maxAge = int(token.ExpiresIn)
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.cookie.Name, token.Token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *SessionHandlers) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func authResultJSON(result *domain.AuthResult) gin.H {
	data := gin.H{"principal": principalJSON(result.Principal)}
	if result.Token != nil {
		data["token"] = result.Token.Token
		data["token_type"] = result.Token.TokenType
		data["expires_in"] = result.Token.ExpiresIn
	}
	return data
}

func loginMeta(c *gin.Context, remember bool) domain.LoginMeta {
	return domain.LoginMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Remember:  remember,
	}
}
