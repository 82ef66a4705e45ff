package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// GuardMW resolves the request's bearer token against one guard. A valid
// token of the other guard is rejected exactly like a bad one.
type GuardMW struct {
	guard      domain.Guard
	tokenSvc   domain.TokenService
	store      domain.PrincipalStore
	policySvc  domain.PolicyService
	cookieName string
	logger     *slog.Logger
}

// NewGuardMW creates guard-resolution middleware.
func NewGuardMW(guard domain.Guard, tokenSvc domain.TokenService, store domain.PrincipalStore, policySvc domain.PolicyService, cookieName string, logger *slog.Logger) *GuardMW {
	return &GuardMW{
		guard:      guard,
		tokenSvc:   tokenSvc,
		store:      store,
		policySvc:  policySvc,
		cookieName: cookieName,
		logger:     logger,
	}
}

// TokenFromRequest extracts the bearer token, preferring the Authorization
// header and falling back to the guard's session cookie.
func (mw *GuardMW) TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(mw.cookieName); err == nil {
		return cookie
	}
	return ""
}

// Authenticate returns the guard-resolution middleware.
func (mw *GuardMW) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := mw.TokenFromRequest(c)
		if raw == "" {
			unauthenticated(c, "Authentication required")
			return
		}

		claims, err := mw.tokenSvc.Validate(c.Request.Context(), raw)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				unauthenticated(c, "Token expired")
			case errors.Is(err, domain.ErrTokenRevoked):
				unauthenticated(c, "Token revoked")
			default:
				unauthenticated(c, "Invalid token")
			}
			return
		}

		if claims.Guard != mw.guard {
			unauthenticated(c, "Invalid token")
			return
		}

		cred, err := mw.store.FindByID(c.Request.Context(), claims.PrincipalID)
		if err != nil {
			if !errors.Is(err, domain.ErrPrincipalNotFound) {
				mw.logger.Error("principal lookup failed",
					"guard", mw.guard, "principal_id", claims.PrincipalID, "error", err)
			}
			unauthenticated(c, "Invalid token")
			return
		}

		if cred.Principal.Status != domain.StatusActive {
			unauthenticated(c, "Account is not active")
			return
		}

		principal := cred.Principal
		perms, err := mw.policySvc.PermissionsForRoles(mw.guard, principal.Roles)
		if err != nil {
			mw.logger.Warn("permission resolution failed",
				"guard", mw.guard, "principal_id", principal.ID, "error", err)
		} else {
			principal.Permissions = perms
		}

		SetPrincipal(c, &principal)
		SetRawToken(c, raw)
		c.Next()
	}
}

func unauthenticated(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
	c.Abort()
}
