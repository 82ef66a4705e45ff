package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// respondError maps the domain error taxonomy onto HTTP. 500-class messages
// are redacted unless debug mode is on.
func respondError(c *gin.Context, err error, debug bool, logger *slog.Logger) {
	if ve, ok := domain.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  ve.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
	case errors.Is(err, domain.ErrPrincipalInactive):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Account is not active"})
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthenticated"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden"})
	case errors.Is(err, domain.ErrPrincipalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenMalformed):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid token"})
	case errors.Is(err, domain.ErrTwoFactorCodeInvalid),
		errors.Is(err, domain.ErrTwoFactorExpired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired verification code"})
	case errors.Is(err, domain.ErrTwoFactorMaxAttempts),
		errors.Is(err, domain.ErrTwoFactorThrottled):
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many attempts, try again later"})
	case errors.Is(err, domain.ErrRegistrationClosed):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Registration is not available"})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		message := "Internal server error"
		if debug {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
	}
}

// principalJSON renders the principal snapshot for response bodies.
func principalJSON(p *domain.Principal) gin.H {
	return gin.H{
		"id":          p.ID,
		"guard":       p.Guard,
		"name":        p.Name,
		"email":       p.Email,
		"status":      p.Status,
		"roles":       p.Roles,
		"permissions": p.Permissions,
	}
}
