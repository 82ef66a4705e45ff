package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
)

// GateMW enforces authorization requirements on protected routes.
type GateMW struct {
	gate   domain.AccessGate
	logger *slog.Logger
}

// NewGateMW creates authorization middleware over the access gate.
func NewGateMW(gate domain.AccessGate, logger *slog.Logger) *GateMW {
	return &GateMW{gate: gate, logger: logger}
}

// Require aborts the request unless the resolved principal satisfies the
// requirement. A missing principal is 401, a denial is 403.
func (mw *GateMW) Require(req domain.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		err := mw.gate.Require(principal, req)
		if err == nil {
			c.Next()
			return
		}

		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			unauthenticated(c, "Authentication required")
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden"})
			c.Abort()
		default:
			mw.logger.Error("authorization check failed",
				"path", c.FullPath(), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Authorization check failed"})
			c.Abort()
		}
	}
}
