package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/config"
	httpx "github.com/Abdallah-SE/academy-learning-sub001/internal/http"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/http/handlers"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/http/middleware"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/services"
)

// Run wires the container into the HTTP surface and serves it.
func Run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	seedPolicies(c, logger)

	userCookie := handlers.CookieConfig{Name: "auth_token", Secure: !cfg.Debug}
	adminCookie := handlers.CookieConfig{Name: "admin_token", Secure: !cfg.Debug}

	userAuth := handlers.NewSessionHandlers(c.UserSessions, userCookie, cfg.Debug, logger)
	adminAuth := handlers.NewSessionHandlers(c.AdminSessions, adminCookie, cfg.Debug, logger)
	adminValidator := services.NewCredentialValidator(domain.PasswordPolicy{MinLength: cfg.AdminPasswordMin})
	adminH := handlers.NewAdminHandlers(c.AdminRepo, c.PasswordSvc, adminValidator, cfg.Debug, logger)

	userGuard := middleware.NewGuardMW(domain.GuardUser, c.TokenSvc, c.UserStore, c.PolicySvc, userCookie.Name, logger)
	adminGuard := middleware.NewGuardMW(domain.GuardAdmin, c.TokenSvc, c.AdminStore, c.PolicySvc, adminCookie.Name, logger)
	gateMW := middleware.NewGateMW(c.Gate, logger)

	r := httpx.BuildRouter(httpx.RouterDeps{
		UserAuth:       userAuth,
		AdminAuth:      adminAuth,
		Admins:         adminH,
		UserGuard:      userGuard,
		AdminGuard:     adminGuard,
		Gate:           gateMW,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default role -> permission grants on an empty
// policy table. super_admin needs no grants, the gate bypasses it.
func seedPolicies(c *Container, logger *slog.Logger) {
	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) > 0 {
		return
	}

	grants := []struct {
		role string
		perm string
	}{
		{"admin", "admins.view"},
		{"admin", "admins.create"},
		{"admin", "admins.update"},
		{"admin", "admins.delete"},
		{"moderator", "admins.view"},
	}
	for _, g := range grants {
		if err := c.PolicySvc.Grant(domain.GuardAdmin, g.role, g.perm); err != nil {
			logger.Error("policy seeding failed", "role", g.role, "permission", g.perm, "error", err)
			return
		}
	}
	logger.Info("casbin: seeded default policies")
}
