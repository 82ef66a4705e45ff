package httpx

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/http/handlers"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/http/middleware"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	UserAuth       *handlers.SessionHandlers
	AdminAuth      *handlers.SessionHandlers
	Admins         *handlers.AdminHandlers
	UserGuard      *middleware.GuardMW
	AdminGuard     *middleware.GuardMW
	Gate           *middleware.GateMW
	AllowedOrigins []string
}

// BuildRouter assembles the two-guard HTTP surface. The CORS policy allows
// credentials so the browser frontend can use the cookie session contract.
func BuildRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", deps.UserAuth.Login)
	auth.POST("/register", deps.UserAuth.Register)
	auth.POST("/refresh", deps.UserAuth.Refresh)
	auth.POST("/logout", deps.UserAuth.Logout)

	profile := r.Group("/auth").Use(deps.UserGuard.Authenticate())
	profile.GET("/profile", deps.UserAuth.Profile)
	profile.PUT("/profile", deps.UserAuth.UpdateProfile)

	adminAuth := r.Group("/admin/auth")
	adminAuth.POST("/login", deps.AdminAuth.Login)
	adminAuth.POST("/2fa/verify", deps.AdminAuth.VerifyTwoFactor)
	adminAuth.POST("/refresh", deps.AdminAuth.Refresh)
	adminAuth.POST("/logout", deps.AdminAuth.Logout)

	adminProfile := r.Group("/admin/auth").Use(deps.AdminGuard.Authenticate())
	adminProfile.GET("/profile", deps.AdminAuth.Profile)
	adminProfile.PUT("/profile", deps.AdminAuth.UpdateProfile)

	admins := r.Group("/admin/admins").Use(deps.AdminGuard.Authenticate())
	admins.GET("", deps.Gate.Require(domain.RequirePermission("admins.view")), deps.Admins.List)
	admins.GET("/trashed", deps.Gate.Require(domain.RequirePermission("admins.delete")), deps.Admins.Trashed)
	admins.GET("/:id", deps.Gate.Require(domain.RequirePermission("admins.view")), deps.Admins.Get)
	admins.POST("", deps.Gate.Require(domain.RequirePermission("admins.create")), deps.Admins.Create)
	admins.PUT("/:id", deps.Gate.Require(domain.RequirePermission("admins.update")), deps.Admins.Update)
	admins.DELETE("/:id", deps.Gate.Require(domain.RequirePermission("admins.delete")), deps.Admins.Delete)
	admins.POST("/:id/restore", deps.Gate.Require(domain.RequirePermission("admins.delete")), deps.Admins.Restore)
	admins.DELETE("/:id/force", deps.Gate.Require(domain.RequireAnyRole(domain.RoleSuperAdmin)), deps.Admins.ForceDelete)

	return r
}
