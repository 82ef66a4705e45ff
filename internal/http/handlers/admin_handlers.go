package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/services"
)

// AdminHandlers serves the back-office admin CRUD, including the soft-delete
// surface (trashed listing, restore, force delete).
type AdminHandlers struct {
	admins      domain.AdminRepository
	passwordSvc domain.PasswordService
	validator   *services.CredentialValidator
	debug       bool
	logger      *slog.Logger
}

// NewAdminHandlers creates the admin management handlers.
func NewAdminHandlers(admins domain.AdminRepository, passwordSvc domain.PasswordService, validator *services.CredentialValidator, debug bool, logger *slog.Logger) *AdminHandlers {
	return &AdminHandlers{
		admins:      admins,
		passwordSvc: passwordSvc,
		validator:   validator,
		debug:       debug,
		logger:      logger,
	}
}

// AdminCreateRequest represents an admin creation request.
type AdminCreateRequest struct {
	Username             string   `json:"username"`
	Email                string   `json:"email"`
	Password             string   `json:"password"`
	PasswordConfirmation string   `json:"password_confirmation"`
	Status               string   `json:"status"`
	Roles                []string `json:"roles"`
	TwoFactorEnabled     bool     `json:"two_factor_enabled"`
	TwoFactorPhone       string   `json:"two_factor_phone"`
}

// AdminUpdateRequest represents a partial admin update.
type AdminUpdateRequest struct {
	Username         *string   `json:"username"`
	Email            *string   `json:"email"`
	Password         *string   `json:"password"`
	Status           *string   `json:"status"`
	Roles            *[]string `json:"roles"`
	TwoFactorEnabled *bool     `json:"two_factor_enabled"`
	TwoFactorPhone   *string   `json:"two_factor_phone"`
}

// List handles GET /admin/admins.
func (h *AdminHandlers) List(c *gin.Context) {
	page := paginationFrom(c)
	admins, total, err := h.admins.ListActive(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"data":    adminListJSON(admins, total, page),
	})
}

// Trashed handles GET /admin/admins/trashed.
func (h *AdminHandlers) Trashed(c *gin.Context) {
	page := paginationFrom(c)
	admins, total, err := h.admins.ListDeleted(c.Request.Context(), page)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"data":    adminListJSON(admins, total, page),
	})
}

// Get handles GET /admin/admins/:id.
func (h *AdminHandlers) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	admin, err := h.admins.FindActive(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"data":    gin.H{"admin": adminJSON(admin)},
	})
}

// Create handles POST /admin/admins.
func (h *AdminHandlers) Create(c *gin.Context) {
	var req AdminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if err := h.validator.ValidateCredentials(req.Email, req.Password, req.PasswordConfirmation); err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	email := services.NormalizeEmail(req.Email)
	taken, err := h.admins.EmailTaken(c.Request.Context(), email, 0)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}
	if taken {
		respondError(c, domain.NewValidationError("email", "has already been taken"), h.debug, h.logger)
		return
	}

	hashed, err := h.passwordSvc.Hash(req.Password)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	status := req.Status
	if status == "" {
		status = domain.StatusActive
	}
	admin := &domain.Admin{
		Username:         req.Username,
		Email:            email,
		PasswordHash:     hashed,
		Status:           status,
		Roles:            req.Roles,
		TwoFactorEnabled: req.TwoFactorEnabled,
		TwoFactorPhone:   req.TwoFactorPhone,
	}
	if err := h.admins.Create(c.Request.Context(), admin); err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Admin created",
		"data":    gin.H{"admin": adminJSON(admin)},
	})
}

// Update handles PUT /admin/admins/:id.
func (h *AdminHandlers) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	admin, err := h.admins.FindActive(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	if req.Email != nil {
		email := services.NormalizeEmail(*req.Email)
		if email != admin.Email {
			taken, err := h.admins.EmailTaken(c.Request.Context(), email, id)
			if err != nil {
				respondError(c, err, h.debug, h.logger)
				return
			}
			if taken {
				respondError(c, domain.NewValidationError("email", "has already been taken"), h.debug, h.logger)
				return
			}
			admin.Email = email
		}
	}
	if req.Password != nil {
		if err := h.validator.ValidateCredentials(admin.Email, *req.Password, *req.Password); err != nil {
			respondError(c, err, h.debug, h.logger)
			return
		}
		hashed, err := h.passwordSvc.Hash(*req.Password)
		if err != nil {
			respondError(c, err, h.debug, h.logger)
			return
		}
		admin.PasswordHash = hashed
	}
	if req.Username != nil {
		admin.Username = *req.Username
	}
	if req.Status != nil {
		admin.Status = *req.Status
	}
	if req.Roles != nil {
		admin.Roles = *req.Roles
	}
	if req.TwoFactorEnabled != nil {
		admin.TwoFactorEnabled = *req.TwoFactorEnabled
	}
	if req.TwoFactorPhone != nil {
		admin.TwoFactorPhone = *req.TwoFactorPhone
	}

	if err := h.admins.Update(c.Request.Context(), admin); err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Admin updated",
		"data":    gin.H{"admin": adminJSON(admin)},
	})
}

// Delete handles DELETE /admin/admins/:id (soft delete).
func (h *AdminHandlers) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.admins.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin deleted"})
}

// Restore handles POST /admin/admins/:id/restore.
func (h *AdminHandlers) Restore(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.admins.Restore(c.Request.Context(), id); err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin restored"})
}

// ForceDelete handles DELETE /admin/admins/:id/force.
func (h *AdminHandlers) ForceDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.admins.ForceDelete(c.Request.Context(), id); err != nil {
		respondError(c, err, h.debug, h.logger)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin permanently deleted"})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func paginationFrom(c *gin.Context) domain.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return domain.Pagination{Page: page, PerPage: perPage}.Normalize()
}

func adminJSON(a *domain.Admin) gin.H {
	return gin.H{
		"id":                 a.ID,
		"username":           a.Username,
		"email":              a.Email,
		"status":             a.Status,
		"roles":              a.Roles,
		"two_factor_enabled": a.TwoFactorEnabled,
		"last_login_at":      a.LastLoginAt,
		"deleted_at":         a.DeletedAt,
		"created_at":         a.CreatedAt,
		"updated_at":         a.UpdatedAt,
	}
}

func adminListJSON(admins []domain.Admin, total int64, page domain.Pagination) gin.H {
	items := make([]gin.H, 0, len(admins))
	for i := range admins {
		items = append(items, adminJSON(&admins[i]))
	}
	return gin.H{
		"admins": items,
		"meta": gin.H{
			"total":    total,
			"page":     page.Page,
			"per_page": page.PerPage,
		},
	}
}
