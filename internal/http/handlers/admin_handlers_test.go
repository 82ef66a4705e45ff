package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/mocks"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/services"
)

func adminRouter(repo domain.AdminRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandlers(repo, mocks.NewMockPasswordService(),
		services.NewCredentialValidator(domain.PasswordPolicy{MinLength: 6}),
		false, testLogger())
	router := gin.New()
	group := router.Group("/admin/admins")
	group.GET("", h.List)
	group.GET("/trashed", h.Trashed)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.POST("/:id/restore", h.Restore)
	group.DELETE("/:id/force", h.ForceDelete)
	return router
}

func sampleAdmin() *domain.Admin {
	return &domain.Admin{
		ID:           1,
		Username:     "ops",
		Email:        "ops@example.com",
		PasswordHash: "hashed:secret1",
		Status:       domain.StatusActive,
		Roles:        []string{"admin"},
	}
}

func TestAdminHandlers_List(t *testing.T) {
	repo := mocks.NewMockAdminRepository()
	repo.ListActiveFunc = func(ctx context.Context, page domain.Pagination) ([]domain.Admin, int64, error) {
		return []domain.Admin{*sampleAdmin()}, 1, nil
	}
	router := adminRouter(repo)

	w := performJSON(t, router, http.MethodGet, "/admin/admins?page=1&per_page=10", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	admins := data["admins"].([]interface{})
	assert.Len(t, admins, 1)
	meta := data["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total"])
	assert.Equal(t, float64(10), meta["per_page"])
}

func TestAdminHandlers_TrashedListsDeleted(t *testing.T) {
	repo := mocks.NewMockAdminRepository()
	repo.ListDeletedFunc = func(ctx context.Context, page domain.Pagination) ([]domain.Admin, int64, error) {
		admin := sampleAdmin()
		deletedAt := time.Now()
		admin.DeletedAt = &deletedAt
		return []domain.Admin{*admin}, 1, nil
	}
	router := adminRouter(repo)

	w := performJSON(t, router, http.MethodGet, "/admin/admins/trashed", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	admins := data["admins"].([]interface{})
	require.Len(t, admins, 1)
	first := admins[0].(map[string]interface{})
	assert.NotNil(t, first["deleted_at"])
}

func TestAdminHandlers_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := mocks.NewMockAdminRepository()
		repo.FindActiveFunc = func(ctx context.Context, id uint) (*domain.Admin, error) {
			return sampleAdmin(), nil
		}
		router := adminRouter(repo)
		w := performJSON(t, router, http.MethodGet, "/admin/admins/1", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		router := adminRouter(mocks.NewMockAdminRepository())
		w := performJSON(t, router, http.MethodGet, "/admin/admins/999", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		router := adminRouter(mocks.NewMockAdminRepository())
		w := performJSON(t, router, http.MethodGet, "/admin/admins/abc", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandlers_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		repo := mocks.NewMockAdminRepository()
		var created *domain.Admin
		repo.CreateFunc = func(ctx context.Context, admin *domain.Admin) error {
			created = admin
			admin.ID = 7
			return nil
		}
		router := adminRouter(repo)

		w := performJSON(t, router, http.MethodPost, "/admin/admins", gin.H{
			"username":              "ops",
			"email":                 "Ops@Example.COM",
			"password":              "secret1",
			"password_confirmation": "secret1",
			"roles":                 []string{"moderator"},
		}, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, created)
		assert.Equal(t, "ops@example.com", created.Email, "email must be normalized")
		assert.Equal(t, domain.StatusActive, created.Status, "status defaults to active")
		assert.NotEqual(t, "secret1", created.PasswordHash)
	})

	t.Run("short password", func(t *testing.T) {
		router := adminRouter(mocks.NewMockAdminRepository())
		w := performJSON(t, router, http.MethodPost, "/admin/admins", gin.H{
			"email":                 "ops@example.com",
			"password":              "tiny",
			"password_confirmation": "tiny",
		}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("taken email", func(t *testing.T) {
		repo := mocks.NewMockAdminRepository()
		repo.EmailTakenFunc = func(ctx context.Context, email string, excludeID uint) (bool, error) {
			return true, nil
		}
		router := adminRouter(repo)
		w := performJSON(t, router, http.MethodPost, "/admin/admins", gin.H{
			"email":                 "ops@example.com",
			"password":              "secret1",
			"password_confirmation": "secret1",
		}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAdminHandlers_Update(t *testing.T) {
	repo := mocks.NewMockAdminRepository()
	repo.FindActiveFunc = func(ctx context.Context, id uint) (*domain.Admin, error) {
		return sampleAdmin(), nil
	}
	var updated *domain.Admin
	repo.UpdateFunc = func(ctx context.Context, admin *domain.Admin) error {
		updated = admin
		return nil
	}
	router := adminRouter(repo)

	w := performJSON(t, router, http.MethodPut, "/admin/admins/1", gin.H{
		"status": domain.StatusSuspended,
		"roles":  []string{"moderator"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, updated)
	assert.Equal(t, domain.StatusSuspended, updated.Status)
	assert.Equal(t, []string{"moderator"}, updated.Roles)
	assert.Equal(t, "ops@example.com", updated.Email, "absent fields stay untouched")
	assert.Equal(t, "hashed:secret1", updated.PasswordHash, "absent password stays untouched")
}

func TestAdminHandlers_UpdateTakenEmail(t *testing.T) {
	repo := mocks.NewMockAdminRepository()
	repo.FindActiveFunc = func(ctx context.Context, id uint) (*domain.Admin, error) {
		return sampleAdmin(), nil
	}
	repo.EmailTakenFunc = func(ctx context.Context, email string, excludeID uint) (bool, error) {
		return true, nil
	}
	router := adminRouter(repo)

	w := performJSON(t, router, http.MethodPut, "/admin/admins/1", gin.H{
		"email": "other@example.com",
	}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdminHandlers_DeleteLifecycle(t *testing.T) {
	t.Run("soft delete", func(t *testing.T) {
		repo := mocks.NewMockAdminRepository()
		var deleted uint
		repo.SoftDeleteFunc = func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		}
		router := adminRouter(repo)
		w := performJSON(t, router, http.MethodDelete, "/admin/admins/3", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(3), deleted)
	})

	t.Run("soft delete missing", func(t *testing.T) {
		repo := mocks.NewMockAdminRepository()
		repo.SoftDeleteFunc = func(ctx context.Context, id uint) error {
			return domain.ErrPrincipalNotFound
		}
		router := adminRouter(repo)
		w := performJSON(t, router, http.MethodDelete, "/admin/admins/999", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("restore", func(t *testing.T) {
		repo := mocks.NewMockAdminRepository()
		var restored uint
		repo.RestoreFunc = func(ctx context.Context, id uint) error {
			restored = id
			return nil
		}
		router := adminRouter(repo)
		w := performJSON(t, router, http.MethodPost, "/admin/admins/3/restore", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(3), restored)
	})

	t.Run("restore without tombstone", func(t *testing.T) {
		repo := mocks.NewMockAdminRepository()
		repo.RestoreFunc = func(ctx context.Context, id uint) error {
			return domain.ErrPrincipalNotFound
		}
		router := adminRouter(repo)
		w := performJSON(t, router, http.MethodPost, "/admin/admins/3/restore", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("force delete", func(t *testing.T) {
		repo := mocks.NewMockAdminRepository()
		var purged uint
		repo.ForceDeleteFunc = func(ctx context.Context, id uint) error {
			purged = id
			return nil
		}
		router := adminRouter(repo)
		w := performJSON(t, router, http.MethodDelete, "/admin/admins/3/force", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(3), purged)
	})
}
