package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdallah-SE/academy-learning-sub001/domain"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/http/middleware"
	"github.com/Abdallah-SE/academy-learning-sub001/internal/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCookie() CookieConfig {
	return CookieConfig{Name: "auth_token", Secure: false}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionRouter(sessions domain.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSessionHandlers(sessions, testCookie(), false, testLogger())
	router := gin.New()
	router.POST("/auth/login", h.Login)
	router.POST("/auth/register", h.Register)
	router.POST("/auth/refresh", h.Refresh)
	router.POST("/auth/logout", h.Logout)
	router.POST("/auth/2fa/verify", h.VerifyTwoFactor)
	router.GET("/auth/profile", h.Profile)
	router.PUT("/auth/profile", h.UpdateProfile)
	return router
}

func TestSessionHandlers_LoginSuccess(t *testing.T) {
	sessions := mocks.NewMockSessionService(domain.GuardUser)
	router := sessionRouter(sessions)

	w := performJSON(t, router, http.MethodPost, "/auth/login",
		gin.H{"email": "alice@example.com", "password": "secret123"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "mock-token", data["token"])
	assert.Equal(t, "bearer", data["token_type"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Equal(t, "mock-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	// Session cookie when remember was not requested.
	assert.Equal(t, 0, cookies[0].MaxAge)
}

func TestSessionHandlers_LoginRememberSetsPersistentCookie(t *testing.T) {
	sessions := mocks.NewMockSessionService(domain.GuardUser)
	router := sessionRouter(sessions)

	w := performJSON(t, router, http.MethodPost, "/auth/login",
		gin.H{"email": "alice@example.com", "password": "secret123", "remember": true}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestSessionHandlers_LoginErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusBadRequest},
		{"suspended account", domain.ErrPrincipalInactive, http.StatusForbidden},
		{"validation failure", domain.NewValidationError("email", "is required"), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := mocks.NewMockSessionService(domain.GuardUser)
			sessions.LoginFunc = func(ctx context.Context, email, password string, meta domain.LoginMeta) (*domain.AuthResult, error) {
				return nil, tt.err
			}
			router := sessionRouter(sessions)

			w := performJSON(t, router, http.MethodPost, "/auth/login",
				gin.H{"email": "alice@example.com", "password": "x"}, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestSessionHandlers_LoginValidationErrorsExposed(t *testing.T) {
	sessions := mocks.NewMockSessionService(domain.GuardUser)
	sessions.LoginFunc = func(ctx context.Context, email, password string, meta domain.LoginMeta) (*domain.AuthResult, error) {
		ve := &domain.ValidationError{}
		ve.Add("email", "is required")
		ve.Add("password", "is required")
		return nil, ve
	}
	router := sessionRouter(sessions)

	w := performJSON(t, router, http.MethodPost, "/auth/login", gin.H{}, nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, "is required", errs["email"])
	assert.Equal(t, "is required", errs["password"])
}

func TestSessionHandlers_LoginMalformedBody(t *testing.T) {
	router := sessionRouter(mocks.NewMockSessionService(domain.GuardUser))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandlers_LoginTwoFactorPending(t *testing.T) {
	sessions := mocks.NewMockSessionService(domain.GuardAdmin)
	sessions.LoginFunc = func(ctx context.Context, email, password string, meta domain.LoginMeta) (*domain.AuthResult, error) {
		return &domain.AuthResult{
			Principal:   &domain.Principal{ID: 1, Guard: domain.GuardAdmin},
			Requires2FA: true,
		}, nil
	}
	router := sessionRouter(sessions)

	w := performJSON(t, router, http.MethodPost, "/auth/login",
		gin.H{"email": "ops@example.com", "password": "secret"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["requires_2fa"])
	assert.Empty(t, w.Result().Cookies(), "no cookie before the challenge is answered")
}

func TestSessionHandlers_VerifyTwoFactor(t *testing.T) {
	sessions := mocks.NewMockSessionService(domain.GuardAdmin)
	router := sessionRouter(sessions)

	t.Run("success", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/auth/2fa/verify",
			gin.H{"email": "ops@example.com", "code": "123456"}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong code", func(t *testing.T) {
		sessions.VerifyTwoFactorFunc = func(ctx context.Context, email, code string, meta domain.LoginMeta) (*domain.AuthResult, error) {
			return nil, domain.ErrTwoFactorCodeInvalid
		}
		w := performJSON(t, router, http.MethodPost, "/auth/2fa/verify",
			gin.H{"email": "ops@example.com", "code": "000000"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("throttled", func(t *testing.T) {
		sessions.VerifyTwoFactorFunc = func(ctx context.Context, email, code string, meta domain.LoginMeta) (*domain.AuthResult, error) {
			return nil, domain.ErrTwoFactorMaxAttempts
		}
		w := performJSON(t, router, http.MethodPost, "/auth/2fa/verify",
			gin.H{"email": "ops@example.com", "code": "000000"}, nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestSessionHandlers_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router := sessionRouter(mocks.NewMockSessionService(domain.GuardUser))
		w := performJSON(t, router, http.MethodPost, "/auth/register", gin.H{
			"name": "Bob", "email": "bob@example.com",
			"password": "secret123", "password_confirmation": "secret123",
		}, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, w.Result().Cookies(), 1)
	})

	t.Run("duplicate email", func(t *testing.T) {
		sessions := mocks.NewMockSessionService(domain.GuardUser)
		sessions.RegisterFunc = func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
			return nil, domain.NewValidationError("email", "has already been taken")
		}
		router := sessionRouter(sessions)
		w := performJSON(t, router, http.MethodPost, "/auth/register", gin.H{
			"name": "Bob", "email": "taken@example.com",
			"password": "secret123", "password_confirmation": "secret123",
		}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("persisted without token", func(t *testing.T) {
		sessions := mocks.NewMockSessionService(domain.GuardUser)
		sessions.RegisterFunc = func(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
			return &domain.AuthResult{
				Principal: &domain.Principal{ID: 5, Guard: domain.GuardUser, Email: in.Email},
			}, nil
		}
		router := sessionRouter(sessions)
		w := performJSON(t, router, http.MethodPost, "/auth/register", gin.H{
			"name": "Bob", "email": "bob@example.com",
			"password": "secret123", "password_confirmation": "secret123",
		}, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		assert.NotContains(t, data, "token")
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestSessionHandlers_Refresh(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		router := sessionRouter(mocks.NewMockSessionService(domain.GuardUser))
		w := performJSON(t, router, http.MethodPost, "/auth/refresh", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bearer header", func(t *testing.T) {
		sessions := mocks.NewMockSessionService(domain.GuardUser)
		var seen string
		sessions.RefreshFunc = func(ctx context.Context, raw string) (*domain.IssuedToken, error) {
			seen = raw
			return &domain.IssuedToken{Token: "fresh", TokenType: "bearer", ExpiresIn: 3600}, nil
		}
		router := sessionRouter(sessions)
		w := performJSON(t, router, http.MethodPost, "/auth/refresh", nil,
			map[string]string{"Authorization": "Bearer old-token"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "old-token", seen)
		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "fresh", data["token"])
	})

	t.Run("cookie fallback", func(t *testing.T) {
		sessions := mocks.NewMockSessionService(domain.GuardUser)
		var seen string
		sessions.RefreshFunc = func(ctx context.Context, raw string) (*domain.IssuedToken, error) {
			seen = raw
			return &domain.IssuedToken{Token: "fresh", TokenType: "bearer", ExpiresIn: 3600}, nil
		}
		router := sessionRouter(sessions)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie-token"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cookie-token", seen)
	})

	t.Run("dead token", func(t *testing.T) {
		sessions := mocks.NewMockSessionService(domain.GuardUser)
		sessions.RefreshFunc = func(ctx context.Context, raw string) (*domain.IssuedToken, error) {
			return nil, domain.ErrTokenInvalid
		}
		router := sessionRouter(sessions)
		w := performJSON(t, router, http.MethodPost, "/auth/refresh", nil,
			map[string]string{"Authorization": "Bearer dead"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionHandlers_Logout(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		router := sessionRouter(mocks.NewMockSessionService(domain.GuardUser))
		w := performJSON(t, router, http.MethodPost, "/auth/logout", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success clears cookie", func(t *testing.T) {
		router := sessionRouter(mocks.NewMockSessionService(domain.GuardUser))
		w := performJSON(t, router, http.MethodPost, "/auth/logout", nil,
			map[string]string{"Authorization": "Bearer live-token"})

		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "", cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestSessionHandlers_Profile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := mocks.NewMockSessionService(domain.GuardUser)
	h := NewSessionHandlers(sessions, testCookie(), false, testLogger())

	t.Run("unauthenticated", func(t *testing.T) {
		router := gin.New()
		router.GET("/auth/profile", h.Profile)
		w := performJSON(t, router, http.MethodGet, "/auth/profile", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated", func(t *testing.T) {
		router := gin.New()
		router.GET("/auth/profile", func(c *gin.Context) {
			middleware.SetPrincipal(c, &domain.Principal{ID: 1, Guard: domain.GuardUser})
		}, h.Profile)
		w := performJSON(t, router, http.MethodGet, "/auth/profile", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		principal := data["principal"].(map[string]interface{})
		assert.Equal(t, float64(1), principal["id"])
	})
}

func TestSessionHandlers_UpdateProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := mocks.NewMockSessionService(domain.GuardUser)
	var got domain.ProfileUpdateInput
	sessions.UpdateProfileFunc = func(ctx context.Context, principalID uint, in domain.ProfileUpdateInput) (*domain.Principal, error) {
		got = in
		return &domain.Principal{ID: principalID, Guard: domain.GuardUser, Name: *in.Name}, nil
	}
	h := NewSessionHandlers(sessions, testCookie(), false, testLogger())
	router := gin.New()
	router.PUT("/auth/profile", func(c *gin.Context) {
		middleware.SetPrincipal(c, &domain.Principal{ID: 1, Guard: domain.GuardUser})
	}, h.UpdateProfile)

	w := performJSON(t, router, http.MethodPut, "/auth/profile", gin.H{
		"name":             "Alicia",
		"current_password": "secret123",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Alicia", *got.Name)
	assert.Nil(t, got.Email, "absent fields must stay nil")
	assert.Nil(t, got.Password)
	assert.Equal(t, "secret123", got.CurrentPassword)
}
