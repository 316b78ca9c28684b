package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAuthController_Register(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		svc          *fakeAuthService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name: "success",
			body: `{"name":"Ada","email":"ada@example.com","password":"password123"}`,
			svc: &fakeAuthService{registerUser: &domain.User{
				ID: "user-1", Name: "Ada", Email: "ada@example.com",
			}},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "missing fields",
			body:         `{"email":"ada@example.com"}`,
			svc:          &fakeAuthService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "malformed json",
			body:         `{"name":`,
			svc:          &fakeAuthService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "duplicate email",
			body:         `{"name":"Ada","email":"ada@example.com","password":"password123"}`,
			svc:          &fakeAuthService{registerErr: domain.ErrDuplicateEmail},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
		{
			name:         "service error",
			body:         `{"name":"Ada","email":"ada@example.com","password":"password123"}`,
			svc:          &fakeAuthService{registerErr: assert.AnError},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAuthController(testLogger(), tt.svc, &fakeUserService{}, false, 24*time.Hour)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(tt.body))
			rec := doRequest(c.Register, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeEnvelope(t, rec)
			if tt.wantBodyCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantBodyCode, resp.Error.Code)
				return
			}
			require.Nil(t, resp.Error)
			user, ok := resp.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "user-1", user["id"])
			assert.NotContains(t, user, "password_hash", "hashes never leave the server")
			assert.NotContains(t, user, "salt")
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	t.Run("success sets session cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			loginToken: "signed-token",
			loginUser:  &domain.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"},
		}
		c := NewAuthController(testLogger(), svc, &fakeUserService{}, false, 24*time.Hour)
		req := httptest.NewRequest(http.MethodPost, "/login",
			bytes.NewBufferString(`{"email":"ada@example.com","password":"password123"}`))
		rec := doRequest(c.Login, req)

		require.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, middleware.SessionCookieName, cookie.Name)
		assert.Equal(t, "signed-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
		assert.False(t, cookie.Secure, "secure only in production")

		resp := decodeEnvelope(t, rec)
		user, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ada@example.com", user["email"])
	})

	t.Run("secure cookie in production mode", func(t *testing.T) {
		svc := &fakeAuthService{loginToken: "tok", loginUser: &domain.User{ID: "user-1"}}
		c := NewAuthController(testLogger(), svc, &fakeUserService{}, true, 24*time.Hour)
		req := httptest.NewRequest(http.MethodPost, "/login",
			bytes.NewBufferString(`{"email":"a@b.com","password":"x"}`))
		rec := doRequest(c.Login, req)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{loginErr: domain.ErrInvalidCredentials}
		c := NewAuthController(testLogger(), svc, &fakeUserService{}, false, 24*time.Hour)
		req := httptest.NewRequest(http.MethodPost, "/login",
			bytes.NewBufferString(`{"email":"ada@example.com","password":"wrong"}`))
		rec := doRequest(c.Login, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeUnauthorized, resp.Error.Code)
		assert.Empty(t, rec.Result().Cookies(), "no cookie on failed login")
	})

	t.Run("missing fields", func(t *testing.T) {
		c := NewAuthController(testLogger(), &fakeAuthService{}, &fakeUserService{}, false, 24*time.Hour)
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{}`))
		rec := doRequest(c.Login, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthController_Logout(t *testing.T) {
	c := NewAuthController(testLogger(), &fakeAuthService{}, &fakeUserService{}, false, 24*time.Hour)

	// Idempotent: works the same with or without an existing session.
	for _, withCookie := range []bool{true, false} {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		if withCookie {
			req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok"})
		}
		rec := doRequest(c.Logout, req)

		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	}
}

func TestAuthController_Profile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		users := &fakeUserService{getUser: &domain.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"}}
		c := NewAuthController(testLogger(), &fakeAuthService{}, users, false, 24*time.Hour)
		req := withUser(httptest.NewRequest(http.MethodGet, "/profile", nil), "user-1")
		rec := doRequest(c.Profile, req)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeEnvelope(t, rec)
		user, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ada", user["name"])
	})

	t.Run("no user in context", func(t *testing.T) {
		c := NewAuthController(testLogger(), &fakeAuthService{}, &fakeUserService{}, false, 24*time.Hour)
		rec := doRequest(c.Profile, httptest.NewRequest(http.MethodGet, "/profile", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user gone", func(t *testing.T) {
		users := &fakeUserService{getErr: domain.ErrNotFound}
		c := NewAuthController(testLogger(), &fakeAuthService{}, users, false, 24*time.Hour)
		req := withUser(httptest.NewRequest(http.MethodGet, "/profile", nil), "user-1")
		rec := doRequest(c.Profile, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
