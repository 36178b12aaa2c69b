package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly-dev/viewly/internal/api/middleware"
	"github.com/viewly-dev/viewly/internal/domain/model"
	"github.com/viewly-dev/viewly/internal/domain/repository"
	"github.com/viewly-dev/viewly/internal/usecase"
)

// Mock AuthService

type mockAuthService struct {
	registerFn       func(ctx context.Context, input usecase.RegisterInput) (*model.User, error)
	loginFn          func(ctx context.Context, login, password string) (*model.User, *usecase.TokenPair, error)
	refreshFn        func(ctx context.Context, refreshToken string) (*usecase.TokenPair, error)
	logoutFn         func(ctx context.Context, userID uuid.UUID) error
	changePasswordFn func(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	validateAccessFn func(token string) (uuid.UUID, error)
	currentUserFn    func(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, input usecase.RegisterInput) (*model.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, input)
	}
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, login, password string) (*model.User, *usecase.TokenPair, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, login, password)
	}
	return nil, nil, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return nil, nil
}

func (m *mockAuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, userID)
	}
	return nil
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, oldPassword, newPassword)
	}
	return nil
}

func (m *mockAuthService) ValidateAccess(token string) (uuid.UUID, error) {
	if m.validateAccessFn != nil {
		return m.validateAccessFn(token)
	}
	return uuid.Nil, usecase.ErrUnauthorized
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, userID)
	}
	return nil, nil
}

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", FullName: "Alice"}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *mockAuthService)
		wantStatusCode int
		checkResponse  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:        "successful login sets cookies and returns tokens",
			requestBody: LoginRequest{Login: "alice", Password: "correct-horse"},
			setupMock: func(m *mockAuthService) {
				m.loginFn = func(ctx context.Context, login, password string) (*model.User, *usecase.TokenPair, error) {
					return user, &usecase.TokenPair{AccessToken: "access.jwt", RefreshToken: "refresh.jwt"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.AccessToken != "access.jwt" || resp.RefreshToken != "refresh.jwt" {
					t.Error("expected both tokens in body")
				}
				if resp.User.Username != "alice" {
					t.Errorf("expected username alice, got %s", resp.User.Username)
				}

				access := responseCookie(t, rec, middleware.AccessTokenCookie)
				refresh := responseCookie(t, rec, refreshTokenCookie)
				if access == nil || refresh == nil {
					t.Fatal("expected both token cookies to be set")
				}
				if !access.HttpOnly || !refresh.HttpOnly {
					t.Error("expected cookies to be HttpOnly")
				}
				if !access.Secure || !refresh.Secure {
					t.Error("expected cookies to be Secure")
				}
				if access.Value != "access.jwt" || refresh.Value != "refresh.jwt" {
					t.Error("expected cookies to carry the issued tokens")
				}
			},
		},
		{
			name:        "invalid credentials",
			requestBody: LoginRequest{Login: "alice", Password: "wrong"},
			setupMock: func(m *mockAuthService) {
				m.loginFn = func(ctx context.Context, login, password string) (*model.User, *usecase.TokenPair, error) {
					return nil, nil, usecase.ErrInvalidCredentials
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing login",
			requestBody:    LoginRequest{Password: "correct-horse"},
			setupMock:      func(m *mockAuthService) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON body",
			requestBody:    "not json",
			setupMock:      func(m *mockAuthService) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{}
			tt.setupMock(svc)

			h := NewAuthHandler(svc, true)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/v1/login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, rec)
			}
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	tests := []struct {
		name           string
		cookie         *http.Cookie
		requestBody    any
		setupMock      func(m *mockAuthService)
		wantStatusCode int
	}{
		{
			name:   "refresh via cookie",
			cookie: &http.Cookie{Name: refreshTokenCookie, Value: "current.jwt"},
			setupMock: func(m *mockAuthService) {
				m.refreshFn = func(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
					if refreshToken != "current.jwt" {
						t.Errorf("expected cookie token, got %q", refreshToken)
					}
					return &usecase.TokenPair{AccessToken: "next.access", RefreshToken: "next.refresh"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "refresh via body for non-cookie clients",
			requestBody: RefreshRequest{RefreshToken: "current.jwt"},
			setupMock: func(m *mockAuthService) {
				m.refreshFn = func(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
					return &usecase.TokenPair{AccessToken: "next.access", RefreshToken: "next.refresh"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing token",
			setupMock:      func(m *mockAuthService) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "superseded token",
			cookie: &http.Cookie{Name: refreshTokenCookie, Value: "stale.jwt"},
			setupMock: func(m *mockAuthService) {
				m.refreshFn = func(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
					return nil, usecase.ErrUnauthorized
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{}
			tt.setupMock(svc)

			h := NewAuthHandler(svc, true)

			var body []byte
			if tt.requestBody != nil {
				body, _ = json.Marshal(tt.requestBody)
			}
			req := httptest.NewRequest(http.MethodPost, "/v1/refresh-token", bytes.NewReader(body))
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			h.Refresh(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}

			if tt.wantStatusCode == http.StatusOK {
				access := responseCookie(t, rec, middleware.AccessTokenCookie)
				refresh := responseCookie(t, rec, refreshTokenCookie)
				if access == nil || refresh == nil {
					t.Fatal("expected rotated cookies to be set")
				}
				if access.Value != "next.access" || refresh.Value != "next.refresh" {
					t.Error("expected cookies to carry the rotated tokens")
				}
			}
		})
	}
}

// Every token failure must produce the same response body.
func TestAuthHandler_Refresh_UniformFailureBody(t *testing.T) {
	svc := &mockAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
			return nil, usecase.ErrUnauthorized
		},
	}
	h := NewAuthHandler(svc, true)

	bodies := map[string]string{}

	// Missing token.
	rec := httptest.NewRecorder()
	h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/v1/refresh-token", nil))
	bodies["missing"] = rec.Body.String()

	// Rejected token (expired, malformed, and superseded all surface as
	// ErrUnauthorized from the service).
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "anything"})
	h.Refresh(rec, req)
	bodies["rejected"] = rec.Body.String()

	if bodies["missing"] != bodies["rejected"] {
		t.Errorf("failure bodies differ: %q vs %q", bodies["missing"], bodies["rejected"])
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	userID := uuid.New()

	loggedOut := false
	svc := &mockAuthService{
		validateAccessFn: func(token string) (uuid.UUID, error) {
			if token == "valid.jwt" {
				return userID, nil
			}
			return uuid.Nil, usecase.ErrUnauthorized
		},
		logoutFn: func(ctx context.Context, id uuid.UUID) error {
			if id != userID {
				t.Errorf("expected user %s, got %s", userID, id)
			}
			loggedOut = true
			return nil
		},
	}

	h := NewAuthHandler(svc, true)

	r := chi.NewRouter()
	r.With(middleware.RequireAuth(svc)).Post("/v1/logout", h.Logout)

	req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !loggedOut {
		t.Error("expected stored refresh token to be cleared")
	}

	access := responseCookie(t, rec, middleware.AccessTokenCookie)
	refresh := responseCookie(t, rec, refreshTokenCookie)
	if access == nil || refresh == nil {
		t.Fatal("expected both cookies to be cleared")
	}
	if access.MaxAge >= 0 || refresh.MaxAge >= 0 {
		t.Error("expected cleared cookies to carry a negative Max-Age")
	}

	// Without a token the endpoint never reaches the handler.
	req = httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous logout status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    RegisterRequest
		setupMock      func(m *mockAuthService)
		wantStatusCode int
	}{
		{
			name:        "successful registration",
			requestBody: RegisterRequest{Username: "alice", Email: "alice@example.com", FullName: "Alice", Password: "secret"},
			setupMock: func(m *mockAuthService) {
				m.registerFn = func(ctx context.Context, input usecase.RegisterInput) (*model.User, error) {
					return &model.User{ID: uuid.New(), Username: input.Username, Email: input.Email, FullName: input.FullName}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:        "duplicate user",
			requestBody: RegisterRequest{Username: "alice", Email: "alice@example.com", FullName: "Alice", Password: "secret"},
			setupMock: func(m *mockAuthService) {
				m.registerFn = func(ctx context.Context, input usecase.RegisterInput) (*model.User, error) {
					return nil, repository.ErrDuplicateUser
				}
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name:        "invalid email",
			requestBody: RegisterRequest{Username: "alice", Email: "nope", FullName: "Alice", Password: "secret"},
			setupMock: func(m *mockAuthService) {
				m.registerFn = func(ctx context.Context, input usecase.RegisterInput) (*model.User, error) {
					return nil, model.ErrInvalidEmail
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing password",
			requestBody:    RegisterRequest{Username: "alice", Email: "alice@example.com", FullName: "Alice"},
			setupMock:      func(m *mockAuthService) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{}
			tt.setupMock(svc)

			h := NewAuthHandler(svc, true)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/v1/register", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}
