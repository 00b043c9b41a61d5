package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/apiclient"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
	tokens "github.com/FACorreiaa/negocios-templui/internal/pkg/auth"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) error {
	args := m.Called(ctx, name, email, password)
	return args.Error(0)
}

func setupRouter(service AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Upstream: config.UpstreamConfig{SessionCookie: "session"}}
	h := NewAuthHandlers(domain.NewBaseHandler(cfg, zap.NewNop()), service, tokens.NewTokenService("s", time.Hour))

	r := gin.New()
	r.Use(sessions.Sessions("bff", cookie.NewStore([]byte("secret"))))
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.LoginHandler)
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.RegisterHandler)
	r.GET("/logout", h.Logout)
	return r
}

func postForm(r http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	r.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func toastText(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc.Find("#toast-container .toast").Text()
}

func TestLoginPageRendersForm(t *testing.T) {
	r := setupRouter(new(MockAuthService))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("HX-Request", "true")

	r.ServeHTTP(w, req)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	form := doc.Find("form#login-form")
	require.Equal(t, 1, form.Length())
	assert.Equal(t, 1, form.Find("input[name=email]").Length())
	assert.Equal(t, 1, form.Find("input[name=password]").Length())
}

func TestLoginHandler(t *testing.T) {
	t.Run("success relays cookies and redirects home", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("Login", mock.Anything, "ana@example.com", "pw").Return(&Session{
			Message: "Login exitoso",
			UserID:  "42",
			Token:   "signed",
			Cookies: []*http.Cookie{{Name: "session", Value: "upstream", Domain: "api.internal"}},
		}, nil)
		r := setupRouter(service)

		w := postForm(r, "/login", url.Values{"email": {"ana@example.com"}, "password": {"pw"}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/", w.Header().Get("HX-Redirect"))
		upstream := cookieNamed(w, "session")
		require.NotNil(t, upstream)
		assert.Equal(t, "upstream", upstream.Value)
		assert.Empty(t, upstream.Domain)
		token := cookieNamed(w, tokens.CookieName)
		require.NotNil(t, token)
		assert.Equal(t, "signed", token.Value)
		assert.True(t, token.HttpOnly)
	})

	t.Run("rejected credentials show the server message", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("Login", mock.Anything, "ana@example.com", "bad").
			Return(nil, fmt.Errorf("login: %w", &apiclient.APIError{Status: 401, Message: "Credenciales inválidas"}))
		r := setupRouter(service)

		w := postForm(r, "/login", url.Values{"email": {"ana@example.com"}, "password": {"bad"}})

		assert.Empty(t, w.Header().Get("HX-Redirect"))
		assert.Equal(t, "Credenciales inválidas", toastText(t, w))
	})

	t.Run("transport failure shows the fixed message", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("Login", mock.Anything, "ana@example.com", "pw").Return(nil, apiclient.ErrTransport)
		r := setupRouter(service)

		w := postForm(r, "/login", url.Values{"email": {"ana@example.com"}, "password": {"pw"}})

		assert.Equal(t, LoginUnavailable, toastText(t, w))
	})

	t.Run("missing fields", func(t *testing.T) {
		service := new(MockAuthService)
		r := setupRouter(service)

		w := postForm(r, "/login", url.Values{"email": {"ana@example.com"}})

		assert.Equal(t, MissingCredentials, toastText(t, w))
		service.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRegisterHandler(t *testing.T) {
	form := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {"pw"}}

	t.Run("success redirects to login", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("Register", mock.Anything, "Ana", "ana@example.com", "pw").Return(nil)
		r := setupRouter(service)

		w := postForm(r, "/register", form)

		assert.Equal(t, "/login", w.Header().Get("HX-Redirect"))
		service.AssertExpectations(t)
	})

	t.Run("server error text", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("Register", mock.Anything, "Ana", "ana@example.com", "pw").
			Return(&apiclient.APIError{Status: 409, Message: "El correo ya está registrado"})
		r := setupRouter(service)

		w := postForm(r, "/register", form)

		assert.Empty(t, w.Header().Get("HX-Redirect"))
		assert.Equal(t, "Error: El correo ya está registrado", toastText(t, w))
	})

	t.Run("connection error", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("Register", mock.Anything, "Ana", "ana@example.com", "pw").Return(apiclient.ErrTransport)
		r := setupRouter(service)

		assert.Equal(t, RegisterUnavailable, toastText(t, postForm(r, "/register", form)))
	})
}

func TestLogoutClearsCookies(t *testing.T) {
	r := setupRouter(new(MockAuthService))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	for _, name := range []string{tokens.CookieName, "session"} {
		c := cookieNamed(w, name)
		require.NotNil(t, c, name)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}
