package auth

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/apiclient"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	tokens "github.com/FACorreiaa/negocios-templui/internal/pkg/auth"
)

// Ensure implementation satisfies the interface
var _ AuthService = (*AuthServiceImpl)(nil)

// Upstream is the account part of the business API.
type Upstream interface {
	Login(ctx context.Context, email, password string) (*apiclient.LoginResult, error)
	Register(ctx context.Context, name, email, password string) error
}

// Session is what a successful login hands to the browser.
type Session struct {
	Message string
	UserID  string
	// Token is the signed auth cookie value, empty when the upstream did
	// not return a user id.
	Token   string
	Cookies []*http.Cookie
}

// AuthService defines the account operations behind the forms.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, name, email, password string) error
}

type AuthServiceImpl struct {
	logger *zap.Logger
	api    Upstream
	tokens *tokens.TokenService
}

func NewAuthService(api Upstream, tokenService *tokens.TokenService, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{logger: logger, api: api, tokens: tokenService}
}

// Login checks the credentials upstream and signs a token for the returned user.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*Session, error) {
	l := s.logger.With(zap.String("method", "Login"), zap.String("email", email))

	ctx, span := otel.Tracer("negocios-templui").Start(ctx, "AuthService.Login", trace.WithAttributes(
		attribute.String("email", email),
	))
	defer span.End()

	if email == "" || password == "" {
		span.SetStatus(codes.Error, "missing credentials")
		return nil, fmt.Errorf("email and password required: %w", models.ErrValidation)
	}

	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		l.Warn("Upstream login failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream login failed")
		return nil, fmt.Errorf("login: %w", err)
	}

	session := &Session{Message: result.Message, UserID: result.UserID, Cookies: result.Cookies}
	if result.UserID == "" {
		l.Warn("Upstream login returned no user id")
	} else {
		session.Token, err = s.tokens.GenerateToken(result.UserID, email)
		if err != nil {
			l.Error("Failed to generate token", zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "token generation failed")
			return nil, err
		}
	}

	l.Info("Login successful", zap.String("user_id", result.UserID))
	span.SetStatus(codes.Ok, "logged in")
	return session, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) error {
	l := s.logger.With(zap.String("method", "Register"), zap.String("email", email))

	ctx, span := otel.Tracer("negocios-templui").Start(ctx, "AuthService.Register", trace.WithAttributes(
		attribute.String("name", name),
		attribute.String("email", email),
	))
	defer span.End()

	if name == "" || email == "" || password == "" {
		span.SetStatus(codes.Error, "missing fields")
		return fmt.Errorf("name, email and password required: %w", models.ErrValidation)
	}

	if err := s.api.Register(ctx, name, email, password); err != nil {
		l.Warn("Upstream registration failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream registration failed")
		return fmt.Errorf("registration failed: %w", err)
	}

	l.Info("Registration successful")
	span.SetStatus(codes.Ok, "registered")
	return nil
}
