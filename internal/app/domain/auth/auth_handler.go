package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/apiclient"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain"
	"github.com/FACorreiaa/negocios-templui/internal/app/models"
	"github.com/FACorreiaa/negocios-templui/internal/app/pages"
	tokens "github.com/FACorreiaa/negocios-templui/internal/pkg/auth"
)

const (
	LoginSucceeded       = "Inicio de sesión exitoso."
	LoginFailed          = "Correo o contraseña incorrectos."
	LoginUnavailable     = "Ocurrió un error al intentar iniciar sesión. Por favor, inténtalo de nuevo."
	MissingCredentials   = "Introduce tu correo y tu contraseña."
	RegisterSucceeded    = "¡Registro exitoso! Ahora serás redirigido para iniciar sesión."
	RegisterFailed       = "Error: no se pudo completar el registro."
	RegisterUnavailable  = "Ocurrió un error en la conexión."
	MissingRegisterField = "Completa nombre, correo y contraseña."
	LoggedOut            = "Has cerrado sesión."
)

type LoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type AuthHandlers struct {
	*domain.BaseHandler
	authService AuthService
	expiration  int
}

func NewAuthHandlers(base *domain.BaseHandler, authService AuthService, tokenService *tokens.TokenService) *AuthHandlers {
	return &AuthHandlers{
		BaseHandler: base,
		authService: authService,
		expiration:  int(tokenService.Expiration().Seconds()),
	}
}

func (h *AuthHandlers) ShowLogin(c *gin.Context) {
	h.RenderPage(c, "Iniciar sesión", "Iniciar sesión", pages.LoginPage())
}

func (h *AuthHandlers) ShowRegister(c *gin.Context) {
	h.RenderPage(c, "Registro", "Registro", pages.RegisterPage())
}

func (h *AuthHandlers) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Notify(c, models.Error(MissingCredentials))
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.Notify(c, models.Error(loginError(err)))
		return
	}

	for _, ck := range session.Cookies {
		relayed := *ck
		relayed.Domain = ""
		if relayed.Path == "" {
			relayed.Path = "/"
		}
		http.SetCookie(c.Writer, &relayed)
	}
	if session.Token != "" {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     tokens.CookieName,
			Value:    session.Token,
			MaxAge:   h.expiration,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Path:     "/",
		})
	}

	message := session.Message
	if message == "" {
		message = LoginSucceeded
	}
	h.Flash(c, models.Success(message))
	c.Header("HX-Redirect", "/")
	c.Status(http.StatusOK)
}

func loginError(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiclient.UserMessage(err, LoginFailed)
	}
	if errors.Is(err, models.ErrValidation) {
		return MissingCredentials
	}
	return LoginUnavailable
}

func (h *AuthHandlers) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Notify(c, models.Error(MissingRegisterField))
		return
	}

	if err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		h.Notify(c, models.Error(registerError(err)))
		return
	}

	h.Flash(c, models.Success(RegisterSucceeded))
	c.Header("HX-Redirect", "/login")
	c.Status(http.StatusOK)
}

func registerError(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return RegisterFailed
		}
		return "Error: " + apiErr.Message
	}
	if errors.Is(err, models.ErrValidation) {
		return MissingRegisterField
	}
	return RegisterUnavailable
}

// Logout drops the auth cookie and the relayed upstream session.
func (h *AuthHandlers) Logout(c *gin.Context) {
	for _, name := range []string{tokens.CookieName, h.SessionCookie} {
		if name == "" {
			continue
		}
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Path:     "/",
		})
	}
	h.Logger.Info("User logged out", zap.String("client_ip", c.ClientIP()))
	h.Flash(c, models.Info(LoggedOut))
	c.Redirect(http.StatusFound, "/")
}
