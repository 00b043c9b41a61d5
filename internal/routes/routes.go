package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/apiclient"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain/auth"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain/businesses"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain/chat"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain/home"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain/ratings"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain/recommendations"
	"github.com/FACorreiaa/negocios-templui/internal/app/middleware"
	"github.com/FACorreiaa/negocios-templui/internal/app/visitor"
	tokens "github.com/FACorreiaa/negocios-templui/internal/pkg/auth"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
)

// Dependencies are the long lived services the handlers are built from.
type Dependencies struct {
	Config *config.Config
	API    apiclient.API
	Store  *visitor.Store
	Logger *zap.Logger
}

type AppHandlers struct {
	Home            *home.HomeHandlers
	Auth            *auth.AuthHandlers
	Recommendations *recommendations.Handlers
	Businesses      *businesses.Handlers
	Ratings         *ratings.Handlers
	Chat            *chat.Handlers
}

func Setup(r *gin.Engine, deps Dependencies) {
	tokenService := tokens.NewTokenService(deps.Config.JWTSecret, tokens.DefaultTokenExpiration)
	handlers := setupDependencies(deps, tokenService)
	setupRouter(r, handlers, deps, tokenService)
}

func setupDependencies(deps Dependencies, tokenService *tokens.TokenService) *AppHandlers {
	log := deps.Logger
	baseHandler := domain.NewBaseHandler(deps.Config, log)
	authService := auth.NewAuthService(deps.API, tokenService, log)

	return &AppHandlers{
		Home:            home.NewHomeHandlers(baseHandler),
		Auth:            auth.NewAuthHandlers(baseHandler, authService, tokenService),
		Recommendations: recommendations.NewHandlers(baseHandler, recommendations.NewFetcher(deps.API, log)),
		Businesses:      businesses.NewHandlers(baseHandler, deps.API, deps.Config.PageSize),
		Ratings:         ratings.NewHandlers(baseHandler, deps.API),
		Chat:            chat.NewHandlers(baseHandler, deps.API),
	}
}

func setupRouter(r *gin.Engine, h *AppHandlers, deps Dependencies, tokenService *tokens.TokenService) {
	r.GET("/healthz", func(c *gin.Context) {
		m := deps.Store.Metrics()
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"visitors": deps.Store.Size(),
			"state_cache": gin.H{
				"hits":   m.Hits,
				"misses": m.Misses,
				"sets":   m.Sets,
			},
		})
	})

	public := r.Group("/")
	public.Use(middleware.OptionalAuthMiddleware(tokenService))
	public.Use(middleware.VisitorMiddleware(deps.Store, deps.Logger))
	{
		public.GET("/", h.Home.ShowHomePage)
		public.GET("/recommendations", h.Recommendations.Recommendations)
		public.GET("/businesses", h.Businesses.Businesses)
		public.POST("/ratings", h.Ratings.Rate)

		public.POST("/chat/toggle", h.Chat.Toggle)
		public.POST("/chat/close", h.Chat.Close)
		public.POST("/chat/messages", h.Chat.Messages)

		public.GET("/login", h.Auth.ShowLogin)
		public.POST("/login", h.Auth.LoginHandler)
		public.GET("/register", h.Auth.ShowRegister)
		public.POST("/register", h.Auth.RegisterHandler)
		public.GET("/logout", h.Auth.Logout)
	}
}
