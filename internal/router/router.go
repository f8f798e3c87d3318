// Package router maps URL paths to handlers. Configuration only; the
// behavior lives in the handler packages.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pollhub/backend/internal/auth"
	"github.com/pollhub/backend/internal/middleware"
	"github.com/pollhub/backend/internal/polls"
	"github.com/pollhub/backend/internal/web"
)

// LoginPath is where anonymous requests to protected routes are sent.
const LoginPath = "/polls/login/"

// Deps are the collaborators the HTTP surface is wired from.
type Deps struct {
	Logger             *zap.Logger
	Users              auth.UserStore
	Polls              polls.Store
	Sessions           *auth.Sessions
	Cookie             auth.CookieConfig
	CORSAllowedOrigins string
}

// New builds the gin engine with all routes and middleware registered.
func New(d Deps) *gin.Engine {
	authHandler := auth.NewHandler(d.Users, d.Sessions, d.Cookie, d.Logger)
	pollHandler := polls.NewHandler(d.Polls, d.Logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(d.CORSAllowedOrigins))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.CurrentUser(d.Sessions, d.Cookie.Name))
	r.SetHTMLTemplate(web.Templates())

	r.GET("/", authHandler.Landing)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public poll surface
	r.GET("/polls/register/", authHandler.ShowRegister)
	r.POST("/polls/register/", authHandler.Register)
	r.GET("/polls/login/", authHandler.ShowLogin)
	r.POST("/polls/login/", authHandler.Login)
	r.GET("/polls/logout/", authHandler.Logout)
	r.GET("/polls/bootstrap/", pollHandler.Bootstrap)

	// Protected poll surface (session required)
	protected := r.Group("/polls", middleware.RequireUser(LoginPath))
	{
		protected.GET("/", pollHandler.Index)
		protected.GET("/:id/", pollHandler.Detail)
		protected.GET("/:id/results/", pollHandler.Results)
		protected.POST("/:id/vote/", pollHandler.Vote)
	}

	return r
}
