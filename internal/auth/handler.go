package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pollhub/backend/internal/models"
	"github.com/pollhub/backend/pkg/render"
	"github.com/pollhub/backend/pkg/utils"
)

// CookieConfig holds session cookie settings.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler handles the account and session HTTP surface: landing page,
// registration, login and logout.
type Handler struct {
	users    UserStore
	sessions *Sessions
	cookie   CookieConfig
	logger   *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(users UserStore, sessions *Sessions, cookie CookieConfig, logger *zap.Logger) *Handler {
	return &Handler{users: users, sessions: sessions, cookie: cookie, logger: logger}
}

// Landing handles GET /.
func (h *Handler) Landing(c *gin.Context) {
	render.OK(c, "welcome.html", nil)
}

// ShowRegister handles GET /polls/register/.
func (h *Handler) ShowRegister(c *gin.Context) {
	render.OK(c, "register.html", nil)
}

// Register handles POST /polls/register/. On success the new user is signed
// in and sent to the poll index.
func (h *Handler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		render.HTML(c, http.StatusBadRequest, "register.html", gin.H{
			"Error":    "Please provide username and password.",
			"Username": username,
		})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		render.HTML(c, http.StatusInternalServerError, "register.html", gin.H{
			"Error":    "Something went wrong, please try again.",
			"Username": username,
		})
		return
	}

	user, err := h.users.Create(c.Request.Context(), username, hash)
	if errors.Is(err, ErrUsernameTaken) {
		render.HTML(c, http.StatusConflict, "register.html", gin.H{
			"Error":    "That username is already taken.",
			"Username": username,
		})
		return
	}
	if err != nil {
		h.logger.Error("create user", zap.Error(err))
		render.HTML(c, http.StatusInternalServerError, "register.html", gin.H{
			"Error":    "Something went wrong, please try again.",
			"Username": username,
		})
		return
	}

	h.establish(c, user, "registered user")
}

// ShowLogin handles GET /polls/login/.
func (h *Handler) ShowLogin(c *gin.Context) {
	render.OK(c, "login.html", nil)
}

// Login handles POST /polls/login/. Unknown username and wrong password get
// the same message.
func (h *Handler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := h.users.GetByUsername(c.Request.Context(), username)
	if err != nil || !utils.CheckPassword(password, user.Password) {
		render.HTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"Error":    "Invalid username or password.",
			"Username": username,
		})
		return
	}

	h.establish(c, user, "user logged in")
}

// Logout handles GET /polls/logout/. The session is revoked server-side, so
// the token in any surviving cookie copy is dead too. Safe to hit while
// signed out.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		if err := h.sessions.Terminate(c.Request.Context(), token); err != nil {
			h.logger.Warn("terminate session", zap.Error(err))
		}
	}
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	render.SeeOther(c, "/")
}

func (h *Handler) establish(c *gin.Context, user *models.User, event string) {
	token, err := h.sessions.Establish(c.Request.Context(), user)
	if err != nil {
		h.logger.Error("establish session", zap.Error(err))
		render.HTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"Error": "Something went wrong, please try again.",
		})
		return
	}
	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
	h.logger.Info(event, zap.String("username", user.Username))
	render.SeeOther(c, "/polls/")
}
