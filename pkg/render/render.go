// Package render provides uniform HTML responses: every page gets the
// signed-in user (when there is one) without each handler threading it.
package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pollhub/backend/internal/middleware"
)

// HTML renders a template with the given status. The resolved user, if any,
// is added to the data under "User" so page chrome can show who is signed in.
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["User"]; !ok {
		if user, found := middleware.UserFrom(c); found {
			data["User"] = user.ToPublic()
		}
	}
	c.HTML(status, name, data)
}

// OK renders a template with 200.
func OK(c *gin.Context, name string, data gin.H) {
	HTML(c, http.StatusOK, name, data)
}

// NotFound renders the 404 page. This is the platform "not found" response
// unknown questions and malformed ids propagate to.
func NotFound(c *gin.Context) {
	HTML(c, http.StatusNotFound, "notfound.html", nil)
	c.Abort()
}

// SeeOther sends a 303 redirect, used after successful form submissions.
func SeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
