package handlers

import (
	"net/http"

	"bunshack-api/logging"
	"bunshack-api/metrics"
	"bunshack-api/middleware"
	"bunshack-api/session"
	"bunshack-api/store"

	"github.com/gin-gonic/gin"
)

const msgSomethingWrong = "Something went wrong, please try again."

// Deps are the collaborators every handler draws from.
type Deps struct {
	Menus   store.MenuRepository
	Orders  store.OrderRepository
	Users   store.UserRepository
	Auth    *middleware.Authenticator
	Metrics *metrics.Metrics
	Cookies session.CookieOptions
}

type Handler struct {
	Deps
}

func New(deps Deps) *Handler {
	RegisterValidators()
	return &Handler{Deps: deps}
}

// respondError writes the {"message": ...} body used by every 4xx
func respondError(c *gin.Context, status int, message string) {
	logging.FromContext(c).WithField("status", status).Debug(message)
	c.JSON(status, gin.H{"message": message})
}

// respondInternal logs err and exposes its text next to message
func respondInternal(c *gin.Context, message string, err error) {
	logging.FromContext(c).WithError(err).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message, "error": err.Error()})
}
