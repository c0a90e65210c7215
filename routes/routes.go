package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/JovanaT99/eventsApp/apperrors"
	"github.com/JovanaT99/eventsApp/attendance"
	"github.com/JovanaT99/eventsApp/discovery"
	"github.com/JovanaT99/eventsApp/models"
	"github.com/JovanaT99/eventsApp/validation"
)

// Deps are the collaborators the handlers need; main builds them for the
// configured store.
type Deps struct {
	Users      models.UserRepository
	Categories models.CategoryRepository
	Events     models.EventRepository
	Messages   models.MessageRepository
	Discovery  *discovery.Service
	Attendance *attendance.Service
	Log        *zap.Logger
}

type handlers struct {
	Deps
}

func RegisterRoutes(server *gin.Engine, d Deps) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	h := &handlers{Deps: d}

	server.GET("/v1/health-check", func(c *gin.Context) { c.Status(http.StatusOK) })
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server.POST("/users", h.createUser)
	server.POST("/category", h.createCategory)

	server.POST("/events", h.createEvent)
	server.GET("/events/all", h.getActiveEvents)
	server.GET("/events/search", h.searchEvents)
	server.POST("/events/message", h.createEventMessage)
	server.POST("/events/attendance", h.markAttendance)

	server.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.Body{Error: "Not found"})
	})
}

// respondError writes err in the shared {error} shape. 5xx causes are
// logged and never sent to the client.
func (h *handlers) respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.Log.Error(appErr.Message,
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr.Cause),
		)
	}
	c.JSON(appErr.Status, appErr.Body())
}

// bindJSON decodes the body into req; on failure it has already responded.
func (h *handlers) bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if fe := validation.Describe(err); fe != nil {
		h.respondError(c, apperrors.BadRequest(fe.Message))
	} else {
		h.respondError(c, apperrors.BadRequest("Could not parse request data."))
	}
	return false
}

// lookupError maps a repository miss on a referenced entity to notFound,
// anything else to a 500.
func lookupError(err error, notFound *apperrors.AppError, resource string) error {
	if errors.Is(err, models.ErrNotFound) {
		return notFound
	}
	return apperrors.Internal("Could not fetch "+resource, err)
}
