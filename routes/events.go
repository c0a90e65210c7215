package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JovanaT99/eventsApp/apperrors"
	"github.com/JovanaT99/eventsApp/attendance"
	"github.com/JovanaT99/eventsApp/discovery"
	"github.com/JovanaT99/eventsApp/models"
)

/* -------------------- Discovery -------------------- */

// GET /events/search
func (h *handlers) searchEvents(c *gin.Context) {
	var q discovery.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondError(c, apperrors.BadRequest("Could not parse query parameters."))
		return
	}

	events, err := h.Discovery.Search(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /events/all
func (h *handlers) getActiveEvents(c *gin.Context) {
	events, err := h.Discovery.Active(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

/* -------------------- Events -------------------- */

type createEventRequest struct {
	UserID               int64      `json:"userId" binding:"required"`
	CategoryID           int64      `json:"categoryId" binding:"required"`
	Name                 string     `json:"name"`
	Description          string     `json:"description" binding:"required"`
	SubCategory          string     `json:"subCategory" binding:"required"`
	Location             string     `json:"location" binding:"required"`
	Lat                  *float64   `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng                  *float64   `json:"lng" binding:"required,gte=-180,lte=180"`
	StartAt              *time.Time `json:"startAt" binding:"required"`
	SuggestedPeopleCount *int       `json:"suggestedPeopleCount" binding:"required,gte=0"`
	Duration             *float64   `json:"duration" binding:"required,gt=0"`
}

// POST /events
func (h *handlers) createEvent(c *gin.Context) {
	var req createEventRequest
	if !h.bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	// unresolvable references are a bad request, checked before the write
	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
		h.respondError(c, lookupError(err, apperrors.BadRequest("User not found"), "user"))
		return
	}
	if _, err := h.Categories.GetByID(ctx, req.CategoryID); err != nil {
		h.respondError(c, lookupError(err, apperrors.BadRequest("Category not found"), "category"))
		return
	}

	now := time.Now().UTC()
	event := models.Event{
		ID:                   uuid.NewString(),
		UserID:               req.UserID,
		CategoryID:           req.CategoryID,
		Name:                 req.Name,
		Description:          req.Description,
		SubCategory:          req.SubCategory,
		Location:             req.Location,
		Lat:                  *req.Lat,
		Lng:                  *req.Lng,
		StartAt:              req.StartAt.UTC(),
		Duration:             *req.Duration,
		SuggestedPeopleCount: *req.SuggestedPeopleCount,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := h.Events.Create(ctx, &event); err != nil {
		h.respondError(c, apperrors.Internal("Could not create event. Try again later.", err))
		return
	}

	h.Log.Info("event created", zap.String("eventId", event.ID), zap.Int64("categoryId", event.CategoryID))
	c.JSON(http.StatusCreated, event)
}

/* ----------------- Attendance ------------------- */

// POST /events/attendance
func (h *handlers) markAttendance(c *gin.Context) {
	var req attendance.Request
	if !h.bindJSON(c, &req) {
		return
	}

	rec, err := h.Attendance.Mark(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

/* ------------------ Messages -------------------- */

type createMessageRequest struct {
	EventID string `json:"eventId" binding:"required"`
	UserID  int64  `json:"userId" binding:"required"`
	Content string `json:"content" binding:"required"`
	// the route contract spells it "attendenceOnly"; the corrected
	// spelling is accepted too
	AttendenceOnly *bool `json:"attendenceOnly"`
	AttendanceOnly *bool `json:"attendanceOnly"`
}

func (r createMessageRequest) attendanceOnly() bool {
	if r.AttendenceOnly != nil {
		return *r.AttendenceOnly
	}
	return r.AttendanceOnly != nil && *r.AttendanceOnly
}

// POST /events/message
func (h *handlers) createEventMessage(c *gin.Context) {
	var req createMessageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.Events.GetByID(ctx, req.EventID); err != nil {
		h.respondError(c, lookupError(err, apperrors.NotFound("Event"), "event"))
		return
	}
	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
		h.respondError(c, lookupError(err, apperrors.NotFound("User"), "user"))
		return
	}

	msg := models.EventMessage{
		ID:             uuid.NewString(),
		EventID:        req.EventID,
		UserID:         req.UserID,
		Content:        req.Content,
		AttendanceOnly: req.attendanceOnly(),
	}
	if err := h.Messages.Create(ctx, &msg); err != nil {
		h.respondError(c, apperrors.Internal("Could not save message. Try again later.", err))
		return
	}
	c.JSON(http.StatusCreated, msg)
}
