package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gymtrack/backend/internal/application/attendance"
)

// AttendanceHandler handles gym visit API endpoints
type AttendanceHandler struct {
	BaseHandler
	attendanceService *attendance.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *attendance.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// CheckIn opens a visit for a member
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	memberID, err := parseIDParam(c, "memberId")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visit, err := h.attendanceService.CheckIn(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, visit)
}

// CheckOut closes a member's open visit. A member without an open visit
// gets a soft failure, not an error.
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	memberID, err := parseIDParam(c, "memberId")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.attendanceService.CheckOut(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Today returns today's visits
func (h *AttendanceHandler) Today(c *gin.Context) {
	visits, err := h.attendanceService.Today(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, visits)
}

// CurrentlyIn returns members with an open visit today
func (h *AttendanceHandler) CurrentlyIn(c *gin.Context) {
	inside, err := h.attendanceService.CurrentlyIn(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inside)
}

// StatsByWeekday returns visit counts and average stay per weekday over
// the trailing 30 days
func (h *AttendanceHandler) StatsByWeekday(c *gin.Context) {
	stats, err := h.attendanceService.StatsByWeekday(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
