package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/samxiao0/campus-cron/models"
	"github.com/samxiao0/campus-cron/services"
)

type TimetableHandler struct {
	svc *services.Tracker
}

func NewTimetableHandler(svc *services.Tracker) *TimetableHandler {
	return &TimetableHandler{svc: svc}
}

type assignSlotRequest struct {
	SubjectID string `json:"subject_id"` // ว่าง = คาบว่าง
}

// GET /timetable
func (h *TimetableHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.State().Timetable)
}

// PUT /timetable  (แทนที่ทั้งตาราง)
func (h *TimetableHandler) Replace(c echo.Context) error {
	var tt models.Timetable
	if err := c.Bind(&tt); err != nil {
		return err
	}
	if err := tt.Validate(); err != nil {
		return err
	}
	if err := h.svc.UpdateTimetable(c.Request().Context(), tt); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.State().Timetable)
}

// PUT /timetable/:day/slots/:slotId
func (h *TimetableHandler) AssignSlot(c echo.Context) error {
	var req assignSlotRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	day := strings.TrimSpace(c.Param("day"))
	slotID := strings.TrimSpace(c.Param("slotId"))
	if err := h.svc.AssignSubjectToSlot(c.Request().Context(), day, slotID, req.SubjectID); err != nil {
		return err
	}
	sched, ok := h.svc.State().Timetable.Day(day)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "DAY_NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, sched)
}
