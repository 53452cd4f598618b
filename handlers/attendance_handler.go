package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/samxiao0/campus-cron/models"
	"github.com/samxiao0/campus-cron/services"
)

type AttendanceHandler struct {
	svc *services.Tracker
}

func NewAttendanceHandler(svc *services.Tracker) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

type markRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Day        string `json:"day" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	TimeSlotID string `json:"time_slot_id" validate:"required"`
	SubjectID  string `json:"subject_id" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=present absent cancelled"`
}

type clearRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlotID string `json:"time_slot_id" validate:"required"`
}

type markAllRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Day    string `json:"day" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Status string `json:"status" validate:"required,oneof=present absent cancelled clear"`
}

// GET /attendance?date=YYYY-MM-DD  (ไม่ส่ง date = ทั้งหมด)
func (h *AttendanceHandler) List(c echo.Context) error {
	recs := h.svc.State().AttendanceRecords
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		return c.JSON(http.StatusOK, recs)
	}
	out := []models.AttendanceRecord{}
	for _, r := range recs {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return c.JSON(http.StatusOK, out)
}

// POST /attendance/mark
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req markRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	err := h.svc.MarkAttendance(ctx, req.Date, req.Day, req.TimeSlotID, req.SubjectID, models.AttendanceStatus(req.Status))
	if err != nil {
		return err
	}
	for _, r := range h.svc.State().AttendanceRecords {
		if r.Date == req.Date && r.TimeSlotID == req.TimeSlotID {
			return c.JSON(http.StatusOK, r)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /attendance/clear
func (h *AttendanceHandler) Clear(c echo.Context) error {
	var req clearRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.svc.ClearAttendance(c.Request().Context(), req.Date, req.TimeSlotID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /attendance/mark-all  (status = present | absent | cancelled | clear)
func (h *AttendanceHandler) MarkAll(c echo.Context) error {
	var req markAllRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	n, err := h.svc.MarkAllDayAttendance(c.Request().Context(), req.Date, req.Day, models.AttendanceStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"date":    req.Date,
		"status":  req.Status,
		"updated": n,
	})
}
