package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/samxiao0/campus-cron/services"
)

type StatsHandler struct {
	svc *services.Tracker
}

func NewStatsHandler(svc *services.Tracker) *StatsHandler { return &StatsHandler{svc: svc} }

// GET /stats?scope=overall|monthly&subject_id=
func (h *StatsHandler) Summary(c echo.Context) error {
	st, err := h.svc.Stats(services.StatsQuery{
		Scope:     strings.TrimSpace(c.QueryParam("scope")),
		SubjectID: strings.TrimSpace(c.QueryParam("subject_id")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// GET /stats/subjects
func (h *StatsHandler) BySubject(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.SubjectStats())
}

// GET /history  (ล่าสุดก่อน)
func (h *StatsHandler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.History())
}

// GET /projection?targets=75,76
// The numbers are an estimate, see stats.Project.
func (h *StatsHandler) Projection(c echo.Context) error {
	targets, err := targetsParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.Projection(targets))
}

// GET /days/:date
func (h *StatsHandler) Day(c echo.Context) error {
	return h.day(c, strings.TrimSpace(c.Param("date")))
}

// GET /today
func (h *StatsHandler) Today(c echo.Context) error {
	return h.day(c, h.svc.Today())
}

func (h *StatsHandler) day(c echo.Context, date string) error {
	v, err := h.svc.DayView(date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}
