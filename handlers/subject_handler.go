package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/samxiao0/campus-cron/services"
)

type SubjectHandler struct {
	svc *services.Tracker
}

func NewSubjectHandler(svc *services.Tracker) *SubjectHandler { return &SubjectHandler{svc: svc} }

type createSubjectRequest struct {
	Name  string `json:"name" validate:"required,max=80"`
	Color string `json:"color" validate:"omitempty,max=32"`
}

// GET /subjects
func (h *SubjectHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.State().Subjects)
}

// POST /subjects
func (h *SubjectHandler) Create(c echo.Context) error {
	var req createSubjectRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	sub, err := h.svc.AddSubject(c.Request().Context(), req.Name, req.Color)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// DELETE /subjects/:id
// Unknown ids succeed too; records of the subject are kept.
func (h *SubjectHandler) Delete(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if err := h.svc.RemoveSubject(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
