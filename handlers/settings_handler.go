package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/samxiao0/campus-cron/services"
)

// maxImportSize caps uploaded backup documents.
const maxImportSize = 10 << 20

type SettingsHandler struct {
	svc *services.Tracker
}

func NewSettingsHandler(svc *services.Tracker) *SettingsHandler { return &SettingsHandler{svc: svc} }

// GET /info
func (h *SettingsHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Info())
}

// GET /export  (ดาวน์โหลดไฟล์สำรองข้อมูล)
func (h *SettingsHandler) Export(c echo.Context) error {
	data, name, err := h.svc.Export()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, data)
}

// POST /import
// รับได้ทั้ง JSON body ตรง ๆ และ multipart (field "file")
func (h *SettingsHandler) Import(c echo.Context) error {
	data, err := readImport(c)
	if err != nil {
		return err
	}
	if err := h.svc.Import(c.Request().Context(), data); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.Info())
}

func readImport(c echo.Context) ([]byte, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FILE"}).SetInternal(err)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readLimited(f)
	}
	return readLimited(c.Request().Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"}).SetInternal(err)
	}
	if len(data) > maxImportSize {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, map[string]any{"error": "FILE_TOO_LARGE"})
	}
	return data, nil
}

// DELETE /data  (ล้างข้อมูลทั้งหมด)
func (h *SettingsHandler) Reset(c echo.Context) error {
	if err := h.svc.Reset(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
