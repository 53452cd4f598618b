package middlewares

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samxiao0/campus-cron/models"
)

// ErrorHandler แปลง error จาก handler เป็น JSON รูปแบบเดียวกันทั้งระบบ
//
//	*models.ValidationError → 400 VALIDATION_FAILED
//	*models.FormatError     → 400 INVALID_IMPORT
//	*echo.HTTPError         → code เดิม
//	อื่น ๆ                  → 500 INTERNAL_ERROR
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var body any

	var (
		ve *models.ValidationError
		fe *models.FormatError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		code = http.StatusBadRequest
		body = map[string]any{"error": "VALIDATION_FAILED", "field": ve.Field, "message": ve.Message}
	case errors.As(err, &fe):
		code = http.StatusBadRequest
		body = map[string]any{"error": "INVALID_IMPORT", "message": fe.Message}
	case errors.As(err, &he):
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			body = map[string]any{"error": http.StatusText(code), "message": m}
		case nil:
			body = map[string]any{"error": http.StatusText(code)}
		default:
			body = m
		}
		if he.Internal != nil {
			log.Printf("[http] %s %s: %v", c.Request().Method, c.Path(), he.Internal)
		}
	default:
		log.Printf("[http] %s %s: %v", c.Request().Method, c.Path(), err)
		body = map[string]any{"error": "INTERNAL_ERROR", "message": err.Error()}
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, body)
	}
	if werr != nil {
		log.Printf("[http] write error response: %v", werr)
	}
}
