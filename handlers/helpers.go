package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/samxiao0/campus-cron/config"
	"github.com/samxiao0/campus-cron/models"
)

// ─── Validator ────────────────────────────────────────────────────────────────

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := "failed on " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return &models.ValidationError{Field: fe.Field(), Message: msg}
	}
	return &models.ValidationError{Message: err.Error()}
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

// SonicSerializer is echo's JSON (de)serializer backed by sonic.
type SonicSerializer struct{}

func (SonicSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (SonicSerializer) Deserialize(c echo.Context, i any) error {
	if err := sonic.ConfigStd.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"}).SetInternal(err)
	}
	return nil
}

// bindValid binds the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"}).SetInternal(err)
	}
	return c.Validate(req)
}

// targetsParam reads ?targets=75,76; empty means "use the defaults".
func targetsParam(c echo.Context) ([]float64, error) {
	raw := strings.TrimSpace(c.QueryParam("targets"))
	if raw == "" {
		return nil, nil
	}
	targets, err := config.ParseTargets(raw)
	if err != nil {
		return nil, &models.ValidationError{Field: "targets", Message: err.Error()}
	}
	return targets, nil
}
