package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/samxiao0/campus-cron/handlers"
	"github.com/samxiao0/campus-cron/middlewares"
	"github.com/samxiao0/campus-cron/services"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, svc *services.Tracker) {
	// ===== Handlers =====
	sub := handlers.NewSubjectHandler(svc)
	tt := handlers.NewTimetableHandler(svc)
	att := handlers.NewAttendanceHandler(svc)
	st := handlers.NewStatsHandler(svc)
	set := handlers.NewSettingsHandler(svc)

	e.GET("/health", handlers.Health)

	// ===== Subjects =====
	e.GET("/subjects", sub.List)
	e.POST("/subjects", sub.Create)
	e.DELETE("/subjects/:id", sub.Delete)

	// ===== Timetable =====
	e.GET("/timetable", tt.Get)
	e.PUT("/timetable", tt.Replace)
	e.PUT("/timetable/:day/slots/:slotId", tt.AssignSlot)

	// ===== Attendance =====
	e.GET("/attendance", att.List)
	e.POST("/attendance/mark", att.Mark)
	e.POST("/attendance/clear", att.Clear)
	e.POST("/attendance/mark-all", att.MarkAll)

	// ===== Views / statistics =====
	e.GET("/today", st.Today)
	e.GET("/days/:date", st.Day)
	e.GET("/stats", st.Summary)
	e.GET("/stats/subjects", st.BySubject)
	e.GET("/history", st.History)
	e.GET("/projection", st.Projection)

	// ===== Settings / data management =====
	e.GET("/info", set.Info)
	e.GET("/export", set.Export)
	e.POST("/import", set.Import)
	e.DELETE("/data", set.Reset)
}

// New builds the echo instance with the serializer, validator and error
// handler every route relies on. Access-log and CORS middleware are added by
// the caller.
func New(svc *services.Tracker) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = handlers.SonicSerializer{}
	e.Validator = handlers.NewRequestValidator()
	e.HTTPErrorHandler = middlewares.ErrorHandler
	Register(e, svc)
	return e
}
