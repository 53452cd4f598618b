package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samxiao0/campus-cron/database"
	"github.com/samxiao0/campus-cron/models"
	"github.com/samxiao0/campus-cron/services"
)

var testNow = time.Date(2024, 3, 18, 9, 0, 0, 0, time.Local) // Monday

func newTestServer(t *testing.T) (*echo.Echo, *services.Tracker) {
	t.Helper()
	svc := services.NewTracker(database.NewMemoryStore(), "", services.WithClock(func() time.Time { return testNow }))
	require.NoError(t, svc.Load(context.Background()))
	return New(svc), svc
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestSubjectLifecycle(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/subjects", `{"name":"Math","color":"#00f"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decode[models.Subject](t, rec)
	assert.Equal(t, "Math", sub.Name)

	rec = do(e, http.MethodPut, "/timetable/Monday/slots/1", `{"subject_id":"`+sub.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	day := decode[models.DaySchedule](t, rec)
	assert.Equal(t, sub.ID, day.TimeSlots[0].SubjectID)

	rec = do(e, http.MethodPost, "/attendance/mark", `{"date":"2024-03-18","time_slot_id":"1","subject_id":"`+sub.ID+`","status":"present"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(e, http.MethodDelete, "/subjects/"+sub.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	subjects := decode[[]models.Subject](t, do(e, http.MethodGet, "/subjects", ""))
	assert.Empty(t, subjects)

	tt := decode[models.Timetable](t, do(e, http.MethodGet, "/timetable", ""))
	mon, _ := tt.Day("Monday")
	assert.True(t, mon.TimeSlots[0].Free())

	recs := decode[[]models.AttendanceRecord](t, do(e, http.MethodGet, "/attendance?date=2024-03-18", ""))
	require.Len(t, recs, 1)
	assert.Equal(t, sub.ID, recs[0].SubjectID)
}

func TestCreateSubjectValidation(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/subjects", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body["error"])
	assert.Equal(t, "name", body["field"])

	// passes the tag check, rejected by the store
	rec = do(e, http.MethodPost, "/subjects", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/subjects", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkValidation(t *testing.T) {
	e, _ := newTestServer(t)
	cases := []string{
		`{"date":"18-03-2024","time_slot_id":"1","subject_id":"s","status":"present"}`,
		`{"date":"2024-03-18","time_slot_id":"1","subject_id":"s","status":"clear"}`,
		`{"date":"2024-03-18","time_slot_id":"1","subject_id":"","status":"present"}`,
		`{"date":"2024-03-18","day":"Funday","time_slot_id":"1","subject_id":"s","status":"present"}`,
	}
	for _, body := range cases {
		rec := do(e, http.MethodPost, "/attendance/mark", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestMarkAllAndDayView(t *testing.T) {
	e, svc := newTestServer(t)
	ctx := context.Background()
	sub, err := svc.AddSubject(ctx, "Physics", "")
	require.NoError(t, err)
	require.NoError(t, svc.AssignSubjectToSlot(ctx, "Monday", "1", sub.ID))
	require.NoError(t, svc.AssignSubjectToSlot(ctx, "Monday", "4", sub.ID))

	rec := do(e, http.MethodPost, "/attendance/mark-all", `{"date":"2024-03-18","status":"absent"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 2, decode[map[string]any](t, rec)["updated"])

	v := decode[models.DayView](t, do(e, http.MethodGet, "/today", ""))
	assert.Equal(t, "2024-03-18", v.Date)
	assert.Equal(t, "Monday", v.Day)
	require.NotNil(t, v.Slots[3].Status)
	assert.Equal(t, models.StatusAbsent, *v.Slots[3].Status)
	assert.Nil(t, v.Slots[1].Status)
	assert.Equal(t, 2, v.Stats.AbsentClasses)

	rec = do(e, http.MethodPost, "/attendance/clear", `{"date":"2024-03-18","time_slot_id":"1"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodPost, "/attendance/mark-all", `{"date":"2024-03-18","status":"clear"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v = decode[models.DayView](t, do(e, http.MethodGet, "/days/2024-03-18", ""))
	assert.Zero(t, v.Stats.AbsentClasses)

	rec = do(e, http.MethodGet, "/days/yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsAndProjection(t *testing.T) {
	e, svc := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, svc.MarkAttendance(ctx, "2024-03-01", "", "1", "s1", models.StatusPresent))
	require.NoError(t, svc.MarkAttendance(ctx, "2024-03-01", "", "2", "s1", models.StatusAbsent))
	require.NoError(t, svc.MarkAttendance(ctx, "2024-03-01", "", "3", "s1", models.StatusCancelled))

	st := decode[models.AttendanceStats](t, do(e, http.MethodGet, "/stats?scope=monthly", ""))
	assert.Equal(t, models.AttendanceStats{TotalClasses: 2, PresentClasses: 1, AbsentClasses: 1, CancelledClasses: 1, Percentage: 50}, st)

	rec := do(e, http.MethodGet, "/stats?scope=yearly", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rows := decode[[]models.SubjectStats](t, do(e, http.MethodGet, "/stats/subjects", ""))
	require.Len(t, rows, 1)
	assert.Equal(t, models.LabelUnknownSubject, rows[0].Name)

	hist := decode[[]models.DayHistory](t, do(e, http.MethodGet, "/history", ""))
	require.Len(t, hist, 1)

	p := decode[models.Projection](t, do(e, http.MethodGet, "/projection?targets=80", ""))
	assert.True(t, p.Estimate)
	require.Len(t, p.Targets, 1)
	assert.Equal(t, 80.0, p.Targets[0].Target)

	rec = do(e, http.MethodGet, "/projection?targets=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplaceTimetable(t *testing.T) {
	e, _ := newTestServer(t)

	good := `{"schedule":[{"day":"Monday","timeSlots":[{"id":"a","startTime":"08:00","endTime":"09:00"},{"id":"b","startTime":"09:00","endTime":"10:00"}]}]}`
	rec := do(e, http.MethodPut, "/timetable", good)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tt := decode[models.Timetable](t, rec)
	require.Len(t, tt.Schedule, 1)

	dup := `{"schedule":[{"day":"Monday","timeSlots":[{"id":"a","startTime":"08:00","endTime":"09:00"},{"id":"a","startTime":"09:00","endTime":"10:00"}]}]}`
	rec = do(e, http.MethodPut, "/timetable", dup)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportImportReset(t *testing.T) {
	e, svc := newTestServer(t)
	ctx := context.Background()
	_, err := svc.AddSubject(ctx, "Math", "")
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "student-app-backup-2024-03-18.json")
	backup := rec.Body.String()

	rec = do(e, http.MethodDelete, "/data", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, decode[models.AppInfo](t, do(e, http.MethodGet, "/info", "")).TotalSubjects)

	rec = do(e, http.MethodPost, "/import", backup)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decode[models.AppInfo](t, rec).TotalSubjects)

	rec = do(e, http.MethodPost, "/import", `{"subjects":[],"timetable":{"schedule":[]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_IMPORT", decode[map[string]any](t, rec)["error"])
	assert.Equal(t, 1, svc.Info().TotalSubjects)
}

func TestImportMultipart(t *testing.T) {
	e, svc := newTestServer(t)
	doc := `{"subjects":[{"id":"x","name":"Art","color":"","createdAt":"2024-01-01T00:00:00.000Z"}],"timetable":{"schedule":[]},"attendanceRecords":[]}`

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "backup.json")
	require.NoError(t, err)
	_, _ = fw.Write([]byte(doc))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, svc.State().Subjects, 1)
	assert.Equal(t, "Art", svc.State().Subjects[0].Name)
}
