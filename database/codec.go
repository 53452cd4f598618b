package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/samxiao0/campus-cron/models"
)

// StateKey is the default namespaced key of the persisted snapshot.
const StateKey = "student-app-storage"

var jsonAPI = sonic.ConfigStd

// Subjects arrive with createdAt as text (or epoch millis); decode through
// a wire shape and normalize afterwards.
type wireSubject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt any    `json:"createdAt"`
}

type wireCollections struct {
	Subjects          *[]wireSubject             `json:"subjects"`
	Timetable         *models.Timetable          `json:"timetable"`
	AttendanceRecords *[]models.AttendanceRecord `json:"attendanceRecords"`
}

type envelope struct {
	State   models.State `json:"state"`
	Version int          `json:"version"`
}

type wireEnvelope struct {
	State   wireCollections `json:"state"`
	Version int             `json:"version"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	models.DateLayout,
}

// ParseTimestamp turns a decoded JSON value into a time. Strings are tried
// against RFC 3339 and a few local layouts, numbers are epoch milliseconds.
func ParseTimestamp(v any) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, nil
	case float64:
		return time.UnixMilli(int64(x)), nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			var (
				t   time.Time
				err error
			)
			if layout == time.RFC3339Nano {
				t, err = time.Parse(layout, s)
			} else {
				t, err = time.ParseInLocation(layout, s, time.Local)
			}
			if err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", x)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func normalizeSubjects(in []wireSubject) ([]models.Subject, error) {
	out := make([]models.Subject, 0, len(in))
	for i, w := range in {
		created, err := ParseTimestamp(w.CreatedAt)
		if err != nil {
			return nil, &models.FormatError{Message: fmt.Sprintf("subjects[%d].createdAt: %v", i, err)}
		}
		out = append(out, models.Subject{ID: w.ID, Name: w.Name, Color: w.Color, CreatedAt: created})
	}
	return out, nil
}

func checkRecords(recs []models.AttendanceRecord) error {
	for i, r := range recs {
		if !r.Status.Valid() {
			return &models.FormatError{Message: fmt.Sprintf("attendanceRecords[%d]: unknown status %q", i, r.Status)}
		}
	}
	return nil
}

// ─── Persisted snapshot ───────────────────────────────────────────────────────

// EncodeState serializes the snapshot stored under StateKey.
func EncodeState(st models.State) ([]byte, error) {
	return jsonAPI.Marshal(envelope{State: st.Clone()})
}

// DecodeState reads a stored snapshot. Collections missing from an older
// snapshot fall back to the initial values.
func DecodeState(data []byte) (models.State, error) {
	var w wireEnvelope
	if err := jsonAPI.Unmarshal(data, &w); err != nil {
		return models.State{}, fmt.Errorf("decode state: %w", err)
	}
	st := models.State{
		Subjects:          []models.Subject{},
		Timetable:         models.DefaultTimetable(),
		AttendanceRecords: []models.AttendanceRecord{},
	}
	if w.State.Subjects != nil {
		subjects, err := normalizeSubjects(*w.State.Subjects)
		if err != nil {
			return models.State{}, fmt.Errorf("decode state: %w", err)
		}
		st.Subjects = subjects
	}
	if w.State.Timetable != nil {
		st.Timetable = *w.State.Timetable
	}
	if w.State.AttendanceRecords != nil {
		st.AttendanceRecords = *w.State.AttendanceRecords
	}
	return st.Clone(), nil
}

// ─── Export / import document ─────────────────────────────────────────────────

// EncodeExport renders the portable backup document.
func EncodeExport(st models.State, now time.Time) ([]byte, error) {
	st = st.Clone()
	doc := models.ExportDocument{
		Subjects:          st.Subjects,
		Timetable:         st.Timetable,
		AttendanceRecords: st.AttendanceRecords,
		ExportDate:        now.UTC(),
	}
	return jsonAPI.MarshalIndent(doc, "", "  ")
}

// DecodeBundle parses an import document. It fails with *models.FormatError
// when the document is not JSON, lacks a collection or carries values that
// cannot be normalized.
func DecodeBundle(data []byte) (models.Bundle, error) {
	var w wireCollections
	if err := jsonAPI.Unmarshal(data, &w); err != nil {
		return models.Bundle{}, &models.FormatError{Message: "invalid JSON: " + err.Error()}
	}
	switch {
	case w.Subjects == nil:
		return models.Bundle{}, &models.FormatError{Message: "subjects is missing"}
	case w.Timetable == nil:
		return models.Bundle{}, &models.FormatError{Message: "timetable is missing"}
	case w.AttendanceRecords == nil:
		return models.Bundle{}, &models.FormatError{Message: "attendanceRecords is missing"}
	}

	subjects, err := normalizeSubjects(*w.Subjects)
	if err != nil {
		return models.Bundle{}, err
	}
	if err := checkRecords(*w.AttendanceRecords); err != nil {
		return models.Bundle{}, err
	}
	return models.Bundle{
		Subjects:          &subjects,
		Timetable:         w.Timetable,
		AttendanceRecords: w.AttendanceRecords,
	}, nil
}

// ExportFilename is the suggested name of a backup taken at now.
func ExportFilename(now time.Time) string {
	return "student-app-backup-" + now.Format(models.DateLayout) + ".json"
}
