package services

import (
	"fmt"

	"github.com/samxiao0/campus-cron/models"
	"github.com/samxiao0/campus-cron/stats"
)

const (
	ScopeOverall = "overall"
	ScopeMonthly = "monthly"
)

type StatsQuery struct {
	Scope     string // overall (default) | monthly
	SubjectID string // optional
}

func (t *Tracker) Stats(q StatsQuery) (models.AttendanceStats, error) {
	recs := t.State().AttendanceRecords
	switch q.Scope {
	case "", ScopeOverall:
	case ScopeMonthly:
		recs = stats.FilterMonth(recs, t.now())
	default:
		return models.AttendanceStats{}, &models.ValidationError{Field: "scope", Message: fmt.Sprintf("unknown scope %q", q.Scope)}
	}
	if q.SubjectID != "" {
		recs = stats.FilterSubject(recs, q.SubjectID)
	}
	return stats.Compute(recs), nil
}

func (t *Tracker) SubjectStats() []models.SubjectStats {
	st := t.State()
	return stats.BySubject(st.AttendanceRecords, st.Subjects)
}

func (t *Tracker) History() []models.DayHistory {
	return stats.History(t.State().AttendanceRecords)
}

// Projection runs the month-end estimate. Empty targets use the configured ones.
func (t *Tracker) Projection(targets []float64) models.Projection {
	cfg := t.projection
	if len(targets) > 0 {
		cfg.Targets = targets
	}
	st := t.State()
	return stats.Project(st.AttendanceRecords, st.Timetable, t.now(), cfg)
}

// DayView lays a date's weekday schedule next to the records of that date.
func (t *Tracker) DayView(date string) (models.DayView, error) {
	if _, err := models.ParseDate(date); err != nil {
		return models.DayView{}, &models.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
	}
	st := t.State()
	day := models.WeekdayName(date)
	onDate := stats.FilterDate(st.AttendanceRecords, date)

	byslot := make(map[string]models.AttendanceStatus, len(onDate))
	for _, r := range onDate {
		byslot[r.TimeSlotID] = r.Status
	}

	view := models.DayView{
		Date:  date,
		Day:   day,
		Slots: []models.SlotView{},
		Stats: stats.Compute(onDate),
	}
	sched, _ := st.Timetable.Day(day)
	for _, slot := range sched.TimeSlots {
		sv := models.SlotView{
			TimeSlot:    slot,
			SubjectName: models.SubjectLabel(st.Subjects, slot.SubjectID),
		}
		if status, ok := byslot[slot.ID]; ok {
			sv.Status = &status
		}
		view.Slots = append(view.Slots, sv)
	}
	return view, nil
}
