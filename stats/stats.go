// Package stats derives attendance statistics and month-end projections
// from ledger snapshots. Everything here is a pure function.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/samxiao0/campus-cron/models"
)

// round2 rounds half up to two decimals.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Compute counts statuses. Cancelled classes are counted on their own and
// never enter TotalClasses or the percentage.
func Compute(records []models.AttendanceRecord) models.AttendanceStats {
	var st models.AttendanceStats
	for _, r := range records {
		switch r.Status {
		case models.StatusPresent:
			st.PresentClasses++
		case models.StatusAbsent:
			st.AbsentClasses++
		case models.StatusCancelled:
			st.CancelledClasses++
		}
	}
	st.TotalClasses = st.PresentClasses + st.AbsentClasses
	if st.TotalClasses > 0 {
		st.Percentage = round2(float64(st.PresentClasses) / float64(st.TotalClasses) * 100)
	}
	return st
}

// ─── Filters ──────────────────────────────────────────────────────────────────

func filter(records []models.AttendanceRecord, keep func(models.AttendanceRecord) bool) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterMonth keeps records dated in now's local calendar month. Records
// with malformed dates are dropped.
func FilterMonth(records []models.AttendanceRecord, now time.Time) []models.AttendanceRecord {
	now = now.In(time.Local)
	return filter(records, func(r models.AttendanceRecord) bool {
		d, err := models.ParseDate(r.Date)
		return err == nil && d.Year() == now.Year() && d.Month() == now.Month()
	})
}

func FilterSubject(records []models.AttendanceRecord, subjectID string) []models.AttendanceRecord {
	return filter(records, func(r models.AttendanceRecord) bool { return r.SubjectID == subjectID })
}

func FilterDate(records []models.AttendanceRecord, date string) []models.AttendanceRecord {
	return filter(records, func(r models.AttendanceRecord) bool { return r.Date == date })
}

// ─── Scoped views ─────────────────────────────────────────────────────────────

func Overall(records []models.AttendanceRecord) models.AttendanceStats {
	return Compute(records)
}

func Monthly(records []models.AttendanceRecord, now time.Time) models.AttendanceStats {
	return Compute(FilterMonth(records, now))
}

func ForSubject(records []models.AttendanceRecord, subjectID string) models.AttendanceStats {
	return Compute(FilterSubject(records, subjectID))
}

func MonthlyForSubject(records []models.AttendanceRecord, subjectID string, now time.Time) models.AttendanceStats {
	return Compute(FilterSubject(FilterMonth(records, now), subjectID))
}

func ForDate(records []models.AttendanceRecord, date string) models.AttendanceStats {
	return Compute(FilterDate(records, date))
}

// BySubject returns one row per known subject plus one row per subject id
// that only survives in the ledger (labelled Unknown Subject).
func BySubject(records []models.AttendanceRecord, subjects []models.Subject) []models.SubjectStats {
	known := make(map[string]bool, len(subjects))
	out := make([]models.SubjectStats, 0, len(subjects))
	for _, s := range subjects {
		known[s.ID] = true
		out = append(out, models.SubjectStats{
			SubjectID:       s.ID,
			Name:            s.Name,
			Color:           s.Color,
			AttendanceStats: ForSubject(records, s.ID),
		})
	}

	orphans := map[string]bool{}
	for _, r := range records {
		if !known[r.SubjectID] && !orphans[r.SubjectID] {
			orphans[r.SubjectID] = true
			out = append(out, models.SubjectStats{
				SubjectID:       r.SubjectID,
				Name:            models.LabelUnknownSubject,
				AttendanceStats: ForSubject(records, r.SubjectID),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out
}

// History groups records by date, newest first.
func History(records []models.AttendanceRecord) []models.DayHistory {
	idx := map[string]int{}
	out := []models.DayHistory{}
	for _, r := range records {
		i, ok := idx[r.Date]
		if !ok {
			i = len(out)
			idx[r.Date] = i
			day := r.Day
			if day == "" {
				day = models.WeekdayName(r.Date)
			}
			out = append(out, models.DayHistory{Date: r.Date, Day: day})
		}
		out[i].Records = append(out[i].Records, r)
	}
	for i := range out {
		out[i].Stats = Compute(out[i].Records)
	}
	// YYYY-MM-DD sorts chronologically as text
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
