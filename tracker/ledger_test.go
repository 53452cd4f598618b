package tracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samxiao0/campus-cron/models"
)

func countKey(recs []models.AttendanceRecord, date, slot string) int {
	n := 0
	for _, r := range recs {
		if r.Date == date && r.TimeSlotID == slot {
			n++
		}
	}
	return n
}

func TestMarkAttendanceUpsertsByDateAndSlot(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.MarkAttendance("2024-03-01", "Friday", "1", "s1", models.StatusPresent))
	require.NoError(t, s.MarkAttendance("2024-03-01", "Friday", "2", "s2", models.StatusPresent))
	require.NoError(t, s.MarkAttendance("2024-03-01", "Friday", "1", "s1", models.StatusAbsent))
	require.NoError(t, s.MarkAttendance("2024-03-01", "Friday", "1", "s3", models.StatusCancelled))

	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, 1, countKey(recs, "2024-03-01", "1"))
	// replaced in place
	assert.Equal(t, models.AttendanceRecord{
		Date: "2024-03-01", Day: "Friday", TimeSlotID: "1", SubjectID: "s3", Status: models.StatusCancelled,
	}, recs[0])
}

func TestMarkAttendanceSameSlotDifferentDates(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.MarkAttendance("2024-03-01", "Friday", "1", "s1", models.StatusPresent))
	require.NoError(t, s.MarkAttendance("2024-03-08", "Friday", "1", "s1", models.StatusAbsent))
	assert.Len(t, s.Records(), 2)
}

func TestMarkAttendanceFillsDayFromDate(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.MarkAttendance("2024-03-04", "", "1", "s1", models.StatusPresent))
	rec, ok := s.Record("2024-03-04", "1")
	require.True(t, ok)
	assert.Equal(t, "Monday", rec.Day)
}

func TestMarkAttendanceValidation(t *testing.T) {
	cases := []struct {
		name             string
		date, slot, subj string
		status           models.AttendanceStatus
		field            string
	}{
		{"bad date", "03/01/2024", "1", "s1", models.StatusPresent, "date"},
		{"no slot", "2024-03-01", "", "s1", models.StatusPresent, "timeSlotId"},
		{"free period", "2024-03-01", "1", "", models.StatusPresent, "subjectId"},
		{"clear sentinel", "2024-03-01", "1", "s1", models.StatusClear, "status"},
		{"unknown status", "2024-03-01", "1", "s1", "late", "status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore()
			err := s.MarkAttendance(tc.date, "Friday", tc.slot, tc.subj, tc.status)
			var ve *models.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
			assert.Empty(t, s.Records())
		})
	}
}

func TestClearAttendance(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.MarkAttendance("2024-03-01", "Friday", "1", "s1", models.StatusPresent))
	require.NoError(t, s.MarkAttendance("2024-03-01", "Friday", "2", "s1", models.StatusAbsent))

	s.ClearAttendance("2024-03-01", "1")
	_, ok := s.Record("2024-03-01", "1")
	assert.False(t, ok)
	assert.Len(t, s.Records(), 1)

	// unknown key
	s.ClearAttendance("2024-03-02", "2")
	assert.Len(t, s.Records(), 1)
}

func weekWithSubjects(s *Store) {
	s.AssignSubjectToSlot("Monday", "1", "math")
	s.AssignSubjectToSlot("Monday", "2", "bio")
	s.AssignSubjectToSlot("Monday", "5", "math")
}

func TestMarkAllDayAttendanceMarksAssignedSlotsOnly(t *testing.T) {
	s := newTestStore()
	weekWithSubjects(s)

	n, err := s.MarkAllDayAttendance("2024-03-04", "Monday", models.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	mon, _ := s.Timetable().Day("Monday")
	for _, slot := range mon.TimeSlots {
		rec, ok := s.Record("2024-03-04", slot.ID)
		if slot.Free() {
			assert.False(t, ok, "free slot %s got a record", slot.ID)
			continue
		}
		require.True(t, ok, "slot %s", slot.ID)
		assert.Equal(t, models.StatusPresent, rec.Status)
		assert.Equal(t, slot.SubjectID, rec.SubjectID)
	}
}

func TestMarkAllDayAttendanceOverwritesAndClears(t *testing.T) {
	s := newTestStore()
	weekWithSubjects(s)
	require.NoError(t, s.MarkAttendance("2024-03-04", "Monday", "1", "math", models.StatusAbsent))
	require.NoError(t, s.MarkAttendance("2024-03-05", "Tuesday", "1", "math", models.StatusAbsent))

	_, err := s.MarkAllDayAttendance("2024-03-04", "Monday", models.StatusCancelled)
	require.NoError(t, err)
	rec, _ := s.Record("2024-03-04", "1")
	assert.Equal(t, models.StatusCancelled, rec.Status)
	assert.Len(t, s.RecordsOn("2024-03-04"), 3)

	n, err := s.MarkAllDayAttendance("2024-03-04", "Monday", models.StatusClear)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, s.RecordsOn("2024-03-04"))
	// other dates untouched
	assert.Len(t, s.RecordsOn("2024-03-05"), 1)
}

func TestMarkAllDayAttendanceNoEligibleSlots(t *testing.T) {
	s := newTestStore()

	n, err := s.MarkAllDayAttendance("2024-03-04", "Monday", models.StatusPresent)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.MarkAllDayAttendance("2024-03-10", "Sunday", models.StatusPresent)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, s.Records())
}

func TestMarkAllDayAttendanceRejectsBadStatus(t *testing.T) {
	s := newTestStore()
	weekWithSubjects(s)

	_, err := s.MarkAllDayAttendance("2024-03-04", "Monday", "maybe")
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Empty(t, s.Records())
}
