package tracker

import (
	"strings"

	"github.com/samxiao0/campus-cron/models"
)

func (s *Store) findRecord(date, slotID string) int {
	for i, r := range s.state.AttendanceRecords {
		if r.Date == date && r.TimeSlotID == slotID {
			return i
		}
	}
	return -1
}

func validateMark(date, slotID, subjectID string, status models.AttendanceStatus) error {
	if _, err := models.ParseDate(date); err != nil {
		return &models.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(slotID) == "" {
		return &models.ValidationError{Field: "timeSlotId", Message: "time slot is required"}
	}
	if strings.TrimSpace(subjectID) == "" {
		return &models.ValidationError{Field: "subjectId", Message: "free periods cannot be marked"}
	}
	if !status.Valid() {
		return &models.ValidationError{Field: "status", Message: "status must be present, absent or cancelled"}
	}
	return nil
}

// MarkAttendance upserts the record for (date, slotID). An existing record
// is replaced in place so ledger order is kept.
func (s *Store) MarkAttendance(date, day, slotID, subjectID string, status models.AttendanceStatus) error {
	if err := validateMark(date, slotID, subjectID, status); err != nil {
		return err
	}
	if day == "" {
		day = models.WeekdayName(date)
	}
	rec := models.AttendanceRecord{
		Date:       date,
		Day:        day,
		TimeSlotID: slotID,
		SubjectID:  subjectID,
		Status:     status,
	}
	if i := s.findRecord(date, slotID); i >= 0 {
		s.state.AttendanceRecords[i] = rec
		return nil
	}
	s.state.AttendanceRecords = append(s.state.AttendanceRecords, rec)
	return nil
}

// ClearAttendance removes the record for (date, slotID) if there is one.
func (s *Store) ClearAttendance(date, slotID string) {
	i := s.findRecord(date, slotID)
	if i < 0 {
		return
	}
	recs := make([]models.AttendanceRecord, 0, len(s.state.AttendanceRecords)-1)
	recs = append(recs, s.state.AttendanceRecords[:i]...)
	recs = append(recs, s.state.AttendanceRecords[i+1:]...)
	s.state.AttendanceRecords = recs
}

// MarkAllDayAttendance marks (or clears, with StatusClear) every slot of
// day's schedule that has a subject. It returns how many slots it touched.
func (s *Store) MarkAllDayAttendance(date, day string, status models.AttendanceStatus) (int, error) {
	if _, err := models.ParseDate(date); err != nil {
		return 0, &models.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
	}
	if status != models.StatusClear && !status.Valid() {
		return 0, &models.ValidationError{Field: "status", Message: "status must be present, absent, cancelled or clear"}
	}
	if day == "" {
		day = models.WeekdayName(date)
	}
	sched, ok := s.state.Timetable.Day(day)
	if !ok {
		return 0, nil
	}

	n := 0
	for _, slot := range sched.TimeSlots {
		// a slot without an id cannot key a record
		if slot.Free() || slot.ID == "" {
			continue
		}
		if status == models.StatusClear {
			s.ClearAttendance(date, slot.ID)
		} else {
			// date, slot, subject and status are all valid here
			_ = s.MarkAttendance(date, day, slot.ID, slot.SubjectID, status)
		}
		n++
	}
	return n, nil
}

func (s *Store) Record(date, slotID string) (models.AttendanceRecord, bool) {
	if i := s.findRecord(date, slotID); i >= 0 {
		return s.state.AttendanceRecords[i], true
	}
	return models.AttendanceRecord{}, false
}

// RecordsOn returns one date's records in ledger order.
func (s *Store) RecordsOn(date string) []models.AttendanceRecord {
	out := []models.AttendanceRecord{}
	for _, r := range s.state.AttendanceRecords {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}
