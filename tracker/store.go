// Package tracker holds the in-memory entity store: subjects, the weekly
// timetable and the attendance ledger. A Store is not safe for concurrent
// use and does no I/O; callers persist Snapshot() after each mutation.
package tracker

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samxiao0/campus-cron/models"
)

type Store struct {
	state models.State
	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the clock used for subject creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides subject id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(opts ...Option) *Store {
	s := &Store{
		state: initialState(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func initialState() models.State {
	return models.State{
		Subjects:          []models.Subject{},
		Timetable:         models.DefaultTimetable(),
		AttendanceRecords: []models.AttendanceRecord{},
	}
}

// ─── Snapshots ────────────────────────────────────────────────────────────────

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() models.State { return s.state.Clone() }

// Restore replaces the whole state in one assignment.
func (s *Store) Restore(st models.State) { s.state = st.Clone() }

// Reset drops all data and goes back to the default timetable.
func (s *Store) Reset() { s.state = initialState() }

func (s *Store) Subjects() []models.Subject {
	return append([]models.Subject{}, s.state.Subjects...)
}

func (s *Store) Subject(id string) (models.Subject, bool) {
	for _, sub := range s.state.Subjects {
		if sub.ID == id {
			return sub, true
		}
	}
	return models.Subject{}, false
}

func (s *Store) Timetable() models.Timetable { return s.state.Timetable.Clone() }

func (s *Store) Records() []models.AttendanceRecord {
	return append([]models.AttendanceRecord{}, s.state.AttendanceRecords...)
}

// ─── Subjects ─────────────────────────────────────────────────────────────────

func (s *Store) AddSubject(name, color string) (models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Subject{}, &models.ValidationError{Field: "name", Message: "subject name is required"}
	}
	sub := models.Subject{
		ID:        s.newID(),
		Name:      name,
		Color:     strings.TrimSpace(color),
		CreatedAt: s.now(),
	}
	s.state.Subjects = append(s.state.Subjects, sub)
	return sub, nil
}

// RemoveSubject deletes the subject and frees every slot that pointed at it.
// Attendance records keep the id and become orphans.
func (s *Store) RemoveSubject(id string) {
	idx := -1
	for i, sub := range s.state.Subjects {
		if sub.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	subjects := make([]models.Subject, 0, len(s.state.Subjects)-1)
	subjects = append(subjects, s.state.Subjects[:idx]...)
	subjects = append(subjects, s.state.Subjects[idx+1:]...)

	tt := s.state.Timetable.Clone()
	for d := range tt.Schedule {
		for i := range tt.Schedule[d].TimeSlots {
			if tt.Schedule[d].TimeSlots[i].SubjectID == id {
				tt.Schedule[d].TimeSlots[i].SubjectID = ""
			}
		}
	}

	s.state.Subjects = subjects
	s.state.Timetable = tt
}

// ─── Timetable ────────────────────────────────────────────────────────────────

// AssignSubjectToSlot sets (or clears, with an empty subjectID) the subject of
// one slot. Unknown days and slots are ignored.
func (s *Store) AssignSubjectToSlot(day, slotID, subjectID string) {
	for d := range s.state.Timetable.Schedule {
		if s.state.Timetable.Schedule[d].Day != day {
			continue
		}
		slots := s.state.Timetable.Schedule[d].TimeSlots
		for i := range slots {
			if slots[i].ID == slotID {
				slots[i].SubjectID = strings.TrimSpace(subjectID)
				return
			}
		}
		return
	}
}

// UpdateTimetable replaces the timetable. Structural validity is the caller's job.
func (s *Store) UpdateTimetable(tt models.Timetable) {
	s.state.Timetable = tt.Clone()
}

// ─── Import ───────────────────────────────────────────────────────────────────

// ImportData replaces all three collections. Nothing changes unless every
// collection is present.
func (s *Store) ImportData(b models.Bundle) error {
	switch {
	case b.Subjects == nil:
		return &models.FormatError{Message: "subjects is missing"}
	case b.Timetable == nil:
		return &models.FormatError{Message: "timetable is missing"}
	case b.AttendanceRecords == nil:
		return &models.FormatError{Message: "attendanceRecords is missing"}
	}
	s.state = models.State{
		Subjects:          *b.Subjects,
		Timetable:         *b.Timetable,
		AttendanceRecords: *b.AttendanceRecords,
	}.Clone()
	return nil
}
