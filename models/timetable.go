package models

import (
	"fmt"
	"regexp"
)

// Weekdays in school order. Sunday is allowed but not part of the default week.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var reHHMM = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	SubjectID string `json:"subjectId,omitempty"`
}

// Free reports whether the slot has no subject (คาบว่าง).
func (s TimeSlot) Free() bool { return s.SubjectID == "" }

type DaySchedule struct {
	Day       string     `json:"day"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

type Timetable struct {
	Schedule []DaySchedule `json:"schedule"`
}

// Day returns the schedule for a weekday name.
func (t Timetable) Day(name string) (DaySchedule, bool) {
	for _, d := range t.Schedule {
		if d.Day == name {
			return d, true
		}
	}
	return DaySchedule{}, false
}

// AssignedSlots counts slots with a subject across the whole week.
func (t Timetable) AssignedSlots() int {
	n := 0
	for _, d := range t.Schedule {
		for _, s := range d.TimeSlots {
			if !s.Free() {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (t Timetable) Clone() Timetable {
	out := Timetable{Schedule: make([]DaySchedule, len(t.Schedule))}
	for i, d := range t.Schedule {
		out.Schedule[i] = DaySchedule{
			Day:       d.Day,
			TimeSlots: append(make([]TimeSlot, 0, len(d.TimeSlots)), d.TimeSlots...),
		}
	}
	return out
}

// Validate checks the structural rules of a timetable: known weekday names,
// one entry per day, unique slot ids per day and chronological HH:MM slots.
func (t Timetable) Validate() error {
	known := map[string]bool{}
	for _, d := range Weekdays {
		known[d] = true
	}
	seenDay := map[string]bool{}
	for _, d := range t.Schedule {
		if !known[d.Day] {
			return &ValidationError{Field: "day", Message: fmt.Sprintf("unknown weekday %q", d.Day)}
		}
		if seenDay[d.Day] {
			return &ValidationError{Field: "day", Message: fmt.Sprintf("%s appears more than once", d.Day)}
		}
		seenDay[d.Day] = true

		seenSlot := map[string]bool{}
		prevEnd := ""
		for _, s := range d.TimeSlots {
			if s.ID == "" {
				return &ValidationError{Field: "timeSlots.id", Message: d.Day + ": empty slot id"}
			}
			if seenSlot[s.ID] {
				return &ValidationError{Field: "timeSlots.id", Message: fmt.Sprintf("%s: duplicate slot id %q", d.Day, s.ID)}
			}
			seenSlot[s.ID] = true
			if !reHHMM.MatchString(s.StartTime) || !reHHMM.MatchString(s.EndTime) {
				return &ValidationError{Field: "timeSlots.time", Message: fmt.Sprintf("%s slot %s: times must be HH:MM", d.Day, s.ID)}
			}
			// HH:MM compares correctly as text
			if s.StartTime >= s.EndTime {
				return &ValidationError{Field: "timeSlots.time", Message: fmt.Sprintf("%s slot %s: start must be before end", d.Day, s.ID)}
			}
			if prevEnd != "" && s.StartTime < prevEnd {
				return &ValidationError{Field: "timeSlots.time", Message: fmt.Sprintf("%s slot %s: slots out of order", d.Day, s.ID)}
			}
			prevEnd = s.EndTime
		}
	}
	return nil
}

var defaultSlotTimes = [][2]string{
	{"09:10", "10:00"},
	{"10:00", "10:50"},
	{"10:50", "11:40"},
	{"11:40", "12:30"},
	{"13:20", "14:10"},
	{"14:10", "15:00"},
	{"15:00", "15:50"},
}

// DefaultTimetable is the Monday–Saturday week a fresh store starts with,
// seven free periods per day.
func DefaultTimetable() Timetable {
	tt := Timetable{}
	for _, day := range Weekdays[:6] {
		slots := make([]TimeSlot, 0, len(defaultSlotTimes))
		for i, st := range defaultSlotTimes {
			slots = append(slots, TimeSlot{
				ID:        fmt.Sprint(i + 1),
				StartTime: st[0],
				EndTime:   st[1],
			})
		}
		tt.Schedule = append(tt.Schedule, DaySchedule{Day: day, TimeSlots: slots})
	}
	return tt
}
