package models

// SlotView is one period of a day as the UI shows it.
type SlotView struct {
	TimeSlot
	SubjectName string            `json:"subjectName"`
	Status      *AttendanceStatus `json:"status,omitempty"`
}

// DayView is the schedule of one calendar date with its recorded outcomes.
type DayView struct {
	Date  string          `json:"date"`
	Day   string          `json:"day"`
	Slots []SlotView      `json:"slots"`
	Stats AttendanceStats `json:"stats"`
}

// AppInfo is the settings page summary.
type AppInfo struct {
	Version           string `json:"version"`
	TotalSubjects     int    `json:"totalSubjects"`
	AttendanceRecords int    `json:"attendanceRecords"`
}
