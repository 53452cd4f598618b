package models

import (
	"strings"
	"time"
)

// DateLayout เป็นรูปแบบวันที่ของ ledger (YYYY-MM-DD, ไม่มีเวลา)
const DateLayout = "2006-01-02"

type AttendanceStatus string

const (
	StatusPresent   AttendanceStatus = "present"
	StatusAbsent    AttendanceStatus = "absent"
	StatusCancelled AttendanceStatus = "cancelled"

	// StatusClear is only understood by bulk per-day operations.
	StatusClear AttendanceStatus = "clear"
)

// Valid reports whether s can be stored on a record. StatusClear is not.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusCancelled:
		return true
	}
	return false
}

// บันทึกการเข้าเรียนหนึ่งคาบ คีย์คือ (Date, TimeSlotID)
type AttendanceRecord struct {
	Date       string           `json:"date"` // YYYY-MM-DD
	Day        string           `json:"day"`  // ชื่อวัน เก็บซ้ำไว้แสดงผล ไม่ผูกกับตารางเรียน
	TimeSlotID string           `json:"timeSlotId"`
	SubjectID  string           `json:"subjectId"`
	Status     AttendanceStatus `json:"status"`
}

// ParseDate parses a ledger date in the local calendar.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// WeekdayName returns the English weekday of a YYYY-MM-DD date, "" when the date is malformed.
func WeekdayName(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
