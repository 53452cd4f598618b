package models

import (
	"time"

	"gorm.io/datatypes"
)

// State คือข้อมูลทั้งหมดของผู้ใช้หนึ่งคน
type State struct {
	Subjects          []Subject          `json:"subjects"`
	Timetable         Timetable          `json:"timetable"`
	AttendanceRecords []AttendanceRecord `json:"attendanceRecords"`
}

// Clone returns a deep copy. Collections are never nil in the copy, so
// they encode as [] rather than null.
func (s State) Clone() State {
	return State{
		Subjects:          append(make([]Subject, 0, len(s.Subjects)), s.Subjects...),
		Timetable:         s.Timetable.Clone(),
		AttendanceRecords: append(make([]AttendanceRecord, 0, len(s.AttendanceRecords)), s.AttendanceRecords...),
	}
}

// Bundle is a decoded import document. A nil field means the collection
// was absent from the document.
type Bundle struct {
	Subjects          *[]Subject
	Timetable         *Timetable
	AttendanceRecords *[]AttendanceRecord
}

// ExportDocument is the portable backup file.
type ExportDocument struct {
	Subjects          []Subject          `json:"subjects"`
	Timetable         Timetable          `json:"timetable"`
	AttendanceRecords []AttendanceRecord `json:"attendanceRecords"`
	ExportDate        time.Time          `json:"exportDate"`
}

// AppState เป็นแถวเก็บ snapshot ในฐานข้อมูล (key-value)
type AppState struct {
	Key       string         `json:"key" gorm:"primaryKey;size:100"`
	Value     datatypes.JSON `json:"value" gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `json:"updated_at"`
}
