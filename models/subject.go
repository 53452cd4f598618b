package models

import "time"

const (
	LabelFreePeriod     = "Free Period"
	LabelUnknownSubject = "Unknown Subject"
)

type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubjectLabel คืนชื่อวิชาสำหรับแสดงผล
func SubjectLabel(subjects []Subject, id string) string {
	if id == "" {
		return LabelFreePeriod
	}
	for _, s := range subjects {
		if s.ID == id {
			return s.Name
		}
	}
	return LabelUnknownSubject
}
