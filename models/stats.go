package models

type AttendanceStats struct {
	TotalClasses     int     `json:"totalClasses"`
	PresentClasses   int     `json:"presentClasses"`
	AbsentClasses    int     `json:"absentClasses"`
	CancelledClasses int     `json:"cancelledClasses"`
	Percentage       float64 `json:"percentage"`
}

// SubjectStats เป็นสถิติรายวิชา
type SubjectStats struct {
	SubjectID string `json:"subjectId"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	AttendanceStats
}

// DayHistory groups one date's records for the history view.
type DayHistory struct {
	Date    string             `json:"date"`
	Day     string             `json:"day"`
	Records []AttendanceRecord `json:"records"`
	Stats   AttendanceStats    `json:"stats"`
}

// TargetProjection is the outlook for one target percentage.
type TargetProjection struct {
	Target          float64 `json:"target"`
	TotalProjected  float64 `json:"totalProjected"`
	RequiredPresent int     `json:"requiredPresent"`
	NeedToAttend    int     `json:"needToAttend"`
	CanMiss         float64 `json:"canMiss"`
}

// Projection is a month-end estimate. It assumes a fixed daily class load
// and is not a guarantee.
type Projection struct {
	Estimate                  bool               `json:"estimate"`
	CurrentPercentage         float64            `json:"currentPercentage"`
	MonthlyTotal              int                `json:"monthlyTotal"`
	MonthlyPresent            int                `json:"monthlyPresent"`
	DailyClasses              float64            `json:"dailyClasses"`
	RemainingDays             int                `json:"remainingDays"`
	EstimatedRemainingClasses float64            `json:"estimatedRemainingClassesRaw"`
	EstimatedRemainingRounded int                `json:"estimatedRemainingClasses"`
	Targets                   []TargetProjection `json:"targets"`
}
