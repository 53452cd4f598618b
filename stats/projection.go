package stats

import (
	"math"
	"time"

	"github.com/samxiao0/campus-cron/models"
)

// ProjectionConfig holds the calendar assumptions of the month-end estimate.
type ProjectionConfig struct {
	// SchoolDays divides the weekly scheduled load into a per-day average.
	SchoolDays int
	// MonthSchoolDays caps how many school days a month is assumed to have.
	MonthSchoolDays int
	Targets         []float64
}

func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		SchoolDays:      6,
		MonthSchoolDays: 20,
		Targets:         []float64{75, 76},
	}
}

// DailyClasses is the average number of scheduled (non-free) periods per
// school day.
func DailyClasses(tt models.Timetable, schoolDays int) float64 {
	if schoolDays <= 0 {
		schoolDays = 1
	}
	return float64(tt.AssignedSlots()) / float64(schoolDays)
}

// Project estimates, for each target percentage, how many of the rest of
// this month's classes must be attended and how many can be missed.
//
// The result is a heuristic: it assumes the timetable's daily load holds
// for the whole month and infers elapsed school days from the classes
// already recorded.
func Project(records []models.AttendanceRecord, tt models.Timetable, now time.Time, cfg ProjectionConfig) models.Projection {
	monthly := Monthly(records, now)
	daily := DailyClasses(tt, cfg.SchoolDays)
	return project(monthly, daily, cfg)
}

func project(monthly models.AttendanceStats, daily float64, cfg ProjectionConfig) models.Projection {
	total := monthly.TotalClasses
	present := monthly.PresentClasses

	elapsed := int(math.Floor(float64(total) / math.Max(1, daily)))
	remainingDays := max(0, cfg.MonthSchoolDays-elapsed)
	remaining := float64(remainingDays) * daily

	p := models.Projection{
		Estimate:                  true,
		CurrentPercentage:         monthly.Percentage,
		MonthlyTotal:              total,
		MonthlyPresent:            present,
		DailyClasses:              daily,
		RemainingDays:             remainingDays,
		EstimatedRemainingClasses: remaining,
		EstimatedRemainingRounded: int(math.Round(remaining)),
		Targets:                   make([]models.TargetProjection, 0, len(cfg.Targets)),
	}
	for _, target := range cfg.Targets {
		p.Targets = append(p.Targets, projectTarget(target, total, present, remaining))
	}
	return p
}

func projectTarget(target float64, total, present int, remaining float64) models.TargetProjection {
	projected := float64(total) + remaining
	// multiply before dividing so whole results stay exact
	required := int(math.Ceil(target * projected / 100))
	need := max(0, required-present)
	canMiss := math.Max(0, remaining-float64(need))
	return models.TargetProjection{
		Target:          target,
		TotalProjected:  projected,
		RequiredPresent: required,
		NeedToAttend:    need,
		CanMiss:         canMiss,
	}
}
