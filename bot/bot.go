// Package bot is a Telegram front-end over the tracker: today's schedule,
// marking and the statistics views.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/samxiao0/campus-cron/models"
	"github.com/samxiao0/campus-cron/services"
)

const helpText = `Commands:
/today - today's classes
/mark <slot> <present|absent|cancelled>
/clear <slot>
/all <present|absent|cancelled|clear>
/stats - overall and monthly attendance
/predict - month-end outlook
/subjects - your subjects`

type Bot struct {
	svc *services.Tracker
}

func New(svc *services.Tracker) *Bot { return &Bot{svc: svc} }

// Start runs the long poller until ctx is cancelled.
func (b *Bot) Start(ctx context.Context, token string) error {
	tb, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}

	commands := map[string]func(args []string) string{
		"/start":    func([]string) string { return helpText },
		"/help":     func([]string) string { return helpText },
		"/today":    func([]string) string { return b.Today() },
		"/mark":     b.Mark,
		"/clear":    b.Clear,
		"/all":      b.All,
		"/stats":    func([]string) string { return b.Stats() },
		"/predict":  func([]string) string { return b.Predict() },
		"/subjects": func([]string) string { return b.Subjects() },
	}
	for cmd, fn := range commands {
		fn := fn
		tb.Handle(cmd, func(c telebot.Context) error {
			return c.Send(fn(c.Args()))
		})
	}

	go func() {
		<-ctx.Done()
		tb.Stop()
	}()
	log.Printf("[bot] polling as @%s", tb.Me.Username)
	tb.Start()
	return nil
}

func (b *Bot) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func errText(err error) string {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return "⚠️ " + ve.Message
	}
	log.Printf("[bot] %v", err)
	return "❌ could not save, try again"
}

func statusIcon(s *models.AttendanceStatus) string {
	if s == nil {
		return "▫️"
	}
	switch *s {
	case models.StatusPresent:
		return "✅"
	case models.StatusAbsent:
		return "❌"
	case models.StatusCancelled:
		return "🚫"
	}
	return "▫️"
}

// Today lists today's slots with their recorded status.
func (b *Bot) Today() string {
	v, err := b.svc.DayView(b.svc.Today())
	if err != nil {
		return errText(err)
	}
	if len(v.Slots) == 0 {
		return fmt.Sprintf("📅 %s %s\nNo classes today. Enjoy your day off!", v.Day, v.Date)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 %s %s\n", v.Day, v.Date)
	for _, s := range v.Slots {
		fmt.Fprintf(&sb, "%s [%s] %s-%s %s\n", statusIcon(s.Status), s.ID, s.StartTime, s.EndTime, s.SubjectName)
	}
	fmt.Fprintf(&sb, "Today: %d/%d present", v.Stats.PresentClasses, v.Stats.TotalClasses)
	return sb.String()
}

func (b *Bot) todaySlot(slotID string) (models.TimeSlot, string, bool) {
	date := b.svc.Today()
	sched, ok := b.svc.State().Timetable.Day(models.WeekdayName(date))
	if !ok {
		return models.TimeSlot{}, date, false
	}
	for _, s := range sched.TimeSlots {
		if s.ID == slotID {
			return s, date, true
		}
	}
	return models.TimeSlot{}, date, false
}

// Mark handles "/mark <slot> <status>" for today.
func (b *Bot) Mark(args []string) string {
	if len(args) != 2 {
		return "Usage: /mark <slot> <present|absent|cancelled>"
	}
	slot, date, ok := b.todaySlot(args[0])
	if !ok {
		return fmt.Sprintf("No slot %q today.", args[0])
	}
	if slot.Free() {
		return fmt.Sprintf("Slot %s is a free period.", slot.ID)
	}
	status := models.AttendanceStatus(strings.ToLower(args[1]))
	ctx, cancel := b.opCtx()
	defer cancel()
	if err := b.svc.MarkAttendance(ctx, date, "", slot.ID, slot.SubjectID, status); err != nil {
		return errText(err)
	}
	return fmt.Sprintf("Marked slot %s as %s.", slot.ID, status)
}

// Clear handles "/clear <slot>" for today.
func (b *Bot) Clear(args []string) string {
	if len(args) != 1 {
		return "Usage: /clear <slot>"
	}
	ctx, cancel := b.opCtx()
	defer cancel()
	if err := b.svc.ClearAttendance(ctx, b.svc.Today(), args[0]); err != nil {
		return errText(err)
	}
	return fmt.Sprintf("Cleared slot %s.", args[0])
}

// All handles "/all <status|clear>" for today.
func (b *Bot) All(args []string) string {
	if len(args) != 1 {
		return "Usage: /all <present|absent|cancelled|clear>"
	}
	status := models.AttendanceStatus(strings.ToLower(args[0]))
	ctx, cancel := b.opCtx()
	defer cancel()
	n, err := b.svc.MarkAllDayAttendance(ctx, b.svc.Today(), "", status)
	if err != nil {
		return errText(err)
	}
	if n == 0 {
		return "No classes to mark today."
	}
	if status == models.StatusClear {
		return fmt.Sprintf("All %d classes cleared for today!", n)
	}
	return fmt.Sprintf("All %d classes marked as %s for today!", n, status)
}

func (b *Bot) Stats() string {
	overall, _ := b.svc.Stats(services.StatsQuery{})
	monthly, _ := b.svc.Stats(services.StatsQuery{Scope: services.ScopeMonthly})
	return fmt.Sprintf(
		"📊 Overall: %.2f%% (%d/%d, %d cancelled)\n🗓 This month: %.2f%% (%d/%d)",
		overall.Percentage, overall.PresentClasses, overall.TotalClasses, overall.CancelledClasses,
		monthly.Percentage, monthly.PresentClasses, monthly.TotalClasses,
	)
}

func (b *Bot) Predict() string {
	p := b.svc.Projection(nil)
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧮 Monthly average: %.2f%% (%d/%d)\n", p.CurrentPercentage, p.MonthlyPresent, p.MonthlyTotal)
	if p.EstimatedRemainingRounded <= 0 {
		sb.WriteString("No classes estimated for the rest of the month.")
		return sb.String()
	}
	fmt.Fprintf(&sb, "~%d classes remaining this month (estimate)\n", p.EstimatedRemainingRounded)
	for _, t := range p.Targets {
		fmt.Fprintf(&sb, "%g%%: need %d, can miss %.0f\n", t.Target, t.NeedToAttend, t.CanMiss)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *Bot) Subjects() string {
	subjects := b.svc.State().Subjects
	if len(subjects) == 0 {
		return "No subjects yet."
	}
	var sb strings.Builder
	for _, s := range b.svc.SubjectStats() {
		fmt.Fprintf(&sb, "• %s: %.2f%% (%d/%d)\n", s.Name, s.Percentage, s.PresentClasses, s.TotalClasses)
	}
	return strings.TrimRight(sb.String(), "\n")
}
