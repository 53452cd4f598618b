// Package services wires the in-memory tracker to durable storage. Every
// successful mutation is followed by a save of the full snapshot.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/samxiao0/campus-cron/database"
	"github.com/samxiao0/campus-cron/models"
	"github.com/samxiao0/campus-cron/stats"
	"github.com/samxiao0/campus-cron/tracker"
)

const AppVersion = "1.0.0"

type Tracker struct {
	mu         sync.Mutex
	store      *tracker.Store
	kv         database.KVStore
	key        string
	now        func() time.Time
	projection stats.ProjectionConfig
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithProjection(cfg stats.ProjectionConfig) Option {
	return func(t *Tracker) { t.projection = cfg }
}

// WithStore replaces the underlying store, e.g. one built with a fixed clock.
func WithStore(s *tracker.Store) Option {
	return func(t *Tracker) { t.store = s }
}

func NewTracker(kv database.KVStore, key string, opts ...Option) *Tracker {
	if key == "" {
		key = database.StateKey
	}
	t := &Tracker{
		kv:         kv,
		key:        key,
		now:        time.Now,
		projection: stats.DefaultProjectionConfig(),
	}
	for _, o := range opts {
		o(t)
	}
	if t.store == nil {
		t.store = tracker.New(tracker.WithClock(t.now))
	}
	return t
}

// Load reads the persisted snapshot. A missing snapshot keeps the initial state.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := t.kv.Get(ctx, t.key)
	if errors.Is(err, database.ErrNotFound) {
		log.Printf("[store] no snapshot under %q, starting fresh", t.key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	st, err := database.DecodeState(data)
	if err != nil {
		return err
	}
	t.store.Restore(st)
	log.Printf("[store] loaded %d subjects, %d records", len(st.Subjects), len(st.AttendanceRecords))
	return nil
}

// mutate runs fn and saves the result. If fn fails nothing is saved; if the
// save fails the in-memory state goes back to what it was.
func (t *Tracker) mutate(ctx context.Context, fn func(s *tracker.Store) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := t.store.Snapshot()
	if err := fn(t.store); err != nil {
		t.store.Restore(before)
		return err
	}
	if err := t.save(ctx); err != nil {
		t.store.Restore(before)
		return err
	}
	return nil
}

func (t *Tracker) save(ctx context.Context) error {
	data, err := database.EncodeState(t.store.Snapshot())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := t.kv.Put(ctx, t.key, data); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// ─── Mutations ────────────────────────────────────────────────────────────────

func (t *Tracker) AddSubject(ctx context.Context, name, color string) (models.Subject, error) {
	var sub models.Subject
	err := t.mutate(ctx, func(s *tracker.Store) error {
		var err error
		sub, err = s.AddSubject(name, color)
		return err
	})
	return sub, err
}

func (t *Tracker) RemoveSubject(ctx context.Context, id string) error {
	return t.mutate(ctx, func(s *tracker.Store) error {
		s.RemoveSubject(id)
		return nil
	})
}

func (t *Tracker) AssignSubjectToSlot(ctx context.Context, day, slotID, subjectID string) error {
	return t.mutate(ctx, func(s *tracker.Store) error {
		s.AssignSubjectToSlot(day, slotID, subjectID)
		return nil
	})
}

func (t *Tracker) UpdateTimetable(ctx context.Context, tt models.Timetable) error {
	return t.mutate(ctx, func(s *tracker.Store) error {
		s.UpdateTimetable(tt)
		return nil
	})
}

func (t *Tracker) MarkAttendance(ctx context.Context, date, day, slotID, subjectID string, status models.AttendanceStatus) error {
	return t.mutate(ctx, func(s *tracker.Store) error {
		return s.MarkAttendance(date, day, slotID, subjectID, status)
	})
}

func (t *Tracker) ClearAttendance(ctx context.Context, date, slotID string) error {
	return t.mutate(ctx, func(s *tracker.Store) error {
		s.ClearAttendance(date, slotID)
		return nil
	})
}

func (t *Tracker) MarkAllDayAttendance(ctx context.Context, date, day string, status models.AttendanceStatus) (int, error) {
	var n int
	err := t.mutate(ctx, func(s *tracker.Store) error {
		var err error
		n, err = s.MarkAllDayAttendance(date, day, status)
		return err
	})
	return n, err
}

// Import decodes a backup document and replaces the whole state with it.
func (t *Tracker) Import(ctx context.Context, data []byte) error {
	b, err := database.DecodeBundle(data)
	if err != nil {
		return err
	}
	return t.mutate(ctx, func(s *tracker.Store) error {
		return s.ImportData(b)
	})
}

// Reset wipes everything back to the initial state.
func (t *Tracker) Reset(ctx context.Context) error {
	return t.mutate(ctx, func(s *tracker.Store) error {
		s.Reset()
		return nil
	})
}

// ─── Reads ────────────────────────────────────────────────────────────────────

func (t *Tracker) State() models.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Snapshot()
}

func (t *Tracker) Today() string {
	return t.now().In(time.Local).Format(models.DateLayout)
}

// Export renders the backup document and its suggested file name.
func (t *Tracker) Export() ([]byte, string, error) {
	now := t.now()
	data, err := database.EncodeExport(t.State(), now)
	if err != nil {
		return nil, "", fmt.Errorf("encode export: %w", err)
	}
	return data, database.ExportFilename(now.In(time.Local)), nil
}

func (t *Tracker) Info() models.AppInfo {
	st := t.State()
	return models.AppInfo{
		Version:           AppVersion,
		TotalSubjects:     len(st.Subjects),
		AttendanceRecords: len(st.AttendanceRecords),
	}
}
