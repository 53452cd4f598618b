package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"
)

// WriteBackup exports the current state into dir and returns the file path.
func WriteBackup(t *Tracker, dir string) (string, error) {
	data, name, err := t.Export()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// StartBackups schedules WriteBackup on a cron spec. Stop the returned cron
// (cron.Stop) on shutdown.
func StartBackups(t *Tracker, spec, dir string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(spec, func() {
		path, err := WriteBackup(t, dir)
		if err != nil {
			log.Printf("[backup] failed: %v", err)
			return
		}
		log.Printf("[backup] wrote %s", path)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule backup %q: %w", spec, err)
	}
	log.Printf("[backup] started schedule=%q dir=%q", spec, dir)
	c.Start()
	return c, nil
}

// StopBackups waits for a running backup to finish or ctx to expire.
func StopBackups(ctx context.Context, c *cron.Cron) {
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
}
