package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	// postgres | memory
	Storage  string
	StateKey string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// projection assumptions
	ProjectionSchoolDays int
	ProjectionMonthDays  int
	ProjectionTargets    []float64

	BackupCron string // empty = off
	BackupDir  string

	TelegramToken string // empty = off
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		log.Printf("[config] %s=%q is not a positive integer, using %d", k, v, def)
		return def
	}
	return n
}

// ParseTargets reads a comma separated list of percentages, e.g. "75,76".
func ParseTargets(s string) ([]float64, error) {
	var out []float64
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || f < 0 || f > 100 {
			return nil, fmt.Errorf("invalid target %q", p)
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no targets in %q", s)
	}
	return out, nil
}

// Load reads .env (if present) and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using system environment")
	}

	targets, err := ParseTargets(get("PROJECTION_TARGETS", "75,76"))
	if err != nil {
		log.Printf("[config] PROJECTION_TARGETS: %v, using 75,76", err)
		targets = []float64{75, 76}
	}

	return &Config{
		AppPort: get("APP_PORT", "8080"),
		AppEnv:  get("APP_ENV", "dev"),

		Storage:  get("STORAGE", "postgres"),
		StateKey: get("STATE_KEY", "student-app-storage"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "campus_cron"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		ProjectionSchoolDays: getInt("PROJECTION_SCHOOL_DAYS", 6),
		ProjectionMonthDays:  getInt("PROJECTION_MONTH_DAYS", 20),
		ProjectionTargets:    targets,

		BackupCron: get("BACKUP_CRON", ""),
		BackupDir:  get("BACKUP_DIR", "backups"),

		TelegramToken: get("TELEGRAM_TOKEN", ""),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
