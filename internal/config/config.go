package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the dashboard.
type Config struct {
	ListenAddr      string
	DatabaseURL     string
	Timezone        string
	UpgradeDeadline string // HH:MM civil time after which an empty upgrade list is overdue
	JWTSecret       string
	TokenTTL        time.Duration
	AdminPIN        string // seed PIN for the Branch Manager, only used when no admin exists
	LogLevel        string
	ProgressModules []string // override for the weighted module set; empty means the built-in default
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:      strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Timezone:        strings.TrimSpace(os.Getenv("BRANCH_TIMEZONE")),
		UpgradeDeadline: strings.TrimSpace(os.Getenv("UPGRADE_DEADLINE")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:        parseHours(strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS"))),
		AdminPIN:        strings.TrimSpace(os.Getenv("ADMIN_PIN")),
		LogLevel:        strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		ProgressModules: splitCSV(os.Getenv("PROGRESS_MODULES")),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "dashboard.db"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Europe/Amsterdam"
	}
	if cfg.UpgradeDeadline == "" {
		cfg.UpgradeDeadline = "08:30"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	if cfg.AdminPIN == "" {
		cfg.AdminPIN = "9999"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}
	if _, _, err := ParseDeadline(cfg.UpgradeDeadline); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseDeadline splits an HH:MM string into hour and minute.
func ParseDeadline(raw string) (hour, minute int, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid deadline %q, expected HH:MM", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return hour, minute, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
