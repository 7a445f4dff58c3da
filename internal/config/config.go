package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"personalsite/internal/schedule"
)

// Config carries everything main wires together. Business hours are loaded
// here once and passed down explicitly; nothing reads schedule settings from
// the environment after startup.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	RedisAddr   string
	FrontendURL string

	StripeSecretKey string

	Hours schedule.BusinessHours
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	hours, err := loadBusinessHours()
	if err != nil {
		return nil, fmt.Errorf("business hours: %w", err)
	}
	cfg.Hours = hours

	return cfg, nil
}

// loadBusinessHours builds the slot rule set from the environment. Defaults
// are Monday through Friday, 09:00 to 17:00, 60-minute slots, UTC wall clock.
func loadBusinessHours() (schedule.BusinessHours, error) {
	loc, err := time.LoadLocation(getEnv("BUSINESS_TIMEZONE", "UTC"))
	if err != nil {
		return schedule.BusinessHours{}, fmt.Errorf("invalid BUSINESS_TIMEZONE: %w", err)
	}

	slotMinutes, err := strconv.Atoi(getEnv("SLOT_MINUTES", "60"))
	if err != nil {
		return schedule.BusinessHours{}, fmt.Errorf("invalid SLOT_MINUTES: %w", err)
	}

	open := getEnv("BUSINESS_OPEN", "09:00")
	close := getEnv("BUSINESS_CLOSE", "17:00")

	days := map[time.Weekday]schedule.DayHours{}
	for _, field := range strings.Split(getEnv("WORKING_DAYS", "1,2,3,4,5"), ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 0 || n > 6 {
			return schedule.BusinessHours{}, fmt.Errorf("invalid WORKING_DAYS entry %q", field)
		}
		days[time.Weekday(n)] = schedule.DayHours{Open: open, Close: close}
	}

	hours := schedule.BusinessHours{
		Days:        days,
		SlotMinutes: slotMinutes,
		Location:    loc,
	}
	if err := hours.Validate(); err != nil {
		return schedule.BusinessHours{}, err
	}
	return hours, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
