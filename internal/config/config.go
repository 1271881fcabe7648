// Package config содержит логику чтения конфигурации сервиса библиотеки.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/libib/internal/model"
)

// Config содержит параметры конфигурации сервиса библиотеки.
type Config struct {
	RunAddress       string          `env:"RUN_ADDRESS"`
	AuthSecret       string          `env:"AUTH_SECRET"`
	LoanDays         int             `env:"LOAN_DAYS"`
	ExtensionDays    int             `env:"EXTENSION_DAYS"`
	FinePerDay       decimal.Decimal `env:"FINE_PER_DAY"`
	ExtensionFee     decimal.Decimal `env:"EXTENSION_FEE"`
	ReminderInterval time.Duration   `env:"REMINDER_INTERVAL"`
	DueSoonWindow    time.Duration   `env:"DUE_SOON_WINDOW"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	defaults := model.DefaultRules()
	cfg := &Config{
		FinePerDay:   defaults.FinePerDay,
		ExtensionFee: defaults.ExtensionFee,
	}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.AuthSecret, "s", "", "secret for signing session cookies")
	flag.IntVar(&cfg.LoanDays, "loan-days", defaults.LoanDays, "loan period in days")
	flag.IntVar(&cfg.ExtensionDays, "extension-days", defaults.ExtensionDays, "loan extension in days")
	flag.TextVar(&cfg.FinePerDay, "fine-per-day", defaults.FinePerDay, "late fine per started day")
	flag.TextVar(&cfg.ExtensionFee, "extension-fee", defaults.ExtensionFee, "flat loan extension fee")
	flag.DurationVar(&cfg.ReminderInterval, "reminder-interval", 0, "due reminder sweep interval, 0 disables")
	flag.DurationVar(&cfg.DueSoonWindow, "due-soon", 48*time.Hour, "window before the due date for reminders")

	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.LoanDays <= 0 {
		errs = append(errs, fmt.Errorf("loan days must be positive, got %d", c.LoanDays))
	}
	if c.ExtensionDays <= 0 {
		errs = append(errs, fmt.Errorf("extension days must be positive, got %d", c.ExtensionDays))
	}
	if c.FinePerDay.IsNegative() {
		errs = append(errs, fmt.Errorf("fine per day must not be negative, got %s", c.FinePerDay))
	}
	if c.ExtensionFee.IsNegative() {
		errs = append(errs, fmt.Errorf("extension fee must not be negative, got %s", c.ExtensionFee))
	}
	if c.ReminderInterval < 0 {
		errs = append(errs, fmt.Errorf("reminder interval must not be negative, got %s", c.ReminderInterval))
	}
	if c.DueSoonWindow < 0 {
		errs = append(errs, fmt.Errorf("due soon window must not be negative, got %s", c.DueSoonWindow))
	}
	return errors.Join(errs...)
}

// Rules возвращает правила выдачи, заданные конфигурацией.
func (c *Config) Rules() model.Rules {
	return model.Rules{
		LoanDays:      c.LoanDays,
		ExtensionDays: c.ExtensionDays,
		FinePerDay:    c.FinePerDay,
		ExtensionFee:  c.ExtensionFee,
	}
}
