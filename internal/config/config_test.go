package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		runAddress       string
		authSecret       string
		loanDays         int
		extensionDays    int
		finePerDay       string
		extensionFee     string
		reminderInterval time.Duration
		dueSoonWindow    time.Duration
	}

	defaults := want{
		runAddress:    "localhost:8080",
		loanDays:      14,
		extensionDays: 7,
		finePerDay:    "0.5",
		extensionFee:  "2.5",
		dueSoonWindow: 48 * time.Hour,
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want:  defaults,
		},
		{
			name: "env only",
			env: map[string]string{
				"RUN_ADDRESS":       "localhost:9999",
				"AUTH_SECRET":       "env-secret",
				"LOAN_DAYS":         "21",
				"FINE_PER_DAY":      "0.25",
				"REMINDER_INTERVAL": "1h",
			},
			flags: []string{},
			want: want{
				runAddress:       "localhost:9999",
				authSecret:       "env-secret",
				loanDays:         21,
				extensionDays:    7,
				finePerDay:       "0.25",
				extensionFee:     "2.5",
				reminderInterval: time.Hour,
				dueSoonWindow:    48 * time.Hour,
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-a", "localhost:7777",
				"-s", "flag-secret",
				"-extension-days", "10",
				"-extension-fee", "3.75",
				"-due-soon", "24h",
			},
			want: want{
				runAddress:    "localhost:7777",
				authSecret:    "flag-secret",
				loanDays:      14,
				extensionDays: 10,
				finePerDay:    "0.5",
				extensionFee:  "3.75",
				dueSoonWindow: 24 * time.Hour,
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"RUN_ADDRESS": "env:9000",
				"LOAN_DAYS":   "30",
			},
			flags: []string{
				"-a", "flag:8000",
				"-loan-days", "10",
			},
			want: want{
				runAddress:    "env:9000",
				loanDays:      30,
				extensionDays: 7,
				finePerDay:    "0.5",
				extensionFee:  "2.5",
				dueSoonWindow: 48 * time.Hour,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append([]string{"test"}, tt.flags...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.runAddress, cfg.RunAddress)
			assert.Equal(t, tt.want.authSecret, cfg.AuthSecret)
			assert.Equal(t, tt.want.loanDays, cfg.LoanDays)
			assert.Equal(t, tt.want.extensionDays, cfg.ExtensionDays)
			assert.True(t, decimal.RequireFromString(tt.want.finePerDay).Equal(cfg.FinePerDay), "fine per day = %s", cfg.FinePerDay)
			assert.True(t, decimal.RequireFromString(tt.want.extensionFee).Equal(cfg.ExtensionFee), "extension fee = %s", cfg.ExtensionFee)
			assert.Equal(t, tt.want.reminderInterval, cfg.ReminderInterval)
			assert.Equal(t, tt.want.dueSoonWindow, cfg.DueSoonWindow)
		})
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	t.Setenv("LOAN_DAYS", "0")
	t.Setenv("EXTENSION_FEE", "-1")
	os.Args = []string{"test"}

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loan days")
	assert.Contains(t, err.Error(), "extension fee")
}

func TestParseConfig_NegativeDurations(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	t.Setenv("REMINDER_INTERVAL", "-1m")
	os.Args = []string{"test", "-due-soon", "-1h"}

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reminder interval")
	assert.Contains(t, err.Error(), "due soon window")
}

func TestConfig_Rules(t *testing.T) {
	cfg := &Config{
		LoanDays:      21,
		ExtensionDays: 5,
		FinePerDay:    decimal.RequireFromString("1"),
		ExtensionFee:  decimal.RequireFromString("4"),
	}

	rules := cfg.Rules()

	assert.Equal(t, 21, rules.LoanDays)
	assert.Equal(t, 5, rules.ExtensionDays)
	assert.True(t, decimal.NewFromInt(1).Equal(rules.FinePerDay))
	assert.True(t, decimal.NewFromInt(4).Equal(rules.ExtensionFee))
}
