package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "timesheets/*.csv", cfg.Sources.TimesheetGlob)
	assert.Equal(t, 5, cfg.Sources.PayrollHeaderRow)
	assert.InDelta(t, 60.0, cfg.Thresholds.ExcessiveWeeklyHours, 1e-9)
	assert.InDelta(t, 48.0, cfg.Thresholds.OvertimeWeeklyHours, 1e-9)
	assert.Equal(t, 5, cfg.Thresholds.InactiveWeeks)
	assert.InDelta(t, 2.0, cfg.Reconciliation.ToleranceHours, 1e-9)
	assert.Equal(t, []float64{1, 2, 5, 10, 20}, cfg.Reconciliation.ToleranceLadder)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.CacheTTL)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reconciler.yaml")
	content := []byte(`
sources:
  timesheet_glob: "exports/week-*.csv"
  payroll_weeks: 9
thresholds:
  excessive_weekly_hours: 70
reconciliation:
  tolerance_hours: 5
server:
  port: 9090
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	assert.NoError(t, err)

	assert.Equal(t, "exports/week-*.csv", cfg.Sources.TimesheetGlob)
	assert.Equal(t, 9, cfg.Sources.PayrollWeeks)
	assert.InDelta(t, 70.0, cfg.Thresholds.ExcessiveWeeklyHours, 1e-9)
	assert.InDelta(t, 5.0, cfg.Reconciliation.ToleranceHours, 1e-9)
	assert.Equal(t, 9090, cfg.Server.Port)

	// Untouched keys keep their defaults.
	assert.Equal(t, 5, cfg.Sources.PayrollHeaderRow)
	assert.InDelta(t, 48.0, cfg.Thresholds.OvertimeWeeklyHours, 1e-9)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load("/nonexistent/reconciler.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name: "overtime at or above excessive",
			mutate: func(c *Config) {
				c.Thresholds.OvertimeWeeklyHours = c.Thresholds.ExcessiveWeeklyHours
			},
		},
		{
			name:   "inactive weeks below one",
			mutate: func(c *Config) { c.Thresholds.InactiveWeeks = 0 },
		},
		{
			name:   "period span ratio not above one",
			mutate: func(c *Config) { c.Thresholds.PeriodSpanRatio = 1 },
		},
		{
			name: "severity tiers not increasing",
			mutate: func(c *Config) {
				c.Reconciliation.SeverityTiers = SeverityTiers{Low: 5, Medium: 5, High: 20}
			},
		},
		{
			name:   "empty tolerance ladder",
			mutate: func(c *Config) { c.Reconciliation.ToleranceLadder = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
