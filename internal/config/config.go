// Package config loads the reconciler configuration: source locations,
// classifier thresholds, tolerance ladder and server settings. Values come
// from an optional YAML file, RECONCILER_* environment variables and flag
// bindings, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sources locates the two raw exports.
type Sources struct {
	// TimesheetGlob matches the weekly timesheet CSV exports. Filenames are
	// expected to carry a "-YYYY-WNN" marker for the period.
	TimesheetGlob string `mapstructure:"timesheet_glob"`

	// PayrollFile is the payroll Excel export.
	PayrollFile string `mapstructure:"payroll_file"`

	// PayrollSheet is the worksheet holding the employee hours table.
	PayrollSheet string `mapstructure:"payroll_sheet"`

	// PayrollHeaderRow is the 1-based row carrying the category labels.
	PayrollHeaderRow int `mapstructure:"payroll_header_row"`

	// PayrollWeeks is the number of weeks the payroll export declares it
	// covers, used for the time-period mismatch check.
	PayrollWeeks int `mapstructure:"payroll_weeks"`
}

// Thresholds parameterise the anomaly classifier. None of these are
// hardcoded at the call sites.
type Thresholds struct {
	ExcessiveWeeklyHours float64 `mapstructure:"excessive_weekly_hours"`
	OvertimeWeeklyHours  float64 `mapstructure:"overtime_weekly_hours"`
	InactiveWeeks        int     `mapstructure:"inactive_weeks"`
	PeriodSpanRatio      float64 `mapstructure:"period_span_ratio"`
}

// SeverityTiers grade a matched employee's |total difference| in hours.
// At or below Low the difference is not a mismatch at all.
type SeverityTiers struct {
	Low    float64 `mapstructure:"low"`
	Medium float64 `mapstructure:"medium"`
	High   float64 `mapstructure:"high"`
}

// Reconciliation holds the engine parameters.
type Reconciliation struct {
	// ToleranceHours is the default tau below which a difference is a
	// non-issue for mismatch flagging.
	ToleranceHours float64 `mapstructure:"tolerance_hours"`

	// ToleranceLadder is the fixed set of tau values the match rate is
	// reported for, to support tolerance-sensitivity reporting.
	ToleranceLadder []float64 `mapstructure:"tolerance_ladder"`

	SeverityTiers SeverityTiers `mapstructure:"severity_tiers"`
}

// Log configures the zerolog output.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Server configures the result API.
type Server struct {
	Port int `mapstructure:"port"`

	// CacheTTL bounds how often the pipeline is recomputed for API callers.
	// The core itself is a pure function; this memoization is owned here, at
	// the call boundary.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Export configures where run results are written.
type Export struct {
	Dir string `mapstructure:"dir"`
}

// Config is the full reconciler configuration.
type Config struct {
	Sources        Sources        `mapstructure:"sources"`
	Thresholds     Thresholds     `mapstructure:"thresholds"`
	Reconciliation Reconciliation `mapstructure:"reconciliation"`
	Log            Log            `mapstructure:"log"`
	Server         Server         `mapstructure:"server"`
	Export         Export         `mapstructure:"export"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sources.timesheet_glob", "timesheets/*.csv")
	v.SetDefault("sources.payroll_file", "payroll.xlsx")
	v.SetDefault("sources.payroll_sheet", "Employee Hours")
	v.SetDefault("sources.payroll_header_row", 5)
	v.SetDefault("sources.payroll_weeks", 0)

	v.SetDefault("thresholds.excessive_weekly_hours", 60.0)
	v.SetDefault("thresholds.overtime_weekly_hours", 48.0)
	v.SetDefault("thresholds.inactive_weeks", 5)
	v.SetDefault("thresholds.period_span_ratio", 1.5)

	v.SetDefault("reconciliation.tolerance_hours", 2.0)
	v.SetDefault("reconciliation.tolerance_ladder", []float64{1, 2, 5, 10, 20})
	v.SetDefault("reconciliation.severity_tiers.low", 2.0)
	v.SetDefault("reconciliation.severity_tiers.medium", 5.0)
	v.SetDefault("reconciliation.severity_tiers.high", 20.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cache_ttl", 5*time.Minute)

	v.SetDefault("export.dir", ".")
}

// Load reads the configuration. path may be empty, in which case
// reconciler.yaml is looked up in the working directory and defaults apply
// when no file exists at all.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RECONCILER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("reconciler")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching the filesystem.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Thresholds.OvertimeWeeklyHours >= c.Thresholds.ExcessiveWeeklyHours {
		return fmt.Errorf("overtime threshold %.1f must be below excessive threshold %.1f",
			c.Thresholds.OvertimeWeeklyHours, c.Thresholds.ExcessiveWeeklyHours)
	}
	if c.Thresholds.InactiveWeeks < 1 {
		return fmt.Errorf("inactive_weeks must be at least 1, got %d", c.Thresholds.InactiveWeeks)
	}
	if c.Thresholds.PeriodSpanRatio <= 1 {
		return fmt.Errorf("period_span_ratio must exceed 1, got %g", c.Thresholds.PeriodSpanRatio)
	}
	t := c.Reconciliation.SeverityTiers
	if !(t.Low < t.Medium && t.Medium < t.High) {
		return fmt.Errorf("severity tiers must be strictly increasing, got %g/%g/%g", t.Low, t.Medium, t.High)
	}
	if len(c.Reconciliation.ToleranceLadder) == 0 {
		return fmt.Errorf("tolerance_ladder must not be empty")
	}
	return nil
}
