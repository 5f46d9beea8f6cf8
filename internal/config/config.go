package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// DefaultInstitution is printed when no institution is configured
const DefaultInstitution = "FB Mathematik/Informatik, Institut für Informatik"

// Config represents application configuration
type Config struct {
	Report   ReportConfig   `mapstructure:"report"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	PDF      PDFConfig      `mapstructure:"pdf"`
	Log      LogConfig      `mapstructure:"log"`
}

// ReportConfig represents report layout and distribution settings
type ReportConfig struct {
	Institution    string `mapstructure:"institution"`
	MinHoursPerDay int    `mapstructure:"min_hours_per_day"`
	BeginHour      int    `mapstructure:"begin_hour"`
	PauseThreshold int    `mapstructure:"pause_threshold"` // hours above this get a one hour pause
	Note           string `mapstructure:"note"`            // "day", "generated" or "none"
	Format         string `mapstructure:"format"`          // "pdf", "html" or "xlsx"
	OutputDir      string `mapstructure:"output_dir"`
	Signature      string `mapstructure:"signature"`
	Logo           string `mapstructure:"logo"`
	Seed           int64  `mapstructure:"seed"` // 0 = random
}

// CalendarConfig represents holiday calendar configuration
type CalendarConfig struct {
	Source    string `mapstructure:"source"` // "builtin" or "api"
	Region    string `mapstructure:"region"` // German state code, e.g. NI
	APIURL    string `mapstructure:"api_url"`
	CacheTTL  string `mapstructure:"cache_ttl"`
	ExtraFile string `mapstructure:"extra_file"` // additional closing days, one YYYY-MM-DD per line
}

// PDFConfig represents converter configuration
type PDFConfig struct {
	Binary string `mapstructure:"binary"` // empty = look up wkhtmltopdf in PATH
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("report.institution", DefaultInstitution)
	v.SetDefault("report.min_hours_per_day", 4)
	v.SetDefault("report.begin_hour", 8)
	v.SetDefault("report.pause_threshold", 4)
	v.SetDefault("report.note", "day")
	v.SetDefault("report.format", "pdf")
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.signature", "")
	v.SetDefault("report.logo", "")
	v.SetDefault("report.seed", 0)

	v.SetDefault("calendar.source", "builtin")
	v.SetDefault("calendar.region", "NI")
	v.SetDefault("calendar.api_url", "https://feiertage-api.de/api/")
	v.SetDefault("calendar.cache_ttl", "24h")
	v.SetDefault("calendar.extra_file", "")

	v.SetDefault("pdf.binary", "")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "warn")
}

// Load loads configuration from file and environment. An explicit
// configPath must exist; without one the search paths are optional.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workhour-report")
		v.AddConfigPath("/etc/workhour-report")
	}

	// Read environment variables, e.g. WORKHOUR_CALENDAR_REGION
	v.SetEnvPrefix("WORKHOUR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Report config
	if c.Report.MinHoursPerDay <= 0 {
		return fmt.Errorf("report.min_hours_per_day must be positive")
	}
	if c.Report.BeginHour < 0 || c.Report.BeginHour > 23 {
		return fmt.Errorf("report.begin_hour must be between 0 and 23")
	}
	if c.Report.PauseThreshold < 0 {
		return fmt.Errorf("report.pause_threshold must not be negative")
	}
	if end := c.Report.LatestEnd(); end > 24 {
		return fmt.Errorf("report.begin_hour %d with report.min_hours_per_day %d ends at %02d:00, past midnight",
			c.Report.BeginHour, c.Report.MinHoursPerDay, end)
	}
	switch c.Report.Note {
	case "", "day", "generated", "none":
	default:
		return fmt.Errorf("report.note must be 'day', 'generated' or 'none', got '%s'", c.Report.Note)
	}
	switch strings.ToLower(c.Report.Format) {
	case "", "pdf", "html", "xlsx":
	default:
		return fmt.Errorf("report.format must be 'pdf', 'html' or 'xlsx', got '%s'", c.Report.Format)
	}

	// Validate Calendar config
	switch c.Calendar.Source {
	case "", "builtin":
	case "api":
		if c.Calendar.APIURL == "" {
			return fmt.Errorf("calendar.api_url is required for api source")
		}
	default:
		return fmt.Errorf("calendar.source must be 'builtin' or 'api', got '%s'", c.Calendar.Source)
	}
	if c.Calendar.Region == "" {
		return fmt.Errorf("calendar.region is required")
	}

	// Validate Log config
	if c.Log.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}

// LatestEnd returns the end hour of the longest booked day. No day carries
// more than the minimum, and only days above the pause threshold get a pause.
func (r *ReportConfig) LatestEnd() int {
	end := r.BeginHour + r.MinHoursPerDay
	if r.MinHoursPerDay > r.PauseThreshold {
		end++
	}
	return end
}

// GetCacheTTL returns cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// ExpandEnvVars expands environment variables in path settings
func (c *Config) ExpandEnvVars() {
	c.Report.OutputDir = os.ExpandEnv(c.Report.OutputDir)
	c.Report.Signature = os.ExpandEnv(c.Report.Signature)
	c.Report.Logo = os.ExpandEnv(c.Report.Logo)
	c.Calendar.ExtraFile = os.ExpandEnv(c.Calendar.ExtraFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
