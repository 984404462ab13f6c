package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/meridian-systems/accountpulse/internal/alerting"
	"github.com/meridian-systems/accountpulse/internal/health"
	"github.com/meridian-systems/accountpulse/internal/integration"
)

// Config is the top-level accountpulse configuration.
type Config struct {
	DataDir         string               `mapstructure:"data_dir"`
	Server          Server               `mapstructure:"server"`
	Cache           Cache                `mapstructure:"cache"`
	Weights         health.Weights       `mapstructure:"weights"`
	Thresholds      alerting.Thresholds  `mapstructure:"thresholds"`
	LifecycleScores map[string]float64   `mapstructure:"lifecycle_scores"`
	Portfolio       Portfolio            `mapstructure:"portfolio"`
	Output          Output               `mapstructure:"output"`
}

// Server defines the HTTP API settings.
type Server struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Cache defines the Redis score-cache settings.
type Cache struct {
	RedisAddr       string        `mapstructure:"redis_addr"`
	ScoreTTL        time.Duration `mapstructure:"score_ttl"`
	AlertSummaryTTL time.Duration `mapstructure:"alert_summary_ttl"`
}

// Portfolio defines portfolio evaluation settings.
type Portfolio struct {
	Concurrency int `mapstructure:"concurrency"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Stages returns the configured lifecycle-stage table.
func (c *Config) Stages() integration.LifecycleScores {
	if len(c.LifecycleScores) == 0 {
		return integration.DefaultLifecycleScores
	}
	return integration.LifecycleScores(c.LifecycleScores)
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("data_dir", DefaultConfigDir)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("cache.redis_addr", DefaultRedisAddr)
	v.SetDefault("cache.score_ttl", DefaultScoreTTL)
	v.SetDefault("cache.alert_summary_ttl", DefaultAlertSummaryTTL)
	v.SetDefault("weights.feedback", health.DefaultWeights.Feedback)
	v.SetDefault("weights.sentiment", health.DefaultWeights.Sentiment)
	v.SetDefault("weights.ticket_volume", health.DefaultWeights.TicketVolume)
	v.SetDefault("weights.product_usage", health.DefaultWeights.ProductUsage)
	v.SetDefault("weights.renewal", health.DefaultWeights.Renewal)
	v.SetDefault("weights.social", health.DefaultWeights.Social)
	v.SetDefault("weights.integration", health.DefaultWeights.Integration)
	v.SetDefault("thresholds.negative_feedback_count", alerting.BaseThresholds.NegativeFeedbackCount)
	v.SetDefault("thresholds.negative_feedback_window_days", alerting.BaseThresholds.NegativeFeedbackWindowDays)
	v.SetDefault("thresholds.low_engagement_days", alerting.BaseThresholds.LowEngagementDays)
	v.SetDefault("thresholds.critical_issues", alerting.BaseThresholds.CriticalIssues)
	v.SetDefault("thresholds.urgent_tickets", alerting.BaseThresholds.UrgentTickets)
	v.SetDefault("thresholds.health_decline", alerting.BaseThresholds.HealthDecline)
	v.SetDefault("thresholds.sales_inactivity_days", alerting.BaseThresholds.SalesInactivityDays)
	v.SetDefault("thresholds.adoption_inactivity_days", alerting.BaseThresholds.AdoptionInactivityDays)
	v.SetDefault("thresholds.high_value_arr", alerting.BaseThresholds.HighValueARR)
	v.SetDefault("portfolio.concurrency", DefaultConcurrency)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Apply lifecycle defaults if none configured.
	if len(cfg.LifecycleScores) == 0 {
		cfg.LifecycleScores = map[string]float64(integration.DefaultLifecycleScores)
	}

	cfg.DataDir = expandPath(cfg.DataDir)

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
