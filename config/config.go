package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the server needs to run.
type Config struct {
	Addr      string `mapstructure:"addr"`
	DBPath    string `mapstructure:"db_path"`
	StaticDir string `mapstructure:"static_dir"`
	UploadDir string `mapstructure:"upload_dir"`

	SiteURL        string `mapstructure:"site_url"`
	AdminURL       string `mapstructure:"admin_url"`
	ModeratorEmail string `mapstructure:"moderator_email"`
	StaffEmail     string `mapstructure:"staff_email"`

	SMTPAddr string `mapstructure:"smtp_addr"`
	SMTPFrom string `mapstructure:"smtp_from"`
	SMTPUser string `mapstructure:"smtp_user"`
	SMTPPass string `mapstructure:"smtp_pass"`

	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

// Load reads config.yaml from the working directory, overlaid with
// DRIFTWOOD_* environment variables. A missing file is fine; the
// defaults run a local development server.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("driftwood")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "data/badger")
	v.SetDefault("static_dir", "static")
	v.SetDefault("upload_dir", "data/uploads")
	v.SetDefault("site_url", "http://localhost:8080")
	v.SetDefault("admin_url", "http://localhost:8080/admin")
	v.SetDefault("moderator_email", "moderator@localhost")
	v.SetDefault("staff_email", "frontdesk@localhost")
	v.SetDefault("smtp_addr", "localhost:25")
	v.SetDefault("smtp_from", "noreply@localhost")
	v.SetDefault("rate_limit", 5)
	v.SetDefault("rate_limit_window", time.Hour)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
