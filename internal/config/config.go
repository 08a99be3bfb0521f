package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Public base URL, used to build the edit link mailed to submitters
	BaseURL string `mapstructure:"BASE_URL"`

	// Storage configuration
	StoreBackend string `mapstructure:"STORE_BACKEND"` // "file" or "sql"
	DataDir      string `mapstructure:"DATA_DIR"`
	UploadDir    string `mapstructure:"UPLOAD_DIR"`
	SQLitePath   string `mapstructure:"SQLITE_PATH"`

	// Admin gate configuration. The marker-file gate is always active; the
	// JWT gate is active only when a secret is configured.
	AdminJWTSecret string `mapstructure:"ADMIN_JWT_SECRET"`

	// Notification configuration
	SMTPHost        string `mapstructure:"SMTP_HOST"`
	SMTPPort        int    `mapstructure:"SMTP_PORT"`
	SMTPUser        string `mapstructure:"SMTP_USER"`
	SMTPPassword    string `mapstructure:"SMTP_PASSWORD"`
	MailFrom        string `mapstructure:"MAIL_FROM"`
	ModerationEmail string `mapstructure:"MODERATION_EMAIL"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7010")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BASE_URL", "http://localhost:7010")

	// Storage defaults
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("DATA_DIR", "data/testimonials")
	viper.SetDefault("UPLOAD_DIR", "data/logos")
	viper.SetDefault("SQLITE_PATH", "data/testimonials.db")

	// Admin gate defaults
	viper.SetDefault("ADMIN_JWT_SECRET", "")

	// Notification defaults
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 25)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("MAIL_FROM", "testimonials@example.com")
	viper.SetDefault("MODERATION_EMAIL", "moderation@example.com")
}

func validate(config *Config) error {
	switch config.StoreBackend {
	case "file", "sql":
	default:
		return fmt.Errorf("STORE_BACKEND must be \"file\" or \"sql\", got %q", config.StoreBackend)
	}

	if config.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}

	if config.StoreBackend == "sql" && config.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required for the sql backend")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
