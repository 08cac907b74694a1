package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Guardrail  GuardrailConfig  `mapstructure:"guardrail"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Host        string `mapstructure:"host"`
	SecretKey   string `mapstructure:"secret_key"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// ModerationConfig selects and tunes the AI moderation provider.
// Settings carries provider-specific options (decoded per provider).
type ModerationConfig struct {
	Provider    string                 `mapstructure:"provider"`
	Model       string                 `mapstructure:"model"`
	APIKey      string                 `mapstructure:"api_key"`
	Timeout     time.Duration          `mapstructure:"timeout"`
	MaxTokens   int                    `mapstructure:"max_tokens"`
	Temperature float64                `mapstructure:"temperature"`
	Settings    map[string]interface{} `mapstructure:"settings"`
}

type GuardrailConfig struct {
	KeywordCacheTTL time.Duration `mapstructure:"keyword_cache_ttl"`
	LogRawText      bool          `mapstructure:"log_raw_text"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return err
	}
	setDefaultValues()
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Moderation.Provider == "" {
		globalConfig.Moderation.Provider = "google"
	}
	if globalConfig.Moderation.Timeout <= 0 {
		globalConfig.Moderation.Timeout = 5 * time.Second
	}
	if globalConfig.Guardrail.KeywordCacheTTL <= 0 {
		globalConfig.Guardrail.KeywordCacheTTL = time.Minute
	}
}

func GetConfig() *Config {
	return &globalConfig
}
