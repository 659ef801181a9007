// Package config loads and validates service configuration.
package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cards    CardsConfig    `mapstructure:"cards"`
	Import   ImportConfig   `mapstructure:"import"`
}

type ServerConfig struct {
	Port     int        `mapstructure:"port" validate:"gte=1,lte=65535"`
	APIToken string     `mapstructure:"api_token"`
	CORS     CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig locates the dictionary store. The store is a single
// SQLite file, opened per request rather than pooled.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// CardsConfig locates the append-only card log file.
type CardsConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type ImportConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/localdict")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.api_token", "")
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("database.path", "dictionary.db")
	v.SetDefault("cards.path", "cards_store.jsonl")
	v.SetDefault("import.csv_path", "dict_csv/dict.csv")

	// The companion client configures the service through environment
	// variables only, so every path-level key has an env override.
	if err := v.BindEnv("database.path", "DICT_DB_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind DICT_DB_PATH environment variable: %w", err)
	}
	if err := v.BindEnv("server.api_token", "LOCAL_API_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind LOCAL_API_TOKEN environment variable: %w", err)
	}
	if err := v.BindEnv("cards.path", "CARDS_STORE"); err != nil {
		return nil, fmt.Errorf("failed to bind CARDS_STORE environment variable: %w", err)
	}
	if err := v.BindEnv("import.csv_path", "DICT_CSV"); err != nil {
		return nil, fmt.Errorf("failed to bind DICT_CSV environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
