package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	QuestionsFile        string        `mapstructure:"QUESTIONS_FILE"`
	AnswersFile          string        `mapstructure:"ANSWERS_FILE"`
	PatternsFile         string        `mapstructure:"PATTERNS_FILE"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	ConsoleMode          bool          `mapstructure:"CONSOLE_MODE"`
	WebPort              int           `mapstructure:"WEB_PORT"`
	PostgresDSN          string        `mapstructure:"POSTGRES_DSN"`
	ReplyCacheSize       int           `mapstructure:"REPLY_CACHE_SIZE"`
	UtteranceTimeout     time.Duration `mapstructure:"UTTERANCE_TIMEOUT_SECONDS"`
	RateLimitPerMin      int           `mapstructure:"RATE_LIMIT_MESSAGES_PER_MIN"`
	RateLimitBurstSize   int           `mapstructure:"RATE_LIMIT_BURST_SIZE"`
	RateLimitCleanupMins int           `mapstructure:"RATE_LIMIT_CLEANUP_MINS"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // For running locally
	viper.AddConfigPath("../")      // For running from docker subdir
	viper.AddConfigPath("./config") // Common config folder
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("QUESTIONS_FILE", "data/questions.txt")
	viper.SetDefault("ANSWERS_FILE", "data/answers.txt")
	viper.SetDefault("PATTERNS_FILE", "data/patterns.txt")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CONSOLE_MODE", false)
	viper.SetDefault("WEB_PORT", 8090)
	viper.SetDefault("POSTGRES_DSN", "")
	viper.SetDefault("REPLY_CACHE_SIZE", 256)
	viper.SetDefault("UTTERANCE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("RATE_LIMIT_MESSAGES_PER_MIN", 20)
	viper.SetDefault("RATE_LIMIT_BURST_SIZE", 5)
	viper.SetDefault("RATE_LIMIT_CLEANUP_MINS", 30)

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			// Fallback if logger not available (should not happen in practice)
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Convert seconds to proper time.Duration
	config.UtteranceTimeout = config.UtteranceTimeout * time.Second

	return &config
}
