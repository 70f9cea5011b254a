package config

import (
	"errors"
	"strings"
	"time"

	"alcyxob/fitness-tracker/internal/progress"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Progress ProgressConfig `mapstructure:"progress"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// LockTimeout bounds how long a write waits for the per-day lock.
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// RedisConfig enables the distributed write lock and the rate limiter.
// With Enabled=false writes are serialized per process only.
type RedisConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Addr            string        `mapstructure:"addr"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	LockTTL         time.Duration `mapstructure:"lock_ttl"`
	RateLimitPerMin int           `mapstructure:"rate_limit_per_min"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	File     string `mapstructure:"file"`
	ToStdout bool   `mapstructure:"to_stdout"`
	JSON     bool   `mapstructure:"json"`
}

type CacheConfig struct {
	SizeMB int           `mapstructure:"size_mb"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// ProgressConfig tunes streaks, the recovery model and the intensity classifier.
// Map keys may use any muscle group synonym ("core", "quads", ...).
type ProgressConfig struct {
	DefaultWeeklyTarget int                                     `mapstructure:"default_weekly_target"`
	DefaultRecoveryDays int                                     `mapstructure:"default_recovery_days"`
	PriorityExtraDays   int                                     `mapstructure:"priority_extra_days"`
	IntensityWindowDays int                                     `mapstructure:"intensity_window_days"`
	LookbackDays        int                                     `mapstructure:"lookback_days"`
	DefaultTopN         int                                     `mapstructure:"default_top_n"`
	RecoveryDays        map[string]int                          `mapstructure:"recovery_days"`
	IntensityThresholds map[string]progress.IntensityThresholds `mapstructure:"intensity_thresholds"`
	FallbackThresholds  progress.IntensityThresholds            `mapstructure:"fallback_thresholds"`
}

// RecoveryConfig builds the ranker configuration: built-in table plus overrides.
func (p ProgressConfig) RecoveryConfig() progress.RecoveryConfig {
	cfg := progress.DefaultRecoveryConfig()
	if p.DefaultRecoveryDays > 0 {
		cfg.DefaultRecoveryDays = p.DefaultRecoveryDays
	}
	if p.PriorityExtraDays >= 0 {
		cfg.PriorityExtraDays = p.PriorityExtraDays
	}
	for group, days := range p.RecoveryDays {
		if days > 0 {
			cfg.Table[progress.NormalizeMuscleGroup(group)] = days
		}
	}
	return cfg
}

// ClassifierConfig builds the intensity classifier configuration: built-in table plus overrides.
func (p ProgressConfig) ClassifierConfig() progress.ClassifierConfig {
	cfg := progress.DefaultClassifierConfig()
	if p.IntensityWindowDays > 0 {
		cfg.WindowDays = p.IntensityWindowDays
	}
	for group, th := range p.IntensityThresholds {
		cfg.Thresholds[progress.NormalizeMuscleGroup(group)] = th
	}
	if p.FallbackThresholds.Medium > 0 || p.FallbackThresholds.High > 0 {
		cfg.Fallback = p.FallbackThresholds
	}
	return cfg
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.lock_timeout", "5s")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness_tracker_default")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl", "10s")
	v.SetDefault("redis.rate_limit_per_min", 120)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.to_stdout", true)
	v.SetDefault("log.json", false)
	v.SetDefault("cache.size_mb", 16)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("progress.default_weekly_target", 3)
	v.SetDefault("progress.default_recovery_days", progress.DefaultRecoveryDays)
	v.SetDefault("progress.priority_extra_days", progress.DefaultPriorityExtraDays)
	v.SetDefault("progress.intensity_window_days", progress.DefaultWindowDays)
	v.SetDefault("progress.lookback_days", 90)
	v.SetDefault("progress.default_top_n", 3)
	v.SetDefault("progress.fallback_thresholds.medium", progress.DefaultFallbackThresholds.Medium)
	v.SetDefault("progress.fallback_thresholds.high", progress.DefaultFallbackThresholds.High)

	// A missing config file is fine, defaults and env vars still apply.
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, err
	}
	return config, nil
}
