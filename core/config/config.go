package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Queue      QueueConfig      `mapstructure:"queue"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // in minutes
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type QueueConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type StorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// InvalidRangePolicy decides what expanding a pattern over a window whose
// start is after its end does.
type InvalidRangePolicy string

const (
	// InvalidRangeEmpty returns no games and no error.
	InvalidRangeEmpty InvalidRangePolicy = "empty"
	// InvalidRangeReject fails with an invalid range error.
	InvalidRangeReject InvalidRangePolicy = "reject"
)

type SchedulingConfig struct {
	DayStartHour         int                `mapstructure:"day_start_hour"`
	DayEndHour           int                `mapstructure:"day_end_hour"`
	AbsentMeansAvailable bool               `mapstructure:"absent_means_available"`
	InvalidRangePolicy   InvalidRangePolicy `mapstructure:"invalid_range_policy"`
	AtomicExpansion      bool               `mapstructure:"atomic_expansion"`
	ExpandLockTTL        time.Duration      `mapstructure:"expand_lock_ttl"`
}

var (
	mu       sync.RWMutex
	instance *Config
)

// Load reads .env (if present), an optional config file and SCHEDULER_*
// environment variables, validates the result and stores it globally.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SCHEDULER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "scheduler")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("queue.concurrency", 5)

	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.use_path_style", false)

	v.SetDefault("scheduling.day_start_hour", 8)
	v.SetDefault("scheduling.day_end_hour", 22)
	v.SetDefault("scheduling.absent_means_available", true)
	v.SetDefault("scheduling.invalid_range_policy", string(InvalidRangeEmpty))
	v.SetDefault("scheduling.atomic_expansion", true)
	v.SetDefault("scheduling.expand_lock_ttl", 30*time.Second)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}

	s := c.Scheduling
	if s.DayStartHour < 0 || s.DayEndHour > 24 || s.DayStartHour >= s.DayEndHour {
		return fmt.Errorf("scheduling day hours %d-%d are invalid", s.DayStartHour, s.DayEndHour)
	}
	switch s.InvalidRangePolicy {
	case InvalidRangeEmpty, InvalidRangeReject:
	default:
		return fmt.Errorf("unknown scheduling.invalid_range_policy %q", s.InvalidRangePolicy)
	}
	if s.ExpandLockTTL <= 0 {
		return fmt.Errorf("scheduling.expand_lock_ttl must be positive")
	}

	if st := c.Storage; st.Bucket != "" && (st.AccessKeyID == "" || st.SecretAccessKey == "") {
		return fmt.Errorf("storage.access_key_id and storage.secret_access_key are required with storage.bucket")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Get returns the loaded config and panics if Load has not run.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
