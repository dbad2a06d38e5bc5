package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "HABITMIND_CONFIG"

// Built-in secrets for local development. Release mode refuses them.
const (
	defaultSessionSecret = "default-secret-key-change-me"
	defaultJWTSecret     = "default-jwt-secret-change-me"
)

type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Session  Session  `toml:"session"`
	Auth     Auth     `toml:"auth"`
	AI       AI       `toml:"ai"`
	Storage  Storage  `toml:"storage"`
	Log      Log      `toml:"log"`
	Habits   Habits   `toml:"habits"`
}

type Server struct {
	Addr    string `toml:"addr"`
	GinMode string `toml:"gin-mode"`
}

type Database struct {
	// Driver is one of mysql, postgres, sqlite or mongo.
	Driver     string `toml:"driver"`
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	User       string `toml:"user"`
	Password   string `toml:"password"`
	Name       string `toml:"name"`
	SQLitePath string `toml:"sqlite-path"`
	MongoURI   string `toml:"mongo-uri"`
}

type Session struct {
	// Store is either redis or cookie.
	Store     string `toml:"store"`
	RedisHost string `toml:"redis-host"`
	RedisPort string `toml:"redis-port"`
	Secret    string `toml:"secret"`
}

type Auth struct {
	JWTSecret string        `toml:"jwt-secret"`
	TokenTTL  time.Duration `toml:"token-ttl"`
}

type AI struct {
	APIKey  string `toml:"api-key"`
	BaseURL string `toml:"base-url"`
	Model   string `toml:"model"`
}

type Storage struct {
	S3Region    string `toml:"s3-region"`
	S3Endpoint  string `toml:"s3-endpoint"`
	S3AccessKey string `toml:"s3-access-key"`
	S3SecretKey string `toml:"s3-secret-key"`
	S3Bucket    string `toml:"s3-bucket"`
}

type Log struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max-size-mb"`
}

type Habits struct {
	// Timezone is the IANA zone used to decide calendar days.
	Timezone string `toml:"timezone"`
}

// Default returns the configuration used when neither a file nor the
// environment provides a value.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:    ":8080",
			GinMode: "debug",
		},
		Database: Database{
			Driver:     "mysql",
			Host:       "localhost",
			Port:       "3306",
			User:       "habituser",
			Password:   "habitpassword",
			Name:       "habitmind",
			SQLitePath: "habitmind.db",
			MongoURI:   "mongodb://localhost:27017",
		},
		Session: Session{
			Store:     "redis",
			RedisHost: "localhost",
			RedisPort: "6379",
			Secret:    defaultSessionSecret,
		},
		Auth: Auth{
			JWTSecret: defaultJWTSecret,
			TokenTTL:  24 * time.Hour,
		},
		AI: AI{
			Model: "gpt-4o-mini",
		},
		Storage: Storage{
			S3Region: "us-east-1",
		},
		Log: Log{
			Level:     "info",
			MaxSizeMB: 10,
		},
		Habits: Habits{
			Timezone: "UTC",
		},
	}
}

// Load reads the optional TOML file at path (falling back to
// $HABITMIND_CONFIG) and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.Addr = getEnv("SERVER_ADDR", cfg.Server.Addr)
	cfg.Server.GinMode = getEnv("GIN_MODE", cfg.Server.GinMode)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SQLitePath = getEnv("SQLITE_PATH", cfg.Database.SQLitePath)
	cfg.Database.MongoURI = getEnv("MONGO_URI", cfg.Database.MongoURI)

	cfg.Session.Store = getEnv("SESSION_STORE", cfg.Session.Store)
	cfg.Session.RedisHost = getEnv("REDIS_HOST", cfg.Session.RedisHost)
	cfg.Session.RedisPort = getEnv("REDIS_PORT", cfg.Session.RedisPort)
	cfg.Session.Secret = getEnv("SESSION_SECRET", cfg.Session.Secret)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	if v := os.Getenv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse JWT_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = ttl
	}

	cfg.AI.APIKey = getEnv("OPENAI_API_KEY", cfg.AI.APIKey)
	cfg.AI.BaseURL = getEnv("OPENAI_BASE_URL", cfg.AI.BaseURL)
	cfg.AI.Model = getEnv("OPENAI_MODEL", cfg.AI.Model)

	cfg.Storage.S3Region = getEnv("S3_REGION", cfg.Storage.S3Region)
	cfg.Storage.S3Endpoint = getEnv("S3_ENDPOINT", cfg.Storage.S3Endpoint)
	cfg.Storage.S3AccessKey = getEnv("S3_ACCESS_KEY", cfg.Storage.S3AccessKey)
	cfg.Storage.S3SecretKey = getEnv("S3_SECRET_KEY", cfg.Storage.S3SecretKey)
	cfg.Storage.S3Bucket = getEnv("S3_BUCKET", cfg.Storage.S3Bucket)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	if v := os.Getenv("LOG_MAX_SIZE_MB"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse LOG_MAX_SIZE_MB: %w", err)
		}
		cfg.Log.MaxSizeMB = size
	}

	cfg.Habits.Timezone = getEnv("HABIT_TIMEZONE", cfg.Habits.Timezone)
	return nil
}

// Validate checks enumerated settings and, in release mode, that the
// built-in secrets were replaced.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "mysql", "postgres", "sqlite", "mongo":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch strings.ToLower(c.Session.Store) {
	case "redis", "cookie":
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.IsProduction() {
		if c.Session.Secret == "" || c.Session.Secret == defaultSessionSecret {
			return fmt.Errorf("SESSION_SECRET must be set in release mode")
		}
		if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in release mode")
		}
	}
	return nil
}

// Location resolves the configured habit timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Habits.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Habits.Timezone, err)
	}
	return loc, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Server.GinMode == "release"
}

// StorageEnabled reports whether avatar uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c.Storage.S3Bucket != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
