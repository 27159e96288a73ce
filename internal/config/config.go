package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Tagline string `yaml:"tagline"`
	} `yaml:"app"`

	Server struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Env             string `yaml:"env"`
		Compression     bool   `yaml:"compression"`
		ShutdownTimeout int    `yaml:"shutdown_timeout"` // seconds
	} `yaml:"server"`

	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout int    `yaml:"timeout"` // seconds, 0 means no client timeout
	} `yaml:"api"`

	Session struct {
		Store      string `yaml:"store"` // memory, sqlite, redis
		CookieName string `yaml:"cookie_name"`
		TTL        int    `yaml:"ttl"` // minutes, used when the token carries no exp claim
		Secure     bool   `yaml:"secure"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"session"`

	Redis struct {
		Addr      string `yaml:"addr"`
		Password  string `yaml:"password"`
		DB        int    `yaml:"db"`
		KeyPrefix string `yaml:"key_prefix"`
	} `yaml:"redis"`

	Render struct {
		Pretty bool `yaml:"pretty"` // indent rendered HTML, development only
	} `yaml:"render"`
}

var AppConfig *Config

// LoadConfig loads the global configuration and stops the process on failure.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Config file %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("opening config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	var cfg Config

	cfg.App.Name = "CareConnect"
	cfg.App.Tagline = "Compassionate care, connected"

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 3000
	cfg.Server.Env = "development"
	cfg.Server.Compression = true
	cfg.Server.ShutdownTimeout = 10

	cfg.API.BaseURL = "http://localhost:8080/api"
	cfg.API.Timeout = 15

	cfg.Session.Store = "memory"
	cfg.Session.CookieName = "careconnect_session"
	cfg.Session.TTL = 24 * 60
	cfg.Session.SQLitePath = "data/sessions.db"

	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.KeyPrefix = "careconnect:session:"

	return &cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setBool(&cfg.Server.Compression, "SERVER_COMPRESSION")

	setString(&cfg.API.BaseURL, "API_BASE_URL")
	setInt(&cfg.API.Timeout, "API_TIMEOUT")

	setString(&cfg.Session.Store, "SESSION_STORE")
	setString(&cfg.Session.CookieName, "SESSION_COOKIE_NAME")
	setInt(&cfg.Session.TTL, "SESSION_TTL")
	setBool(&cfg.Session.Secure, "SESSION_SECURE")
	setString(&cfg.Session.SQLitePath, "SESSION_SQLITE_PATH")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setBool(&cfg.Render.Pretty, "RENDER_PRETTY")
}

// Validate checks the values that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	switch c.Session.Store {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("unknown session store %q", c.Session.Store)
	}
	if c.Session.CookieName == "" {
		return errors.New("session cookie_name must not be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl %d", c.Session.TTL)
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTL) * time.Minute
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
