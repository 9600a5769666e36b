package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DotEnvFile is loaded from the working directory before anything else.
const DotEnvFile = ".env"

// Config defines application configuration.
type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Stream    StreamConfig    `yaml:"stream"`
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
}

type BackendConfig struct {
	BaseURL    string `yaml:"base_url"`
	RunPath    string `yaml:"run_path"`
	HealthPath string `yaml:"health_path"`
}

// StreamConfig bounds runs. Zero disables a limit.
type StreamConfig struct {
	ChunkTimeout time.Duration `yaml:"chunk_timeout"`
	RunTimeout   time.Duration `yaml:"run_timeout"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// DBConfig locates the activity journal. An empty path keeps it in memory.
type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:    "http://localhost:8000",
			RunPath:    "/api/run",
			HealthPath: "/api/health",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in that order. A .env file in the working directory seeds the
// environment without overriding variables that are already set.
func Load() (Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := Default()

	if path := os.Getenv("OPSDECK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("OPSDECK_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("OPSDECK_RUN_PATH"); v != "" {
		cfg.Backend.RunPath = v
	}
	if v := os.Getenv("OPSDECK_HEALTH_PATH"); v != "" {
		cfg.Backend.HealthPath = v
	}
	if err := envDuration("OPSDECK_CHUNK_TIMEOUT", &cfg.Stream.ChunkTimeout); err != nil {
		return Config{}, err
	}
	if err := envDuration("OPSDECK_RUN_TIMEOUT", &cfg.Stream.RunTimeout); err != nil {
		return Config{}, err
	}
	if host := os.Getenv("OPSDECK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("OPSDECK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OPSDECK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("OPSDECK_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath, ok := os.LookupEnv("OPSDECK_DB_PATH"); ok {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("OPSDECK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot fix up.
func (c Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend.base_url %q: want an http(s) URL", c.Backend.BaseURL)
	}
	if c.Stream.ChunkTimeout < 0 || c.Stream.RunTimeout < 0 {
		return errors.New("stream timeouts must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport.mode %q: want stdio or http", c.Transport.Mode)
	}
	return nil
}

// Addr returns the host:port the HTTP servers listen on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
