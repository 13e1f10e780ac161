// Package config carga la configuración del servicio desde YAML + variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "PEDIGREE"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Directory DirectoryConfig
	Log       LogConfig
	Pedigree  PedigreeConfig
	COI       COIConfig
	Links     LinksConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN     string
	Migrate bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type AuthConfig struct {
	// Mode: dev (header X-Debug-Tenant-ID), jwt (HS256 local) u odin (IAM remoto).
	Mode        string
	JWTSecret   string
	JWTIssuer   string
	OdinBaseURL string
	OdinAPIKey  string
}

type DirectoryConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	App    string
}

type PedigreeConfig struct {
	DefaultGenerations int
	MaxGenerations     int
	FanOut             int64
	ReadRetries        uint64
	ReadRetryInterval  time.Duration
}

type COIConfig struct {
	// Umbrales en fracción (0.0625 = 6.25%).
	ModerateAt float64
	HighAbove  float64
	CriticalAt float64
	CacheTTL   time.Duration
}

type LinksConfig struct {
	RequestTTL      time.Duration
	ExchangeCodeTTL time.Duration
	SweepInterval   time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.migrate", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "pedigree:notifications")

	v.SetDefault("auth.mode", "dev")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_issuer", "pedigree-registry")
	v.SetDefault("auth.odin_base_url", "")
	v.SetDefault("auth.odin_api_key", "")

	v.SetDefault("directory.base_url", "")
	v.SetDefault("directory.api_key", "")
	v.SetDefault("directory.timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.app", "pedigree-registry")

	v.SetDefault("pedigree.default_generations", 3)
	v.SetDefault("pedigree.max_generations", 10)
	v.SetDefault("pedigree.fan_out", 16)
	v.SetDefault("pedigree.read_retries", 3)
	v.SetDefault("pedigree.read_retry_interval", 50*time.Millisecond)

	v.SetDefault("coi.moderate_at", 0.0625)
	v.SetDefault("coi.high_above", 0.125)
	v.SetDefault("coi.critical_at", 0.25)
	v.SetDefault("coi.cache_ttl", 10*time.Minute)

	v.SetDefault("links.request_ttl", 30*24*time.Hour)
	v.SetDefault("links.exchange_code_ttl", 14*24*time.Hour)
	v.SetDefault("links.sweep_interval", 15*time.Minute)
}

// Load lee configs/pedigree.yaml (o CONFIG_PATH) si existe y aplica PEDIGREE_* encima.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pedigree")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Database: DatabaseConfig{
			DSN:     v.GetString("database.dsn"),
			Migrate: v.GetBool("database.migrate"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Channel:  v.GetString("redis.channel"),
		},
		Auth: AuthConfig{
			Mode:        strings.ToLower(strings.TrimSpace(v.GetString("auth.mode"))),
			JWTSecret:   v.GetString("auth.jwt_secret"),
			JWTIssuer:   v.GetString("auth.jwt_issuer"),
			OdinBaseURL: v.GetString("auth.odin_base_url"),
			OdinAPIKey:  v.GetString("auth.odin_api_key"),
		},
		Directory: DirectoryConfig{
			BaseURL: v.GetString("directory.base_url"),
			APIKey:  v.GetString("directory.api_key"),
			Timeout: v.GetDuration("directory.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			App:    v.GetString("log.app"),
		},
		Pedigree: PedigreeConfig{
			DefaultGenerations: v.GetInt("pedigree.default_generations"),
			MaxGenerations:     v.GetInt("pedigree.max_generations"),
			FanOut:             v.GetInt64("pedigree.fan_out"),
			ReadRetries:        v.GetUint64("pedigree.read_retries"),
			ReadRetryInterval:  v.GetDuration("pedigree.read_retry_interval"),
		},
		COI: COIConfig{
			ModerateAt: v.GetFloat64("coi.moderate_at"),
			HighAbove:  v.GetFloat64("coi.high_above"),
			CriticalAt: v.GetFloat64("coi.critical_at"),
			CacheTTL:   v.GetDuration("coi.cache_ttl"),
		},
		Links: LinksConfig{
			RequestTTL:      v.GetDuration("links.request_ttl"),
			ExchangeCodeTTL: v.GetDuration("links.exchange_code_ttl"),
			SweepInterval:   v.GetDuration("links.sweep_interval"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Pedigree.DefaultGenerations <= 0 || c.Pedigree.MaxGenerations < c.Pedigree.DefaultGenerations {
		return fmt.Errorf("config: pedigree generations: default=%d max=%d", c.Pedigree.DefaultGenerations, c.Pedigree.MaxGenerations)
	}
	if c.Pedigree.FanOut <= 0 {
		return errors.New("config: pedigree.fan_out must be > 0")
	}
	if !(c.COI.ModerateAt > 0 && c.COI.ModerateAt <= c.COI.HighAbove && c.COI.HighAbove <= c.COI.CriticalAt) {
		return errors.New("config: coi thresholds must be increasing")
	}
	if c.Links.RequestTTL <= 0 || c.Links.ExchangeCodeTTL <= 0 {
		return errors.New("config: links ttl must be > 0")
	}
	switch c.Auth.Mode {
	case "dev", "":
	case "jwt":
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return errors.New("config: auth.jwt_secret required for jwt mode")
		}
	case "odin":
		if strings.TrimSpace(c.Auth.OdinBaseURL) == "" {
			return errors.New("config: auth.odin_base_url required for odin mode")
		}
	default:
		return fmt.Errorf("config: unknown auth.mode %q", c.Auth.Mode)
	}
	return nil
}
