package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Env         string        `env:"ENV,required"` // local, dev, prod
	Address     string        `env:"ADDRESS,required"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"5s"`
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:8080"`
}

type DatabaseConfig struct {
	PostgresConn string `env:"POSTGRES_CONN,required"`
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET,required"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
}

type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             string        `env:"REDIS_DB" envDefault:"0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
}

const (
	local = ".env.local"
	dev   = ".env.dev"
	prod  = ".env.prod"
)

// MustLoad reads .env.<ENV> when it exists, then the process environment. Real
// environment variables win over the file.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load() (*Config, error) {
	envFile := local
	switch os.Getenv("ENV") {
	case "dev":
		envFile = dev
	case "prod":
		envFile = prod
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	timeout, err := durationEnv("TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := durationEnv("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := durationEnv("TOKEN_TTL", 720*time.Hour)
	if err != nil {
		return nil, err
	}
	idempotencyTTL, err := durationEnv("IDEMPOTENCY_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	redisDB := envOr("REDIS_DB", "0")
	if _, err := strconv.Atoi(redisDB); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB format: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Env:         envOr("ENV", "local"),
			Address:     os.Getenv("ADDRESS"),
			Timeout:     timeout,
			IdleTimeout: idleTimeout,
			CORSOrigins: splitList(envOr("CORS_ORIGINS", "http://localhost:8080")),
		},
		Database: DatabaseConfig{
			PostgresConn: os.Getenv("POSTGRES_CONN"),
		},
		JWT: JWTConfig{
			Secret:   os.Getenv("JWT_SECRET"),
			TokenTTL: tokenTTL,
		},
		Redis: RedisConfig{
			Addr:           envOr("REDIS_ADDR", "localhost:6379"),
			Password:       os.Getenv("REDIS_PASSWORD"),
			DB:             redisDB,
			IdempotencyTTL: idempotencyTTL,
		},
	}

	for name, value := range map[string]string{
		"ADDRESS":       cfg.Server.Address,
		"POSTGRES_CONN": cfg.Database.PostgresConn,
		"JWT_SECRET":    cfg.JWT.Secret,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s is required", name)
		}
	}

	return cfg, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %w", name, err)
	}
	return d, nil
}

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
