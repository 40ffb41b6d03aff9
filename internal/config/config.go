// Package config настройки процесса из окружения и .env файлов.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"

	"github.com/thereayou/rythmrun/internal/storage"
)

const (
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

type Config struct {
	Port          string
	DatabaseURL   string
	AccessSecret  string
	RefreshSecret string
	SessionStore  string
	RedisURL      string
	NATSURL       string
	S3            storage.Config
	// AllowRerequestAfterReject разрешает новую заявку после REJECTED
	AllowRerequestAfterReject bool
	LogLevel                  string
	GinMode                   string
}

// Load сначала .env.local, затем .env; переменные окружения важнее файлов
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}
	cfg := FromEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func FromEnv(getenv func(string) string) *Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	access := get("ACCESS_SECRET", get("JWT_SECRET", ""))
	rerequest, _ := strconv.ParseBool(get("FRIEND_REREQUEST_AFTER_REJECT", "false"))

	return &Config{
		Port:          get("PORT", "8080"),
		DatabaseURL:   get("DATABASE_URL", ""),
		AccessSecret:  access,
		RefreshSecret: get("REFRESH_SECRET", ""),
		SessionStore:  strings.ToLower(get("SESSION_STORE", SessionStorePostgres)),
		RedisURL:      get("REDIS_URL", ""),
		NATSURL:       get("NATS_URL", ""),
		S3: storage.Config{
			Bucket:          get("S3_BUCKET", ""),
			Region:          get("AWS_REGION", "us-east-1"),
			Endpoint:        get("S3_ENDPOINT", ""),
			AccessKeyID:     get("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: get("AWS_SECRET_ACCESS_KEY", ""),
			PublicDomain:    get("CLOUDFRONT_DOMAIN", ""),
		},
		AllowRerequestAfterReject: rerequest,
		LogLevel:                  get("LOG_LEVEL", "info"),
		GinMode:                   get("GIN_MODE", ""),
	}
}

func (c *Config) Validate() error {
	var redisRules []validation.Rule
	if c.SessionStore == SessionStoreRedis {
		redisRules = append(redisRules, validation.Required)
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.By(isPort)),
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.AccessSecret, validation.Required),
		validation.Field(&c.RefreshSecret, validation.Required, validation.By(differsFrom(c.AccessSecret))),
		validation.Field(&c.SessionStore, validation.In(SessionStorePostgres, SessionStoreRedis)),
		validation.Field(&c.RedisURL, redisRules...),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "warning", "error")),
	)
}

// AvatarsEnabled аватары доступны только при настроенном бакете
func (c *Config) AvatarsEnabled() bool {
	return c.S3.Bucket != ""
}

func isPort(value interface{}) error {
	s, _ := value.(string)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 65535 {
		return errors.New("must be a valid port number")
	}
	return nil
}

// differsFrom refresh и access ключи не должны совпадать
func differsFrom(other string) validation.RuleFunc {
	return func(value interface{}) error {
		if s, _ := value.(string); s != "" && s == other {
			return errors.New("must differ from ACCESS_SECRET")
		}
		return nil
	}
}
