package config

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":   "postgres://localhost/rythmrun",
		"ACCESS_SECRET":  "access",
		"REFRESH_SECRET": "refresh",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv(envOf(baseEnv()))

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SessionStorePostgres, cfg.SessionStore)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.AllowRerequestAfterReject)
	assert.False(t, cfg.AvatarsEnabled())
}

func TestFromEnv_JWTSecretFallback(t *testing.T) {
	env := baseEnv()
	delete(env, "ACCESS_SECRET")
	env["JWT_SECRET"] = "legacy"

	cfg := FromEnv(envOf(env))
	assert.Equal(t, "legacy", cfg.AccessSecret)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	env := baseEnv()
	env["PORT"] = "9000"
	env["SESSION_STORE"] = "REDIS"
	env["REDIS_URL"] = "redis://localhost:6379/0"
	env["FRIEND_REREQUEST_AFTER_REJECT"] = "true"
	env["S3_BUCKET"] = "avatars"
	env["CLOUDFRONT_DOMAIN"] = "cdn.example.com"

	cfg := FromEnv(envOf(env))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.True(t, cfg.AllowRerequestAfterReject)
	assert.True(t, cfg.AvatarsEnabled())
	assert.Equal(t, "cdn.example.com", cfg.S3.PublicDomain)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(map[string]string)
		field string
	}{
		{"missing database", func(e map[string]string) { delete(e, "DATABASE_URL") }, "DatabaseURL"},
		{"missing access secret", func(e map[string]string) { delete(e, "ACCESS_SECRET") }, "AccessSecret"},
		{"same secrets", func(e map[string]string) { e["REFRESH_SECRET"] = "access" }, "RefreshSecret"},
		{"bad port", func(e map[string]string) { e["PORT"] = "http" }, "Port"},
		{"unknown store", func(e map[string]string) { e["SESSION_STORE"] = "memcached" }, "SessionStore"},
		{"redis without url", func(e map[string]string) { e["SESSION_STORE"] = "redis" }, "RedisURL"},
		{"bad log level", func(e map[string]string) { e["LOG_LEVEL"] = "loud" }, "LogLevel"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := baseEnv()
			tc.mut(env)

			err := FromEnv(envOf(env)).Validate()
			require.Error(t, err)
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tc.field)
		})
	}
}
