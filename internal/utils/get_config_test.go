package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfig(t *testing.T) {
	SetConfig(Config{DBHost: "db", JWTSecret: "secret"})
	defer SetConfig(Config{})

	assert.Equal(t, "db", GetConfig("DB_HOST"))
	assert.Equal(t, "secret", GetConfig("JWT_SECRET"))
	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, "", GetConfig("UNKNOWN"))
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("FOODGRAM_DB_NAME", "foodgram_test")
	t.Setenv("FOODGRAM_APP_PORT", "9000")
	defer SetConfig(Config{})

	LoadConfig()

	assert.Equal(t, "foodgram_test", GetConfig("DB_NAME"))
	assert.Equal(t, "9000", GetConfig("APP_PORT"))
}

func TestValidatorSlug(t *testing.T) {
	InitValidator()

	type payload struct {
		Slug string `validate:"required,slug"`
	}
	assert.NoError(t, Validate.Struct(payload{Slug: "break-fast_1"}))
	assert.Error(t, Validate.Struct(payload{Slug: "not a slug"}))
}
