package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	assert.True(t, ComparePassword("s3cret-pass", hash))
	assert.False(t, ComparePassword("wrong", hash))
	assert.False(t, ComparePassword("s3cret-pass", "not-a-hash"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_TooLong(t *testing.T) {
	// 36 кириллических символов = 72 байта, на границе
	hash, err := HashPassword(strings.Repeat("ж", 36))
	require.NoError(t, err)
	assert.True(t, ComparePassword(strings.Repeat("ж", 36), hash))

	_, err = HashPassword(strings.Repeat("ж", 40))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
