package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func withMinCost(t *testing.T) {
	t.Helper()
	prev := BcryptCost
	BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { BcryptCost = prev })
}

func TestHashPassword_UsesConfiguredCost(t *testing.T) {
	withMinCost(t)

	hash, err := HashPassword("puerta2024")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	withMinCost(t)

	first, err := HashPassword("moldura-pino-9")
	require.NoError(t, err)
	second, err := HashPassword("moldura-pino-9")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword(first, "moldura-pino-9"))
	assert.True(t, VerifyPassword(second, "moldura-pino-9"))
	assert.False(t, VerifyPassword(first, "Moldura-pino-9"))
	assert.False(t, VerifyPassword("no-es-un-hash", "moldura-pino-9"))
}

func TestHashPassword_TooLong(t *testing.T) {
	withMinCost(t)

	_, err := HashPassword(strings.Repeat("a1", 40))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "Letters and digits", password: "puerta2024", wantErr: false},
		{name: "Accented letters count", password: "ñandú123", wantErr: false},
		{name: "Exactly minimum length", password: "abcdef12", wantErr: false},
		{name: "Short by runes not bytes", password: "ñandú12", wantErr: true},
		{name: "Only letters", password: "molduras", wantErr: true},
		{name: "Only digits", password: "12345678", wantErr: true},
		{name: "Empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPasswordStrength(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrWeakPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
