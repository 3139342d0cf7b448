package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Password1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1!", hashed)

	assert.True(t, CheckPassword(hashed, "Password1!"))
	assert.False(t, CheckPassword(hashed, "password1!"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("Password1!")
	require.NoError(t, err)
	second, err := HashPassword("Password1!")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
