// internal/utils/password_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "wrongpassword"))

	// Hashing is salted, two hashes of the same input differ
	other, err := HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, other)
}
