package security_test

import (
	"testing"

	"sitework-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T) security.TokenManager {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("test-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return security.NewTokenManager(testSecret, string(hash), 60)
}

func TestTokenManager_ExchangeAPIKey(t *testing.T) {
	m := newManager(t)

	t.Run("ValidKey", func(t *testing.T) {
		token, err := m.ExchangeAPIKey("test-key", "site-ui")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := m.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "site-ui", claims.Client)
	})

	t.Run("WrongKey", func(t *testing.T) {
		_, err := m.ExchangeAPIKey("wrong-key", "site-ui")
		assert.ErrorIs(t, err, security.ErrInvalidAPIKey)
	})
}

func TestTokenManager_ValidateToken(t *testing.T) {
	m := newManager(t)

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		hash, _ := bcrypt.GenerateFromPassword([]byte("test-key"), bcrypt.MinCost)
		other := security.NewTokenManager("another-secret-another-secret-32", string(hash), 60)
		token, err := other.ExchangeAPIKey("test-key", "site-ui")
		assert.NoError(t, err)

		_, err = m.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
