package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testAccount() *Account {
	return &Account{
		ID:    "acc-1",
		Email: "test@example.com",
		Role:  RoleCustomer,
	}
}

func TestHashPassword(t *testing.T) {
	password := "secret"
	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "secret"
	hash, _ := HashPassword(password)

	assert.True(t, CheckPasswordHash(password, hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("testsecret", testAccount())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestGenerateToken_NoSecret(t *testing.T) {
	_, err := GenerateToken("", testAccount())
	assert.Error(t, err)
	assert.Equal(t, "jwt secret is not set", err.Error())
}

func TestParseToken(t *testing.T) {
	tokenStr, _ := GenerateToken("testsecret", testAccount())

	t.Run("Success", func(t *testing.T) {
		claims, err := ParseToken("testsecret", tokenStr)
		assert.NoError(t, err)
		assert.NotNil(t, claims)
		assert.Equal(t, "acc-1", claims.UserID)
		assert.Equal(t, "test@example.com", claims.Email)
		assert.Equal(t, string(RoleCustomer), claims.Role)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		_, err := ParseToken("testsecret", "invalid-token-string")
		assert.Error(t, err)
	})

	t.Run("NoSecret", func(t *testing.T) {
		_, err := ParseToken("", tokenStr)
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, _ := GenerateToken("secret1", testAccount())

		_, err := ParseToken("secret2", token)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "signature is invalid")
	})
}
