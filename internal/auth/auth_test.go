package auth

import (
	"testing"
	"time"

	"github.com/Prayc/angaza-real-estate/internal/config"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT(secret string) *JWT {
	return NewJWT(config.JWTConfig{Secret: secret, ExpiryHours: 1})
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := testJWT("test-secret")
	user := &models.User{ID: 42, Role: models.RoleLandlord}

	signed, err := tokens.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleLandlord, claims.Role)
	assert.Equal(t, "angaza-real-estate", claims.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed, err := testJWT("secret-one").GenerateToken(&models.User{ID: 1, Role: models.RoleTenant})
	require.NoError(t, err)

	_, err = testJWT("secret-two").ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := testJWT("test-secret").ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestExpiryFallback(t *testing.T) {
	tokens := NewJWT(config.JWTConfig{Secret: "s"})
	assert.Equal(t, 24*time.Hour, tokens.expiry)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}
