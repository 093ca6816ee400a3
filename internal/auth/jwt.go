package auth

import (
	"errors"
	"os"
	"time"

	"github.com/Prayc/angaza-real-estate/internal/config"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an issued token. Role is informational only: the
// middleware always reloads the user and trusts the stored role.
type Claims struct {
	UserID uint        `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWT issues and verifies bearer tokens.
type JWT struct {
	secret []byte
	expiry time.Duration
}

// NewJWT builds a token manager from config. The JWT_SECRET environment
// variable overrides the configured secret.
func NewJWT(cfg config.JWTConfig) *JWT {
	secret := cfg.Secret
	if env := os.Getenv("JWT_SECRET"); env != "" {
		secret = env
	}

	expiry := cfg.GetExpiry()
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	return &JWT{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateToken issues a signed token for the user.
func (j *JWT) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "angaza-real-estate",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// ParseToken verifies a token string and returns its claims.
func (j *JWT) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
