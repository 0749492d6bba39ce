package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealSujal/community-app/internal/infrastructure/config"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecretKey: "k", JWTExpiryHours: 1})

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "community-app", claims.Issuer)
}

func TestJWTRejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService(&config.Config{JWTSecretKey: "one"})
	verifier := NewJWTService(&config.Config{JWTSecretKey: "two"})

	token, err := issuer.GenerateToken(1)
	require.NoError(t, err)

	_, err = verifier.ExtractClaims(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecretKey: "k"}).(*JWTService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateToken(1)
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)
}

func TestJWTRejectsNoneAlgorithm(t *testing.T) {
	svc := NewJWTService(&config.Config{JWTSecretKey: "k"})
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTClaims{UserID: 1})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ExtractClaims(signed)
	assert.Error(t, err)
}
