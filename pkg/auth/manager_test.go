package auth

import (
	"testing"
	"time"

	"github.com/taskhive/backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SigningKey:      "test-signing-key",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 240 * time.Hour,
	}
}

func TestNewManagerValidation(t *testing.T) {
	cfg := testJWTConfig()
	cfg.SigningKey = ""
	_, err := NewManager(cfg)
	assert.Error(t, err)

	cfg = testJWTConfig()
	cfg.AccessTokenTTL = 0
	_, err = NewManager(cfg)
	assert.Error(t, err)

	cfg = testJWTConfig()
	cfg.RefreshTokenTTL = 0
	_, err = NewManager(cfg)
	assert.Error(t, err)

	_, err = NewManager(testJWTConfig())
	assert.NoError(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	manager, err := NewManager(testJWTConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, ttl, err := manager.NewJWT(&userID)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, ttl)

	subject, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), subject)
}

func TestParseRejectsForeignKey(t *testing.T) {
	manager, err := NewManager(testJWTConfig())
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.SigningKey = "another-key"
	other, err := NewManager(otherCfg)
	require.NoError(t, err)

	userID := uuid.New()
	token, _, err := other.NewJWT(&userID)
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	manager, err := NewManager(testJWTConfig())
	require.NoError(t, err)

	token, ttl, err := manager.NewRefreshToken()
	require.NoError(t, err)
	assert.Equal(t, 240*time.Hour, ttl)
	assert.NotEqual(t, uuid.Nil, token)

	parsed, err := manager.ValidateRefreshToken(token.String())
	require.NoError(t, err)
	assert.Equal(t, token, *parsed)

	_, err = manager.ValidateRefreshToken("not-a-uuid")
	assert.Error(t, err)
}
