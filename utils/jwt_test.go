package utils

import (
	"testing"

	"docvault/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenSecretFollowsLoadedConfig(t *testing.T) {
	orig := config.AppConfig
	t.Cleanup(func() { config.AppConfig = orig })

	// A secret that only becomes known after config loading, e.g. from a
	// .env file, must be the one tokens are signed and validated with.
	config.AppConfig = &config.Config{JWTSecret: "secret-from-dotenv"}

	userID := primitive.NewObjectID()
	containerID := primitive.NewObjectID()

	token, err := GenerateAccessToken(userID, containerID, "member")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, containerID, claims.ContainerID)
	assert.Equal(t, "member", claims.Role)

	// Rotating the secret invalidates tokens minted under the old one.
	config.AppConfig = &config.Config{JWTSecret: "rotated-secret"}
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsMissingContainer(t *testing.T) {
	orig := config.AppConfig
	t.Cleanup(func() { config.AppConfig = orig })
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	token, err := GenerateAccessToken(primitive.NewObjectID(), primitive.NilObjectID, "member")
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}
