package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pixelpanda_back_end/internal/models"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	user := models.User{
		ID:    primitive.NewObjectID(),
		Email: "panda@example.com",
		Role:  "admin",
	}

	token, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims["user_id"])
	assert.Equal(t, "panda@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Now().Add(SessionDuration).Unix(), int64(exp), 5)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret_one")
	token, err := GenerateJWT(models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret_two")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}
