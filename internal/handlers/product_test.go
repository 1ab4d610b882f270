package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pixelpanda_back_end/internal/models"
)

func TestProductDetailEmbedsCreator(t *testing.T) {
	adminID := primitive.NewObjectID()
	product := models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Panda Icon Pack",
		Price:     12.5,
		Category:  "Icons",
		CreatedBy: adminID,
		CreatedAt: time.Now(),
	}

	detail := productDetail{
		Product:   product,
		CreatedBy: &creatorRef{ID: adminID, Name: "Admin Panda", Email: "admin@pixelpanda.dev"},
	}

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	creator, ok := decoded["createdBy"].(map[string]any)
	require.True(t, ok, "createdBy should be an object, not an id string")
	assert.Equal(t, adminID.Hex(), creator["_id"])
	assert.Equal(t, "Admin Panda", creator["name"])
	assert.Equal(t, "admin@pixelpanda.dev", creator["email"])
	assert.Equal(t, "Panda Icon Pack", decoded["name"])
}

func TestProductDetailOmitsUnknownCreator(t *testing.T) {
	detail := productDetail{Product: models.Product{Name: "Orphaned Asset"}}

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	_, present := decoded["createdBy"]
	assert.False(t, present)
}
