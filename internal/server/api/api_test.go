package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddResourceResponse(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	v := &models.ResourceView{
		Resource:   models.Resource{ID: "r-1", Name: "mail", CreatedBy: "u-1", ModifiedBy: "u-1", Created: now, Modified: now},
		Creator:    models.UserSummary{ID: "u-1", Username: "ada"},
		Modifier:   models.UserSummary{ID: "u-1", Username: "ada"},
		Secret:     &models.Secret{ID: "s-1", ResourceID: "r-1", UserID: "u-1", Data: "armored"},
		Permission: &models.Permission{ID: "p-1", ARO: "User", AROForeignKey: "u-1", Type: 15},
	}

	resp := NewAddResourceResponse(v)
	assert.Equal(t, StatusSuccess, resp.Header.Status)
	assert.Equal(t, MessageResourceAdded, resp.Header.Message)
	require.Len(t, resp.Body.Secrets, 1)
	assert.Equal(t, "armored", resp.Body.Secrets[0].Data)
	assert.Nil(t, resp.Body.Favorite)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	body := doc["body"].(map[string]any)
	assert.Equal(t, "ada", body["creator"].(map[string]any)["username"])
	assert.Equal(t, float64(15), body["permission"].(map[string]any)["type"])
	assert.Nil(t, body["favorite"])
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse(map[string][]string{"name": {"required"}})
	assert.Equal(t, Header{Status: StatusError, Message: MessageValidationError}, resp.Header)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"header":{"status":"error","message":"Could not validate resource data."},"body":{"name":["required"]}}`, string(raw))
}

func TestNewResource_NoSecret(t *testing.T) {
	out := NewResource(&models.ResourceView{Favorite: &models.Favorite{ID: "f-1"}})
	assert.NotNil(t, out.Secrets)
	assert.Empty(t, out.Secrets)
	require.NotNil(t, out.Favorite)
	assert.Equal(t, "f-1", out.Favorite.ID)
	assert.Nil(t, out.Permission)
}
