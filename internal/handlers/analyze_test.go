package handlers

import (
	"math/rand"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okasina/okasina-fashion/internal/synth"
)

func TestHandleAnalyzeProduct(t *testing.T) {
	h := NewAnalyzeHandler(synth.New(rand.New(rand.NewSource(5)), nil))

	c, rec := NewTestContext(http.MethodPost, "/api/ai/analyze-product", map[string]interface{}{
		"imageUrl":  "https://cdn.test/red-dress.jpg",
		"filename":  "red-dress.jpg",
		"albumName": "Summer",
	})
	require.NoError(t, h.HandleAnalyzeProduct(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := DecodeJSONResponse(rec)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test/red-dress.jpg", body["imageUrl"])
	assert.Equal(t, "Clothing", body["category"])
	assert.NotEmpty(t, body["name"])
	assert.NotEmpty(t, body["description"])
	assert.Greater(t, body["suggestedPrice"].(float64), 0.0)
	assert.NotEmpty(t, body["tags"])
}

func TestHandleAnalyzeProductMissingImageURL(t *testing.T) {
	h := NewAnalyzeHandler(synth.New(rand.New(rand.NewSource(5)), nil))

	c, rec := NewTestContext(http.MethodPost, "/api/ai/analyze-product", map[string]interface{}{
		"filename": "red-dress.jpg",
	})
	require.NoError(t, h.HandleAnalyzeProduct(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body, err := DecodeJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "Missing imageUrl", body["error"])
}
