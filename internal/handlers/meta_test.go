package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okasina/okasina-fashion/internal/importer"
	"github.com/okasina/okasina-fashion/internal/meta"
)

type fakePageClient struct {
	albums  []meta.Album
	metrics *meta.Metrics
	err     error
}

func (f *fakePageClient) ListAlbums(_ context.Context) ([]meta.Album, error) {
	return f.albums, f.err
}

func (f *fakePageClient) PageMetrics(_ context.Context) (*meta.Metrics, error) {
	return f.metrics, f.err
}

type fakeAlbumImporter struct {
	gotReq importer.Request
	result *importer.Result
	err    error
}

func (f *fakeAlbumImporter) ImportAlbum(_ context.Context, req importer.Request) (*importer.Result, error) {
	f.gotReq = req
	return f.result, f.err
}

func TestHandleListAlbums(t *testing.T) {
	client := &fakePageClient{albums: []meta.Album{
		{ID: "a1", Name: "[FB] Summer", PhotoCount: 12, Source: meta.SourceFacebook},
	}}
	h := NewMetaHandler(client, nil)

	c, rec := NewTestContext(http.MethodGet, "/api/meta/albums", nil)
	require.NoError(t, h.HandleListAlbums(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := DecodeJSONResponse(rec)
	require.NoError(t, err)
	albums := body["albums"].([]interface{})
	require.Len(t, albums, 1)
	assert.Equal(t, "[FB] Summer", albums[0].(map[string]interface{})["name"])
}

func TestHandleListAlbumsUnconfigured(t *testing.T) {
	h := NewMetaHandler(nil, nil)

	c, rec := NewTestContext(http.MethodGet, "/api/meta/albums", nil)
	require.NoError(t, h.HandleListAlbums(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body, err := DecodeJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "Missing FB_PAGE_ID or FB_ACCESS_TOKEN", body["error"])
}

func TestHandleListAlbumsUpstreamFailure(t *testing.T) {
	h := NewMetaHandler(&fakePageClient{err: errors.New("token expired")}, nil)

	c, rec := NewTestContext(http.MethodGet, "/api/meta/albums", nil)
	require.NoError(t, h.HandleListAlbums(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleImportAlbum(t *testing.T) {
	imp := &fakeAlbumImporter{result: &importer.Result{
		Message:         "Successfully processed 2 photos.",
		ProductsCreated: 2,
	}}
	h := NewMetaHandler(&fakePageClient{}, imp)

	c, rec := NewTestContext(http.MethodPost, "/api/meta/import-album", map[string]interface{}{
		"albumId":   "a1",
		"albumName": "Summer",
		"useAI":     true,
	})
	require.NoError(t, h.HandleImportAlbum(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a1", imp.gotReq.AlbumID)
	assert.Equal(t, "Summer", imp.gotReq.AlbumName)
	assert.True(t, imp.gotReq.UseAI)
	assert.True(t, imp.gotReq.CreateProducts, "createProducts defaults to true")

	body, err := DecodeJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, float64(2), body["productsCreated"])
}

func TestHandleImportAlbumExplicitPreview(t *testing.T) {
	imp := &fakeAlbumImporter{result: &importer.Result{}}
	h := NewMetaHandler(&fakePageClient{}, imp)

	c, _ := NewTestContext(http.MethodPost, "/api/meta/import-album", map[string]interface{}{
		"albumId":        "a1",
		"createProducts": false,
	})
	require.NoError(t, h.HandleImportAlbum(c))

	assert.False(t, imp.gotReq.CreateProducts)
}

func TestHandleImportAlbumValidation(t *testing.T) {
	tests := []struct {
		name       string
		client     PageClient
		importer   AlbumImporter
		body       map[string]interface{}
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing albumId",
			client:     &fakePageClient{},
			importer:   &fakeAlbumImporter{},
			body:       map[string]interface{}{"albumName": "x"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing albumId",
		},
		{
			name:       "missing graph credentials",
			client:     nil,
			importer:   &fakeAlbumImporter{},
			body:       map[string]interface{}{"albumId": "a1"},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Missing FB_ACCESS_TOKEN",
		},
		{
			name:       "missing storage configuration",
			client:     &fakePageClient{},
			importer:   nil,
			body:       map[string]interface{}{"albumId": "a1"},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Missing storage configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMetaHandler(tt.client, tt.importer)

			c, rec := NewTestContext(http.MethodPost, "/api/meta/import-album", tt.body)
			require.NoError(t, h.HandleImportAlbum(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body, err := DecodeJSONResponse(rec)
			require.NoError(t, err)
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestHandleImportAlbumHardFailure(t *testing.T) {
	imp := &fakeAlbumImporter{err: errors.New("fetch album photos: graph API error")}
	h := NewMetaHandler(&fakePageClient{}, imp)

	c, rec := NewTestContext(http.MethodPost, "/api/meta/import-album", map[string]interface{}{
		"albumId": "a1",
	})
	require.NoError(t, h.HandleImportAlbum(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body, err := DecodeJSONResponse(rec)
	require.NoError(t, err)
	assert.Contains(t, body["error"], "fetch album photos")
}
