package meta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fbAlbumsBody = `{"data":[
		{"id":"a1","name":"Summer Collection","count":12,"cover_photo":{"picture":{"data":{"url":"https://scontent.example.com/cover1.jpg"}}}},
		{"id":"a2","name":"Accessories","count":5}
	]}`
	igAccountBody = `{"instagram_business_account":{"id":"ig9"}}`
	igMediaBody   = `{"data":[
		{"id":"m1","media_type":"IMAGE","media_url":"https://scontent.example.com/m1.jpg"},
		{"id":"m2","media_type":"VIDEO","media_url":"https://scontent.example.com/m2.mp4"},
		{"id":"m3","media_type":"CAROUSEL_ALBUM","media_url":"https://scontent.example.com/m3.jpg"}
	]}`
)

func newGraphServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/v19.0")
		body, ok := routes[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"message":"Unknown path","type":"GraphMethodException","code":100}}`))
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestListAlbumsMergesBothPlatforms(t *testing.T) {
	server := newGraphServer(t, map[string]string{
		"/page1/albums": fbAlbumsBody,
		"/page1":        igAccountBody,
		"/ig9/media":    igMediaBody,
	})

	client := NewClient(Config{PageID: "page1", AccessToken: "token", BaseURL: server.URL})

	albums, err := client.ListAlbums(context.Background())
	require.NoError(t, err)
	require.Len(t, albums, 3)

	assert.Equal(t, "a1", albums[0].ID)
	assert.Equal(t, "[FB] Summer Collection", albums[0].Name)
	assert.Equal(t, 12, albums[0].PhotoCount)
	assert.Equal(t, "https://scontent.example.com/cover1.jpg", albums[0].CoverURL)
	assert.Equal(t, SourceFacebook, albums[0].Source)

	assert.Equal(t, "[FB] Accessories", albums[1].Name)
	assert.Empty(t, albums[1].CoverURL)

	ig := albums[2]
	assert.Equal(t, "ig-ig9", ig.ID)
	assert.Equal(t, "[IG] Instagram Feed", ig.Name)
	assert.Equal(t, 2, ig.PhotoCount, "video media excluded")
	assert.Equal(t, "https://scontent.example.com/m1.jpg", ig.CoverURL)
	assert.Equal(t, SourceInstagram, ig.Source)
}

func TestListAlbumsToleratesInstagramFailure(t *testing.T) {
	// no /page1 route: the instagram account lookup 404s
	server := newGraphServer(t, map[string]string{
		"/page1/albums": fbAlbumsBody,
	})

	client := NewClient(Config{PageID: "page1", AccessToken: "token", BaseURL: server.URL})

	albums, err := client.ListAlbums(context.Background())
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, SourceFacebook, albums[0].Source)
	assert.Equal(t, SourceFacebook, albums[1].Source)
}

func TestListAlbumsNoLinkedInstagramAccount(t *testing.T) {
	server := newGraphServer(t, map[string]string{
		"/page1/albums": fbAlbumsBody,
		"/page1":        `{}`,
	})

	client := NewClient(Config{PageID: "page1", AccessToken: "token", BaseURL: server.URL})

	albums, err := client.ListAlbums(context.Background())
	require.NoError(t, err)
	assert.Len(t, albums, 2)
}

func TestListAlbumsFacebookFailureIsFatal(t *testing.T) {
	server := newGraphServer(t, map[string]string{
		"/page1":     igAccountBody,
		"/ig9/media": igMediaBody,
	})

	client := NewClient(Config{PageID: "page1", AccessToken: "token", BaseURL: server.URL})

	_, err := client.ListAlbums(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list facebook albums")
}
