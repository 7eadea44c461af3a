package meta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPhotos(t *testing.T) {
	server := newGraphServer(t, map[string]string{
		"/a1/photos": `{"data":[
			{"id":"p1","created_time":"2024-03-01T10:00:00+0000","images":[
				{"source":"https://scontent.example.com/p1-large.jpg","width":2048,"height":2048},
				{"source":"https://scontent.example.com/p1-small.jpg","width":320,"height":320}
			]},
			{"id":"p2","created_time":"2024-03-02T10:00:00+0000","images":[]}
		]}`,
	})

	client := NewClient(Config{PageID: "page1", AccessToken: "token", BaseURL: server.URL})

	photos, err := client.ListPhotos(context.Background(), "a1", 10)
	require.NoError(t, err)
	require.Len(t, photos, 2)

	assert.Equal(t, "p1", photos[0].ID)
	assert.Equal(t, "https://scontent.example.com/p1-large.jpg", photos[0].SourceURL, "largest rendition wins")
	assert.Equal(t, "2024-03-01T10:00:00+0000", photos[0].CreatedTime)

	assert.Equal(t, "p2", photos[1].ID)
	assert.Empty(t, photos[1].SourceURL)
}

func TestListPhotosEmptyAlbum(t *testing.T) {
	server := newGraphServer(t, map[string]string{
		"/a1/photos": `{"data":[]}`,
	})

	client := NewClient(Config{PageID: "page1", AccessToken: "token", BaseURL: server.URL})

	photos, err := client.ListPhotos(context.Background(), "a1", 10)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestListPhotosRejectsBadLimit(t *testing.T) {
	client := NewClient(Config{AccessToken: "token"})

	_, err := client.ListPhotos(context.Background(), "a1", 0)
	assert.Error(t, err)

	_, err = client.ListPhotos(context.Background(), "a1", -3)
	assert.Error(t, err)
}

func TestListPhotosGraphErrorIsFatal(t *testing.T) {
	server := newGraphServer(t, map[string]string{})

	client := NewClient(Config{PageID: "page1", AccessToken: "token", BaseURL: server.URL})

	_, err := client.ListPhotos(context.Background(), "a1", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list album photos")
}
