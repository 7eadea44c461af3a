package relay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (f *fakeUploader) Put(_ context.Context, key, contentType string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = body
	f.types[key] = contentType
	return nil
}

func (f *fakeUploader) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "fb-album1-photo9.jpg", ObjectKey("album1", "photo9"))
}

func TestCopy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	store := newFakeUploader()
	r := New(store)

	url, err := r.Copy(context.Background(), "a1", "p1", server.URL+"/p1.jpg")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test/fb-a1-p1.jpg", url)
	assert.Equal(t, []byte("jpeg-bytes"), store.objects["fb-a1-p1.jpg"])
	assert.Equal(t, "image/jpeg", store.types["fb-a1-p1.jpg"])
}

func TestCopyOverwritesSameKey(t *testing.T) {
	payload := "first"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	store := newFakeUploader()
	r := New(store)

	_, err := r.Copy(context.Background(), "a1", "p1", server.URL)
	require.NoError(t, err)

	payload = "second"
	_, err = r.Copy(context.Background(), "a1", "p1", server.URL)
	require.NoError(t, err)

	require.Len(t, store.objects, 1, "re-import reuses the deterministic key")
	assert.Equal(t, []byte("second"), store.objects["fb-a1-p1.jpg"])
}

func TestCopyDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store := newFakeUploader()
	r := New(store)

	_, err := r.Copy(context.Background(), "a1", "p1", server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
	assert.Empty(t, store.objects, "nothing uploaded on failed download")
}

func TestCopyUploadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	store := newFakeUploader()
	store.putErr = errors.New("bucket not found")
	r := New(store)

	_, err := r.Copy(context.Background(), "a1", "p1", server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload image")
}
