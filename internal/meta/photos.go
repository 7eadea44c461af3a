package meta

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Photo is one album item. SourceURL points at the largest rendition the
// Graph API offers; it is empty when the photo has no downloadable source.
type Photo struct {
	ID          string
	SourceURL   string
	CreatedTime string
}

type fbPhotosResponse struct {
	Data []struct {
		ID     string `json:"id"`
		Images []struct {
			Source string `json:"source"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"images"`
		CreatedTime string `json:"created_time"`
	} `json:"data"`
}

// ListPhotos returns up to limit photos of an album in API order. An empty
// result is valid; any transport or Graph error is a hard failure.
func (c *Client) ListPhotos(ctx context.Context, albumID string, limit int) ([]Photo, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	params := url.Values{}
	params.Set("fields", "images,id,created_time")
	params.Set("limit", strconv.Itoa(limit))

	var resp fbPhotosResponse
	if err := c.get(ctx, "/"+albumID+"/photos", params, &resp); err != nil {
		return nil, fmt.Errorf("list album photos: %w", err)
	}

	photos := make([]Photo, 0, len(resp.Data))
	for _, p := range resp.Data {
		photo := Photo{
			ID:          p.ID,
			CreatedTime: p.CreatedTime,
		}
		// The Graph API orders renditions largest first.
		if len(p.Images) > 0 {
			photo.SourceURL = p.Images[0].Source
		}
		photos = append(photos, photo)
	}

	return photos, nil
}
