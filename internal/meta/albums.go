package meta

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Album is a normalized photo collection from either platform.
type Album struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PhotoCount int    `json:"count"`
	CoverURL   string `json:"coverUrl,omitempty"`
	Source     string `json:"source"`
}

const (
	SourceFacebook  = "facebook"
	SourceInstagram = "instagram"
)

type fbAlbumsResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Count      int    `json:"count"`
		CoverPhoto *struct {
			Picture struct {
				Data struct {
					URL string `json:"url"`
				} `json:"data"`
			} `json:"picture"`
		} `json:"cover_photo"`
	} `json:"data"`
}

type igAccountResponse struct {
	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
}

type igMediaResponse struct {
	Data []struct {
		ID           string `json:"id"`
		Caption      string `json:"caption"`
		MediaType    string `json:"media_type"`
		MediaURL     string `json:"media_url"`
		ThumbnailURL string `json:"thumbnail_url"`
	} `json:"data"`
}

// ListAlbums returns the page's Facebook albums plus, when a linked Instagram
// business account resolves, a single synthetic album for its media feed.
// Instagram failures are logged and swallowed; a Facebook failure aborts the
// whole listing.
func (c *Client) ListAlbums(ctx context.Context) ([]Album, error) {
	var fbAlbums []Album
	var igAlbum *Album

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		fbAlbums, err = c.listFacebookAlbums(gctx)
		return err
	})

	g.Go(func() error {
		album, err := c.listInstagramFeed(gctx)
		if err != nil {
			slog.Warn("instagram lookup failed, continuing without it", "error", err)
			return nil
		}
		igAlbum = album
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	albums := fbAlbums
	if igAlbum != nil {
		albums = append(albums, *igAlbum)
	}
	return albums, nil
}

func (c *Client) listFacebookAlbums(ctx context.Context) ([]Album, error) {
	params := url.Values{}
	params.Set("fields", "id,name,count,cover_photo{picture}")

	var resp fbAlbumsResponse
	if err := c.get(ctx, "/"+c.cfg.PageID+"/albums", params, &resp); err != nil {
		return nil, fmt.Errorf("list facebook albums: %w", err)
	}

	albums := make([]Album, 0, len(resp.Data))
	for _, a := range resp.Data {
		album := Album{
			ID:         a.ID,
			Name:       "[FB] " + a.Name,
			PhotoCount: a.Count,
			Source:     SourceFacebook,
		}
		if a.CoverPhoto != nil {
			album.CoverURL = a.CoverPhoto.Picture.Data.URL
		}
		albums = append(albums, album)
	}

	slog.Debug("listed facebook albums", "count", len(albums))
	return albums, nil
}

// listInstagramFeed resolves the linked Instagram business account and folds
// its image media into one album-shaped entry.
func (c *Client) listInstagramFeed(ctx context.Context) (*Album, error) {
	params := url.Values{}
	params.Set("fields", "instagram_business_account")

	var account igAccountResponse
	if err := c.get(ctx, "/"+c.cfg.PageID, params, &account); err != nil {
		return nil, fmt.Errorf("resolve instagram account: %w", err)
	}
	if account.InstagramBusinessAccount == nil {
		return nil, fmt.Errorf("no linked instagram business account")
	}
	igID := account.InstagramBusinessAccount.ID

	mediaParams := url.Values{}
	mediaParams.Set("fields", "id,caption,media_type,media_url,thumbnail_url")
	mediaParams.Set("limit", strconv.Itoa(50))

	var media igMediaResponse
	if err := c.get(ctx, "/"+igID+"/media", mediaParams, &media); err != nil {
		return nil, fmt.Errorf("list instagram media: %w", err)
	}

	var cover string
	count := 0
	for _, m := range media.Data {
		if m.MediaType != "IMAGE" && m.MediaType != "CAROUSEL_ALBUM" {
			continue
		}
		if cover == "" {
			cover = m.MediaURL
			if cover == "" {
				cover = m.ThumbnailURL
			}
		}
		count++
	}
	if count == 0 {
		return nil, fmt.Errorf("no image media on instagram account %s", igID)
	}

	slog.Debug("listed instagram feed", "account", igID, "images", count)

	return &Album{
		ID:         "ig-" + igID,
		Name:       "[IG] Instagram Feed",
		PhotoCount: count,
		CoverURL:   cover,
		Source:     SourceInstagram,
	}, nil
}
