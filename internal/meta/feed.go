package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type feedPostResponse struct {
	ID    string      `json:"id"`
	Error *GraphError `json:"error"`
}

// PostToFeed publishes a text post on the page feed and returns the new post
// id.
func (c *Client) PostToFeed(ctx context.Context, message string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("message", message)
	params.Set("access_token", c.cfg.AccessToken)
	if c.cfg.AppSecret != "" {
		params.Set("appsecret_proof", appSecretProof(c.cfg.AppSecret, c.cfg.AccessToken))
	}

	reqURL := c.baseURL + "/" + c.cfg.PageID + "/feed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(params.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post to feed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	var post feedPostResponse
	if err := json.Unmarshal(body, &post); err != nil {
		return "", fmt.Errorf("decode feed response: %w", err)
	}
	if post.Error != nil {
		return "", post.Error
	}
	if post.ID == "" {
		return "", fmt.Errorf("feed post returned no id (status %d)", resp.StatusCode)
	}

	return post.ID, nil
}
