package meta

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultGraphVersion = "v19.0"

// Config holds the Graph API credentials for one Facebook page.
type Config struct {
	PageID      string
	AccessToken string
	// AppSecret is optional; when set every request carries an
	// appsecret_proof parameter.
	AppSecret string
	// BaseURL overrides the Graph API host, used by tests.
	BaseURL string
}

// Client is a rate-limited Facebook Graph API client.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// GraphError is the error envelope the Graph API returns in a 200 or non-2xx
// body. Callers can detect it with errors.As.
type GraphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph API error: %s (type %s, code %d)", e.Message, e.Type, e.Code)
}

type errorEnvelope struct {
	Error *GraphError `json:"error"`
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://graph.facebook.com"
	}

	return &Client{
		cfg:     cfg,
		baseURL: baseURL + "/" + defaultGraphVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// Graph API page tokens allow roughly 200 calls/hour; half a
		// call per second keeps a whole import well under that.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
	}
}

// get performs a rate-limited GET against the Graph API and decodes the JSON
// body into out. A populated error envelope is returned as *GraphError even
// when the HTTP status is 200.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", c.cfg.AccessToken)
	if c.cfg.AppSecret != "" {
		params.Set("appsecret_proof", appSecretProof(c.cfg.AppSecret, c.cfg.AccessToken))
	}

	reqURL := c.baseURL + path + "?" + params.Encode()

	body, err := c.doWithRetry(ctx, reqURL)
	if err != nil {
		return err
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return envelope.Error
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode graph response: %w", err)
	}
	return nil
}

func (c *Client) doWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	const maxRetries = 3

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			slog.Debug("retrying graph request", "attempt", i+1, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read body: %w", err)
			continue
		}

		// 4xx carries a Graph error envelope worth surfacing; only
		// retry server errors.
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var envelope errorEnvelope
			if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Error != nil {
				return nil, envelope.Error
			}
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return body, nil
	}

	return nil, fmt.Errorf("request failed after retries: %w", lastErr)
}

func appSecretProof(appSecret, accessToken string) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(accessToken))
	return hex.EncodeToString(mac.Sum(nil))
}
