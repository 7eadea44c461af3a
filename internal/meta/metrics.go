package meta

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// Metrics aggregates page-level insight numbers for the admin dashboard.
type Metrics struct {
	Facebook  FacebookMetrics  `json:"facebook"`
	Instagram InstagramMetrics `json:"instagram"`
	Timestamp time.Time        `json:"timestamp"`
}

type FacebookMetrics struct {
	Impressions int64 `json:"impressions"`
	Engagement  int64 `json:"engagement"`
	Views       int64 `json:"views"`
	Followers   int64 `json:"followers"`
}

type InstagramMetrics struct {
	Connected   bool   `json:"connected"`
	AccountID   string `json:"accountId,omitempty"`
	Impressions int64  `json:"impressions,omitempty"`
	Reach       int64  `json:"reach,omitempty"`
	Followers   int64  `json:"followers,omitempty"`
}

type insightsResponse struct {
	Data []struct {
		Name   string `json:"name"`
		Values []struct {
			Value int64 `json:"value"`
		} `json:"values"`
	} `json:"data"`
}

type igFollowersResponse struct {
	FollowersCount int64 `json:"followers_count"`
}

// PageMetrics fetches 28-day Facebook page insights plus lifetime follower
// count, and Instagram insights when a business account is linked. Instagram
// failures leave that section marked disconnected rather than failing the
// whole call.
func (c *Client) PageMetrics(ctx context.Context) (*Metrics, error) {
	metrics := &Metrics{Timestamp: time.Now().UTC()}

	periodicParams := url.Values{}
	periodicParams.Set("metric", "page_impressions,page_post_engagements,page_views_total")
	periodicParams.Set("period", "days_28")

	var periodic insightsResponse
	if err := c.get(ctx, "/"+c.cfg.PageID+"/insights", periodicParams, &periodic); err != nil {
		return nil, fmt.Errorf("fetch page insights: %w", err)
	}

	fansParams := url.Values{}
	fansParams.Set("metric", "page_fans")
	fansParams.Set("period", "lifetime")

	var fans insightsResponse
	if err := c.get(ctx, "/"+c.cfg.PageID+"/insights", fansParams, &fans); err != nil {
		return nil, fmt.Errorf("fetch page fans: %w", err)
	}

	metrics.Facebook = FacebookMetrics{
		Impressions: lastValue(periodic, "page_impressions"),
		Engagement:  lastValue(periodic, "page_post_engagements"),
		Views:       lastValue(periodic, "page_views_total"),
		Followers:   lastValue(fans, "page_fans"),
	}

	c.fillInstagramMetrics(ctx, metrics)

	return metrics, nil
}

func (c *Client) fillInstagramMetrics(ctx context.Context, metrics *Metrics) {
	params := url.Values{}
	params.Set("fields", "instagram_business_account")

	var account igAccountResponse
	if err := c.get(ctx, "/"+c.cfg.PageID, params, &account); err != nil || account.InstagramBusinessAccount == nil {
		if err != nil {
			slog.Warn("instagram metrics unavailable", "error", err)
		}
		metrics.Instagram.Connected = false
		return
	}

	igID := account.InstagramBusinessAccount.ID
	metrics.Instagram.Connected = true
	metrics.Instagram.AccountID = igID

	followerParams := url.Values{}
	followerParams.Set("fields", "followers_count")

	var followers igFollowersResponse
	if err := c.get(ctx, "/"+igID, followerParams, &followers); err != nil {
		slog.Warn("failed to fetch instagram followers", "error", err)
	} else {
		metrics.Instagram.Followers = followers.FollowersCount
	}

	insightParams := url.Values{}
	insightParams.Set("metric", "impressions,reach")
	insightParams.Set("period", "days_28")

	var insights insightsResponse
	if err := c.get(ctx, "/"+igID+"/insights", insightParams, &insights); err != nil {
		slog.Warn("failed to fetch instagram insights", "error", err)
		return
	}

	metrics.Instagram.Impressions = lastValue(insights, "impressions")
	metrics.Instagram.Reach = lastValue(insights, "reach")
}

// lastValue returns the most recent value of a named metric, or 0 when the
// metric is missing.
func lastValue(resp insightsResponse, name string) int64 {
	for _, m := range resp.Data {
		if m.Name != name || len(m.Values) == 0 {
			continue
		}
		return m.Values[len(m.Values)-1].Value
	}
	return 0
}
