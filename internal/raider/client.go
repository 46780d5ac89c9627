package raider

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/glotchimo/keystone/internal/api"
)

const characterFields = "gear,mythic_plus_scores_by_season:current,mythic_plus_weekly_highest_level_runs"

// Client talks to the raider.io progression-score API.
type Client struct {
	c      *api.Client
	region string
	locale string
}

// NewClient takes the region ("kr") and a game locale such as "ko_KR"; only
// the language part of the locale is sent upstream.
func NewClient(base, region, locale string, h *http.Client, l *slog.Logger) *Client {
	lang, _, _ := strings.Cut(locale, "_")
	return &Client{
		c:      api.NewClient("raider", base, h, l),
		region: region,
		locale: lang,
	}
}

func (c *Client) Character(ctx context.Context, realm, name string) (*Character, error) {
	q := url.Values{
		"region": {c.region},
		"realm":  {realm},
		"name":   {name},
		"fields": {characterFields},
	}

	var ch Character
	if err := c.c.Get(ctx, "/characters/profile", q, &ch); err != nil {
		return nil, err
	}

	return &ch, nil
}

func (c *Client) WeeklyAffixes(ctx context.Context) (*Affixes, error) {
	q := url.Values{
		"region": {c.region},
		"locale": {c.locale},
	}

	var a Affixes
	if err := c.c.Get(ctx, "/mythic-plus/affixes", q, &a); err != nil {
		return nil, err
	}

	return &a, nil
}
