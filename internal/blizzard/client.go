package blizzard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glotchimo/keystone/internal/api"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ThumbnailBase prefixes the relative thumbnail path of a character profile.
const ThumbnailBase = "https://render-kr.worldofwarcraft.com/character"

const characterFields = "guild,items,stats,progression"

// NewHTTPClient returns a client that authenticates every request with a
// client-credentials token, refreshing it as it expires.
func NewHTTPClient(ctx context.Context, clientID, clientSecret, tokenURL string, timeout time.Duration) *http.Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})
	h := cc.Client(ctx)
	h.Timeout = timeout

	return h
}

// Client talks to the official game-data API.
type Client struct {
	c      *api.Client
	region string
	locale string
}

func NewClient(base, region, locale string, h *http.Client, l *slog.Logger) *Client {
	return &Client{
		c:      api.NewClient("blizzard", base, h, l),
		region: region,
		locale: locale,
	}
}

func (c *Client) query(namespace string) url.Values {
	q := url.Values{"locale": {c.locale}}
	if namespace != "" {
		q.Set("namespace", fmt.Sprintf("%s-%s", namespace, c.region))
	}
	return q
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dest any) error {
	return c.c.Get(ctx, path, q, dest)
}

func characterPath(prefix, realm, name string) string {
	return fmt.Sprintf("%s/%s/%s", prefix, url.PathEscape(realm), url.PathEscape(strings.ToLower(name)))
}

func (c *Client) Races(ctx context.Context) (*RaceIndex, error) {
	var out RaceIndex
	if err := c.get(ctx, "/data/wow/playable-race/index", c.query("static"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Realms(ctx context.Context) (*RealmIndex, error) {
	var out RealmIndex
	if err := c.get(ctx, "/data/wow/realm/index", c.query("dynamic"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Classes(ctx context.Context) (*ClassIndex, error) {
	var out ClassIndex
	if err := c.get(ctx, "/data/wow/playable-class/index", c.query("static"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dungeons lists the keystone dungeons in the given locale.
func (c *Client) Dungeons(ctx context.Context, locale string) (*DungeonIndex, error) {
	q := c.query("dynamic")
	q.Set("locale", locale)

	var out DungeonIndex
	if err := c.get(ctx, "/data/wow/mythic-keystone/dungeon/index", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Character(ctx context.Context, realm, name string) (*Character, error) {
	q := c.query("")
	q.Set("fields", characterFields)

	var out Character
	if err := c.get(ctx, characterPath("/wow/character", realm, name), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CharacterItems(ctx context.Context, realm, name string) (*Equipment, error) {
	var out Equipment
	if err := c.get(ctx, characterPath("/profile/wow/character", realm, name)+"/equipment", c.query("profile"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CharacterMedia(ctx context.Context, realm, name string) (*Media, error) {
	var out Media
	if err := c.get(ctx, characterPath("/profile/wow/character", realm, name)+"/character-media", c.query("profile"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CharacterTalents(ctx context.Context, realm, name string) (*Talents, error) {
	q := c.query("")
	q.Set("fields", "talents")

	var out Talents
	if err := c.get(ctx, characterPath("/wow/character", realm, name), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GuildMembers(ctx context.Context, realm, guild string) (*Roster, error) {
	q := c.query("")
	q.Set("fields", "members")

	var out Roster
	path := fmt.Sprintf("/wow/guild/%s/%s", url.PathEscape(realm), url.PathEscape(guild))
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MythicKeystonePeriod resolves the current keystone period and fetches its
// start and end timestamps.
func (c *Client) MythicKeystonePeriod(ctx context.Context) (*Period, error) {
	var index struct {
		Current struct {
			ID int `json:"id"`
		} `json:"current_period"`
	}
	if err := c.get(ctx, "/data/wow/mythic-keystone/period/index", c.query("dynamic"), &index); err != nil {
		return nil, err
	}

	var out Period
	path := fmt.Sprintf("/data/wow/mythic-keystone/period/%d", index.Current.ID)
	if err := c.get(ctx, path, c.query("dynamic"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TokenPrice(ctx context.Context) (*Token, error) {
	var out Token
	if err := c.get(ctx, "/data/wow/token/index", c.query("dynamic"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
