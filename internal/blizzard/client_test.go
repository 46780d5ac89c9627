package blizzard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glotchimo/keystone/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "ko_KR", r.URL.Query().Get("locale"))
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "kr", "ko_KR", srv.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCharacter(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/wow/character/azuremyst/팬더곰": `{
			"name": "팬더곰", "class": 8, "race": 10, "faction": 1, "thumbnail": "a/b-avatar.jpg",
			"guild": {"name": "쐐기단"},
			"items": {"averageItemLevel": 430, "averageItemLevelEquipped": 428,
				"neck": {"itemLevel": 462, "azeriteItem": {"azeriteLevel": 70}}},
			"stats": {"crit": 21.5, "haste": 18.25, "mastery": 30.1, "versatilityDamageDoneBonus": 5},
			"progression": {"raids": [
				{"name": "old", "bosses": []},
				{"name": "니알로사", "bosses": [{"name": "a", "normalKills": 1, "heroicKills": 0, "mythicKills": 0}]}
			]}
		}`,
	})

	ch, err := c.Character(context.Background(), "azuremyst", "팬더곰")
	require.NoError(t, err)
	assert.Equal(t, "쐐기단", ch.Guild.Name)
	assert.Equal(t, 428, ch.Items.AverageItemLevelEquipped)
	assert.Equal(t, 70, ch.Items.Neck.AzeriteItem.AzeriteLevel)
	assert.Equal(t, 5.0, ch.Stats.Versatility)

	raid, ok := ch.LatestRaid()
	require.True(t, ok)
	assert.Equal(t, "니알로사", raid.Name)
}

func TestCharacterNotFound(t *testing.T) {
	c := newTestClient(t, nil)

	_, err := c.Character(context.Background(), "azuremyst", "nobody")
	assert.True(t, errors.Is(err, api.ErrStatus))
}

func TestEquipmentPathIsLowercase(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/profile/wow/character/azuremyst/pandabear/equipment": `{"equipped_items": [
			{"item": {"id": 1}, "slot": {"type": "HEAD", "name": "머리"}, "name": "투구",
			 "azerite_details": {"selected_powers": [{"id": 1, "tier": 3, "spell_tooltip": {"spell": {"id": 2, "name": "x"}}}]}}
		]}`,
	})

	eq, err := c.CharacterItems(context.Background(), "azuremyst", "PandaBear")
	require.NoError(t, err)
	require.Len(t, eq.Items, 1)
	require.NotNil(t, eq.Items[0].Azerite)
	assert.Equal(t, "x", eq.Items[0].Azerite.Powers[0].Tooltip.Spell.Name)
}

func TestMythicKeystonePeriod(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/data/wow/mythic-keystone/period/index": `{"current_period": {"id": 742}}`,
		"/data/wow/mythic-keystone/period/742":   `{"id": 742, "start_timestamp": 1609459200000, "end_timestamp": 1609545600000}`,
	})

	p, err := c.MythicKeystonePeriod(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1609459200000), p.StartTimestamp)
	assert.Equal(t, int64(1609545600000), p.EndTimestamp)
}

func TestDungeonsLocale(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dynamic-kr", r.URL.Query().Get("namespace"))
		assert.Equal(t, "en_US", r.URL.Query().Get("locale"))
		w.Write([]byte(`{"dungeons": [{"id": 244, "name": "Atal'Dazar"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "kr", "ko_KR", srv.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	d, err := c.Dungeons(context.Background(), "en_US")
	require.NoError(t, err)
	assert.Equal(t, "Atal'Dazar", d.Dungeons[0].Name)
}

func TestNewHTTPClientAuthenticates(t *testing.T) {
	var sawBearer bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/token" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "abc", "token_type": "bearer", "expires_in": 3600}`))
			return
		}
		sawBearer = r.Header.Get("Authorization") == "Bearer abc"
		w.Write([]byte(`{"price": 10000}`))
	}))
	defer srv.Close()

	h := NewHTTPClient(context.Background(), "id", "secret", srv.URL+"/token", time.Second)
	c := NewClient(srv.URL, "kr", "ko_KR", h, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tok, err := c.TokenPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10000), tok.Price)
	assert.True(t, sawBearer)
}
