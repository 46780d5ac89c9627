package raider

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glotchimo/keystone/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileJSON = `{
	"name": "PandaBear",
	"realm": "Azuremyst",
	"class": "Mage",
	"mythic_plus_scores_by_season": [{"season": "season-bfa-4", "scores": {"all": 1523.4}}],
	"mythic_plus_weekly_highest_level_runs": [
		{"dungeon": "Atal'Dazar", "short_name": "AD", "mythic_level": 15, "num_keystone_upgrades": 2}
	]
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "kr", "ko_KR", srv.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCharacter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/characters/profile", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "kr", q.Get("region"))
		assert.Equal(t, "azuremyst", q.Get("realm"))
		assert.Equal(t, "PandaBear", q.Get("name"))
		assert.Equal(t, characterFields, q.Get("fields"))
		w.Write([]byte(profileJSON))
	})

	ch, err := c.Character(context.Background(), "azuremyst", "PandaBear")
	require.NoError(t, err)
	assert.Equal(t, 1523.4, ch.Score())

	run, ok := ch.WeeklyBest()
	require.True(t, ok)
	assert.Equal(t, "Atal'Dazar", run.Dungeon)
	assert.Equal(t, 15, run.MythicLevel)
	assert.Equal(t, 2, run.KeystoneUpgrades)
}

func TestCharacterNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	ch, err := c.Character(context.Background(), "azuremyst", "Nobody")
	assert.Nil(t, ch)
	assert.True(t, errors.Is(err, api.ErrStatus))
}

func TestWeeklyAffixes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mythic-plus/affixes", r.URL.Path)
		assert.Equal(t, "ko", r.URL.Query().Get("locale"))
		w.Write([]byte(`{"title": "x", "affix_details": [{"id": 10, "name": "경화", "description": "d"}]}`))
	})

	a, err := c.WeeklyAffixes(context.Background())
	require.NoError(t, err)
	require.Len(t, a.Details, 1)
	assert.Equal(t, "경화", a.Details[0].Name)
}

func TestEmptyCharacter(t *testing.T) {
	var ch Character
	assert.Zero(t, ch.Score())
	_, ok := ch.WeeklyBest()
	assert.False(t, ok)
}
