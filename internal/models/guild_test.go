package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildChannels(t *testing.T) {
	var g Guild
	assert.True(t, g.AllowsChannel("1"))

	assert.True(t, g.ToggleChannel("1"))
	assert.True(t, g.AllowsChannel("1"))
	assert.False(t, g.AllowsChannel("2"))

	assert.False(t, g.ToggleChannel("1"))
	assert.True(t, g.AllowsChannel("2"))
}

func TestGuildMap(t *testing.T) {
	g := Guild{ID: "1", Name: "쐐기단", Settings: GuildSettings{DefaultRealm: "azshara"}}
	m := g.Map()
	assert.Equal(t, "1", m["id"])

	var s GuildSettings
	require.NoError(t, json.Unmarshal(m["settings"].([]byte), &s))
	assert.Equal(t, "azshara", s.DefaultRealm)
	assert.Equal(t, TableGuilds, g.Table())
}
