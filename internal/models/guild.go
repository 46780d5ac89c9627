package models

import (
	"encoding/json"
	"slices"
	"time"
)

type GuildSettings struct {
	// ChannelIDs restricts commands to these channels. Empty allows all.
	ChannelIDs   []string `json:"channel_ids,omitempty"`
	DefaultRealm string   `json:"default_realm,omitempty"`
}

type Guild struct {
	ID       string
	Name     string
	Settings GuildSettings
	Created  time.Time
	Updated  *time.Time
	Deleted  *time.Time
}

func (g Guild) Map() map[string]any {
	settings, _ := json.Marshal(g.Settings)

	return map[string]any{
		"id":       g.ID,
		"name":     g.Name,
		"settings": settings,
		"created":  g.Created,
	}
}

func (g Guild) Table() Table {
	return TableGuilds
}

func (g Guild) AllowsChannel(channelID string) bool {
	return len(g.Settings.ChannelIDs) == 0 || slices.Contains(g.Settings.ChannelIDs, channelID)
}

// ToggleChannel adds the channel to the allow list, or removes it when it is
// already there. It reports whether the channel is now allowed explicitly.
func (g *Guild) ToggleChannel(channelID string) bool {
	if i := slices.Index(g.Settings.ChannelIDs, channelID); i >= 0 {
		g.Settings.ChannelIDs = slices.Delete(g.Settings.ChannelIDs, i, i+1)
		return false
	}
	g.Settings.ChannelIDs = append(g.Settings.ChannelIDs, channelID)
	return true
}
