package handlers

import (
	"context"
	"log/slog"

	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/models"
	"github.com/glotchimo/keystone/internal/raider"
	"github.com/glotchimo/keystone/internal/reference"
)

// Progression is the progression-score upstream.
type Progression interface {
	Character(ctx context.Context, realm, name string) (*raider.Character, error)
	WeeklyAffixes(ctx context.Context) (*raider.Affixes, error)
}

// GameData is the official game-data upstream.
type GameData interface {
	Character(ctx context.Context, realm, name string) (*blizzard.Character, error)
	CharacterItems(ctx context.Context, realm, name string) (*blizzard.Equipment, error)
	CharacterMedia(ctx context.Context, realm, name string) (*blizzard.Media, error)
	CharacterTalents(ctx context.Context, realm, name string) (*blizzard.Talents, error)
	GuildMembers(ctx context.Context, realm, guild string) (*blizzard.Roster, error)
	MythicKeystonePeriod(ctx context.Context) (*blizzard.Period, error)
	TokenPrice(ctx context.Context) (*blizzard.Token, error)
}

// GuildStore applies settings changes to a server. UpdateSettings runs update
// on the latest stored copy and returns the saved result.
type GuildStore interface {
	UpdateSettings(ctx context.Context, guildID string, update func(*models.Guild)) (models.Guild, error)
}

type Settings struct {
	Prefix string
	Region string
	// DefaultRealm applies to "name" arguments without a realm.
	DefaultRealm string
	// GuildRealm and GuildName locate the in-game guild of the leaderboard.
	GuildRealm string
	GuildName  string
}

type Dependencies struct {
	Logger      *slog.Logger
	Reference   *reference.Data
	Progression Progression
	GameData    GameData
	Settings    Settings
	Commands    []Metadata

	// Guild is nil in direct messages and when no store is configured.
	Guild     *models.Guild
	Store     GuildStore
	ChannelID string
	Args      []string
}

type Metadata struct {
	Name        string
	Description string
	// HomeGuildOnly commands run only in the configured home server.
	HomeGuildOnly bool
	// AdminOnly commands need the Manage Server permission.
	AdminOnly bool
}

// Handler produces the card for one command. User-facing failures are
// returned as utils.Failure.
type Handler interface {
	Metadata() Metadata
	Handle(context.Context, Dependencies) (*display.Response, error)
}
