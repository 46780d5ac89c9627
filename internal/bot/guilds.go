package bot

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/glotchimo/keystone/internal/models"
	"github.com/graxinc/errutil"
)

type guildDatabase interface {
	PutGuild(ctx context.Context, guild models.Guild) error
	GetGuild(ctx context.Context, id string) (*models.Guild, error)
	SaveSettings(ctx context.Context, guild models.Guild) error
}

var errUnknownGuild = errors.New("guild settings not loaded")

// guildSettings keeps the settings of every joined server in memory and
// writes changes through to the database.
type guildSettings struct {
	mu sync.RWMutex
	// write serializes read-modify-write updates.
	write  sync.Mutex
	d      guildDatabase
	l      *slog.Logger
	guilds map[string]models.Guild
}

func newGuildSettings(d guildDatabase, l *slog.Logger) *guildSettings {
	return &guildSettings{d: d, l: l, guilds: make(map[string]models.Guild)}
}

// load stores a newly seen server, or refreshes its name, and caches its
// settings.
func (g *guildSettings) load(ctx context.Context, id, name string) error {
	if err := g.d.PutGuild(ctx, models.Guild{ID: id, Name: name}); err != nil {
		return errutil.With(err)
	}

	stored, err := g.d.GetGuild(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			stored = &models.Guild{ID: id, Name: name}
		} else {
			return errutil.With(err)
		}
	}

	g.mu.Lock()
	g.guilds[id] = *stored
	g.mu.Unlock()

	return nil
}

func (g *guildSettings) forget(id string) {
	g.mu.Lock()
	delete(g.guilds, id)
	g.mu.Unlock()
}

// get returns a copy of the server's settings, or nil when unknown.
func (g *guildSettings) get(id string) *models.Guild {
	g.mu.RLock()
	defer g.mu.RUnlock()

	guild, ok := g.guilds[id]
	if !ok {
		return nil
	}
	guild.Settings.ChannelIDs = slices.Clone(guild.Settings.ChannelIDs)
	return &guild
}

func (g *guildSettings) UpdateSettings(ctx context.Context, id string, update func(*models.Guild)) (models.Guild, error) {
	g.write.Lock()
	defer g.write.Unlock()

	guild := g.get(id)
	if guild == nil {
		return models.Guild{}, errutil.With(errUnknownGuild)
	}
	update(guild)

	if err := g.d.SaveSettings(ctx, *guild); err != nil {
		return models.Guild{}, errutil.With(err)
	}

	g.mu.Lock()
	g.guilds[id] = *guild
	g.mu.Unlock()

	g.l.Info("guild settings saved", "guild", id, "channels", len(guild.Settings.ChannelIDs), "default_realm", guild.Settings.DefaultRealm)

	return *guild, nil
}
