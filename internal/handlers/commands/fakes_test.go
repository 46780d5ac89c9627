package commands

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/glotchimo/keystone/internal/api"
	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/glotchimo/keystone/internal/models"
	"github.com/glotchimo/keystone/internal/raider"
	"github.com/glotchimo/keystone/internal/reference"
)

func notFound(path string) error {
	return &api.StatusError{Upstream: "fake", Code: 404, Path: path}
}

var errTransport = errors.New("connection refused")

type fakeProgression struct {
	mu         sync.Mutex
	calls      int
	characters map[string]*raider.Character
	affixes    *raider.Affixes
	err        error
}

func (f *fakeProgression) Character(_ context.Context, realm, name string) (*raider.Character, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.err != nil {
		return nil, f.err
	}
	ch, ok := f.characters[name]
	if !ok {
		return nil, notFound("/characters/profile")
	}
	return ch, nil
}

func (f *fakeProgression) WeeklyAffixes(context.Context) (*raider.Affixes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.err != nil {
		return nil, f.err
	}
	return f.affixes, nil
}

type fakeGameData struct {
	mu    sync.Mutex
	calls int

	character *blizzard.Character
	items     *blizzard.Equipment
	media     *blizzard.Media
	talents   *blizzard.Talents
	roster    *blizzard.Roster
	period    *blizzard.Period
	token     *blizzard.Token
	err       error
}

func result[T any](f *fakeGameData, v *T, path string) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.err != nil {
		return nil, f.err
	}
	if v == nil {
		return nil, notFound(path)
	}
	return v, nil
}

func (f *fakeGameData) Character(context.Context, string, string) (*blizzard.Character, error) {
	return result(f, f.character, "/wow/character")
}

func (f *fakeGameData) CharacterItems(context.Context, string, string) (*blizzard.Equipment, error) {
	return result(f, f.items, "/equipment")
}

func (f *fakeGameData) CharacterMedia(context.Context, string, string) (*blizzard.Media, error) {
	return result(f, f.media, "/character-media")
}

func (f *fakeGameData) CharacterTalents(context.Context, string, string) (*blizzard.Talents, error) {
	return result(f, f.talents, "/wow/character")
}

func (f *fakeGameData) GuildMembers(context.Context, string, string) (*blizzard.Roster, error) {
	return result(f, f.roster, "/wow/guild")
}

func (f *fakeGameData) MythicKeystonePeriod(context.Context) (*blizzard.Period, error) {
	return result(f, f.period, "/mythic-keystone/period")
}

func (f *fakeGameData) TokenPrice(context.Context) (*blizzard.Token, error) {
	return result(f, f.token, "/token/index")
}

// fakeStore holds the stored copy of a single server.
type fakeStore struct {
	current models.Guild
	saved   []models.Guild
	err     error
}

func (f *fakeStore) UpdateSettings(_ context.Context, guildID string, update func(*models.Guild)) (models.Guild, error) {
	if f.err != nil {
		return models.Guild{}, f.err
	}
	if guildID != f.current.ID {
		return models.Guild{}, errors.New("unknown guild")
	}
	g := f.current
	g.Settings.ChannelIDs = slices.Clone(g.Settings.ChannelIDs)
	update(&g)
	f.current = g
	f.saved = append(f.saved, g)
	return g, nil
}

func testReference() *reference.Data {
	return &reference.Data{
		Races:   reference.NewTable(map[int]string{2: "오크", 10: "블러드 엘프"}),
		Classes: reference.NewTable(map[int]string{8: "마법사", 11: "드루이드"}),
		Realms: reference.NewRealms([]blizzard.Realm{
			{ID: 205, Name: "아즈샤라", Slug: "azshara"},
			{ID: 210, Name: "헬스크림", Slug: "hellscream"},
			{ID: 3661, Name: "하늘빛 안개", Slug: "azuremyst"},
		}),
		Dungeons: reference.NewTable(map[string]string{"atal'dazar": "아탈다자르"}),
	}
}

func deps(p handlers.Progression, g handlers.GameData, args ...string) handlers.Dependencies {
	return handlers.Dependencies{
		Logger:      slog.Default(),
		Reference:   testReference(),
		Progression: p,
		GameData:    g,
		Settings: handlers.Settings{
			Prefix:       "!",
			Region:       "kr",
			DefaultRealm: "hellscream",
			GuildRealm:   "hellscream",
			GuildName:    "쐐기단",
		},
		Args: args,
	}
}

func scored(name string, score float64, runs ...raider.Run) *raider.Character {
	ch := &raider.Character{Name: name, WeeklyRuns: runs}
	ch.Seasons = make([]raider.SeasonScores, 1)
	ch.Seasons[0].Scores.All = score
	return ch
}
