package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	dg "github.com/bwmarrin/discordgo"
	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/cache"
	"github.com/glotchimo/keystone/internal/database"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/glotchimo/keystone/internal/handlers/commands"
	"github.com/glotchimo/keystone/internal/models"
	"github.com/glotchimo/keystone/internal/raider"
	"github.com/glotchimo/keystone/internal/reference"
	"github.com/glotchimo/keystone/internal/response"
	"github.com/glotchimo/keystone/internal/utils"
	"github.com/graxinc/errutil"
)

// directMessages keys the event queue shared by all direct messages.
const directMessages = ""

// canonicalLocale is the locale the progression API names dungeons in.
const canonicalLocale = "en_US"

type Options struct {
	Debug      bool
	Token      string
	Intents    int
	ShardID    int
	ShardCount int

	Prefix      string
	Playing     string
	HomeGuildID string

	DatabaseURL string
	CacheURL    string
	StaticTTL   time.Duration
	RateLimit   int
	RateWindow  time.Duration

	Region       string
	Locale       string
	DefaultRealm string
	DefaultGuild string
	HTTPTimeout  time.Duration

	BlizzardClientID     string
	BlizzardClientSecret string
	BlizzardTokenURL     string
	BlizzardAPIURL       string
	RaiderAPIURL         string
}

type GuildEvent struct {
	Message *dg.MessageCreate
}

type GuildContext struct {
	Context context.Context
	Cancel  context.CancelFunc
	Events  chan GuildEvent
}

type Bot struct {
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options

	s  *dg.Session
	d  *database.Database
	c  *cache.Cache
	l  *slog.Logger
	r  *response.Responder
	gs *guildSettings

	ref         *reference.Data
	// guildRealm is the slug of the leaderboard guild's realm.
	guildRealm  string
	progression handlers.Progression
	gameData    handlers.GameData
	cooldown    *Cooldown

	lookup   map[string]handlers.Handler
	commands []handlers.Metadata
	contexts map[string]*GuildContext
}

func NewBot(opts Options) (*Bot, error) {
	b := Bot{
		opts:     opts,
		contexts: make(map[string]*GuildContext),
		cooldown: NewCooldown(opts.RateLimit, opts.RateWindow),
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.ctx = ctx
	b.cancel = cancel

	if opts.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		b.l = slog.Default()
	} else {
		b.l = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	}

	if opts.DatabaseURL != "" {
		database, err := database.NewDatabase(b.l, opts.DatabaseURL)
		if err != nil {
			return nil, errutil.With(err)
		}
		b.d = database
		b.gs = newGuildSettings(database, b.l)
	} else {
		b.l.Info("no database url configured, server settings disabled")
	}

	cache, err := cache.NewCache(opts.CacheURL, b.l)
	if err != nil {
		return nil, errutil.With(err)
	}
	b.c = cache

	gameData := blizzard.NewClient(
		opts.BlizzardAPIURL,
		opts.Region,
		opts.Locale,
		blizzard.NewHTTPClient(ctx, opts.BlizzardClientID, opts.BlizzardClientSecret, opts.BlizzardTokenURL, opts.HTTPTimeout),
		b.l,
	)
	b.gameData = gameData
	b.progression = raider.NewClient(opts.RaiderAPIURL, opts.Region, opts.Locale, &http.Client{Timeout: opts.HTTPTimeout}, b.l)

	b.register(
		&commands.Help{},
		&commands.Character{},
		&commands.Azerite{},
		&commands.Appearance{},
		&commands.Talents{},
		handlers.NewStatic(&commands.Affixes{}, b.c, opts.StaticTTL),
		handlers.NewStatic(&commands.Token{}, b.c, opts.StaticTTL),
		handlers.NewStatic(&commands.Weekly{}, b.c, opts.StaticTTL),
		&commands.Channel{},
		&commands.Realm{},
	)

	// Commands are served only once the reference tables exist.
	start := time.Now()
	b.ref = reference.Load(ctx, gameData, canonicalLocale, opts.Locale, b.l)
	b.l.Info("reference data ready", "duration", time.Since(start))
	b.guildRealm = resolveRealm(b.ref.Realms, opts.DefaultRealm, b.l)

	session, err := dg.New("Bot " + opts.Token)
	if err != nil {
		return nil, errutil.With(err)
	}
	b.s = session

	b.s.Identify.Intents = dg.Intent(opts.Intents)

	b.s.ShardID = opts.ShardID
	b.s.ShardCount = opts.ShardCount
	b.l.Info("sharding enabled", "shard_id", opts.ShardID, "shard_count", opts.ShardCount)

	b.r = response.NewSessionResponder(b.s, b.l)

	b.s.AddHandler(func(s *dg.Session, r *dg.Ready) {
		b.l.Info("bot connected to gateway",
			"bot", fmt.Sprintf("%s#%s", r.User.Username, r.User.Discriminator),
			"guilds", len(s.State.Guilds),
			"version", utils.GetCommit(),
			"shard_id", opts.ShardID,
			"shard_count", opts.ShardCount,
		)

		if err := s.UpdateGameStatus(0, opts.Playing); err != nil {
			b.l.Error("error setting bot status", "error", err)
		}
	})

	b.s.AddHandler(func(s *dg.Session, g *dg.GuildCreate) { b.join(g.Guild) })
	b.s.AddHandler(func(s *dg.Session, g *dg.GuildDelete) { b.leave(g.Guild) })
	b.s.AddHandler(func(s *dg.Session, m *dg.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		if _, _, ok := utils.ParseCommand(m.Content, opts.Prefix); !ok {
			return
		}
		b.enqueue(m.GuildID, GuildEvent{Message: m})
	})

	b.ensure(directMessages)
	go b.dispatch(directMessages)
	go b.sweep()

	if err := b.s.Open(); err != nil {
		return nil, errutil.With(err)
	}

	return &b, nil
}

func (b *Bot) Close() {
	defer func() {
		if b.d != nil {
			b.d.Close()
		}
	}()
	defer b.c.Close()
	defer b.s.Close()

	b.cancel()
}

func (b *Bot) register(hs ...handlers.Handler) {
	b.lookup = make(map[string]handlers.Handler, len(hs))
	for _, h := range hs {
		md := h.Metadata()
		b.lookup[md.Name] = h
		b.commands = append(b.commands, md)
	}
}

func (b *Bot) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			b.cooldown.Sweep()
		}
	}
}

func (b *Bot) ensure(guildID string) *GuildContext {
	b.mu.RLock()
	if guildCtx, exists := b.contexts[guildID]; exists {
		b.mu.RUnlock()
		return guildCtx
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	if guildCtx, exists := b.contexts[guildID]; exists {
		return guildCtx
	}

	ctx, cancel := context.WithCancel(b.ctx)
	guildCtx := &GuildContext{
		Context: ctx,
		Cancel:  cancel,
		Events:  make(chan GuildEvent, 100),
	}

	b.contexts[guildID] = guildCtx
	return guildCtx
}

func (b *Bot) dispatch(guildID string) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			stack = stack[:runtime.Stack(stack, false)]
			b.l.Error("panic recovered", "guild", guildID, "recovered", r, "stack", stack)
			go b.dispatch(guildID)
		}
	}()

	ctx := b.ensure(guildID)

	for {
		select {
		case <-ctx.Context.Done():
			return
		case e := <-ctx.Events:
			if e.Message == nil {
				b.l.Warn("received nil message in dispatch", "guild", guildID)
				continue
			}
			b.invoke(ctx.Context, e.Message)
		}
	}
}

// invoke checks the gates of a prefixed message and runs its command in its
// own goroutine. Unknown commands are ignored.
func (b *Bot) invoke(ctx context.Context, m *dg.MessageCreate) {
	name, args, ok := utils.ParseCommand(m.Content, b.opts.Prefix)
	if !ok {
		return
	}

	h, ok := b.lookup[name]
	if !ok {
		return
	}
	md := h.Metadata()

	l := b.l.With("invocation", utils.GenerateID(), "command", md.Name, "guild", m.GuildID, "channel", m.ChannelID)
	l.Info("command issued", "user", m.Author.Username, "called", utils.FormatInvocation(b.opts.Prefix, name, args))

	var guild *models.Guild
	if b.gs != nil && m.GuildID != directMessages {
		guild = b.gs.get(m.GuildID)
	}

	if f, ok := b.gate(md, m, guild); !ok {
		b.fail(l, m.ChannelID, f)
		return
	}

	if !b.cooldown.Allow(m.Author.ID) {
		b.fail(l, m.ChannelID, utils.Failure{
			Type:    utils.ErrRateLimited,
			Message: "짧은 시간 동안 너무 많은 명령어를 입력하였습니다.\n잠시 후 다시 시도해주세요.",
			Data:    map[string]any{"user": m.Author.ID},
		})
		return
	}

	settings := handlers.Settings{
		Prefix:       b.opts.Prefix,
		Region:       b.opts.Region,
		DefaultRealm: b.opts.DefaultRealm,
		GuildRealm:   b.guildRealm,
		GuildName:    b.opts.DefaultGuild,
	}
	if guild != nil && guild.Settings.DefaultRealm != "" {
		settings.DefaultRealm = guild.Settings.DefaultRealm
	}

	dep := handlers.Dependencies{
		Logger:      l,
		Reference:   b.ref,
		Progression: b.progression,
		GameData:    b.gameData,
		Settings:    settings,
		Commands:    b.commands,
		Guild:       guild,
		ChannelID:   m.ChannelID,
		Args:        args,
	}
	if b.gs != nil {
		dep.Store = b.gs
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]
				l.Error("panic recovered", "recovered", r, "stack", stack)
				b.fail(l, m.ChannelID, utils.Failure{
					Type:    utils.ErrInternal,
					Message: fmt.Sprint(r),
					Data:    map[string]any{"recovered": fmt.Sprint(r)},
				})
			}
		}()

		b.r.Typing(m.ChannelID)

		start := time.Now()
		res, err := h.Handle(ctx, dep)
		if err != nil {
			var f utils.Failure
			if !errors.As(err, &f) {
				l.Error("error handling command", "error", err)
				f = utils.Failure{
					Type:    utils.ErrInternal,
					Message: err.Error(),
					Data:    map[string]any{"error": err.Error()},
				}
			}
			b.fail(l, m.ChannelID, f)
			return
		}

		if err := b.r.Send(m.ChannelID, res); err != nil {
			l.Error("error sending response", "error", err)
			return
		}
		l.Info("command handled", "duration", time.Since(start))
	}()
}

// gate rejects commands outside the home server, outside the server's allowed
// channels, and admin commands from members without Manage Server.
func (b *Bot) gate(md handlers.Metadata, m *dg.MessageCreate, guild *models.Guild) (utils.Failure, bool) {
	wrongChannel := utils.Failure{
		Type:    utils.ErrNotAllowed,
		Message: "현재 채널에서는 사용할 수 없는 명령어입니다.",
		Data:    map[string]any{"channel": m.ChannelID},
	}

	if md.HomeGuildOnly && b.opts.HomeGuildID != "" && m.GuildID != b.opts.HomeGuildID {
		return wrongChannel, false
	}

	if md.AdminOnly {
		if m.GuildID == directMessages {
			return utils.Failure{}, true
		}
		perms, err := b.s.UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil || perms&dg.PermissionManageServer == 0 {
			return utils.Failure{
				Type:    utils.ErrNotAllowed,
				Message: "서버 관리 권한이 있어야 사용할 수 있는 명령어입니다.",
				Data:    map[string]any{"user": m.Author.ID},
			}, false
		}
		return utils.Failure{}, true
	}

	if guild != nil && !guild.AllowsChannel(m.ChannelID) {
		return wrongChannel, false
	}

	return utils.Failure{}, true
}

// resolveRealm maps the configured realm, a slug or a localized name, to its
// slug. Realms missing from the reference data are slugified as given.
func resolveRealm(realms reference.Realms, realm string, l *slog.Logger) string {
	if realm == "" {
		return ""
	}
	if slug, ok := realms.Resolve(realm); ok {
		return slug
	}
	slug := utils.Slug(realm)
	l.Warn("default realm not found in reference data", "realm", realm, "slug", slug)
	return slug
}

func (b *Bot) fail(l *slog.Logger, channelID string, f utils.Failure) {
	if err := b.r.Fail(channelID, f); err != nil {
		l.Error("error sending failure", "error", err)
	}
}

func (b *Bot) enqueue(guildID string, event GuildEvent) {
	b.mu.RLock()
	ctx, ok := b.contexts[guildID]
	b.mu.RUnlock()

	if !ok {
		b.l.Warn("attempted to enqueue event for unknown guild", "guild", guildID)
		return
	}

	select {
	case ctx.Events <- event:
	case <-ctx.Context.Done():
		b.l.Debug("dropped event for cancelled guild context", "guild", guildID)
	default:
		b.l.Warn("event channel full, dropping event", "guild", guildID)
	}
}

func (b *Bot) join(g *dg.Guild) {
	b.mu.Lock()
	if existing, ok := b.contexts[g.ID]; ok {
		existing.Cancel()
	}

	ctx, cancel := context.WithCancel(b.ctx)
	b.contexts[g.ID] = &GuildContext{
		Context: ctx,
		Cancel:  cancel,
		Events:  make(chan GuildEvent, 100),
	}
	b.mu.Unlock()

	if b.gs != nil {
		if err := b.gs.load(b.ctx, g.ID, g.Name); err != nil {
			b.l.Error("error loading guild settings", "guild", g.ID, "error", err)
		}
	}

	b.l.Info("registered guild", "id", g.ID, "name", g.Name)

	go b.dispatch(g.ID)
}

func (b *Bot) leave(g *dg.Guild) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if guildCtx, ok := b.contexts[g.ID]; ok {
		guildCtx.Cancel()
		delete(b.contexts, g.ID)
	}

	if b.gs != nil {
		b.gs.forget(g.ID)
	}

	b.l.Info("removed guild", "id", g.ID)
}
