package reference

import (
	"context"
	"log/slog"
	"strings"

	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/utils"
	"github.com/sourcegraph/conc"
)

// Unknown is shown for keys missing from a table.
const Unknown = "알 수 없음"

// Table maps an id to a localized display name. It is never mutated after
// construction.
type Table[K comparable] struct {
	names map[K]string
}

func NewTable[K comparable](names map[K]string) Table[K] {
	t := Table[K]{names: make(map[K]string, len(names))}
	for k, v := range names {
		t.names[k] = v
	}
	return t
}

func (t Table[K]) Exists(key K) bool {
	_, ok := t.names[key]
	return ok
}

func (t Table[K]) Name(key K) string {
	if name, ok := t.names[key]; ok {
		return name
	}
	return Unknown
}

func (t Table[K]) Len() int {
	return len(t.names)
}

// Realms resolves user input (a slug or a localized name) to a realm slug.
type Realms struct {
	slugs Table[string]
	names Table[string]
}

func NewRealms(realms []blizzard.Realm) Realms {
	slugs := make(map[string]string, len(realms)*2)
	names := make(map[string]string, len(realms))
	for _, r := range realms {
		slugs[utils.Slug(r.Slug)] = r.Slug
		slugs[utils.Slug(r.Name)] = r.Slug
		names[r.Slug] = r.Name
	}
	return Realms{slugs: NewTable(slugs), names: NewTable(names)}
}

func (r Realms) Resolve(input string) (string, bool) {
	key := utils.Slug(input)
	if !r.slugs.Exists(key) {
		return "", false
	}
	return r.slugs.Name(key), true
}

func (r Realms) Exists(input string) bool {
	_, ok := r.Resolve(input)
	return ok
}

// Name is the localized realm name for a slug or localized name.
func (r Realms) Name(input string) string {
	slug, ok := r.Resolve(input)
	if !ok {
		return Unknown
	}
	return r.names.Name(slug)
}

func (r Realms) Len() int {
	return r.names.Len()
}

// Data holds every reference table. It is built once by Load.
type Data struct {
	Races    Table[int]
	Classes  Table[int]
	Realms   Realms
	Dungeons Table[string]
}

// Dungeon resolves a dungeon by its name in the canonical locale.
func (d *Data) Dungeon(name string) string {
	return d.Dungeons.Name(strings.ToLower(name))
}

type Source interface {
	Races(context.Context) (*blizzard.RaceIndex, error)
	Realms(context.Context) (*blizzard.RealmIndex, error)
	Classes(context.Context) (*blizzard.ClassIndex, error)
	Dungeons(ctx context.Context, locale string) (*blizzard.DungeonIndex, error)
}

// Load fetches every reference dataset concurrently. A failed dataset leaves
// its table empty and is logged; lookups then resolve to Unknown.
func Load(ctx context.Context, src Source, canonicalLocale, displayLocale string, l *slog.Logger) *Data {
	var (
		races              *blizzard.RaceIndex
		realms             *blizzard.RealmIndex
		classes            *blizzard.ClassIndex
		canonical, display *blizzard.DungeonIndex
		wg                 conc.WaitGroup
	)

	wg.Go(func() { races = fetch(ctx, l, "races", src.Races) })
	wg.Go(func() { realms = fetch(ctx, l, "realms", src.Realms) })
	wg.Go(func() { classes = fetch(ctx, l, "classes", src.Classes) })
	wg.Go(func() {
		canonical = fetch(ctx, l, "dungeons", func(ctx context.Context) (*blizzard.DungeonIndex, error) {
			return src.Dungeons(ctx, canonicalLocale)
		})
	})
	wg.Go(func() {
		display = fetch(ctx, l, "dungeons", func(ctx context.Context) (*blizzard.DungeonIndex, error) {
			return src.Dungeons(ctx, displayLocale)
		})
	})
	wg.Wait()

	d := Data{
		Races:    NewTable(map[int]string{}),
		Classes:  NewTable(map[int]string{}),
		Realms:   NewRealms(nil),
		Dungeons: NewTable(map[string]string{}),
	}
	if races != nil {
		d.Races = indexNames(races.Races)
	}
	if classes != nil {
		d.Classes = indexNames(classes.Classes)
	}
	if realms != nil {
		d.Realms = NewRealms(realms.Realms)
	}
	if canonical != nil && display != nil {
		d.Dungeons = ReconcileDungeons(canonical.Dungeons, display.Dungeons)
	}

	l.Info("reference data loaded",
		"races", d.Races.Len(),
		"classes", d.Classes.Len(),
		"realms", d.Realms.Len(),
		"dungeons", d.Dungeons.Len(),
	)

	return &d
}

func fetch[T any](ctx context.Context, l *slog.Logger, table string, f func(context.Context) (*T, error)) *T {
	v, err := f(ctx)
	if err != nil {
		l.Error("error loading reference table", "table", table, "error", err)
		return nil
	}
	return v
}

func indexNames(entries []blizzard.Named) Table[int] {
	names := make(map[int]string, len(entries))
	for _, e := range entries {
		names[e.ID] = e.Name
	}
	return NewTable(names)
}

// ReconcileDungeons keys dungeons by their lowercased canonical-locale name and
// displays them by their name in the display locale. Entries of the display
// listing whose id is absent from the canonical listing are dropped.
func ReconcileDungeons(canonical, display []blizzard.Named) Table[string] {
	keys := make(map[int]string, len(canonical))
	for _, d := range canonical {
		keys[d.ID] = strings.ToLower(d.Name)
	}

	names := make(map[string]string, len(display))
	for _, d := range display {
		if key, ok := keys[d.ID]; ok {
			names[key] = d.Name
		}
	}

	return NewTable(names)
}
