package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/glotchimo/keystone/internal/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/graxinc/errutil"
	_ "github.com/lib/pq"
)

// Database stores per-server settings.
type Database struct {
	l       *slog.Logger
	db      *sql.DB
	builder sq.StatementBuilderType
}

func NewDatabase(l *slog.Logger, databaseURL string) (*Database, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, errutil.With(err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	cache := sq.NewStmtCache(db)
	database := Database{l: l, db: db, builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(cache)}

	if err := database.Migrate(databaseURL); err != nil {
		return nil, errutil.With(err)
	}

	return &database, nil
}

func (db *Database) Close() error {
	return db.db.Close()
}

func (db *Database) Migrate(databaseURL string) error {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return errutil.With(err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errutil.With(err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return errutil.With(err)
	}

	db.l.Info("migrations applied", "version", version, "dirty", dirty)

	return nil
}

func (db *Database) Update(ctx context.Context, table models.Table, where sq.Eq, updates map[string]any) error {
	updates["updated"] = time.Now().UTC()
	q := db.builder.
		Update(string(table)).
		SetMap(updates).
		Where(where)
	if _, err := q.ExecContext(ctx); err != nil {
		return errutil.With(err)
	}

	return nil
}

// PutGuild inserts the guild or refreshes its name, leaving settings intact.
func (db *Database) PutGuild(ctx context.Context, guild models.Guild) error {
	m := guild.Map()
	m["created"] = time.Now().UTC()
	q := db.builder.
		Insert(string(models.TableGuilds)).
		SetMap(m).
		Suffix(`ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated = now()`)
	if _, err := q.ExecContext(ctx); err != nil {
		return errutil.With(err)
	}

	return nil
}

// GetGuild returns sql.ErrNoRows, wrapped, for unknown guilds.
func (db *Database) GetGuild(ctx context.Context, id string) (*models.Guild, error) {
	var g models.Guild
	var settingsRaw []byte

	q := db.builder.
		Select(
			"id",
			"name",
			"settings",
			"created",
			"updated",
			"deleted").
		From(string(models.TableGuilds)).
		Where(sq.Eq{"id": id})

	if err := q.QueryRowContext(ctx).Scan(
		&g.ID,
		&g.Name,
		&settingsRaw,
		&g.Created,
		&g.Updated,
		&g.Deleted,
	); err != nil {
		return nil, errutil.Wrap(err)
	}

	if err := json.Unmarshal(settingsRaw, &g.Settings); err != nil {
		return nil, errutil.With(err)
	}

	return &g, nil
}

func (db *Database) SaveSettings(ctx context.Context, guild models.Guild) error {
	settings, err := json.Marshal(guild.Settings)
	if err != nil {
		return errutil.With(err)
	}

	return db.Update(ctx, models.TableGuilds, sq.Eq{"id": guild.ID}, map[string]any{
		"settings": settings,
	})
}
