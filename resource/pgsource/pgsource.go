// Package pgsource loads message resources from a PostgreSQL table.
//
// Each row holds a definition code and a template; the locator selects the
// rows whose catalog column matches it, so a single table can hold several
// resources.
package pgsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/loopcontext/msgcode"
	"go.uber.org/zap"
)

const undefinedTableCode = "42P01"

type LoaderCfg struct {
	Logger *zap.Logger

	URI string

	Table         string
	CatalogColumn string
	CodeColumn    string
	TextColumn    string
}

// Querier is the subset of a pgx pool used by the loader.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type Loader struct {
	Cfg LoaderCfg
	Log *zap.Logger

	db   Querier
	pool *pgxpool.Pool
}

func (cfg *LoaderCfg) setDefaults() {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Table == "" {
		cfg.Table = "messages"
	}
	if cfg.CatalogColumn == "" {
		cfg.CatalogColumn = "catalog"
	}
	if cfg.CodeColumn == "" {
		cfg.CodeColumn = "code"
	}
	if cfg.TextColumn == "" {
		cfg.TextColumn = "text"
	}
}

// NewLoader connects to the database at cfg.URI.
func NewLoader(ctx context.Context, cfg LoaderCfg) (*Loader, error) {
	cfg.setDefaults()

	if cfg.URI == "" {
		return nil, fmt.Errorf("missing or empty uri")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("invalid uri: %w", err)
	}

	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}

	l := NewLoaderWithQuerier(pool, cfg)
	l.pool = pool

	return l, nil
}

// NewLoaderWithQuerier builds a loader on top of an existing connection or
// pool.
func NewLoaderWithQuerier(db Querier, cfg LoaderCfg) *Loader {
	cfg.setDefaults()

	return &Loader{
		Cfg: cfg,
		Log: cfg.Logger,

		db: db,
	}
}

func (l *Loader) Close() {
	if l.pool != nil {
		l.pool.Close()
	}
}

func (l *Loader) query() string {
	return fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s",
		pgx.Identifier{l.Cfg.CodeColumn}.Sanitize(),
		pgx.Identifier{l.Cfg.TextColumn}.Sanitize(),
		pgx.Identifier{l.Cfg.Table}.Sanitize(),
		pgx.Identifier{l.Cfg.CatalogColumn}.Sanitize(),
		pgx.Identifier{l.Cfg.CodeColumn}.Sanitize())
}

// Load returns the entries of the catalog named by locator. A missing
// table is reported as msgcode.ErrResourceNotFound. NULL texts load as
// empty templates.
func (l *Loader) Load(ctx context.Context, locator string) ([]msgcode.Entry, error) {
	rows, err := l.db.Query(ctx, l.query(), locator)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode {
			return nil, fmt.Errorf("table %s: %w", l.Cfg.Table, msgcode.ErrResourceNotFound)
		}
		return nil, fmt.Errorf("cannot query messages: %w", err)
	}
	defer rows.Close()

	var entries []msgcode.Entry
	for rows.Next() {
		var code string
		var text *string
		if err := rows.Scan(&code, &text); err != nil {
			return nil, fmt.Errorf("cannot read message row: %w", err)
		}
		entry := msgcode.Entry{DefinitionCode: code}
		if text != nil {
			entry.Template = *text
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read message rows: %w", err)
	}

	l.Log.Debug("messages read from database",
		zap.String("catalog", locator), zap.Int("entries", len(entries)))

	return entries, nil
}
