package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS abilities (
	id       TEXT PRIMARY KEY,
	class    TEXT NOT NULL DEFAULT '',
	owner_id TEXT NOT NULL DEFAULT '',
	level    INTEGER NOT NULL DEFAULT 0,
	name     TEXT NOT NULL DEFAULT '',
	data     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS abilities_class ON abilities (class);
CREATE INDEX IF NOT EXISTS abilities_owner ON abilities (owner_id);
CREATE TABLE IF NOT EXISTS features (
	id    TEXT PRIMARY KEY,
	class TEXT NOT NULL DEFAULT '',
	level INTEGER NOT NULL DEFAULT 0,
	name  TEXT NOT NULL DEFAULT '',
	data  TEXT NOT NULL
);
`

// SQLiteConfig contains configuration for the sqlite catalog
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", cfg.Path, vb)
	return vb.Build()
}

// SQLiteRepository is a catalog stored in a single sqlite file
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLite opens the database at cfg.Path and creates the schema
func NewSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite catalog")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite catalog")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create catalog schema")
	}

	return &SQLiteRepository{db: db}, nil
}

var _ Repository = (*SQLiteRepository)(nil)

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveAbilities upserts every ability in one transaction
func (r *SQLiteRepository) SaveAbilities(ctx context.Context, input SaveAbilitiesInput) (*SaveAbilitiesOutput, error) {
	for _, a := range input.Abilities {
		if a == nil || a.ID == "" {
			return nil, errors.InvalidArgumentf(errRecordNoID, recordName(a))
		}
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO abilities (id, class, owner_id, level, name, data)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				class = excluded.class,
				owner_id = excluded.owner_id,
				level = excluded.level,
				name = excluded.name,
				data = excluded.data`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, a := range input.Abilities {
			data, err := json.Marshal(a)
			if err != nil {
				return errors.Wrapf(err, "failed to marshal ability %s", a.ID)
			}
			if _, err := stmt.ExecContext(ctx, a.ID, a.Class, a.OwnerID, a.Level, a.Name, string(data)); err != nil {
				return errors.Wrapf(err, "failed to save ability %s", a.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save abilities")
	}

	slog.DebugContext(ctx, "saved abilities", "count", len(input.Abilities), "store", "sqlite")

	return &SaveAbilitiesOutput{Saved: len(input.Abilities)}, nil
}

// SaveFeatures upserts every feature in one transaction
func (r *SQLiteRepository) SaveFeatures(ctx context.Context, input SaveFeaturesInput) (*SaveFeaturesOutput, error) {
	for _, f := range input.Features {
		if f == nil || f.ID == "" {
			return nil, errors.InvalidArgumentf(errRecordNoID, featureName(f))
		}
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO features (id, class, level, name, data)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				class = excluded.class,
				level = excluded.level,
				name = excluded.name,
				data = excluded.data`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, f := range input.Features {
			data, err := json.Marshal(f)
			if err != nil {
				return errors.Wrapf(err, "failed to marshal feature %s", f.ID)
			}
			if _, err := stmt.ExecContext(ctx, f.ID, f.Class, f.Level, f.Name, string(data)); err != nil {
				return errors.Wrapf(err, "failed to save feature %s", f.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save features")
	}

	slog.DebugContext(ctx, "saved features", "count", len(input.Features), "store", "sqlite")

	return &SaveFeaturesOutput{Saved: len(input.Features)}, nil
}

// GetAbility retrieves an ability by ID
func (r *SQLiteRepository) GetAbility(ctx context.Context, input GetAbilityInput) (*GetAbilityOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM abilities WHERE id = ?`, input.ID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("ability %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get ability %s", input.ID)
	}

	var ability drawsteel.AbilityRecord
	if err := json.Unmarshal([]byte(data), &ability); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal ability %s", input.ID)
	}

	return &GetAbilityOutput{Ability: &ability}, nil
}

// ListAbilities returns abilities matching the filters in catalog order
func (r *SQLiteRepository) ListAbilities(ctx context.Context, input ListAbilitiesInput) (*ListAbilitiesOutput, error) {
	var (
		where []string
		args  []any
	)
	if input.Class != "" {
		where = append(where, "class = ?")
		args = append(args, input.Class)
	}
	if input.OwnerID != "" {
		where = append(where, "owner_id = ?")
		args = append(args, input.OwnerID)
	}

	query := `SELECT data FROM abilities`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY class, level, name, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list abilities")
	}
	defer func() { _ = rows.Close() }()

	abilities := []*drawsteel.AbilityRecord{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, errors.Wrap(err, "failed to scan ability")
		}
		var ability drawsteel.AbilityRecord
		if err := json.Unmarshal([]byte(data), &ability); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal ability")
		}
		abilities = append(abilities, &ability)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list abilities")
	}

	return &ListAbilitiesOutput{Abilities: abilities}, nil
}

// GetFeature retrieves a feature by ID
func (r *SQLiteRepository) GetFeature(ctx context.Context, input GetFeatureInput) (*GetFeatureOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM features WHERE id = ?`, input.ID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("feature %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get feature %s", input.ID)
	}

	var feature drawsteel.FeatureRecord
	if err := json.Unmarshal([]byte(data), &feature); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal feature %s", input.ID)
	}

	return &GetFeatureOutput{Feature: &feature}, nil
}

func (r *SQLiteRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
