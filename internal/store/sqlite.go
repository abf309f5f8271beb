package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maxkimambo/vetflow/internal/domain"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements ObjectService on a SQLite database. Node values
// are stored as a JSON document, so numbers read back as float64.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directories: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS objects (
		archetype TEXT NOT NULL,
		id TEXT NOT NULL,
		version INTEGER NOT NULL,
		name TEXT NOT NULL,
		active INTEGER NOT NULL,
		nodes TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (archetype, id)
	);

	CREATE INDEX IF NOT EXISTS idx_objects_name ON objects(archetype, name);
	`)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, ref domain.Reference) (*domain.Object, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT archetype, id, version, name, active, nodes
		FROM objects WHERE archetype = ? AND id = ?
	`, ref.Archetype, ref.ID)

	obj, err := scanObject(row)
	if err == sql.ErrNoRows {
		return nil, wferrors.NewObjectNotFoundError(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", ref, err)
	}
	return obj, nil
}

func (s *SQLiteStore) Save(ctx context.Context, obj *domain.Object) error {
	nodes, err := json.Marshal(obj.Nodes)
	if err != nil {
		return wferrors.NewSaveFailedError(obj.Ref, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ref := obj.Ref
	if ref.IsNew() {
		ref.ID = newID()
	}

	var stored int64
	err = tx.QueryRowContext(ctx, `SELECT version FROM objects WHERE archetype = ? AND id = ?`,
		ref.Archetype, ref.ID).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		if obj.Version != 0 {
			return wferrors.NewObjectNotFoundError(ref)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO objects (archetype, id, version, name, active, nodes)
			VALUES (?, ?, 1, ?, ?, ?)
		`, ref.Archetype, ref.ID, obj.Name, obj.Active, string(nodes))
	case err != nil:
		return fmt.Errorf("failed to check version of %s: %w", ref, err)
	case stored != obj.Version:
		return wferrors.NewStaleObjectError(ref, obj.Version, stored)
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE objects
			SET version = version + 1, name = ?, active = ?, nodes = ?, updated_at = CURRENT_TIMESTAMP
			WHERE archetype = ? AND id = ?
		`, obj.Name, obj.Active, string(nodes), ref.Archetype, ref.ID)
	}
	if err != nil {
		return wferrors.NewSaveFailedError(ref, err)
	}

	if err := tx.Commit(); err != nil {
		return wferrors.NewSaveFailedError(ref, err)
	}
	obj.Ref = ref
	obj.Version++
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, ref domain.Reference) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM objects WHERE archetype = ? AND id = ?`, ref.Archetype, ref.ID)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", ref, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", ref, err)
	}
	if n == 0 {
		return wferrors.NewObjectNotFoundError(ref)
	}
	return nil
}

// List returns the objects of an archetype ordered by name, then id.
// The archetype may end in a * wildcard.
func (s *SQLiteStore) List(ctx context.Context, archetype string) ([]*domain.Object, error) {
	const columns = `SELECT archetype, id, version, name, active, nodes FROM objects`

	var (
		rows *sql.Rows
		err  error
	)
	if prefix, ok := strings.CutSuffix(archetype, "*"); ok {
		rows, err = s.db.QueryContext(ctx, columns+` WHERE substr(archetype, 1, ?) = ? ORDER BY name, id`,
			len(prefix), prefix)
	} else {
		rows, err = s.db.QueryContext(ctx, columns+` WHERE archetype = ? ORDER BY name, id`, archetype)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", archetype, err)
	}
	defer rows.Close()

	var result []*domain.Object
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", archetype, err)
		}
		result = append(result, obj)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanObject(row scanner) (*domain.Object, error) {
	var (
		obj    domain.Object
		active bool
		nodes  string
	)
	if err := row.Scan(&obj.Ref.Archetype, &obj.Ref.ID, &obj.Version, &obj.Name, &active, &nodes); err != nil {
		return nil, err
	}
	obj.Active = active
	obj.Nodes = make(map[string]any)
	if err := json.Unmarshal([]byte(nodes), &obj.Nodes); err != nil {
		return nil, fmt.Errorf("failed to decode nodes of %s: %w", obj.Ref, err)
	}
	if obj.Nodes == nil {
		obj.Nodes = make(map[string]any)
	}
	return &obj, nil
}
