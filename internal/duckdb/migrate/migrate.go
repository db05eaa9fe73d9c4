// Package migrate applies the embedded, versioned DuckDB schema.
package migrate

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Runner applies versioned SQL migrations to a DuckDB database.
type Runner struct {
	db    *sql.DB
	files fs.FS
}

// NewRunner creates a runner over the embedded migrations.
func NewRunner(db *sql.DB) *Runner {
	sub, _ := fs.Sub(embedded, "migrations")
	return &Runner{db: db, files: sub}
}

type migration struct {
	version int
	name    string
	sql     string
}

// load reads NNN_name.sql files from the runner's FS, sorted by version.
func (r *Runner) load() ([]migration, error) {
	entries, err := fs.ReadDir(r.files, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	var migs []migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			continue
		}
		ver, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("parsing version from %s: %w", e.Name(), err)
		}
		data, err := fs.ReadFile(r.files, e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		migs = append(migs, migration{version: ver, name: e.Name(), sql: string(data)})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].version < migs[j].version })
	return migs, nil
}

func (r *Runner) bootstrap() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       VARCHAR NOT NULL,
		applied_at TIMESTAMP DEFAULT current_timestamp
	)`)
	return err
}

func (r *Runner) appliedVersion() (int, error) {
	var v sql.NullInt64
	if err := r.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&v); err != nil {
		return 0, err
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}

// Run applies pending migrations in order, each in its own transaction.
func (r *Runner) Run() error {
	if err := r.bootstrap(); err != nil {
		return fmt.Errorf("bootstrap schema_migrations: %w", err)
	}
	migs, err := r.load()
	if err != nil {
		return err
	}
	current, err := r.appliedVersion()
	if err != nil {
		return fmt.Errorf("reading applied version: %w", err)
	}

	for _, m := range migs {
		if m.version <= current {
			continue
		}
		if err := r.apply(m); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) apply(m migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx for %s: %w", m.name, err)
	}
	if _, err := tx.Exec(m.sql); err != nil {
		tx.Rollback()
		return fmt.Errorf("executing %s: %w", m.name, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
		tx.Rollback()
		return fmt.Errorf("recording %s: %w", m.name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", m.name, err)
	}
	return nil
}

// Status returns the applied version and the number of pending migrations.
func (r *Runner) Status() (current int, pending int, err error) {
	if err = r.bootstrap(); err != nil {
		return 0, 0, fmt.Errorf("bootstrap schema_migrations: %w", err)
	}
	if current, err = r.appliedVersion(); err != nil {
		return 0, 0, fmt.Errorf("reading applied version: %w", err)
	}
	migs, err := r.load()
	if err != nil {
		return 0, 0, err
	}
	for _, m := range migs {
		if m.version > current {
			pending++
		}
	}
	return current, pending, nil
}
