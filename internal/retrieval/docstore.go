// Package retrieval stores the product knowledge corpus in SQLite and
// ranks documents against incoming questions.
package retrieval

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/plywoodstudio/faqbot/internal/knowledge"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Doc is a stored knowledge document.
type Doc struct {
	ID        string
	Type      string
	Title     string
	Keywords  []string
	Content   string
	Source    string
	CreatedAt time.Time
}

// DocStore wraps a SQLite database holding the knowledge corpus.
type DocStore struct {
	db *sql.DB
}

// Open opens (or creates) the corpus database in dataDir and runs pending
// migrations. Pass ":memory:" as dataDir for an in-memory database (used
// by tests).
func Open(dataDir string) (*DocStore, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "faqbot.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &DocStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *DocStore) Close() error {
	return s.db.Close()
}

func (s *DocStore) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &version); err != nil {
			return fmt.Errorf("parsing migration version from %q: %w", entry.Name(), err)
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

// Seed inserts the built-in knowledge corpus, skipping documents that are
// already present so repeated startups don't duplicate rows.
func (s *DocStore) Seed(ctx context.Context) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO docs (id, doc_type, title, keywords, content, source, created_at)
		VALUES (?, ?, ?, ?, ?, 'builtin', ?)
		ON CONFLICT(id) DO NOTHING`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing seed statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range knowledge.Corpus() {
		keywords := strings.Join(d.Keywords, ",")
		if _, err := stmt.ExecContext(ctx, d.ID, d.Type, d.Title, keywords, d.Content, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("seeding doc %s: %w", d.ID, err)
		}
	}

	return tx.Commit()
}

// Insert adds documents from an external source such as a PDF price list.
func (s *DocStore) Insert(ctx context.Context, docs []Doc) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO docs (id, doc_type, title, keywords, content, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		createdAt := d.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		keywords := strings.Join(d.Keywords, ",")
		if _, err := stmt.ExecContext(ctx, d.ID, d.Type, d.Title, keywords, d.Content, d.Source, createdAt.Format(time.RFC3339)); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting doc %s: %w", d.ID, err)
		}
	}

	return tx.Commit()
}

// All returns every stored document.
func (s *DocStore) All(ctx context.Context) ([]Doc, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_type, title, keywords, content, source, created_at
		FROM docs ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying docs: %w", err)
	}
	defer rows.Close()

	var docs []Doc
	for rows.Next() {
		var d Doc
		var keywords, createdAt string
		if err := rows.Scan(&d.ID, &d.Type, &d.Title, &keywords, &d.Content, &d.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning doc: %w", err)
		}
		if keywords != "" {
			d.Keywords = strings.Split(keywords, ",")
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at for doc %s: %w", d.ID, err)
		}
		d.CreatedAt = t
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Count reports the number of stored documents.
func (s *DocStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM docs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting docs: %w", err)
	}
	return n, nil
}
