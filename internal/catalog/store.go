package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/charmbracelet/log"
	"github.com/hireflow/assessment-recommender/internal/types"
)

// Store is the SQLite-backed catalog of assessment records. It is owned by
// the ingestion pipeline and serves as the source of truth for rebuilding
// the vector index; it is not part of the request path.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// NewStore opens (creating if necessary) the catalog database in dataDir.
func NewStore(dataDir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("failed to set database pragmas: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db, func(msg string, args ...interface{}) {
		logger.Info(fmt.Sprintf(msg, args...))
	}); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			duration INTEGER NOT NULL DEFAULT 0,
			adaptive_support TEXT,
			remote_support TEXT,
			test_type TEXT,
			job_roles TEXT,
			languages TEXT,
			query TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_assessments_url ON assessments(url);
		CREATE INDEX IF NOT EXISTS idx_assessments_name ON assessments(name);
	`)
	if err != nil {
		return fmt.Errorf("failed to create assessments table: %w", err)
	}
	return nil
}

// Put inserts or replaces an assessment record along with the query
// phrasing its embedding was generated from.
func (s *Store) Put(ctx context.Context, a types.Assessment, query string) error {
	testType, err := json.Marshal(a.TestType)
	if err != nil {
		return fmt.Errorf("failed to marshal test types: %w", err)
	}
	jobRoles, err := json.Marshal(a.JobRoles)
	if err != nil {
		return fmt.Errorf("failed to marshal job roles: %w", err)
	}
	languages, err := json.Marshal(a.Languages)
	if err != nil {
		return fmt.Errorf("failed to marshal languages: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO assessments
		(id, url, name, description, duration, adaptive_support, remote_support, test_type, job_roles, languages, query)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.URL, a.Name, a.Description, a.Duration,
		a.AdaptiveSupport, a.RemoteSupport,
		string(testType), string(jobRoles), string(languages), query,
	)
	if err != nil {
		return fmt.Errorf("failed to store assessment %s: %w", a.ID, err)
	}

	s.logger.Debug("Stored assessment", "id", a.ID, "name", a.Name)
	return nil
}

// Get returns the assessment with the given ID and the query phrasing
// it was indexed under.
func (s *Store) Get(ctx context.Context, id string) (*types.Assessment, string, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, name, description, duration, adaptive_support, remote_support, test_type, job_roles, languages, query
		FROM assessments WHERE id = ?`, id)
	return scanAssessment(row)
}

// List returns all assessment records with their query phrasings, ordered
// by ID for reproducible re-indexing.
func (s *Store) List(ctx context.Context) ([]types.Assessment, []string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, name, description, duration, adaptive_support, remote_support, test_type, job_roles, languages, query
		FROM assessments ORDER BY id`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []types.Assessment
	var queries []string
	for rows.Next() {
		a, query, err := scanAssessment(rows)
		if err != nil {
			return nil, nil, err
		}
		assessments = append(assessments, *a)
		queries = append(queries, query)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}
	return assessments, queries, nil
}

// Count returns the number of assessments in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count assessments: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*types.Assessment, string, error) {
	var a types.Assessment
	var description, adaptive, remote sql.NullString
	var testType, jobRoles, languages sql.NullString
	var query sql.NullString

	err := row.Scan(&a.ID, &a.URL, &a.Name, &description, &a.Duration,
		&adaptive, &remote, &testType, &jobRoles, &languages, &query)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("assessment not found")
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan assessment: %w", err)
	}

	a.Description = description.String
	a.AdaptiveSupport = adaptive.String
	a.RemoteSupport = remote.String

	if err := unmarshalList(testType.String, &a.TestType); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal test types for %s: %w", a.ID, err)
	}
	if err := unmarshalList(jobRoles.String, &a.JobRoles); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal job roles for %s: %w", a.ID, err)
	}
	if err := unmarshalList(languages.String, &a.Languages); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal languages for %s: %w", a.ID, err)
	}

	return &a, query.String, nil
}

func unmarshalList(column string, dest *[]string) error {
	if column == "" || column == "null" {
		return nil
	}
	return json.Unmarshal([]byte(column), dest)
}
