// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The database lives in memory (":memory:") and disappears when the
// process exits. A :memory: database belongs to a single connection, so
// the pool is pinned to exactly one connection for the store's lifetime.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/result-manager/internal/config"
	"github.com/aanand-mishra/result-manager/internal/storage"
	"github.com/aanand-mishra/result-manager/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the database-backed implementation of storage.Storage.
type SQLite struct {
	Db       *sql.DB
	capacity int
}

// New opens an in-memory database, creates the students table and
// returns a store holding at most cfg.Capacity records.
func New(cfg *config.Config) (*SQLite, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("sqlite.New: capacity must be positive, got %d", cfg.Capacity)
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// seq preserves insertion order; roll is not unique.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			seq   INTEGER PRIMARY KEY AUTOINCREMENT,
			roll  INTEGER NOT NULL,
			name  TEXT    NOT NULL,
			mark1 INTEGER NOT NULL CHECK (mark1 BETWEEN 0 AND 100),
			mark2 INTEGER NOT NULL CHECK (mark2 BETWEEN 0 AND 100),
			mark3 INTEGER NOT NULL CHECK (mark3 BETWEEN 0 AND 100)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db, capacity: cfg.Capacity}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// AddStudent inserts a row unless the table already holds Capacity rows.
// The count check and the insert run in one transaction.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) AddStudent(student types.Student) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("AddStudent: begin: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		return fmt.Errorf("AddStudent: count: %w", err)
	}
	if count >= s.capacity {
		return storage.ErrCapacityExceeded
	}

	marks := student.Marks()
	_, err = tx.Exec(
		"INSERT INTO students (roll, name, mark1, mark2, mark3) VALUES (?, ?, ?, ?, ?)",
		student.RollNumber(), student.Name(), marks[0], marks[1], marks[2],
	)
	if err != nil {
		return fmt.Errorf("AddStudent: exec: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("AddStudent: commit: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudentByRoll returns the earliest inserted row with the given roll.
// Rows are rebuilt through types.NewStudent so a Student is never created
// without validation.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudentByRoll(roll int) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT roll, name, mark1, mark2, mark3 FROM students WHERE roll = ? ORDER BY seq LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByRoll: prepare: %w", err)
	}
	defer stmt.Close()

	var (
		gotRoll int
		name    string
		marks   = make([]int, types.SubjectCount)
	)
	err = stmt.QueryRow(roll).Scan(&gotRoll, &name, &marks[0], &marks[1], &marks[2])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("%w: roll number %d", storage.ErrNotFound, roll)
		}
		return types.Student{}, fmt.Errorf("GetStudentByRoll: scan: %w", err)
	}

	student, err := types.NewStudent(gotRoll, name, marks)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByRoll: stored row: %w", err)
	}
	return student, nil
}

func (s *SQLite) CountStudents() (int, error) {
	var count int
	if err := s.Db.QueryRow("SELECT COUNT(*) FROM students").Scan(&count); err != nil {
		return 0, fmt.Errorf("CountStudents: %w", err)
	}
	return count, nil
}

func (s *SQLite) Capacity() int { return s.capacity }

// Close closes the only connection, which drops the in-memory database.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
