package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when adding a record whose key already exists.
	ErrDuplicate = errors.New("record already exists")
)

// RowScanner is the subset of *sql.Row / *sql.Rows needed to read one record.
type RowScanner interface {
	Scan(dest ...any) error
}

// ListOptions controls an index scan.
type ListOptions struct {
	// Equals, when non-nil, restricts the scan to records whose indexed
	// column equals the value.
	Equals any
	// Desc reverses the scan direction.
	Desc bool
}

// Store is a generic record store over a single SQLite table. It provides
// key-based CRUD plus ordered scans over named secondary indexes. Every
// method issues exactly one statement; multi-record operations built on top
// of it are composed of independent single-record statements with no
// cross-record atomicity.
type Store[T any] struct {
	db      *sql.DB
	table   string
	columns []string          // column order shared by bind and scan; id first
	indexes map[string]string // index name -> indexed column
	bind    func(T) []any
	scan    func(RowScanner) (T, error)
}

// NewStore creates a Store over the given table. The columns slice must
// start with the primary key column, and bind/scan must agree with its
// order.
func NewStore[T any](db *sql.DB, table string, columns []string, indexes map[string]string, bind func(T) []any, scan func(RowScanner) (T, error)) *Store[T] {
	return &Store[T]{
		db:      db,
		table:   table,
		columns: columns,
		indexes: indexes,
		bind:    bind,
		scan:    scan,
	}
}

// Add inserts a new record. It fails with ErrDuplicate if the key exists.
func (s *Store[T]) Add(ctx context.Context, record T) error {
	_, err := s.db.ExecContext(ctx, s.insertQuery("INSERT"), s.bind(record)...)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %s", ErrDuplicate, s.table)
		}
		return fmt.Errorf("failed to insert into %s: %w", s.table, err)
	}
	return nil
}

// Put inserts or replaces a record by key.
func (s *Store[T]) Put(ctx context.Context, record T) error {
	if _, err := s.db.ExecContext(ctx, s.insertQuery("INSERT OR REPLACE"), s.bind(record)...); err != nil {
		return fmt.Errorf("failed to put into %s: %w", s.table, err)
	}
	return nil
}

// Get returns the record with the given key, or ErrNotFound.
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		strings.Join(s.columns, ", "), s.table, s.columns[0])

	record, err := s.scan(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	return record, nil
}

// Delete removes the record with the given key. Deleting a missing key is
// not an error.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.table, s.columns[0])
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", s.table, err)
	}
	return nil
}

// List scans the named index in order and returns the matching records.
// The rowid tiebreak keeps records with equal index values in stable
// insertion order.
func (s *Store[T]) List(ctx context.Context, index string, opts ListOptions) ([]T, error) {
	column, ok := s.indexes[index]
	if !ok {
		return nil, fmt.Errorf("unknown index %q on %s", index, s.table)
	}

	direction := "ASC"
	if opts.Desc {
		direction = "DESC"
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(s.columns, ", "), s.table)
	var args []any
	if opts.Equals != nil {
		query += fmt.Sprintf(" WHERE %s = ?", column)
		args = append(args, opts.Equals)
	}
	query += fmt.Sprintf(" ORDER BY %s %s, rowid %s", column, direction, direction)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s by %s: %w", s.table, index, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []T
	for rows.Next() {
		record, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", s.table, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", s.table, err)
	}

	return records, nil
}

// Count returns the number of records whose indexed column equals the value.
func (s *Store[T]) Count(ctx context.Context, index string, equals any) (int64, error) {
	column, ok := s.indexes[index]
	if !ok {
		return 0, fmt.Errorf("unknown index %q on %s", index, s.table)
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", s.table, column)
	if err := s.db.QueryRowContext(ctx, query, equals).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", s.table, err)
	}
	return count, nil
}

func (s *Store[T]) insertQuery(verb string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.columns)), ", ")
	return fmt.Sprintf("%s INTO %s (%s) VALUES (%s)",
		verb, s.table, strings.Join(s.columns, ", "), placeholders)
}
