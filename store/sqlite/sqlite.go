/*
Package sqlite provides a SQLite-backed implementation of ledger.Store.

PURPOSE:
  Persists ledger entries in a single append-only table. Units of time are
  stored as their sortable strings, so every ordering and range query is a
  plain string comparison on unit_key. SQLite never parses a date.

INTERFACES IMPLEMENTED:
  ledger.Store:   Entry persistence
  ledger.TxStore: Atomic check-then-write for the ledger

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the entries table
  - No DELETE statements on the entries table
  - Corrections are offsetting entries

KEY TABLES:
  entries: Immutable amounts booked against units of time

INDEXES:
  - idx_entries_series_key: Load, LoadRange and roll-ups (hot path)
  - idempotency_key UNIQUE: Duplicate writes fail at the database

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. WithTx holds the write lock for the
  whole callback.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/accounting.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  l := ledger.New(store)

SEE ALSO:
  - ledger/store.go: Interface definitions
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/warp/accounting-time/ledger"
	"github.com/warp/accounting-time/unitoftime"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Entries (append-only ledger)
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		series TEXT NOT NULL,
		unit_key TEXT NOT NULL,
		amount TEXT NOT NULL,
		memo TEXT,
		idempotency_key TEXT UNIQUE,
		recorded_at TEXT NOT NULL
	);

	-- Sortable strings make this index chronological within a series
	CREATE INDEX IF NOT EXISTS idx_entries_series_key
		ON entries(series, unit_key, recorded_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENTRY STORE (ledger.Store interface)
// =============================================================================

const selectEntries = `
	SELECT id, series, unit_key, amount, memo, idempotency_key, recorded_at
	FROM entries
`

// Append adds an entry to the ledger.
func (s *Store) Append(ctx context.Context, e ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return appendEntry(ctx, s.db, e)
}

func appendEntry(ctx context.Context, q querier, e ledger.Entry) error {
	query := `
		INSERT INTO entries
		(id, series, unit_key, amount, memo, idempotency_key, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		string(e.ID),
		string(e.Series),
		unitoftime.Unit{UnitOfTime: e.Unit},
		e.Amount,
		nullString(e.Memo),
		nullString(e.IdempotencyKey),
		e.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ledger.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to append entry: %w", err)
	}

	return nil
}

// AppendBatch adds multiple entries atomically.
func (s *Store) AppendBatch(ctx context.Context, es []ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := appendBatch(ctx, sqlTx, es); err != nil {
		return err
	}
	return sqlTx.Commit()
}

func appendBatch(ctx context.Context, q querier, es []ledger.Entry) error {
	// Check for duplicate idempotency keys within the batch first
	idempotencyKeys := make(map[string]bool)
	for _, e := range es {
		if e.IdempotencyKey == "" {
			continue
		}
		if idempotencyKeys[e.IdempotencyKey] {
			return ledger.ErrDuplicateIdempotencyKey
		}
		idempotencyKeys[e.IdempotencyKey] = true
	}

	for _, e := range es {
		if err := appendEntry(ctx, q, e); err != nil {
			return err
		}
	}
	return nil
}

// Load returns all entries of a series ordered by unit key.
func (s *Store) Load(ctx context.Context, series ledger.SeriesID) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return load(ctx, s.db, series)
}

func load(ctx context.Context, q querier, series ledger.SeriesID) ([]ledger.Entry, error) {
	query := selectEntries + `
		WHERE series = ?
		ORDER BY unit_key ASC, recorded_at ASC, rowid ASC
	`
	return queryEntries(ctx, q, query, string(series))
}

// LoadRange returns the entries of a series whose unit key lies between
// from and to inclusive. Nil or unbounded bounds are left out of the query.
func (s *Store) LoadRange(ctx context.Context, series ledger.SeriesID, from, to unitoftime.UnitOfTime) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return loadRange(ctx, s.db, series, from, to)
}

func loadRange(ctx context.Context, q querier, series ledger.SeriesID, from, to unitoftime.UnitOfTime) ([]ledger.Entry, error) {
	var (
		conditions = []string{"series = ?"}
		args       = []any{string(series)}
	)
	if from != nil && !unitoftime.IsUnbounded(from) {
		conditions = append(conditions, "unit_key >= ?")
		args = append(args, from.SortableString())
	}
	if to != nil && !unitoftime.IsUnbounded(to) {
		conditions = append(conditions, "unit_key <= ?")
		args = append(args, to.SortableString())
	}

	query := selectEntries + `
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY unit_key ASC, recorded_at ASC, rowid ASC
	`
	return queryEntries(ctx, q, query, args...)
}

// Exists checks if an idempotency key exists.
func (s *Store) Exists(ctx context.Context, idempotencyKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return exists(ctx, s.db, idempotencyKey)
}

func exists(ctx context.Context, q querier, idempotencyKey string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM entries WHERE idempotency_key = ?",
		idempotencyKey,
	).Scan(&count)

	return count > 0, err
}

// SeriesKind returns the kind held by a series, or KindInvalid if empty.
func (s *Store) SeriesKind(ctx context.Context, series ledger.SeriesID) (unitoftime.Kind, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return seriesKind(ctx, s.db, series)
}

func seriesKind(ctx context.Context, q querier, series ledger.SeriesID) (unitoftime.Kind, error) {
	var u unitoftime.Unit
	err := q.QueryRowContext(ctx,
		"SELECT unit_key FROM entries WHERE series = ? LIMIT 1",
		string(series),
	).Scan(&u)
	if errors.Is(err, sql.ErrNoRows) {
		return unitoftime.KindInvalid, nil
	}
	if err != nil {
		return unitoftime.KindInvalid, fmt.Errorf("failed to read series kind: %w", err)
	}
	return u.Kind(), nil
}

// Series lists every series with its kind and entry count.
func (s *Store) Series(ctx context.Context) ([]ledger.SeriesInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return listSeries(ctx, s.db)
}

func listSeries(ctx context.Context, q querier) ([]ledger.SeriesInfo, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT series, MIN(unit_key), COUNT(*)
		FROM entries
		GROUP BY series
		ORDER BY series ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	result := []ledger.SeriesInfo{}
	for rows.Next() {
		var (
			info ledger.SeriesInfo
			id   string
			u    unitoftime.Unit
		)
		if err := rows.Scan(&id, &u, &info.Entries); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		info.ID = ledger.SeriesID(id)
		info.Kind = u.Kind()
		result = append(result, info)
	}
	return result, rows.Err()
}

func queryEntries(ctx context.Context, q querier, query string, args ...any) ([]ledger.Entry, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (ledger.Entry, error) {
	var (
		e              ledger.Entry
		id             string
		series         string
		unit           unitoftime.Unit
		memo           sql.NullString
		idempotencyKey sql.NullString
		recordedAt     string
	)

	err := rows.Scan(&id, &series, &unit, &e.Amount, &memo, &idempotencyKey, &recordedAt)
	if err != nil {
		return e, fmt.Errorf("failed to scan entry: %w", err)
	}

	e.ID = ledger.EntryID(id)
	e.Series = ledger.SeriesID(series)
	e.Unit = unit.UnitOfTime
	e.Memo = memo.String
	e.IdempotencyKey = idempotencyKey.String
	e.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return e, fmt.Errorf("failed to parse recorded_at %q: %w", recordedAt, err)
	}

	return e, nil
}

// =============================================================================
// TRANSACTIONAL STORE (ledger.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(store ledger.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrTransactionFailed, err)
	}
	return nil
}

// txStore runs every operation on the open transaction. The parent's lock
// is already held.
type txStore struct {
	tx *sql.Tx
}

func (ts *txStore) Append(ctx context.Context, e ledger.Entry) error {
	return appendEntry(ctx, ts.tx, e)
}

func (ts *txStore) AppendBatch(ctx context.Context, es []ledger.Entry) error {
	return appendBatch(ctx, ts.tx, es)
}

func (ts *txStore) Load(ctx context.Context, series ledger.SeriesID) ([]ledger.Entry, error) {
	return load(ctx, ts.tx, series)
}

func (ts *txStore) LoadRange(ctx context.Context, series ledger.SeriesID, from, to unitoftime.UnitOfTime) ([]ledger.Entry, error) {
	return loadRange(ctx, ts.tx, series, from, to)
}

func (ts *txStore) Exists(ctx context.Context, idempotencyKey string) (bool, error) {
	return exists(ctx, ts.tx, idempotencyKey)
}

func (ts *txStore) SeriesKind(ctx context.Context, series ledger.SeriesID) (unitoftime.Kind, error) {
	return seriesKind(ctx, ts.tx, series)
}

func (ts *txStore) Series(ctx context.Context) ([]ledger.SeriesInfo, error) {
	return listSeries(ctx, ts.tx)
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
