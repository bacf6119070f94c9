/*
store.go - Persistence interface for ledger entries

PURPOSE:
  Defines the interface between the ledger and the database. Stores keep
  entries append-only and return them ordered by the sortable string of
  their unit, then by recording time.

APPEND-ONLY CONTRACT:
  - Append(): Single entry write
  - AppendBatch(): Atomic multi-entry write
  - NO Update() or Delete() methods exist

ORDERING:
  Within a series every unit has one kind, so ordering by sortable string
  is chronological ordering. SQL stores get this from a plain
  ORDER BY unit_key; no date parsing happens in the database.

RANGES:
  LoadRange bounds are inclusive and compared as sortable strings. A nil
  or unbounded bound leaves that side open.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - ledger/store/memory.go: In-memory for tests and development

SEE ALSO:
  - ledger.go: Higher-level operations using Store
*/
package ledger

import (
	"context"

	"github.com/warp/accounting-time/unitoftime"
)

// =============================================================================
// STORE - Interface for entry persistence (append-only)
// =============================================================================

// Store handles persistence of entries.
type Store interface {
	// Append persists an entry. Returns ErrDuplicateIdempotencyKey if the
	// entry's key was already recorded.
	Append(ctx context.Context, e Entry) error

	// AppendBatch persists multiple entries atomically.
	AppendBatch(ctx context.Context, es []Entry) error

	// Load returns every entry of a series ordered by unit key.
	Load(ctx context.Context, series SeriesID) ([]Entry, error)

	// LoadRange returns the entries of a series with from <= key <= to.
	LoadRange(ctx context.Context, series SeriesID, from, to unitoftime.UnitOfTime) ([]Entry, error)

	// Exists checks if an idempotency key was already recorded.
	Exists(ctx context.Context, idempotencyKey string) (bool, error)

	// SeriesKind returns the kind a series holds, or KindInvalid when the
	// series has no entries yet.
	SeriesKind(ctx context.Context, series SeriesID) (unitoftime.Kind, error)

	// Series lists every series holding entries, ordered by ID.
	Series(ctx context.Context) ([]SeriesInfo, error)
}

// =============================================================================
// TRANSACTIONAL STORE - For check-then-write sequences
// =============================================================================

// TxStore wraps Store with transaction support. The ledger uses it to make
// the series kind check and the write one atomic step.
type TxStore interface {
	Store

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(Store) error) error
}

// InRange reports whether key lies within [from, to], treating a nil or
// unbounded bound as open. Stores share it so they agree on edge cases.
func InRange(key string, from, to unitoftime.UnitOfTime) bool {
	if from != nil && !unitoftime.IsUnbounded(from) && key < from.SortableString() {
		return false
	}
	if to != nil && !unitoftime.IsUnbounded(to) && key > to.SortableString() {
		return false
	}
	return true
}
