/*
Package ledger records amounts against units of accounting time.

PURPOSE:
  A series is a named stream of entries ("revenue", "headcount:eng"). Each
  entry books a decimal amount against one unit of time. Entries are kept
  in sortable-string order, which is chronological order because every
  entry of a series has the same kind.

KEY CONCEPTS IN THIS FILE (types.go):
  - SeriesID / EntryID: Type-safe identifiers
  - Entry:   An immutable amount booked against a unit of time
  - Bucket:  One row of a roll-up at a coarser granularity
  - Summary: The total of a series over a reporting period

DESIGN PRINCIPLES:
  1. Immutability: Entries are never modified, only offset by new entries
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. One kind per series: the first entry fixes the series' kind
  4. Idempotency: an idempotency key is accepted at most once

USAGE:
  day, _ := unitoftime.Decode[unitoftime.CalendarDay]("c-2017-01-03")
  entry, err := l.Record(ctx, ledger.Entry{
      Series: "revenue",
      Unit:   day,
      Amount: decimal.RequireFromString("125.50"),
  })

SEE ALSO:
  - ledger.go: Recording, balances and roll-ups
  - store.go:  Persistence interface
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/accounting-time/unitoftime"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type SeriesID string

type EntryID string

// =============================================================================
// ENTRY - An immutable booking
// =============================================================================

// Entry books Amount against Unit in Series.
type Entry struct {
	ID             EntryID
	Series         SeriesID
	Unit           unitoftime.UnitOfTime
	Amount         decimal.Decimal
	Memo           string
	IdempotencyKey string
	RecordedAt     time.Time
}

// Key is the sortable string of the entry's unit.
func (e Entry) Key() string {
	return e.Unit.SortableString()
}

// Kind is the kind of the entry's unit.
func (e Entry) Kind() unitoftime.Kind {
	return e.Unit.Kind()
}

// =============================================================================
// SERIES - Catalog view
// =============================================================================

// SeriesInfo describes a series that holds at least one entry.
type SeriesInfo struct {
	ID      SeriesID
	Kind    unitoftime.Kind
	Entries int
}

// =============================================================================
// AGGREGATES
// =============================================================================

// Bucket is the total of every entry that falls inside Unit.
type Bucket struct {
	Unit    unitoftime.UnitOfTime
	Total   decimal.Decimal
	Entries int
}

// Summary is the total of a series over a reporting period.
type Summary struct {
	Series  SeriesID
	Period  unitoftime.ReportingPeriod
	Total   decimal.Decimal
	Entries int
}
