/*
ledger.go - Append-only amounts per unit of time

PURPOSE:
  The Ledger is the write and query surface over a Store. It validates
  entries, fixes each series to a single kind of unit, and derives
  balances and roll-ups by replaying entries. There is no stored balance
  that could drift from the entries.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: No Update, No Delete.
  2. ONE KIND PER SERIES: "c-2017-01-03" and "c-2017-01" never share a
     series, so sortable-string order is chronological order.
  3. IDEMPOTENT: an idempotency key is accepted at most once.

CORRECTIONS:
  A mistaken entry is offset by a second entry with the opposite amount.
  Both stay in the ledger.

EXAMPLE FLOW:
  1. Record revenue for c-2017-01-03: +100
  2. Record revenue for c-2017-02-14: +40
  3. Offset the first booking:        -100 (memo "reversal")

  Rollup(month):   [c-2017-01: 0, c-2017-02: 40]
  Balance(c-2017): 40

SEE ALSO:
  - store.go: Low-level persistence interface
  - unitoftime/period.go: Reporting periods
*/
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/accounting-time/unitoftime"
)

// =============================================================================
// LEDGER
// =============================================================================

type Ledger struct {
	store Store
	now   func() time.Time
	newID func() EntryID
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used to stamp RecordedAt.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides how entry IDs are assigned.
func WithIDGenerator(newID func() EntryID) Option {
	return func(l *Ledger) { l.newID = newID }
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		newID: func() EntryID { return EntryID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// =============================================================================
// WRITES
// =============================================================================

// Record validates and appends a single entry, returning it with ID and
// RecordedAt filled in.
func (l *Ledger) Record(ctx context.Context, e Entry) (Entry, error) {
	prepared, err := l.prepare(e)
	if err != nil {
		return Entry{}, err
	}

	err = l.write(ctx, func(s Store) error {
		if err := checkKind(ctx, s, prepared.Series, prepared.Kind()); err != nil {
			return err
		}
		if prepared.IdempotencyKey != "" {
			exists, err := s.Exists(ctx, prepared.IdempotencyKey)
			if err != nil {
				return err
			}
			if exists {
				return ErrDuplicateIdempotencyKey
			}
		}
		return s.Append(ctx, prepared)
	})
	if err != nil {
		return Entry{}, err
	}
	return prepared, nil
}

// RecordBatch appends entries atomically. Entries may span several series;
// each series must stay within one kind, including across the batch.
func (l *Ledger) RecordBatch(ctx context.Context, es []Entry) ([]Entry, error) {
	prepared := make([]Entry, 0, len(es))
	batchKinds := make(map[SeriesID]unitoftime.Kind)
	batchKeys := make(map[string]bool)

	for _, e := range es {
		p, err := l.prepare(e)
		if err != nil {
			return nil, err
		}
		if have, ok := batchKinds[p.Series]; ok && have != p.Kind() {
			return nil, &KindMismatchError{Series: p.Series, Have: have, Got: p.Kind()}
		}
		batchKinds[p.Series] = p.Kind()
		if p.IdempotencyKey != "" {
			if batchKeys[p.IdempotencyKey] {
				return nil, ErrDuplicateIdempotencyKey
			}
			batchKeys[p.IdempotencyKey] = true
		}
		prepared = append(prepared, p)
	}

	err := l.write(ctx, func(s Store) error {
		for series, kind := range batchKinds {
			if err := checkKind(ctx, s, series, kind); err != nil {
				return err
			}
		}
		for key := range batchKeys {
			exists, err := s.Exists(ctx, key)
			if err != nil {
				return err
			}
			if exists {
				return ErrDuplicateIdempotencyKey
			}
		}
		return s.AppendBatch(ctx, prepared)
	})
	if err != nil {
		return nil, err
	}
	return prepared, nil
}

func (l *Ledger) prepare(e Entry) (Entry, error) {
	e.Series = SeriesID(strings.TrimSpace(string(e.Series)))
	if e.Series == "" {
		return Entry{}, ErrSeriesRequired
	}
	if w, ok := e.Unit.(unitoftime.Unit); ok {
		e.Unit = w.UnitOfTime
	}
	if e.Unit == nil {
		return Entry{}, ErrUnitRequired
	}
	// Zero values of the concrete types do not encode to a decodable key.
	if _, err := unitoftime.DecodeAs(e.Unit.SortableString(), unitoftime.TargetOf(e.Unit.Kind())); err != nil {
		return Entry{}, err
	}
	if e.ID == "" {
		e.ID = l.newID()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = l.now().UTC()
	}
	return e, nil
}

// write runs fn atomically when the store supports transactions.
func (l *Ledger) write(ctx context.Context, fn func(Store) error) error {
	if tx, ok := l.store.(TxStore); ok {
		return tx.WithTx(ctx, fn)
	}
	return fn(l.store)
}

func checkKind(ctx context.Context, s Store, series SeriesID, kind unitoftime.Kind) error {
	have, err := s.SeriesKind(ctx, series)
	if err != nil {
		return err
	}
	if have != unitoftime.KindInvalid && have != kind {
		return &KindMismatchError{Series: series, Have: have, Got: kind}
	}
	return nil
}

// =============================================================================
// READS
// =============================================================================

// Entries returns every entry of a series in chronological order.
func (l *Ledger) Entries(ctx context.Context, series SeriesID) ([]Entry, error) {
	return l.store.Load(ctx, series)
}

// EntriesIn returns the entries of a series that fall inside period. The
// period must belong to the series' family and be at least as coarse as
// its entries.
func (l *Ledger) EntriesIn(ctx context.Context, series SeriesID, period unitoftime.ReportingPeriod) ([]Entry, error) {
	if period.IsZero() {
		return nil, unitoftime.ErrNullInput
	}
	kind, err := l.store.SeriesKind(ctx, series)
	if err != nil {
		return nil, err
	}
	if kind == unitoftime.KindInvalid {
		return nil, nil
	}
	if period.Family() != kind.Family() {
		return nil, fmt.Errorf("%w: series %q holds %s units, period is %s", unitoftime.ErrKindMismatch, series, kind, period.Family())
	}

	g := period.Granularity()
	if g == kind.Granularity() || g == unitoftime.GranularityUnbounded {
		return l.store.LoadRange(ctx, series, period.Start(), period.End())
	}
	coarser, err := unitoftime.IsLessGranular(g, kind.Granularity())
	if err != nil {
		return nil, err
	}
	if !coarser {
		return nil, unitoftime.ErrGranularityMismatch
	}

	all, err := l.store.Load(ctx, series)
	if err != nil {
		return nil, err
	}
	var result []Entry
	for _, e := range all {
		in, err := period.Contains(e.Unit)
		if err != nil {
			return nil, err
		}
		if in {
			result = append(result, e)
		}
	}
	return result, nil
}

// Balance totals the entries of a series inside period.
func (l *Ledger) Balance(ctx context.Context, series SeriesID, period unitoftime.ReportingPeriod) (Summary, error) {
	entries, err := l.EntriesIn(ctx, series, period)
	if err != nil {
		return Summary{}, err
	}
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return Summary{Series: series, Period: period, Total: total, Entries: len(entries)}, nil
}

// Rollup totals the entries of a series per unit of granularity g, in
// chronological order. g must be as coarse as the series' entries or
// coarser.
func (l *Ledger) Rollup(ctx context.Context, series SeriesID, g unitoftime.Granularity) ([]Bucket, error) {
	entries, err := l.store.Load(ctx, series)
	if err != nil {
		return nil, err
	}

	buckets := []Bucket{}
	for _, e := range entries {
		enclosing, err := unitoftime.Coarsen(e.Unit, g)
		if err != nil {
			return nil, err
		}
		// Coarsening preserves order, so equal buckets are adjacent.
		last := len(buckets) - 1
		if last >= 0 && buckets[last].Unit.SortableString() == enclosing.SortableString() {
			buckets[last].Total = buckets[last].Total.Add(e.Amount)
			buckets[last].Entries++
			continue
		}
		buckets = append(buckets, Bucket{Unit: enclosing, Total: e.Amount, Entries: 1})
	}
	return buckets, nil
}

// Series lists every series with its kind and entry count.
func (l *Ledger) Series(ctx context.Context) ([]SeriesInfo, error) {
	return l.store.Series(ctx)
}
