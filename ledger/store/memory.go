// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/accounting-time/ledger"
	"github.com/warp/accounting-time/unitoftime"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	entries     map[ledger.SeriesID][]ledger.Entry
	idempotency map[string]bool
}

func NewMemory() *Memory {
	return &Memory{
		entries:     make(map[ledger.SeriesID][]ledger.Entry),
		idempotency: make(map[string]bool),
	}
}

// Append adds a single entry. Append-only.
func (m *Memory) Append(_ context.Context, e ledger.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendLocked(e)
}

// AppendBatch adds multiple entries atomically.
func (m *Memory) AppendBatch(_ context.Context, es []ledger.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendBatchLocked(es)
}

func (m *Memory) appendBatchLocked(es []ledger.Entry) error {
	// Check all idempotency keys first (atomic check)
	seen := make(map[string]bool)
	for _, e := range es {
		if e.IdempotencyKey == "" {
			continue
		}
		if m.idempotency[e.IdempotencyKey] || seen[e.IdempotencyKey] {
			return ledger.ErrDuplicateIdempotencyKey
		}
		seen[e.IdempotencyKey] = true
	}

	for _, e := range es {
		if err := m.appendLocked(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) appendLocked(e ledger.Entry) error {
	if e.IdempotencyKey != "" && m.idempotency[e.IdempotencyKey] {
		return ledger.ErrDuplicateIdempotencyKey
	}

	es := m.entries[e.Series]
	key := e.Key()

	// Binary search for insertion point; equal keys keep recording order.
	i := sort.Search(len(es), func(i int) bool {
		return es[i].Key() > key
	})

	es = append(es, ledger.Entry{})
	copy(es[i+1:], es[i:])
	es[i] = e
	m.entries[e.Series] = es

	if e.IdempotencyKey != "" {
		m.idempotency[e.IdempotencyKey] = true
	}
	return nil
}

func (m *Memory) Load(_ context.Context, series ledger.SeriesID) ([]ledger.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadLocked(series), nil
}

func (m *Memory) loadLocked(series ledger.SeriesID) []ledger.Entry {
	result := make([]ledger.Entry, len(m.entries[series]))
	copy(result, m.entries[series])
	return result
}

func (m *Memory) LoadRange(_ context.Context, series ledger.SeriesID, from, to unitoftime.UnitOfTime) ([]ledger.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadRangeLocked(series, from, to), nil
}

func (m *Memory) loadRangeLocked(series ledger.SeriesID, from, to unitoftime.UnitOfTime) []ledger.Entry {
	var result []ledger.Entry
	for _, e := range m.entries[series] {
		if ledger.InRange(e.Key(), from, to) {
			result = append(result, e)
		}
	}
	return result
}

func (m *Memory) Exists(_ context.Context, idempotencyKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idempotency[idempotencyKey], nil
}

func (m *Memory) SeriesKind(_ context.Context, series ledger.SeriesID) (unitoftime.Kind, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seriesKindLocked(series), nil
}

func (m *Memory) seriesKindLocked(series ledger.SeriesID) unitoftime.Kind {
	es := m.entries[series]
	if len(es) == 0 {
		return unitoftime.KindInvalid
	}
	return es[0].Kind()
}

func (m *Memory) Series(_ context.Context) ([]ledger.SeriesInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seriesLocked(), nil
}

func (m *Memory) seriesLocked() []ledger.SeriesInfo {
	result := make([]ledger.SeriesInfo, 0, len(m.entries))
	for id, es := range m.entries {
		if len(es) == 0 {
			continue
		}
		result = append(result, ledger.SeriesInfo{ID: id, Kind: es[0].Kind(), Entries: len(es)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn while holding the write lock. Writes made by fn are
// rolled back from a snapshot when fn fails.
func (m *Memory) WithTx(_ context.Context, fn func(ledger.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.snapshot()
	if err := fn(&txView{parent: m}); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	entries     map[ledger.SeriesID][]ledger.Entry
	idempotency map[string]bool
}

func (m *Memory) snapshot() memorySnapshot {
	entriesCopy := make(map[ledger.SeriesID][]ledger.Entry, len(m.entries))
	for k, v := range m.entries {
		entriesCopy[k] = append([]ledger.Entry{}, v...)
	}
	idempCopy := make(map[string]bool, len(m.idempotency))
	for k, v := range m.idempotency {
		idempCopy[k] = v
	}
	return memorySnapshot{entries: entriesCopy, idempotency: idempCopy}
}

func (m *Memory) restore(s memorySnapshot) {
	m.entries = s.entries
	m.idempotency = s.idempotency
}

// txView is the Store handed to WithTx callbacks. The parent's lock is
// already held, so it calls the *Locked helpers directly.
type txView struct {
	parent *Memory
}

func (tv *txView) Append(_ context.Context, e ledger.Entry) error {
	return tv.parent.appendLocked(e)
}

func (tv *txView) AppendBatch(_ context.Context, es []ledger.Entry) error {
	return tv.parent.appendBatchLocked(es)
}

func (tv *txView) Load(_ context.Context, series ledger.SeriesID) ([]ledger.Entry, error) {
	return tv.parent.loadLocked(series), nil
}

func (tv *txView) LoadRange(_ context.Context, series ledger.SeriesID, from, to unitoftime.UnitOfTime) ([]ledger.Entry, error) {
	return tv.parent.loadRangeLocked(series, from, to), nil
}

func (tv *txView) Exists(_ context.Context, idempotencyKey string) (bool, error) {
	return tv.parent.idempotency[idempotencyKey], nil
}

func (tv *txView) SeriesKind(_ context.Context, series ledger.SeriesID) (unitoftime.Kind, error) {
	return tv.parent.seriesKindLocked(series), nil
}

func (tv *txView) Series(_ context.Context) ([]ledger.SeriesInfo, error) {
	return tv.parent.seriesLocked(), nil
}
