package crs

import (
	"sync"
	"sync/atomic"
)

// Ref is a non-owning handle to a CRS held by a Table. The zero Ref means "no CRS".
// A Ref is only meaningful to the Table that issued it.
type Ref struct {
	table uint64
	id    int
}

// None is the zero Ref.
var None = Ref{}

// Valid reports whether r refers to a table entry.
func (r Ref) Valid() bool { return r.id > 0 }

// Table is the document-level set of CRS definitions shared by geometries.
type Table struct {
	mu      sync.RWMutex
	seq     uint64
	entries []CRS
}

var tableSeq atomic.Uint64

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{seq: tableSeq.Add(1)}
}

// Add registers c and returns its reference. Equal definitions share one entry.
// Adding nil returns None.
func (t *Table) Add(c CRS) Ref {
	if c == nil {
		return None
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i, e := range t.entries {
		if Equal(e, c) {
			return Ref{table: t.seq, id: i + 1}
		}
	}
	t.entries = append(t.entries, c)
	return Ref{table: t.seq, id: len(t.entries)}
}

// Lookup returns the CRS r refers to. Refs issued by another table are not found.
func (t *Table) Lookup(r Ref) (CRS, bool) {
	if !r.Valid() || r.table != t.seq {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if r.id > len(t.entries) {
		return nil, false
	}
	return t.entries[r.id-1], true
}

// Len returns the number of distinct definitions.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
