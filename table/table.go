// Package table implements an open-addressing hash map from an interned
// string key to a value.Value, used both for the VM's global variables
// and for the string-interning set. Linear probing, 0.75 max load
// factor, capacity doubling starting at 8 — the classic design from
// the source this spec distills, with tombstones reclaimed only on
// growth.
package table

import "loxvm/value"

const (
	initialCapacity = 8
	maxLoad         = 0.75
)

// Entry is one hash-table slot. An empty slot has Key == nil and
// Value == value.None. A tombstone (a deleted slot kept alive so probe
// chains past it remain valid) has Key == nil and Value == value.True.
type Entry struct {
	Key   *value.ObjString
	Value value.Value
}

func (e Entry) isTombstone() bool { return e.Key == nil && e.Value.Type == value.Bool && e.Value.AsBool() }
func (e Entry) isEmpty() bool     { return e.Key == nil && !e.isTombstone() }

// Table is an open-addressing hash map keyed by *value.ObjString.
// Because strings are interned, key comparison is always by pointer.
type Table struct {
	count   int // live entries + tombstones
	entries []Entry
}

// New returns an empty table. Capacity is allocated lazily on first Set.
func New() *Table {
	return &Table{}
}

// Count returns the number of live entries (tombstones excluded).
// Cost is linear in capacity; intended for tests/diagnostics, not hot paths.
func (t *Table) Count() int {
	n := 0
	for _, e := range t.entries {
		if e.Key != nil {
			n++
		}
	}
	return n
}

// Get looks up key, returning its value and whether it was present.
func (t *Table) Get(key *value.ObjString) (value.Value, bool) {
	if len(t.entries) == 0 {
		return value.None, false
	}
	e := t.findEntry(t.entries, key)
	if e.Key == nil {
		return value.None, false
	}
	return e.Value, true
}

// Set inserts or overwrites key -> v. Returns true if key was not
// already present, whether it landed in an empty slot or reused a
// tombstone; count grows only when an empty slot is taken.
func (t *Table) Set(key *value.ObjString, v value.Value) bool {
	if len(t.entries) == 0 || float64(t.count+1) > float64(len(t.entries))*maxLoad {
		t.adjustCapacity(growCapacity(len(t.entries)))
	}
	entry := t.findEntrySlot(key)
	isNewKey := entry.Key == nil
	if isNewKey && entry.isEmpty() {
		t.count++
	}
	entry.Key = key
	entry.Value = v
	return isNewKey
}

// Delete removes key, writing a tombstone in its place. Returns whether
// the key was present. Count is not decremented — tombstones are only
// reclaimed during a capacity adjustment.
func (t *Table) Delete(key *value.ObjString) bool {
	if len(t.entries) == 0 {
		return false
	}
	entry := t.findEntrySlot(key)
	if entry.Key == nil {
		return false
	}
	entry.Key = nil
	entry.Value = value.True // tombstone marker
	return true
}

// AddAll copies every live entry of t into dst.
func (t *Table) AddAll(dst *Table) {
	for _, e := range t.entries {
		if e.Key != nil {
			dst.Set(e.Key, e.Value)
		}
	}
}

// FindString looks up an interned string by content without allocating
// an ObjString first — the one operation that needs to compare by
// value instead of by pointer, since that's exactly how new strings
// get deduplicated against already-interned ones.
func (t *Table) FindString(chars string, hash uint32) *value.ObjString {
	if len(t.entries) == 0 {
		return nil
	}
	capacity := len(t.entries)
	index := hash % uint32(capacity)
	for {
		entry := &t.entries[index]
		if entry.Key == nil {
			if !entry.isTombstone() {
				return nil
			}
		} else if entry.Key.Hash == hash && entry.Key.Chars == chars {
			return entry.Key
		}
		index = (index + 1) % uint32(capacity)
	}
}

// findEntrySlot locates the slot key belongs in (for Set/Delete),
// growing is the caller's responsibility beforehand.
func (t *Table) findEntrySlot(key *value.ObjString) *Entry {
	return t.findEntry(t.entries, key)
}

// findEntry implements the probe sequence shared by lookup and
// mutation: stop at the first slot whose key matches, or at the first
// empty (non-tombstone) slot — remembering the first tombstone seen so
// it can be reused instead of probing further.
func (t *Table) findEntry(entries []Entry, key *value.ObjString) *Entry {
	capacity := uint32(len(entries))
	index := key.Hash % capacity
	var tombstone *Entry
	for {
		entry := &entries[index]
		if entry.Key == nil {
			if entry.isTombstone() {
				if tombstone == nil {
					tombstone = entry
				}
			} else {
				if tombstone != nil {
					return tombstone
				}
				return entry
			}
		} else if entry.Key == key {
			return entry
		}
		index = (index + 1) % capacity
	}
}

// adjustCapacity rehashes every live entry into a freshly sized table,
// discarding tombstones and recomputing count as the live total.
func (t *Table) adjustCapacity(capacity int) {
	fresh := make([]Entry, capacity)
	t.count = 0
	for _, e := range t.entries {
		if e.Key == nil {
			continue
		}
		dst := t.findEntry(fresh, e.Key)
		dst.Key = e.Key
		dst.Value = e.Value
		t.count++
	}
	t.entries = fresh
}

func growCapacity(capacity int) int {
	if capacity < initialCapacity {
		return initialCapacity
	}
	return capacity * 2
}
