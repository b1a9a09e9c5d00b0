package hashtable

import (
	"github.com/dolthub/maphash"
)

const (
	// DefaultCapacity is the bucket count used when New is given a non-positive capacity.
	DefaultCapacity = 20

	// MaxLoadFactor is the size/capacity ratio an insert is never allowed to exceed.
	MaxLoadFactor = 0.7
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Table is a hash table with separate chaining.
//
// Each bucket holds the entries whose hash lands on that slot, in insertion order.
// Capacity doubles (with a full rehash) before an insert would push the load factor
// past MaxLoadFactor, and never shrinks.
//
// A Table is not safe for concurrent use. Callers sharing one across goroutines
// must serialize every operation, lookups included, since a resize moves entries.
type Table[K comparable, V any] struct {
	hasher  maphash.Hasher[K]
	buckets [][]entry[K, V]
	size    int
}

func New[K comparable, V any](capacity int) *Table[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Table[K, V]{
		hasher:  maphash.NewHasher[K](),
		buckets: make([][]entry[K, V], capacity),
	}
}

func (t *Table[K, V]) slot(key K) int {
	return int(t.hasher.Hash(key) % uint64(len(t.buckets)))
}

// Insert stores value under key, replacing any value already stored for it.
func (t *Table[K, V]) Insert(key K, value V) {
	b := t.slot(key)
	for i := range t.buckets[b] {
		if t.buckets[b][i].key == key {
			t.buckets[b][i].value = value
			return
		}
	}

	for float64(t.size+1)/float64(len(t.buckets)) > MaxLoadFactor {
		t.resize()
		b = t.slot(key)
	}

	t.buckets[b] = append(t.buckets[b], entry[K, V]{key: key, value: value})
	t.size++
}

// Lookup returns the value stored for key; ok is false when the key is absent.
func (t *Table[K, V]) Lookup(key K) (value V, ok bool) {
	for _, e := range t.buckets[t.slot(key)] {
		if e.key == key {
			return e.value, true
		}
	}

	return value, false
}

// Remove deletes key and reports whether it was present.
func (t *Table[K, V]) Remove(key K) bool {
	b := t.slot(key)
	for i, e := range t.buckets[b] {
		if e.key != key {
			continue
		}

		last := len(t.buckets[b]) - 1
		copy(t.buckets[b][i:], t.buckets[b][i+1:])
		var zero entry[K, V]
		t.buckets[b][last] = zero
		t.buckets[b] = t.buckets[b][:last]
		t.size--
		return true
	}

	return false
}

func (t *Table[K, V]) resize() {
	old := t.buckets
	t.buckets = make([][]entry[K, V], 2*len(old))

	for _, bucket := range old {
		for _, e := range bucket {
			b := t.slot(e.key)
			t.buckets[b] = append(t.buckets[b], e)
		}
	}
}

// Len returns the number of stored keys.
func (t *Table[K, V]) Len() int { return t.size }

// Cap returns the current bucket count.
func (t *Table[K, V]) Cap() int { return len(t.buckets) }

func (t *Table[K, V]) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.buckets))
}

// Range calls fn for every entry in bucket order until fn returns false.
// fn must not insert into or remove from the table.
func (t *Table[K, V]) Range(fn func(key K, value V) bool) {
	for _, bucket := range t.buckets {
		for _, e := range bucket {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

// Keys returns every stored key in bucket order.
func (t *Table[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	t.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
