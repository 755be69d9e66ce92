package radial

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoSize bounds the number of cached pairs.
const DefaultMemoSize = 1 << 16

type pairKey struct {
	n1 float64
	l1 int
	n2 float64
	l2 int
	p  float64
}

// canonicalKey orders the pair so that (a, b) and (b, a) share a cache slot.
func canonicalKey(n1 float64, l1 int, n2 float64, l2 int, p float64) pairKey {
	if n2 < n1 || (n2 == n1 && l2 < l1) {
		n1, l1, n2, l2 = n2, l2, n1, l1
	}

	return pairKey{n1: n1, l1: l1, n2: n2, l2: l2, p: p}
}

// Memo caches the results of another Overlap in a bounded LRU.
// It relies on the Overlap symmetry contract: the wrapped implementation is
// only ever called with the pair in canonical order.
type Memo struct {
	inner Overlap
	cache *lru.Cache[pairKey, float64]
}

var _ Overlap = (*Memo)(nil)

// NewMemo wraps inner with an LRU of the given capacity.
func NewMemo(inner Overlap, size int) (*Memo, error) {
	if size <= 0 {
		return nil, fmt.Errorf("size %d: %w", size, ErrInvalidSize)
	}
	c, err := lru.New[pairKey, float64](size)
	if err != nil {
		return nil, err
	}

	return &Memo{inner: inner, cache: c}, nil
}

// Overlap returns the cached value or computes and stores it.
func (m *Memo) Overlap(n1 float64, l1 int, n2 float64, l2 int, p float64) float64 {
	k := canonicalKey(n1, l1, n2, l2, p)
	if v, ok := m.cache.Get(k); ok {
		return v
	}
	v := m.inner.Overlap(k.n1, k.l1, k.n2, k.l2, k.p)
	m.cache.Add(k, v)

	return v
}

// Len reports the number of cached pairs.
func (m *Memo) Len() int { return m.cache.Len() }

// Purge drops every cached pair.
func (m *Memo) Purge() { m.cache.Purge() }
