// Package markercache memoizes marker occurrence counts across profiles.
// Many profiles share markers, and the unknown reads never change during a
// run, so each (read, marker) pair only needs to be scanned once.
package markercache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"strmatch-core/str"
)

// maxSeqs bounds how many distinct reads are tracked before the cache resets.
const maxSeqs = 8

type key struct {
	seq    int
	marker string
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int
	Misses int
	Len    int
}

// Cache is a str.Counter backed by a bounded LRU. It is not safe for
// concurrent use.
type Cache struct {
	lru    *lru.Cache[key, int]
	seqs   []string
	hits   int
	misses int
}

// New returns a cache holding up to size counts. size <= 0 disables caching
// and every Count goes straight to str.CountOccurrences.
func New(size int) (*Cache, error) {
	c := &Cache{}
	if size <= 0 {
		return c, nil
	}
	l, err := lru.New[key, int](size)
	if err != nil {
		return nil, err
	}
	c.lru = l
	return c, nil
}

// Count implements str.Counter.
func (c *Cache) Count(seq, marker string) int {
	if c.lru == nil {
		c.misses++
		return str.CountOccurrences(seq, marker)
	}
	k := key{seq: c.seqID(seq), marker: marker}
	if v, ok := c.lru.Get(k); ok {
		c.hits++
		return v
	}
	c.misses++
	v := str.CountOccurrences(seq, marker)
	c.lru.Add(k, v)
	return v
}

func (c *Cache) seqID(seq string) int {
	for i, s := range c.seqs {
		if s == seq {
			return i
		}
	}
	if len(c.seqs) == maxSeqs {
		c.lru.Purge()
		c.seqs = c.seqs[:0]
	}
	c.seqs = append(c.seqs, seq)
	return len(c.seqs) - 1
}

// Stats returns hit/miss counters and the number of cached counts.
func (c *Cache) Stats() Stats {
	s := Stats{Hits: c.hits, Misses: c.misses}
	if c.lru != nil {
		s.Len = c.lru.Len()
	}
	return s
}

var _ str.Counter = (*Cache)(nil)
