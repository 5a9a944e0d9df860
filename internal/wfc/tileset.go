// Package wfc implements Wave Function Collapse over a 2D grid of tiles.
package wfc

import (
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// MaxTiles is the largest tile count a ruleset may hold. Possibility and
// compatibility sets are single 64-bit words.
const MaxTiles = 64

// TileID identifies a tile by its position in the ruleset.
type TileID uint8

// Unresolved marks an output cell that has not collapsed yet.
const Unresolved TileID = math.MaxUint8

// TileSet is a fixed-width bit set over tile IDs.
type TileSet uint64

// FullSet returns a set containing tiles 0..n-1.
func FullSet(n int) TileSet {
	if n >= MaxTiles {
		return TileSet(math.MaxUint64)
	}
	if n <= 0 {
		return 0
	}
	return TileSet(uint64(1)<<uint(n) - 1)
}

// SetOf returns a set containing the given tiles.
func SetOf(ids ...TileID) TileSet {
	var s TileSet
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

// Has reports whether id is in the set.
func (s TileSet) Has(id TileID) bool {
	return id < MaxTiles && s&(1<<id) != 0
}

// With returns the set with id added.
func (s TileSet) With(id TileID) TileSet {
	if id >= MaxTiles {
		return s
	}
	return s | 1<<id
}

// Without returns the set with id removed.
func (s TileSet) Without(id TileID) TileSet {
	if id >= MaxTiles {
		return s
	}
	return s &^ (1 << id)
}

// Count returns the number of tiles in the set.
func (s TileSet) Count() int {
	return bits.OnesCount64(uint64(s))
}

// Empty reports whether the set has no tiles.
func (s TileSet) Empty() bool {
	return s == 0
}

// First returns the lowest tile ID in the set, or Unresolved for an empty set.
func (s TileSet) First() TileID {
	if s == 0 {
		return Unresolved
	}
	return TileID(bits.TrailingZeros64(uint64(s)))
}

// Nth returns the n-th lowest tile ID in the set (0-based), or Unresolved
// when n is out of range.
func (s TileSet) Nth(n int) TileID {
	if n < 0 {
		return Unresolved
	}
	m := uint64(s)
	for m != 0 {
		b := bits.TrailingZeros64(m)
		if n == 0 {
			return TileID(b)
		}
		n--
		m &^= 1 << uint(b)
	}
	return Unresolved
}

// IDs returns the tiles in ascending order.
func (s TileSet) IDs() []TileID {
	ids := make([]TileID, 0, s.Count())
	m := uint64(s)
	for m != 0 {
		b := bits.TrailingZeros64(m)
		m &^= 1 << uint(b)
		ids = append(ids, TileID(b))
	}
	return ids
}

// String formats the set as "{0 3 5}".
func (s TileSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range s.IDs() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(id)))
	}
	sb.WriteByte('}')
	return sb.String()
}
