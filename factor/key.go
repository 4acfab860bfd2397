package factor

import (
	"fmt"
	"sort"
)

// Key identifies a state variable. Keys built via Symbol pack a one-byte
// character tag and a 56-bit index, mirroring the usual "x1", "l3" naming
// for poses and landmarks; plain integer keys work too.
type Key uint64

// indexBits is the width of the index part of a symbol-built key.
const indexBits = 56

// Symbol builds a Key from a character tag and an index, e.g.
// Symbol('x', 1).
func Symbol(c byte, j uint64) Key {
	return Key(uint64(c)<<indexBits | (j & (1<<indexBits - 1)))
}

// String renders symbol-built keys as "<tag><index>" and plain keys as their
// decimal value.
func (k Key) String() string {
	c := byte(k >> indexBits)
	j := uint64(k) & (1<<indexBits - 1)
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
		return fmt.Sprintf("%c%d", c, j)
	}

	return fmt.Sprintf("%d", uint64(k))
}

// sortKeys orders keys ascending in place and returns the slice.
func sortKeys(keys []Key) []Key {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}
