package testfixtures

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator hands out sequential identifiers of the form prefix-N, so test
// assertions can name the exact IDs a service will assign.
type IDGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewIDGenerator returns a generator for the given prefix; an empty prefix
// falls back to "id".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence, starting at prefix-1.
func (g *IDGenerator) Next() string {
	return g.prefix + "-" + strconv.FormatUint(g.counter.Add(1), 10)
}

// NextFunc adapts the generator for injection. A nil generator yields a
// function producing empty strings.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// Reset rewinds the sequence so the next identifier is prefix-1 again.
func (g *IDGenerator) Reset() {
	g.counter.Store(0)
}
