// Package pnr generates Passenger Name Records: the 10-digit booking
// confirmation identifiers handed out at payment time.
package pnr

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

const (
	// Min and Max bound the PNR draw, inclusive. Every PNR is a 10-digit
	// decimal with a nonzero leading digit.
	Min = 1_000_000_000
	Max = 9_999_999_999
)

// Generator draws PNRs uniformly from [Min, Max]. Uniqueness is only
// probabilistic; callers that require uniqueness must check the draw
// against their store and redraw on collision.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a time-seeded generator.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministically seeded generator, for tests.
func NewSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Next draws one PNR.
func (g *Generator) Next() string {
	g.mu.Lock()
	n := Min + g.rng.Int63n(Max-Min+1)
	g.mu.Unlock()
	return strconv.FormatInt(n, 10)
}

// Valid reports whether s is a well-formed PNR: exactly ten decimal
// digits with a nonzero leading digit.
func Valid(s string) bool {
	if len(s) != 10 || s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
