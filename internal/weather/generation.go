package weather

import "sync/atomic"

// Generations issues monotonically increasing tokens so that a result can be
// checked against the most recently issued request.
type Generations struct {
	latest atomic.Uint64
}

// Next issues a new token, superseding every token issued before it.
func (g *Generations) Next() uint64 {
	return g.latest.Add(1)
}

// IsLatest reports whether token is the most recently issued one.
func (g *Generations) IsLatest(token uint64) bool {
	return g.latest.Load() == token
}
