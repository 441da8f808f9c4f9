// internal/generator/carry.go
package generator

// Carry is the cross-day state mapping identifiers to their last emitted
// row. Its only consumers are the resurfacing steps, which re-deliver a
// prior record on a later day. Ids are also kept in insertion order so a
// random pick is deterministic under a fixed seed; Go map iteration order
// is randomized and would break reproducibility.
//
// No eviction: state grows with the total identifiers generated, which is
// fine for a bounded one-shot run.
type Carry[T any] struct {
	ids  []string
	rows map[string]T
}

func NewCarry[T any]() *Carry[T] {
	return &Carry[T]{rows: make(map[string]T)}
}

// Put records the last emitted row for id. Resurfaced rows overwrite the
// prior entry without disturbing insertion order.
func (c *Carry[T]) Put(id string, row T) {
	if _, ok := c.rows[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.rows[id] = row
}

func (c *Carry[T]) Len() int {
	return len(c.ids)
}

// Random returns a uniformly chosen carried entry. Callers must check Len
// first.
func (c *Carry[T]) Random(rng *Rand) (string, T) {
	id := c.ids[rng.Intn(len(c.ids))]
	return id, c.rows[id]
}
