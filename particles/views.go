package particles

import "iter"

// Rows is a row-oriented view over a container's columns. It holds a
// reference to the container, so writes through either are visible
// through both.
type Rows[S any] struct {
	c *Container[S]
}

// Rows returns the row view of the container.
func (c *Container[S]) Rows() Rows[S] { return Rows[S]{c: c} }

// Len returns the number of particles.
func (r Rows[S]) Len() int { return r.c.Len() }

// At returns particle i. Out-of-range indices panic with the usual
// slice bounds error.
func (r Rows[S]) At(i int) Particle[S] {
	return Particle[S]{
		State:   r.c.states[i],
		Weight:  r.c.weights[i],
		Cluster: r.c.clusters[i],
	}
}

// Set overwrites particle i.
func (r Rows[S]) Set(i int, p Particle[S]) {
	r.c.states[i] = p.State
	r.c.weights[i] = p.Weight
	r.c.clusters[i] = p.Cluster
}

// Swap exchanges particles i and j column by column.
func (r Rows[S]) Swap(i, j int) {
	r.c.states[i], r.c.states[j] = r.c.states[j], r.c.states[i]
	r.c.weights[i], r.c.weights[j] = r.c.weights[j], r.c.weights[i]
	r.c.clusters[i], r.c.clusters[j] = r.c.clusters[j], r.c.clusters[i]
}

// All iterates over (index, particle) pairs in order.
func (r Rows[S]) All() iter.Seq2[int, Particle[S]] {
	return func(yield func(int, Particle[S]) bool) {
		for i := range r.c.states {
			if !yield(i, r.At(i)) {
				return
			}
		}
	}
}
