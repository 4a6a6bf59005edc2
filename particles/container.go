package particles

// Particle is one row of a Container: a hypothesis state with its
// importance weight and cluster tag.
type Particle[S any] struct {
	State   S
	Weight  float64
	Cluster int64
}

// Container stores a particle population as parallel columns sharing
// one length. The zero value is an empty container ready for use.
//
// Elements past the length but within capacity always hold zero
// values, so growing through Resize exposes freshly zeroed rows.
type Container[S any] struct {
	states   []S
	weights  []float64
	clusters []int64
}

// New returns a container holding n zero-valued particles.
func New[S any](n int) *Container[S] {
	return &Container[S]{
		states:   make([]S, n),
		weights:  make([]float64, n),
		clusters: make([]int64, n),
	}
}

// Len returns the number of particles.
func (c *Container[S]) Len() int { return len(c.states) }

// Cap returns the number of particles the container can hold without
// reallocating.
func (c *Container[S]) Cap() int { return cap(c.states) }

// Resize sets the population to n particles. Shrinking keeps capacity;
// growing fills the new rows with zero values.
func (c *Container[S]) Resize(n int) {
	switch {
	case n < len(c.states):
		clear(c.states[n:])
		clear(c.weights[n:])
		clear(c.clusters[n:])
		c.states = c.states[:n]
		c.weights = c.weights[:n]
		c.clusters = c.clusters[:n]
	case n > len(c.states):
		c.Reserve(n)
		c.states = c.states[:n]
		c.weights = c.weights[:n]
		c.clusters = c.clusters[:n]
	}
}

// Reserve grows capacity to hold at least n particles without changing
// the length.
func (c *Container[S]) Reserve(n int) {
	if n <= cap(c.states) {
		return
	}
	states := make([]S, len(c.states), n)
	copy(states, c.states)
	c.states = states
	weights := make([]float64, len(c.weights), n)
	copy(weights, c.weights)
	c.weights = weights
	clusters := make([]int64, len(c.clusters), n)
	copy(clusters, c.clusters)
	c.clusters = clusters
}

// Clear removes all particles, keeping capacity.
func (c *Container[S]) Clear() { c.Resize(0) }

// Append adds one particle, growing capacity as needed.
func (c *Container[S]) Append(state S, weight float64, cluster int64) {
	c.states = append(c.states, state)
	c.weights = append(c.weights, weight)
	c.clusters = append(c.clusters, cluster)
}

// States returns the state column. The slice aliases the container's
// backing array: writes through it are visible to every other view
// until the next growth reallocates.
func (c *Container[S]) States() []S { return c.states }

// Weights returns the weight column, aliasing the backing array like
// States.
func (c *Container[S]) Weights() []float64 { return c.weights }

// Clusters returns the cluster tag column, aliasing the backing array
// like States.
func (c *Container[S]) Clusters() []int64 { return c.clusters }

// CopyFrom replaces the contents with a copy of src's particles.
func (c *Container[S]) CopyFrom(src *Container[S]) {
	c.Resize(src.Len())
	copy(c.states, src.states)
	copy(c.weights, src.weights)
	copy(c.clusters, src.clusters)
}
