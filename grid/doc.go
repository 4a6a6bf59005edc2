// Package grid implements the occupancy-grid map the sensor models
// query: a static width-by-height boolean grid with a resolution and a
// world-frame origin transform, integer Bresenham ray traversal for
// expected-range queries, and an exact nearest-obstacle distance
// transform for likelihood-field precomputation.
//
// Cells are addressed as (ix, iy) with the row-major index iy*width+ix.
// The origin transform maps grid-frame coordinates into the world
// frame; a cell (ix, iy) covers the grid-frame square
// [ix*res, (ix+1)*res) x [iy*res, (iy+1)*res).
package grid
