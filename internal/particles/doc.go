// Package particles owns the fixed-capacity particle buffers.
//
// A [Pool] stores particles as parallel slices (position, velocity, color,
// ttl) so render adapters can hand them to a GPU or a canvas without copying.
// Two population strategies exist:
//
//   - [Static]: particles are placed once and live forever, bouncing off the
//     box walls.
//   - [Emitted]: particles spawn at a moving emitter, age out after a fixed
//     number of frames and are respawned in gated batches.
//
// A pool never grows. Changing the population means building a new pool.
package particles
