// Package generator defines the interface terrain generators implement.
package generator

import (
	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/chunk"
)

// Generator deterministically produces the full block content of single
// chunks. Implementations must be pure functions of (seed, position,
// registries): repeated calls with the same inputs return byte-identical
// chunks, and concurrent calls for different positions are safe without
// locking.
type Generator interface {
	// GenerateChunk generates the chunk at the absolute chunk position
	// passed. The extra payload is attached to the returned chunk unchanged.
	// An error means no usable chunk could be produced; partially generated
	// chunks are never returned.
	GenerateChunk(pos world.ChunkPos, extra any) (*chunk.Chunk, error)
}
