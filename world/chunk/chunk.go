// Package chunk implements the palette-compressed block storage the terrain
// generator writes chunks into.
package chunk

import "github.com/geovox/geovox/world/block"

// Chunk is a fully addressable cube of blocks paired with an opaque per-chunk
// payload. The payload is carried through generation unchanged; the generator
// never inspects it.
type Chunk struct {
	Blocks *PaletteStorage
	Extra  any
}

// New creates a chunk with all blocks set to fill and the extra payload
// attached.
func New(fill block.Entry, extra any) *Chunk {
	return &Chunk{Blocks: NewPaletteStorage(fill), Extra: extra}
}
