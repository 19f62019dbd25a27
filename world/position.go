package world

import "github.com/go-gl/mathgl/mgl64"

// ChunkDim is the edge length of a cubic chunk, in blocks.
const ChunkDim = 32

// ChunkDimF is ChunkDim as a float64, for geometry code.
const ChunkDimF = float64(ChunkDim)

// ChunkPos holds the absolute position of a chunk, measured in chunks. The
// first value is the X coordinate, the second the Y coordinate and the third
// the Z coordinate.
type ChunkPos [3]int32

// X returns the X coordinate of the chunk position.
func (p ChunkPos) X() int32 { return p[0] }

// Y returns the Y coordinate of the chunk position.
func (p ChunkPos) Y() int32 { return p[1] }

// Z returns the Z coordinate of the chunk position.
func (p ChunkPos) Z() int32 { return p[2] }

// Origin returns the absolute block position of the chunk's lowest corner.
func (p ChunkPos) Origin() BlockPos {
	return BlockPos{p[0] * ChunkDim, p[1] * ChunkDim, p[2] * ChunkDim}
}

// Contains reports whether the absolute block position pos falls inside the
// chunk.
func (p ChunkPos) Contains(pos BlockPos) bool {
	o := p.Origin()
	return pos[0] >= o[0] && pos[0] < o[0]+ChunkDim &&
		pos[1] >= o[1] && pos[1] < o[1]+ChunkDim &&
		pos[2] >= o[2] && pos[2] < o[2]+ChunkDim
}

// Local converts an absolute block position to in-chunk coordinates. The
// second return value is false if the position does not fall inside the
// chunk.
func (p ChunkPos) Local(pos BlockPos) (x, y, z int32, ok bool) {
	if !p.Contains(pos) {
		return 0, 0, 0, false
	}
	o := p.Origin()
	return pos[0] - o[0], pos[1] - o[1], pos[2] - o[2], true
}

// BlockPos holds the absolute position of a block, measured in blocks.
type BlockPos [3]int32

// X returns the X coordinate of the block position.
func (p BlockPos) X() int32 { return p[0] }

// Y returns the Y coordinate of the block position.
func (p BlockPos) Y() int32 { return p[1] }

// Z returns the Z coordinate of the block position.
func (p BlockPos) Z() int32 { return p[2] }

// XZ returns the horizontal components of the block position as a vector.
func (p BlockPos) XZ() mgl64.Vec2 {
	return mgl64.Vec2{float64(p[0]), float64(p[2])}
}

// Add returns the block position translated by the position passed.
func (p BlockPos) Add(q BlockPos) BlockPos {
	return BlockPos{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}
