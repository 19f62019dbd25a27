package chunk

import (
	"encoding/binary"
	"fmt"

	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/block"
)

// blockCount is the number of blocks in one chunk.
const blockCount = world.ChunkDim * world.ChunkDim * world.ChunkDim

// PaletteStorage is a palette-compressed 3-D block array. Every distinct
// block entry placed in the storage is kept once in a palette; the block
// volume itself stores one palette index per position. The zero value is not
// usable; create storages with NewPaletteStorage.
//
// A PaletteStorage is not safe for concurrent mutation. Chunk generation
// owns its storage exclusively until the populated chunk is handed off.
type PaletteStorage struct {
	palette []block.Entry
	lookup  map[block.Entry]uint16
	blocks  []uint16
}

// NewPaletteStorage creates a storage with every position set to fill.
func NewPaletteStorage(fill block.Entry) *PaletteStorage {
	s := &PaletteStorage{
		palette: []block.Entry{fill},
		lookup:  map[block.Entry]uint16{fill: 0},
		blocks:  make([]uint16, blockCount),
	}
	return s
}

func offset(x, y, z int32) int32 {
	return x + z*world.ChunkDim + y*world.ChunkDim*world.ChunkDim
}

func checkBounds(x, y, z int32) {
	if x < 0 || x >= world.ChunkDim || y < 0 || y >= world.ChunkDim || z < 0 || z >= world.ChunkDim {
		panic(fmt.Sprintf("chunk: position (%d,%d,%d) out of bounds", x, y, z))
	}
}

// At returns the block entry at the in-chunk position passed. At panics if
// the position is outside the chunk bounds.
func (s *PaletteStorage) At(x, y, z int32) block.Entry {
	checkBounds(x, y, z)
	return s.palette[s.blocks[offset(x, y, z)]]
}

// Put sets the block entry at the in-chunk position passed, extending the
// palette if the entry has not been placed before. Put panics if the
// position is outside the chunk bounds.
func (s *PaletteStorage) Put(x, y, z int32, e block.Entry) {
	checkBounds(x, y, z)
	i, ok := s.lookup[e]
	if !ok {
		i = uint16(len(s.palette))
		s.palette = append(s.palette, e)
		s.lookup[e] = i
	}
	s.blocks[offset(x, y, z)] = i
}

// Fill sets every position in the storage to the entry passed.
func (s *PaletteStorage) Fill(e block.Entry) {
	s.palette = s.palette[:0]
	s.palette = append(s.palette, e)
	clear(s.lookup)
	s.lookup[e] = 0
	clear(s.blocks)
}

// PaletteLen returns the number of distinct block entries in the palette.
func (s *PaletteStorage) PaletteLen() int { return len(s.palette) }

// HeightAt returns the in-chunk y of the highest block in the column (x, z)
// that is not equal to empty. The second return value is false if the whole
// column is empty.
func (s *PaletteStorage) HeightAt(x, z int32, empty block.Entry) (int32, bool) {
	for y := int32(world.ChunkDim - 1); y >= 0; y-- {
		if s.palette[s.blocks[offset(x, y, z)]] != empty {
			return y, true
		}
	}
	return 0, false
}

// MarshalBinary encodes the storage as a little-endian palette list followed
// by the index plane.
func (s *PaletteStorage) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 4+len(s.palette)*6+blockCount*2)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.palette)))
	for _, e := range s.palette {
		buf = binary.LittleEndian.AppendUint32(buf, e.ID)
		buf = binary.LittleEndian.AppendUint16(buf, e.Metadata)
	}
	for _, i := range s.blocks {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}
	return buf, nil
}

// UnmarshalBinary decodes a storage previously encoded with MarshalBinary.
func (s *PaletteStorage) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("chunk: storage record truncated (%d bytes)", len(data))
	}
	n := binary.LittleEndian.Uint32(data)
	data = data[4:]
	if len(data) != int(n)*6+blockCount*2 {
		return fmt.Errorf("chunk: storage record has %d bytes, want %d", len(data), int(n)*6+blockCount*2)
	}
	s.palette = make([]block.Entry, n)
	s.lookup = make(map[block.Entry]uint16, n)
	for i := range s.palette {
		e := block.Entry{
			ID:       binary.LittleEndian.Uint32(data),
			Metadata: binary.LittleEndian.Uint16(data[4:]),
		}
		s.palette[i] = e
		s.lookup[e] = uint16(i)
		data = data[6:]
	}
	s.blocks = make([]uint16, blockCount)
	for i := range s.blocks {
		s.blocks[i] = binary.LittleEndian.Uint16(data)
		data = data[2:]
	}
	return nil
}
