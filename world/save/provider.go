// Package save persists generated chunks to a leveldb database on disk,
// with a small TOML metadata file describing the world.
package save

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/chunk"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml"
)

// Level is the world metadata persisted as level.toml beside the chunk
// database.
type Level struct {
	UUID string `toml:"uuid"`
	Name string `toml:"name"`
	Seed int64  `toml:"seed"`
}

// Provider stores chunks under a world directory. Chunk records are
// zstd-compressed palette storages keyed by chunk position. A Provider is
// safe for concurrent use.
type Provider struct {
	Level Level

	db  *leveldb.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens the world directory at dir, creating it and its level.toml if
// they do not exist yet. Opening an existing world with a different seed is
// an error: its chunks would no longer match the generator.
func Open(dir string, name string, seed int64) (*Provider, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, fmt.Errorf("save: create world dir: %w", err)
	}
	level, err := readLevel(filepath.Join(dir, "level.toml"), name, seed)
	if err != nil {
		return nil, err
	}
	if level.Seed != seed {
		return nil, fmt.Errorf("save: world %q has seed %d, generator has %d", dir, level.Seed, seed)
	}

	db, err := leveldb.OpenFile(filepath.Join(dir, "chunks"), nil)
	if err != nil {
		return nil, fmt.Errorf("save: open chunk db: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("save: zstd writer: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("save: zstd reader: %w", err)
	}
	return &Provider{Level: level, db: db, enc: enc, dec: dec}, nil
}

func readLevel(path, name string, seed int64) (Level, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		level := Level{UUID: uuid.New().String(), Name: name, Seed: seed}
		out, err := toml.Marshal(level)
		if err != nil {
			return Level{}, fmt.Errorf("save: encode level.toml: %w", err)
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return Level{}, fmt.Errorf("save: write level.toml: %w", err)
		}
		return level, nil
	case err != nil:
		return Level{}, fmt.Errorf("save: read level.toml: %w", err)
	}
	var level Level
	if err := toml.Unmarshal(data, &level); err != nil {
		return Level{}, fmt.Errorf("save: decode level.toml: %w", err)
	}
	return level, nil
}

// PutChunk stores the block content of a chunk. The opaque Extra payload is
// not persisted.
func (p *Provider) PutChunk(pos world.ChunkPos, c *chunk.Chunk) error {
	data, err := c.Blocks.MarshalBinary()
	if err != nil {
		return fmt.Errorf("save: encode chunk %v: %w", pos, err)
	}
	record := p.enc.EncodeAll(data, make([]byte, 0, len(data)/8))
	if err := p.db.Put(chunkKey(pos), record, nil); err != nil {
		return fmt.Errorf("save: put chunk %v: %w", pos, err)
	}
	return nil
}

// Chunk loads a previously stored chunk. The second return value is false if
// the chunk has not been stored.
func (p *Provider) Chunk(pos world.ChunkPos) (*chunk.Chunk, bool, error) {
	record, err := p.db.Get(chunkKey(pos), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("save: get chunk %v: %w", pos, err)
	}
	data, err := p.dec.DecodeAll(record, nil)
	if err != nil {
		return nil, false, fmt.Errorf("save: decompress chunk %v: %w", pos, err)
	}
	s := new(chunk.PaletteStorage)
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, false, fmt.Errorf("save: decode chunk %v: %w", pos, err)
	}
	return &chunk.Chunk{Blocks: s}, true, nil
}

// Close flushes and closes the underlying database.
func (p *Provider) Close() error {
	p.dec.Close()
	if err := p.enc.Close(); err != nil {
		_ = p.db.Close()
		return err
	}
	return p.db.Close()
}

func chunkKey(pos world.ChunkPos) []byte {
	key := make([]byte, 12)
	binary.LittleEndian.PutUint32(key, uint32(pos.X()))
	binary.LittleEndian.PutUint32(key[4:], uint32(pos.Y()))
	binary.LittleEndian.PutUint32(key[8:], uint32(pos.Z()))
	return key
}
