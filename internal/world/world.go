// Package world is a sparse, chunked voxel world of blockstates. It serves
// as the grid a raycast walks: every voxel's content is a Block whose
// collision boxes come from the loader's shape table.
package world

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reallyoldfogie/raytrace-blocks/loader"
	"github.com/reallyoldfogie/raytrace-blocks/raycast"
)

const (
	// MaxFillVolume caps the number of blocks a single Fill may write.
	MaxFillVolume = 1 << 22
	// MaxPaletteSize is the number of distinct blockstates, air included, a
	// world can store.
	MaxPaletteSize = 1 << 16
)

// Block is the content of one voxel.
type Block struct {
	Pos   raycast.VoxelCoord
	State loader.StateKey
	Shape loader.ShapeInfo
}

// TestIntercept tests the segment against the block's collision boxes.
func (b Block) TestIntercept(start, end mgl64.Vec3) (raycast.Intercept, bool) {
	return b.Shape.CalculateIntercept(b.Pos.X, b.Pos.Y, b.Pos.Z, start, end)
}

// World stores blockstates in 16^3 chunks. Voxels in chunks that were never
// written read as air. Reads may run concurrently with each other; writes
// are serialized, but a raycast running during a write may observe it.
type World struct {
	mu      sync.RWMutex
	chunks  map[ChunkPos]*chunk
	palette []loader.StateKey
	index   map[loader.StateKey]uint16
	shapes  map[loader.StateKey]loader.ShapeInfo
}

// New creates an empty world resolving blockstates against shapes. Air is
// always known, whether or not shapes contains it.
func New(shapes map[loader.StateKey]loader.ShapeInfo) *World {
	w := &World{
		chunks:  make(map[ChunkPos]*chunk),
		palette: []loader.StateKey{loader.AirKey},
		index:   map[loader.StateKey]uint16{loader.AirKey: 0},
		shapes:  make(map[loader.StateKey]loader.ShapeInfo, len(shapes)+1),
	}
	w.shapes[loader.AirKey] = loader.ShapeInfo{Air: true, Replaceable: true}
	for k, v := range shapes {
		w.shapes[k] = v
	}
	return w
}

// Known reports whether the world has a shape for key.
func (w *World) Known(key loader.StateKey) bool {
	_, ok := w.shapes[key]
	return ok
}

// SetBlock places key at pos.
func (w *World) SetBlock(pos raycast.VoxelCoord, key loader.StateKey) error {
	if !w.Known(key) {
		return fmt.Errorf("set block %v: unknown block state %s", pos, key)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	id, err := w.paletteIDLocked(key)
	if err != nil {
		return fmt.Errorf("set block %v: %w", pos, err)
	}
	w.setLocked(pos, id)
	return nil
}

// Fill places key in every voxel of the cuboid spanned by a and b, both
// corners inclusive, and returns the number of voxels written.
func (w *World) Fill(a, b raycast.VoxelCoord, key loader.StateKey) (int, error) {
	if !w.Known(key) {
		return 0, fmt.Errorf("fill %v..%v: unknown block state %s", a, b, key)
	}
	lo := raycast.VoxelCoord{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
	hi := raycast.VoxelCoord{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
	volume, ok := fillVolume(lo, hi)
	if !ok {
		return 0, fmt.Errorf("fill %v..%v: exceeds limit of %d blocks", a, b, MaxFillVolume)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	id, err := w.paletteIDLocked(key)
	if err != nil {
		return 0, fmt.Errorf("fill %v..%v: %w", a, b, err)
	}
	for y := lo.Y; y <= hi.Y; y++ {
		for z := lo.Z; z <= hi.Z; z++ {
			for x := lo.X; x <= hi.X; x++ {
				w.setLocked(raycast.VoxelCoord{X: x, Y: y, Z: z}, id)
			}
		}
	}
	return volume, nil
}

// Block returns the block at pos.
func (w *World) Block(pos raycast.VoxelCoord) Block {
	w.mu.RLock()
	key := w.palette[w.getLocked(pos)]
	w.mu.RUnlock()

	return Block{Pos: pos, State: key, Shape: w.shapes[key]}
}

// Content implements raycast.Grid.
func (w *World) Content(pos raycast.VoxelCoord) raycast.Content {
	return w.Block(pos)
}

// ChunkCount returns the number of chunks that have been written to.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// Palette returns the distinct blockstates the world has stored, air first.
func (w *World) Palette() []loader.StateKey {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]loader.StateKey(nil), w.palette...)
}

func (w *World) paletteIDLocked(key loader.StateKey) (uint16, error) {
	if id, ok := w.index[key]; ok {
		return id, nil
	}
	if len(w.palette) >= MaxPaletteSize {
		return 0, fmt.Errorf("palette full: %d distinct block states", len(w.palette))
	}
	id := uint16(len(w.palette))
	w.palette = append(w.palette, key)
	w.index[key] = id
	return id, nil
}

// fillVolume returns the voxel count of the cuboid lo..hi and false when it
// exceeds MaxFillVolume. Extents are uint64 so the product cannot wrap.
func fillVolume(lo, hi raycast.VoxelCoord) (int, bool) {
	volume := uint64(1)
	for _, e := range [3][2]int{{lo.X, hi.X}, {lo.Y, hi.Y}, {lo.Z, hi.Z}} {
		d := uint64(e[1]) - uint64(e[0])
		if d >= MaxFillVolume {
			return 0, false
		}
		volume *= d + 1
		if volume > MaxFillVolume {
			return 0, false
		}
	}
	return int(volume), true
}

func (w *World) getLocked(pos raycast.VoxelCoord) uint16 {
	c, ok := w.chunks[chunkPosOf(pos)]
	if !ok {
		return 0
	}
	return c.blocks[localIndex(pos)]
}

func (w *World) setLocked(pos raycast.VoxelCoord, id uint16) {
	cp := chunkPosOf(pos)
	c, ok := w.chunks[cp]
	if !ok {
		if id == 0 {
			return
		}
		c = &chunk{}
		w.chunks[cp] = c
	}
	c.blocks[localIndex(pos)] = id
}
