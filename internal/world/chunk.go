package world

import "github.com/reallyoldfogie/raytrace-blocks/raycast"

// Chunks are 16x16x16. Local index = x | z<<4 | y<<8.
const (
	chunkShift = 4
	chunkSize  = 1 << chunkShift
	chunkMask  = chunkSize - 1
	chunkLen   = chunkSize * chunkSize * chunkSize
)

// ChunkPos identifies a chunk by voxel coordinate >> 4 on each axis.
type ChunkPos struct {
	X, Y, Z int
}

type chunk struct {
	blocks [chunkLen]uint16 // palette ids, 0 is air
}

// chunkPosOf relies on arithmetic shifts flooring negative coordinates.
func chunkPosOf(pos raycast.VoxelCoord) ChunkPos {
	return ChunkPos{X: pos.X >> chunkShift, Y: pos.Y >> chunkShift, Z: pos.Z >> chunkShift}
}

func localIndex(pos raycast.VoxelCoord) int {
	return (pos.X & chunkMask) | (pos.Z&chunkMask)<<chunkShift | (pos.Y&chunkMask)<<(2*chunkShift)
}
