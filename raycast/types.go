package raycast

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// VoxelCoord identifies a unit grid cell by its integer coordinates.
type VoxelCoord struct {
	X, Y, Z int
}

// Floor returns the voxel containing p.
func Floor(p mgl64.Vec3) VoxelCoord {
	return VoxelCoord{
		X: int(math.Floor(p[0])),
		Y: int(math.Floor(p[1])),
		Z: int(math.Floor(p[2])),
	}
}

// Add returns c offset by (dx, dy, dz).
func (c VoxelCoord) Add(dx, dy, dz int) VoxelCoord {
	return VoxelCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Vec3 returns the minimum corner of the voxel.
func (c VoxelCoord) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)}
}

func (c VoxelCoord) String() string {
	return fmt.Sprintf("%d %d %d", c.X, c.Y, c.Z)
}

// Face is the side of a collision box a ray entered through.
type Face int

const (
	FaceNone  Face = -1
	FaceDown  Face = 0 // -Y
	FaceUp    Face = 1 // +Y
	FaceNorth Face = 2 // -Z
	FaceSouth Face = 3 // +Z
	FaceWest  Face = 4 // -X
	FaceEast  Face = 5 // +X
)

func (f Face) String() string {
	switch f {
	case FaceDown:
		return "down"
	case FaceUp:
		return "up"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	case FaceWest:
		return "west"
	case FaceEast:
		return "east"
	default:
		return "none"
	}
}

// Normal returns the outward unit normal of the face, or the zero vector for FaceNone.
func (f Face) Normal() mgl64.Vec3 {
	switch f {
	case FaceDown:
		return mgl64.Vec3{0, -1, 0}
	case FaceUp:
		return mgl64.Vec3{0, 1, 0}
	case FaceNorth:
		return mgl64.Vec3{0, 0, -1}
	case FaceSouth:
		return mgl64.Vec3{0, 0, 1}
	case FaceWest:
		return mgl64.Vec3{-1, 0, 0}
	case FaceEast:
		return mgl64.Vec3{1, 0, 0}
	default:
		return mgl64.Vec3{}
	}
}

// Intercept is where a segment enters a collision volume.
type Intercept struct {
	Point mgl64.Vec3
	Face  Face
}

// HitResult is the voxel a raycast stopped at and the point where the ray
// first entered its collision volume.
type HitResult struct {
	Voxel VoxelCoord
	Point mgl64.Vec3
	Face  Face
}

// Content is whatever a grid stores at a coordinate. TestIntercept reports
// where the segment [start, end] enters the content's collision volume, if
// it does at all.
type Content interface {
	TestIntercept(start, end mgl64.Vec3) (Intercept, bool)
}

// Grid looks up the content of a voxel. Implementations used from several
// goroutines at once must allow concurrent reads.
type Grid interface {
	Content(pos VoxelCoord) Content
}

// GridFunc adapts a plain function to Grid.
type GridFunc func(pos VoxelCoord) Content

func (f GridFunc) Content(pos VoxelCoord) Content {
	return f(pos)
}
