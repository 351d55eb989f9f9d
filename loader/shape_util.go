package loader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reallyoldfogie/raytrace-blocks/raycast"
)

// parallelEpsilon is the squared segment extent below which a segment is
// treated as parallel to a face plane.
const parallelEpsilon = 1e-7

// AABB represents an axis-aligned bounding box in world coordinates.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// face planes in the order they are tested; on equal distance the earlier
// plane wins.
var planes = [6]struct {
	axis int
	max  bool
	face raycast.Face
}{
	{axis: 0, max: false, face: raycast.FaceWest},
	{axis: 0, max: true, face: raycast.FaceEast},
	{axis: 1, max: false, face: raycast.FaceDown},
	{axis: 1, max: true, face: raycast.FaceUp},
	{axis: 2, max: false, face: raycast.FaceNorth},
	{axis: 2, max: true, face: raycast.FaceSouth},
}

// CalculateIntercept returns the point where the segment [start, end] meets
// the surface of the box nearest to start, and the face it meets.
func (a AABB) CalculateIntercept(start, end mgl64.Vec3) (raycast.Intercept, bool) {
	best := raycast.Intercept{Face: raycast.FaceNone}
	bestDist := math.Inf(1)

	for _, p := range planes {
		value := a.Min[p.axis]
		if p.max {
			value = a.Max[p.axis]
		}
		v, ok := intermediate(start, end, p.axis, value)
		if !ok || !a.onFace(v, p.axis) {
			continue
		}
		if d := v.Sub(start).LenSqr(); d < bestDist {
			best = raycast.Intercept{Point: v, Face: p.face}
			bestDist = d
		}
	}

	if best.Face == raycast.FaceNone {
		return raycast.Intercept{}, false
	}
	return best, true
}

// onFace reports whether v lies within the box on the two axes other than axis.
func (a AABB) onFace(v mgl64.Vec3, axis int) bool {
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if v[i] < a.Min[i] || v[i] > a.Max[i] {
			return false
		}
	}
	return true
}

// intermediate returns the point on the segment whose coordinate on axis
// equals value, or false if the segment is parallel to that plane or does
// not reach it.
func intermediate(start, end mgl64.Vec3, axis int, value float64) (mgl64.Vec3, bool) {
	diff := end.Sub(start)
	if diff[axis]*diff[axis] < parallelEpsilon {
		return mgl64.Vec3{}, false
	}
	f := (value - start[axis]) / diff[axis]
	if f < 0 || f > 1 {
		return mgl64.Vec3{}, false
	}
	v := start.Add(diff.Mul(f))
	v[axis] = value
	return v, true
}

// HasCollision reports whether the blockstate has at least one collision box.
func (info ShapeInfo) HasCollision() bool {
	return len(info.Collision) > 0
}

// IsPassable reports whether the blockstate should be considered passable
// for entity movement. This is based purely on collision, not outline.
func (info ShapeInfo) IsPassable() bool {
	if info.Air {
		return true
	}
	if !info.BlocksMovement {
		return true
	}
	return false
}

// IsStandingSurface returns the maximum Y of the collision shape in
// block-local coordinates [0,1]. Returns 0 if there is no collision.
func (info ShapeInfo) IsStandingSurface() float64 {
	top := 0.0
	for _, b := range info.Collision {
		if b.Max[1] > top {
			top = b.Max[1]
		}
	}
	return top
}

// CanSeeThrough reports whether this blockstate should be considered
// transparent for line-of-sight / vision purposes.
func (info ShapeInfo) CanSeeThrough() bool {
	if info.Air {
		return true
	}
	return !info.Opaque
}

// WorldCollisionBoxesAt returns the collision boxes for this ShapeInfo
// translated into world coordinates at the given block position.
func (info ShapeInfo) WorldCollisionBoxesAt(blockX, blockY, blockZ int) []AABB {
	if len(info.Collision) == 0 {
		return nil
	}

	origin := mgl64.Vec3{float64(blockX), float64(blockY), float64(blockZ)}

	out := make([]AABB, len(info.Collision))
	for i, b := range info.Collision {
		out[i] = AABB{
			Min: origin.Add(mgl64.Vec3(b.Min)),
			Max: origin.Add(mgl64.Vec3(b.Max)),
		}
	}
	return out
}

// CalculateIntercept tests the segment [start, end] against every collision
// box of the blockstate placed at the given block position and returns the
// intercept nearest to start. A shape without collision boxes never hits.
func (info ShapeInfo) CalculateIntercept(blockX, blockY, blockZ int, start, end mgl64.Vec3) (raycast.Intercept, bool) {
	var best raycast.Intercept
	found := false
	bestDist := math.Inf(1)

	for _, bb := range info.WorldCollisionBoxesAt(blockX, blockY, blockZ) {
		in, ok := bb.CalculateIntercept(start, end)
		if !ok {
			continue
		}
		if d := in.Point.Sub(start).LenSqr(); d < bestDist {
			best, bestDist, found = in, d, true
		}
	}
	return best, found
}

// IsClimbable reports whether this blockstate is climbable.
func (info ShapeInfo) IsClimbable() bool {
	return info.Climbable
}

func (info ShapeInfo) IsFluid() bool {
	return info.Fluid
}

func (info ShapeInfo) IsWater() bool {
	return info.Water
}

func (info ShapeInfo) IsLava() bool {
	return info.Lava
}

func (info ShapeInfo) IsDoorLike() bool {
	return info.DoorLike
}

func (info ShapeInfo) IsFenceLike() bool {
	return info.FenceLike
}

func (info ShapeInfo) IsSlab() bool {
	return info.Slab
}

func (info ShapeInfo) IsStair() bool {
	return info.Stair
}

func (info ShapeInfo) IsLogOrLeaf() bool {
	return info.LogOrLeaf
}
