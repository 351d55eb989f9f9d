// Package raycast finds the first voxel along a ray whose content has a
// collision volume, using the fast voxel traversal of Amanatides and Woo
// (http://www.cse.yorku.ca/~amana/research/grid.pdf).
package raycast

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerateRay is returned when start and end are the same point, or
// when the ray's inputs are not finite numbers.
var ErrDegenerateRay = errors.New("degenerate ray")

// Raycast walks the voxels between start and end in order and returns the
// first hit reported by a voxel's content. Hits are tested against the
// finite segment [start, end], while the traversal itself stops once the
// next voxel boundary lies further than radius along the ray.
//
// ok is false when nothing was hit within radius.
func Raycast(grid Grid, start, end mgl64.Vec3, radius float64) (hit HitResult, ok bool, err error) {
	err = Traverse(start, end, radius, func(pos VoxelCoord) bool {
		content := grid.Content(pos)
		if content == nil {
			return false
		}
		in, found := content.TestIntercept(start, end)
		if !found {
			return false
		}
		hit = HitResult{Voxel: pos, Point: in.Point, Face: in.Face}
		ok = true
		return true
	})
	if err != nil {
		return HitResult{}, false, err
	}
	return hit, ok, nil
}

// Traverse calls visit for every voxel the ray from start towards end passes
// through, nearest first, until visit returns true or the next boundary is
// beyond radius. The starting voxel is always visited.
func Traverse(start, end mgl64.Vec3, radius float64, visit func(VoxelCoord) bool) error {
	dir, err := direction(start, end)
	if err != nil {
		return err
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) {
		return fmt.Errorf("%w: radius %v is not finite", ErrDegenerateRay, radius)
	}

	current := Floor(start)

	stepX, stepY, stepZ := sign(dir[0]), sign(dir[1]), sign(dir[2])

	// How far along the ray the first boundary on each axis is. Zero when
	// start sits on a boundary and moves negatively out of it.
	tMaxX := DistanceToBoundary(start[0], dir[0])
	tMaxY := DistanceToBoundary(start[1], dir[1])
	tMaxZ := DistanceToBoundary(start[2], dir[2])

	// Change in t for one step on each axis, always positive.
	tDeltaX := stepDelta(stepX, dir[0])
	tDeltaY := stepDelta(stepY, dir[1])
	tDeltaZ := stepDelta(stepZ, dir[2])

	for {
		if visit(current) {
			return nil
		}

		// The least tMax is the closest boundary. Ties go to X, then Y, then Z.
		if tMaxX < tMaxY && tMaxX < tMaxZ {
			if tMaxX > radius {
				return nil
			}
			current.X += stepX
			tMaxX += tDeltaX
		} else if tMaxY < tMaxZ {
			if tMaxY > radius {
				return nil
			}
			current.Y += stepY
			tMaxY += tDeltaY
		} else {
			if tMaxZ > radius {
				return nil
			}
			current.Z += stepZ
			tMaxZ += tDeltaZ
		}
	}
}

// DistanceToBoundary returns the smallest t >= 0 such that s+t*ds is an
// integer, i.e. how far along a ray with direction component ds one has to
// travel from coordinate s to cross into a different voxel on that axis.
// It is +Inf when ds is zero.
func DistanceToBoundary(s, ds float64) float64 {
	if ds == 0 {
		return math.Inf(1)
	}

	if ds < 0 {
		s = -s
		ds = -ds

		// exactly on a boundary, moving negatively leaves it immediately
		if math.Floor(s) == s {
			return 0
		}
	}

	// problem is now s+t*ds = 1
	return (1 - (s - math.Floor(s))) / ds
}

func direction(start, end mgl64.Vec3) (mgl64.Vec3, error) {
	for i := 0; i < 3; i++ {
		if !finite(start[i]) || !finite(end[i]) {
			return mgl64.Vec3{}, fmt.Errorf("%w: start %v or end %v is not finite", ErrDegenerateRay, start, end)
		}
	}
	diff := end.Sub(start)
	if !(diff.LenSqr() > 0) {
		return mgl64.Vec3{}, fmt.Errorf("%w: start and end points are the same, giving a zero direction vector", ErrDegenerateRay)
	}
	return diff.Normalize(), nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func stepDelta(step int, d float64) float64 {
	if d == 0 {
		return 0
	}
	return float64(step) / d
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
