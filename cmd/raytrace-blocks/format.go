package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reallyoldfogie/raytrace-blocks/internal/interact"
	"github.com/reallyoldfogie/raytrace-blocks/raycast"
)

// parseVec parses "x,y,z".
func parseVec(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("vector %q: want x,y,z", s)
	}
	var v mgl64.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("vector %q: %w", s, err)
		}
		v[i] = f
	}
	return v, nil
}

func adHocRay(start, dir string, radius float64) (interact.Ray, error) {
	if start == "" || dir == "" {
		return interact.Ray{}, fmt.Errorf("-start and -dir must be given together")
	}
	s, err := parseVec(start)
	if err != nil {
		return interact.Ray{}, fmt.Errorf("start: %w", err)
	}
	d, err := parseVec(dir)
	if err != nil {
		return interact.Ray{}, fmt.Errorf("dir: %w", err)
	}
	if d.LenSqr() == 0 {
		return interact.Ray{}, fmt.Errorf("dir: %w: zero direction", raycast.ErrDegenerateRay)
	}
	return interact.Ray{
		Name:   "ad-hoc",
		Start:  s,
		End:    s.Add(d.Normalize().Mul(radius)),
		Radius: radius,
	}, nil
}

func formatVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X(), v.Y(), v.Z())
}

func formatResult(r interact.Result) string {
	ms := float64(r.Elapsed.Microseconds()) / 1000
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s: %v", r.Ray.Name, r.Err)
	case r.OK:
		return fmt.Sprintf("%s: hit block %s at %s face %s (%.3f ms)",
			r.Ray.Name, r.Hit.Voxel, formatVec(r.Hit.Point), r.Hit.Face, ms)
	default:
		return fmt.Sprintf("%s: out of bounds (%.3f ms)", r.Ray.Name, ms)
	}
}
