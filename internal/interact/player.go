// Package interact turns player actions into raycasts against a world and
// applies what follows a hit: replacing the struck block and reporting
// feedback.
package interact

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Player is the part of a player an interaction needs. Yaw and Pitch are
// in degrees; yaw 0 faces +Z, 90 faces -X, pitch 90 looks straight down.
type Player struct {
	Position  mgl64.Vec3
	Yaw       float64
	Pitch     float64
	EyeHeight float64
}

// Eye returns the point rays are fired from.
func (p Player) Eye() mgl64.Vec3 {
	return p.Position.Add(mgl64.Vec3{0, p.EyeHeight, 0})
}

// DirectionVector returns the unit vector the player is looking along.
func (p Player) DirectionVector() mgl64.Vec3 {
	yaw := mgl64.DegToRad(p.Yaw)
	pitch := mgl64.DegToRad(p.Pitch)

	y := -math.Sin(pitch)
	xz := math.Cos(pitch)
	x := -xz * math.Sin(yaw)
	z := xz * math.Cos(yaw)
	return mgl64.Vec3{x, y, z}.Normalize()
}

// Turn returns the player rotated by the given degrees, with yaw wrapped
// to [0, 360) and pitch clamped to [-90, 90].
func (p Player) Turn(dYaw, dPitch float64) Player {
	p.Yaw = math.Mod(p.Yaw+dYaw, 360)
	if p.Yaw < 0 {
		p.Yaw += 360
	}
	p.Pitch = mgl64.Clamp(p.Pitch+dPitch, -90, 90)
	return p
}

// Move returns the player translated by forward/strafe blocks in the
// horizontal plane of its yaw.
func (p Player) Move(forward, strafe float64) Player {
	yaw := mgl64.DegToRad(p.Yaw)
	fwd := mgl64.Vec3{-math.Sin(yaw), 0, math.Cos(yaw)}
	right := mgl64.Vec3{-math.Cos(yaw), 0, -math.Sin(yaw)}
	p.Position = p.Position.Add(fwd.Mul(forward)).Add(right.Mul(strafe))
	return p
}
