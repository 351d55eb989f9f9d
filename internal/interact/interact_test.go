package interact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reallyoldfogie/raytrace-blocks/internal/world"
	"github.com/reallyoldfogie/raytrace-blocks/loader"
	"github.com/reallyoldfogie/raytrace-blocks/raycast"
)

var stone = loader.StateKey{BlockID: "minecraft:stone"}

type recorder struct {
	messages   []string
	explosions []mgl64.Vec3
}

func (r *recorder) Message(text string)   { r.messages = append(r.messages, text) }
func (r *recorder) Explode(at mgl64.Vec3) { r.explosions = append(r.explosions, at) }

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestDirectionVector(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float64
		want       mgl64.Vec3
	}{
		{name: "south", yaw: 0, pitch: 0, want: mgl64.Vec3{0, 0, 1}},
		{name: "west", yaw: 90, pitch: 0, want: mgl64.Vec3{-1, 0, 0}},
		{name: "north", yaw: 180, pitch: 0, want: mgl64.Vec3{0, 0, -1}},
		{name: "east", yaw: 270, pitch: 0, want: mgl64.Vec3{1, 0, 0}},
		{name: "down", yaw: 0, pitch: 90, want: mgl64.Vec3{0, -1, 0}},
		{name: "up", yaw: 45, pitch: -90, want: mgl64.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Player{Yaw: tt.yaw, Pitch: tt.pitch}.DirectionVector()
			if !got.ApproxEqualThreshold(tt.want, 1e-9) {
				t.Errorf("DirectionVector() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTurnAndMove(t *testing.T) {
	p := Player{Yaw: 350}.Turn(20, 120)
	if p.Yaw != 10 {
		t.Errorf("yaw = %v, want 10", p.Yaw)
	}
	if p.Pitch != 90 {
		t.Errorf("pitch = %v, want 90", p.Pitch)
	}
	if p = (Player{Yaw: 10}).Turn(-30, 0); p.Yaw != 340 {
		t.Errorf("yaw = %v, want 340", p.Yaw)
	}

	moved := Player{}.Move(2, 1)
	if !moved.Position.ApproxEqualThreshold(mgl64.Vec3{-1, 0, 2}, 1e-9) {
		t.Errorf("position = %v, want (-1, 0, 2)", moved.Position)
	}
}

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New(loader.DefaultShapes())
	if err := w.SetBlock(raycast.VoxelCoord{X: 0, Y: 65, Z: 5}, stone); err != nil {
		t.Fatal(err)
	}
	return w
}

func TestHandleHitReplacesBlock(t *testing.T) {
	w := newTestWorld(t)
	fb := &recorder{}
	h := &Handler{World: w, Feedback: fb, Clock: stepClock(1500 * time.Microsecond)}
	p := Player{Position: mgl64.Vec3{0.5, 64, 0.5}, EyeHeight: 1.62}

	out, err := h.Handle(p, RightClickAir)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !out.Fired || !out.OK {
		t.Fatalf("outcome = %+v, want a fired hit", out)
	}
	if out.Hit.Voxel != (raycast.VoxelCoord{X: 0, Y: 65, Z: 5}) {
		t.Errorf("hit voxel = %v", out.Hit.Voxel)
	}
	if out.Hit.Point.Z() != 5 || out.Hit.Face != raycast.FaceNorth {
		t.Errorf("hit point %v face %v, want z=5 north", out.Hit.Point, out.Hit.Face)
	}
	if out.Elapsed != 1500*time.Microsecond {
		t.Errorf("elapsed = %v", out.Elapsed)
	}
	if len(fb.messages) != 1 || fb.messages[0] != "hit block 0 65 5 (1.500 ms)" {
		t.Errorf("messages = %q", fb.messages)
	}
	if len(fb.explosions) != 1 || fb.explosions[0] != out.Hit.Point {
		t.Errorf("explosions = %v", fb.explosions)
	}
	if got := w.Block(out.Hit.Voxel).State; got != DefaultReplaceWith {
		t.Errorf("struck block = %v, want glass", got)
	}
}

func TestHandleMiss(t *testing.T) {
	w := newTestWorld(t)
	fb := &recorder{}
	h := &Handler{World: w, Radius: 10, Feedback: fb, Clock: stepClock(250 * time.Microsecond)}
	p := Player{Position: mgl64.Vec3{0.5, 64, 0.5}, Yaw: 180, EyeHeight: 1.62}

	out, err := h.Handle(p, RightClickAir)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !out.Fired || out.OK {
		t.Fatalf("outcome = %+v, want a fired miss", out)
	}
	if len(fb.messages) != 1 || fb.messages[0] != "out of bounds (0.250 ms)" {
		t.Errorf("messages = %q", fb.messages)
	}
	if len(fb.explosions) != 0 {
		t.Errorf("unexpected explosions %v", fb.explosions)
	}
}

func TestHandleIgnoresOtherActions(t *testing.T) {
	w := newTestWorld(t)
	fb := &recorder{}
	h := &Handler{World: w, Feedback: fb}
	p := Player{Position: mgl64.Vec3{0.5, 64, 0.5}, EyeHeight: 1.62}

	for _, a := range []Action{LeftClickAir, RightClickBlock, LeftClickBlock} {
		out, err := h.Handle(p, a)
		if err != nil || out.Fired {
			t.Errorf("%v: outcome %+v err %v, want ignored", a, out, err)
		}
	}
	if len(fb.messages) != 0 {
		t.Errorf("messages = %q", fb.messages)
	}
	if got := w.Block(raycast.VoxelCoord{X: 0, Y: 65, Z: 5}).State; got != stone {
		t.Errorf("block changed to %v", got)
	}
}

func TestHandleUnknownReplacement(t *testing.T) {
	h := &Handler{World: newTestWorld(t), ReplaceWith: loader.StateKey{BlockID: "minecraft:nope"}}
	p := Player{Position: mgl64.Vec3{0.5, 64, 0.5}, EyeHeight: 1.62}
	out, err := h.Handle(p, RightClickAir)
	if err == nil {
		t.Fatal("expected error for unknown replacement block")
	}
	if !out.OK {
		t.Fatal("outcome should still report the hit")
	}
}

func TestTraceAll(t *testing.T) {
	w := newTestWorld(t)
	rays := []Ray{
		{Name: "hit", Start: mgl64.Vec3{0.5, 65.5, 0.5}, End: mgl64.Vec3{0.5, 65.5, 20.5}, Radius: 20},
		{Name: "miss", Start: mgl64.Vec3{0.5, 65.5, 0.5}, End: mgl64.Vec3{0.5, 65.5, -20.5}, Radius: 20},
		{Name: "degenerate", Start: mgl64.Vec3{1, 1, 1}, End: mgl64.Vec3{1, 1, 1}, Radius: 20},
	}

	results, err := TraceAll(context.Background(), w, rays, 2)
	if err != nil {
		t.Fatalf("TraceAll: %v", err)
	}
	if len(results) != len(rays) {
		t.Fatalf("got %d results, want %d", len(results), len(rays))
	}
	for i, r := range results {
		if r.Ray.Name != rays[i].Name {
			t.Errorf("result %d is %q, want %q", i, r.Ray.Name, rays[i].Name)
		}
	}
	if !results[0].OK || results[0].Hit.Voxel != (raycast.VoxelCoord{X: 0, Y: 65, Z: 5}) || results[0].Err != nil {
		t.Errorf("hit result = %+v", results[0])
	}
	if results[1].OK || results[1].Err != nil {
		t.Errorf("miss result = %+v", results[1])
	}
	if !errors.Is(results[2].Err, raycast.ErrDegenerateRay) {
		t.Errorf("degenerate result err = %v", results[2].Err)
	}
}

func TestTraceAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rays := []Ray{{Start: mgl64.Vec3{}, End: mgl64.Vec3{1, 0, 0}, Radius: 5}}
	if _, err := TraceAll(ctx, world.New(nil), rays, 4); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
