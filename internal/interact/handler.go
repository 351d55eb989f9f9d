package interact

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reallyoldfogie/raytrace-blocks/internal/world"
	"github.com/reallyoldfogie/raytrace-blocks/loader"
	"github.com/reallyoldfogie/raytrace-blocks/raycast"
)

const DefaultRadius = 50

// DefaultReplaceWith is placed where a ray strikes.
var DefaultReplaceWith = loader.StateKey{BlockID: "minecraft:glass"}

type Action int

const (
	RightClickAir Action = iota
	LeftClickAir
	RightClickBlock
	LeftClickBlock
)

func (a Action) String() string {
	switch a {
	case RightClickAir:
		return "right_click_air"
	case LeftClickAir:
		return "left_click_air"
	case RightClickBlock:
		return "right_click_block"
	case LeftClickBlock:
		return "left_click_block"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Feedback receives the visible and audible results of an interaction.
type Feedback interface {
	Message(text string)
	Explode(at mgl64.Vec3)
}

// Outcome is what one handled interaction produced.
type Outcome struct {
	Fired   bool
	Hit     raycast.HitResult
	OK      bool
	Elapsed time.Duration
}

// Handler fires a ray when a player right clicks the air and, on a hit,
// replaces the struck block.
type Handler struct {
	World       *world.World
	Radius      float64         // zero means DefaultRadius
	ReplaceWith loader.StateKey // zero means DefaultReplaceWith
	Feedback    Feedback        // may be nil
	Clock       func() time.Time
}

// Handle reacts to a player action. Actions other than RightClickAir are
// ignored.
func (h *Handler) Handle(p Player, action Action) (Outcome, error) {
	if action != RightClickAir {
		return Outcome{}, nil
	}

	radius := h.Radius
	if radius == 0 {
		radius = DefaultRadius
	}
	start := p.Eye()
	end := start.Add(p.DirectionVector().Mul(radius))

	began := h.now()
	hit, ok, err := raycast.Raycast(h.World, start, end, radius)
	elapsed := h.now().Sub(began)
	if err != nil {
		return Outcome{}, fmt.Errorf("raycast: %w", err)
	}

	out := Outcome{Fired: true, Hit: hit, OK: ok, Elapsed: elapsed}
	if !ok {
		h.message(fmt.Sprintf("out of bounds (%s ms)", formatMillis(elapsed)))
		return out, nil
	}

	h.message(fmt.Sprintf("hit block %s (%s ms)", hit.Voxel, formatMillis(elapsed)))
	if h.Feedback != nil {
		h.Feedback.Explode(hit.Point)
	}

	replace := h.ReplaceWith
	if replace == (loader.StateKey{}) {
		replace = DefaultReplaceWith
	}
	if err := h.World.SetBlock(hit.Voxel, replace); err != nil {
		return out, fmt.Errorf("replace struck block: %w", err)
	}
	return out, nil
}

func (h *Handler) message(text string) {
	if h.Feedback != nil {
		h.Feedback.Message(text)
	}
}

func (h *Handler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d)/float64(time.Millisecond))
}
