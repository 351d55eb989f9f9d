package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/reallyoldfogie/raytrace-blocks/internal/interact"
	"github.com/reallyoldfogie/raytrace-blocks/internal/world"
	"github.com/reallyoldfogie/raytrace-blocks/raycast"
)

const (
	turnStep = 15.0
	moveStep = 1.0
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStep   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleGround = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFluid  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	stylePath   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStruck = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// facing is the direction marker for each 45 degree yaw sector, starting at
// yaw 0 (+Z, drawn downwards).
var facing = []struct {
	dx, dz int
	r      rune
}{
	{0, 1, 'v'},
	{-1, 1, '/'},
	{-1, 0, '<'},
	{-1, -1, '\\'},
	{0, -1, '^'},
	{1, -1, '/'},
	{1, 0, '>'},
	{1, 1, '\\'},
}

// viewer draws a top-down slice of the world around the player. North (-Z)
// is up and east (+X) is right.
type viewer struct {
	screen  tcell.Screen
	world   *world.World
	handler *interact.Handler
	player  interact.Player

	path   map[[2]int]bool
	struck *raycast.VoxelCoord
	status string
}

func newViewer(screen tcell.Screen, w *world.World, h *interact.Handler, p interact.Player) *viewer {
	return &viewer{
		screen:  screen,
		world:   w,
		handler: h,
		player:  p,
		path:    make(map[[2]int]bool),
		status:  "arrows/h/l turn, j/k pitch, w/a/s/d move, space fire, q quit",
	}
}

// Message records the latest feedback line for the status bar.
func (v *viewer) Message(text string) { v.status = text }

func (v *viewer) Explode(mgl64.Vec3) {}

// handleKey applies one key press and reports whether the viewer should
// keep running.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.player = v.player.Turn(-turnStep, 0)
	case tcell.KeyRight:
		v.player = v.player.Turn(turnStep, 0)
	case tcell.KeyUp:
		v.player = v.player.Turn(0, -turnStep)
	case tcell.KeyDown:
		v.player = v.player.Turn(0, turnStep)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			v.player = v.player.Turn(-turnStep, 0)
		case 'l':
			v.player = v.player.Turn(turnStep, 0)
		case 'j':
			v.player = v.player.Turn(0, turnStep)
		case 'k':
			v.player = v.player.Turn(0, -turnStep)
		case 'w':
			v.player = v.player.Move(moveStep, 0)
		case 's':
			v.player = v.player.Move(-moveStep, 0)
		case 'a':
			v.player = v.player.Move(0, -moveStep)
		case 'd':
			v.player = v.player.Move(0, moveStep)
		case ' ':
			v.fire()
		}
	}
	return true
}

// fire right clicks the air and remembers the voxels the ray crossed up to
// the struck one.
func (v *viewer) fire() {
	out, err := v.handler.Handle(v.player, interact.RightClickAir)
	if err != nil {
		v.status = err.Error()
		return
	}

	v.path = make(map[[2]int]bool)
	v.struck = nil
	if out.OK {
		hit := out.Hit.Voxel
		v.struck = &hit
	}

	radius := v.handler.Radius
	if radius == 0 {
		radius = interact.DefaultRadius
	}
	start := v.player.Eye()
	end := start.Add(v.player.DirectionVector().Mul(radius))
	_ = raycast.Traverse(start, end, radius, func(pos raycast.VoxelCoord) bool {
		if v.struck != nil && pos == *v.struck {
			return true
		}
		v.path[[2]int{pos.X, pos.Z}] = true
		return false
	})
}

// cell returns the glyph for map column (x, z) at the player's eye level,
// falling back to the feet and ground layers below it.
func (v *viewer) cell(x, z int) (rune, tcell.Style) {
	eye := raycast.Floor(v.player.Eye())
	feet := raycast.Floor(v.player.Position)

	layers := []struct {
		y     int
		r     rune
		style tcell.Style
	}{
		{eye.Y, '#', styleWall},
		{feet.Y, '+', styleStep},
		{feet.Y - 1, '.', styleGround},
	}
	for _, l := range layers {
		shape := v.world.Block(raycast.VoxelCoord{X: x, Y: l.y, Z: z}).Shape
		if shape.IsFluid() {
			return '~', styleFluid
		}
		if shape.HasCollision() {
			return l.r, l.style
		}
	}
	return ' ', tcell.StyleDefault
}

func (v *viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	mapHeight := height - 2
	cx, cy := width/2, mapHeight/2
	origin := raycast.Floor(v.player.Position)

	for row := 0; row < mapHeight; row++ {
		for col := 0; col < width; col++ {
			x, z := origin.X+col-cx, origin.Z+row-cy
			r, style := v.cell(x, z)
			if v.path[[2]int{x, z}] {
				r, style = '*', stylePath
			}
			if v.struck != nil && v.struck.X == x && v.struck.Z == z {
				r, style = 'X', styleStruck
			}
			v.screen.SetContent(col, row, r, nil, style)
		}
	}

	f := facing[sector(v.player.Yaw)]
	v.screen.SetContent(cx+f.dx, cy+f.dz, f.r, nil, stylePlayer)
	v.screen.SetContent(cx, cy, '@', nil, stylePlayer)

	p := v.player
	pos := fmt.Sprintf("pos %.1f %.1f %.1f  yaw %.0f  pitch %.0f", p.Position.X(), p.Position.Y(), p.Position.Z(), p.Yaw, p.Pitch)
	drawLine(v.screen, mapHeight, width, pos, tcell.StyleDefault)
	drawLine(v.screen, mapHeight+1, width, v.status, styleStatus)
	v.screen.Show()
}

// sector maps a yaw in degrees to an index into facing.
func sector(yaw float64) int {
	s := int(math.Round(yaw/45)) % len(facing)
	if s < 0 {
		s += len(facing)
	}
	return s
}

func drawLine(s tcell.Screen, row, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= width {
			break
		}
		s.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.SetContent(col, row, ' ', nil, style)
	}
}
