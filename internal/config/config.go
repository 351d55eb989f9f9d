package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/reallyoldfogie/raytrace-blocks/internal/interact"
	"github.com/reallyoldfogie/raytrace-blocks/internal/world"
	"github.com/reallyoldfogie/raytrace-blocks/loader"
	"github.com/reallyoldfogie/raytrace-blocks/raycast"
)

const (
	DefaultRadius      = 50
	DefaultReplaceWith = "minecraft:glass"
	DefaultEyeHeight   = 1.62
)

// Config describes a scene. Shapes come from ShapesDir when set, otherwise
// from DataDir/<Version>/blocks when DataDir is set.
type Config struct {
	DataDir     string   `yaml:"data_dir"`
	Version     string   `yaml:"version"` // empty or "latest" picks the newest under DataDir
	ShapesDir   string   `yaml:"shapes_dir"`
	ExportFile  string   `yaml:"export_file"`
	Radius      float64  `yaml:"radius"`
	ReplaceWith string   `yaml:"replace_with"`
	Player      Player   `yaml:"player"`
	Regions     []Region `yaml:"regions"`
	RayList     []Ray    `yaml:"rays"`
}

type Player struct {
	Position  [3]float64 `yaml:"position"`
	Yaw       float64    `yaml:"yaw"`
	Pitch     float64    `yaml:"pitch"`
	EyeHeight float64    `yaml:"eye_height"`
}

// Region fills the cuboid between From and To (inclusive) with Block.
type Region struct {
	Block string `yaml:"block"`
	From  [3]int `yaml:"from"`
	To    [3]int `yaml:"to"`
}

// Ray is either start+end or start+direction. Radius falls back to the
// top-level radius.
type Ray struct {
	Name      string      `yaml:"name"`
	Start     [3]float64  `yaml:"start"`
	End       *[3]float64 `yaml:"end"`
	Direction *[3]float64 `yaml:"direction"`
	Radius    float64     `yaml:"radius"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML config, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if cfg.Radius == 0 {
		cfg.Radius = DefaultRadius
	}
	if cfg.ReplaceWith == "" {
		cfg.ReplaceWith = DefaultReplaceWith
	}
	if cfg.Player.EyeHeight == 0 {
		cfg.Player.EyeHeight = DefaultEyeHeight
	}
	if !positive(cfg.Radius) {
		return nil, fmt.Errorf("radius must be positive")
	}
	if _, err := loader.ParseStateKey(cfg.ReplaceWith); err != nil {
		return nil, fmt.Errorf("replace_with: %w", err)
	}
	if cfg.Version != "" && cfg.Version != "latest" {
		if _, err := loader.ParseVersion(cfg.Version); err != nil {
			return nil, fmt.Errorf("version: %w", err)
		}
	}
	if len(cfg.Regions) == 0 {
		return nil, fmt.Errorf("regions list is empty")
	}
	for i, r := range cfg.Regions {
		if r.Block == "" {
			return nil, fmt.Errorf("region %d: block is required", i)
		}
	}
	for i, r := range cfg.RayList {
		if r.Name == "" {
			cfg.RayList[i].Name = fmt.Sprintf("ray%d", i)
		}
		if r.End == nil && r.Direction == nil {
			return nil, fmt.Errorf("ray %q: one of end or direction is required", cfg.RayList[i].Name)
		}
		if r.End != nil && r.Direction != nil {
			return nil, fmt.Errorf("ray %q: end and direction are mutually exclusive", cfg.RayList[i].Name)
		}
		if r.Radius < 0 {
			return nil, fmt.Errorf("ray %q: radius must be positive", cfg.RayList[i].Name)
		}
	}
	return &cfg, nil
}

// Shapes returns the built-in shapes overlaid with the shard directory and
// the export file, later sources winning.
func (c *Config) Shapes() (map[loader.StateKey]loader.ShapeInfo, error) {
	maps := []map[loader.StateKey]loader.ShapeInfo{loader.DefaultShapes()}
	dir, err := c.BlocksDir()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		m, err := loader.LoadBlocksDir(dir)
		if err != nil {
			return nil, fmt.Errorf("load shapes dir: %w", err)
		}
		maps = append(maps, m)
	}
	if c.ExportFile != "" {
		m, err := loader.LoadExportFile(c.ExportFile)
		if err != nil {
			return nil, fmt.Errorf("load export file: %w", err)
		}
		maps = append(maps, m)
	}
	return loader.MergeBlocksMaps(maps...), nil
}

// BlocksDir resolves the per-block shard directory, or "" when none is
// configured.
func (c *Config) BlocksDir() (string, error) {
	if c.ShapesDir != "" || c.DataDir == "" {
		return c.ShapesDir, nil
	}
	version := c.Version
	if version == "" || version == "latest" {
		v, err := loader.LatestVersion(c.DataDir)
		if err != nil {
			return "", fmt.Errorf("resolve version: %w", err)
		}
		version = v
	}
	return filepath.Join(c.DataDir, version, "blocks"), nil
}

// BuildWorld creates a world from shapes and fills the configured regions
// in order.
func (c *Config) BuildWorld(shapes map[loader.StateKey]loader.ShapeInfo) (*world.World, error) {
	w := world.New(shapes)
	for i, r := range c.Regions {
		key, err := loader.ParseStateKey(r.Block)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		if _, err := w.Fill(coord(r.From), coord(r.To), key); err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
	}
	if key, _ := loader.ParseStateKey(c.ReplaceWith); !w.Known(key) {
		return nil, fmt.Errorf("replace_with: unknown block state %s", key)
	}
	return w, nil
}

// Rays resolves the configured rays. A ray given by direction ends at
// start + direction*radius.
func (c *Config) Rays() ([]interact.Ray, error) {
	out := make([]interact.Ray, 0, len(c.RayList))
	for _, r := range c.RayList {
		radius := r.Radius
		if radius == 0 {
			radius = c.Radius
		}
		start := mgl64.Vec3(r.Start)
		var end mgl64.Vec3
		if r.End != nil {
			end = mgl64.Vec3(*r.End)
		} else {
			dir := mgl64.Vec3(*r.Direction)
			if dir.LenSqr() == 0 {
				return nil, fmt.Errorf("ray %q: %w: zero direction", r.Name, raycast.ErrDegenerateRay)
			}
			end = start.Add(dir.Normalize().Mul(radius))
		}
		out = append(out, interact.Ray{Name: r.Name, Start: start, End: end, Radius: radius})
	}
	return out, nil
}

// PlayerState returns the configured player.
func (c *Config) PlayerState() interact.Player {
	return interact.Player{
		Position:  mgl64.Vec3(c.Player.Position),
		Yaw:       c.Player.Yaw,
		Pitch:     c.Player.Pitch,
		EyeHeight: c.Player.EyeHeight,
	}
}

// Handler returns an interaction handler for w using the configured radius
// and replacement block.
func (c *Config) Handler(w *world.World, fb interact.Feedback) (*interact.Handler, error) {
	key, err := loader.ParseStateKey(c.ReplaceWith)
	if err != nil {
		return nil, fmt.Errorf("replace_with: %w", err)
	}
	return &interact.Handler{World: w, Radius: c.Radius, ReplaceWith: key, Feedback: fb}, nil
}

func coord(v [3]int) raycast.VoxelCoord {
	return raycast.VoxelCoord{X: v[0], Y: v[1], Z: v[2]}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
