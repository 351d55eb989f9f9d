package loader

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultNamespace is assumed for block IDs written without one.
const DefaultNamespace = "minecraft"

// Box represents a single AABB in block-local coordinates (0..1).
type Box struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// BlockStatesFile is the per-block file format.
type BlockStatesFile struct {
	BlockID string                 `json:"block_id"`
	States  []BlockStateRecordSlim `json:"states"`
}

// BlockStateRecord mirrors a single entry from blocks.json
// emitted by the Fabric collision exporter.
type BlockStateRecord struct {
	BlockID string `json:"block_id"`
	BlockStateRecordSlim
}

// BlockStateRecordSlim is used in per-block files (no BlockID).
type BlockStateRecordSlim struct {
	Properties     map[string]string `json:"properties"`
	CollisionBoxes []Box             `json:"collision_boxes"`
	OutlineBoxes   []Box             `json:"outline_boxes"`
	Air            bool              `json:"air"`
	Opaque         bool              `json:"opaque"`
	SolidBlock     bool              `json:"solid_block"`
	Replaceable    bool              `json:"replaceable"`
	BlocksMovement bool              `json:"blocks_movement"`
	Climbable      bool              `json:"climbable"`
	DoorLike       bool              `json:"door_like"`
	FenceLike      bool              `json:"fence_like"`
	Slab           bool              `json:"slab"`
	Stair          bool              `json:"stair"`
	LogOrLeaf      bool              `json:"log_or_leaf"`
	Water          bool              `json:"water"`
	Lava           bool              `json:"lava"`
	Fluid          bool              `json:"fluid"`
}

// StateKey uniquely identifies a blockstate: block ID + normalized properties.
type StateKey struct {
	BlockID  string
	PropsKey string
}

// AirKey is the state every unset voxel holds.
var AirKey = StateKey{BlockID: "minecraft:air"}

// String formats the key as "ns:id" or "ns:id[k=v,...]".
func (k StateKey) String() string {
	if k.PropsKey == "" {
		return k.BlockID
	}
	return k.BlockID + "[" + k.PropsKey + "]"
}

// ParseStateKey parses "ns:id" or "ns:id[k=v,...]". The namespace defaults
// to minecraft and properties are normalized with MakePropsKey.
func ParseStateKey(s string) (StateKey, error) {
	s = strings.TrimSpace(s)
	id, props := s, ""
	if i := strings.IndexByte(s, '['); i >= 0 {
		if !strings.HasSuffix(s, "]") {
			return StateKey{}, fmt.Errorf("parse block state %q: missing closing bracket", s)
		}
		id, props = s[:i], s[i+1:len(s)-1]
	}
	if id == "" {
		return StateKey{}, fmt.Errorf("parse block state %q: empty block id", s)
	}
	if !strings.Contains(id, ":") {
		id = DefaultNamespace + ":" + id
	}

	m := make(map[string]string)
	if props != "" {
		for _, kv := range strings.Split(props, ",") {
			k, v, ok := strings.Cut(kv, "=")
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if !ok || k == "" || v == "" {
				return StateKey{}, fmt.Errorf("parse block state %q: bad property %q", s, kv)
			}
			m[k] = v
		}
	}
	return StateKey{BlockID: id, PropsKey: MakePropsKey(m)}, nil
}

// ShapeInfo is what you actually use at runtime: the collision and outline
// boxes of one blockstate plus its movement and vision flags.
type ShapeInfo struct {
	Collision      []Box
	Outline        []Box
	Air            bool
	Opaque         bool
	SolidBlock     bool
	Replaceable    bool
	BlocksMovement bool
	Climbable      bool
	DoorLike       bool
	FenceLike      bool
	Slab           bool
	Stair          bool
	LogOrLeaf      bool
	Water          bool
	Lava           bool
	Fluid          bool
}

// MakePropsKey deterministically encodes properties as "k1=v1,k2=v2".
func MakePropsKey(props map[string]string) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+props[k])
	}
	return strings.Join(parts, ",")
}

func shapeFromRecord(s BlockStateRecordSlim) ShapeInfo {
	return ShapeInfo{
		Collision:      append([]Box(nil), s.CollisionBoxes...),
		Outline:        append([]Box(nil), s.OutlineBoxes...),
		Air:            s.Air,
		Opaque:         s.Opaque,
		SolidBlock:     s.SolidBlock,
		Replaceable:    s.Replaceable,
		BlocksMovement: s.BlocksMovement,
		Climbable:      s.Climbable,
		DoorLike:       s.DoorLike,
		FenceLike:      s.FenceLike,
		Slab:           s.Slab,
		Stair:          s.Stair,
		LogOrLeaf:      s.LogOrLeaf,
		Water:          s.Water,
		Lava:           s.Lava,
		Fluid:          s.Fluid,
	}
}
