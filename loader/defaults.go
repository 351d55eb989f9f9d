package loader

var fullCube = []Box{{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 1, 1}}}

// DefaultShapes returns a small built-in shape table covering common
// blockstates, so a world can be traced without exported collision data.
// Each call returns a fresh map.
func DefaultShapes() map[StateKey]ShapeInfo {
	solid := func(opaque bool) ShapeInfo {
		return ShapeInfo{
			Collision:      fullCube,
			Outline:        fullCube,
			Opaque:         opaque,
			SolidBlock:     opaque,
			BlocksMovement: true,
		}
	}
	key := func(id string, props map[string]string) StateKey {
		return StateKey{BlockID: DefaultNamespace + ":" + id, PropsKey: MakePropsKey(props)}
	}

	bottomSlab := []Box{{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 0.5, 1}}}
	topSlab := []Box{{Min: [3]float64{0, 0.5, 0}, Max: [3]float64{1, 1, 1}}}
	stairs := []Box{
		{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 0.5, 1}},
		{Min: [3]float64{0.5, 0.5, 0}, Max: [3]float64{1, 1, 1}},
	}
	fencePost := []Box{{Min: [3]float64{0.375, 0, 0.375}, Max: [3]float64{0.625, 1.5, 0.625}}}
	fenceOutline := []Box{{Min: [3]float64{0.375, 0, 0.375}, Max: [3]float64{0.625, 1, 0.625}}}
	grassOutline := []Box{{Min: [3]float64{0.125, 0, 0.125}, Max: [3]float64{0.875, 0.8125, 0.875}}}

	return map[StateKey]ShapeInfo{
		AirKey:                         {Air: true, Replaceable: true},
		key("stone", nil):              solid(true),
		key("dirt", nil):               solid(true),
		key("grass_block", nil):        solid(true),
		key("oak_planks", nil):         solid(true),
		key("glass", nil):              solid(false),
		key("oak_log", nil):            withFlags(solid(true), func(s *ShapeInfo) { s.LogOrLeaf = true }),
		key("oak_leaves", nil):         withFlags(solid(false), func(s *ShapeInfo) { s.LogOrLeaf = true }),
		key("short_grass", nil):        {Outline: grassOutline, Replaceable: true},
		key("water", nil):              {Replaceable: true, Fluid: true, Water: true},
		key("lava", nil):               {Replaceable: true, Fluid: true, Lava: true},
		key("ladder", nil):             {Outline: fullCube, Climbable: true},
		key("oak_fence", nil):          {Collision: fencePost, Outline: fenceOutline, BlocksMovement: true, FenceLike: true},
		key("oak_slab", slab("bottom")): {Collision: bottomSlab, Outline: bottomSlab, BlocksMovement: true, Slab: true},
		key("oak_slab", slab("top")):    {Collision: topSlab, Outline: topSlab, BlocksMovement: true, Slab: true},
		key("oak_stairs", map[string]string{"facing": "east", "half": "bottom"}): {
			Collision:      stairs,
			Outline:        stairs,
			BlocksMovement: true,
			Stair:          true,
		},
	}
}

func slab(half string) map[string]string {
	return map[string]string{"type": half}
}

func withFlags(s ShapeInfo, set func(*ShapeInfo)) ShapeInfo {
	set(&s)
	return s
}
