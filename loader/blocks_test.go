package loader

import "testing"

func TestMakePropsKey(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]string
		want string
	}{
		{name: "empty", in: nil, want: ""},
		{name: "single", in: map[string]string{"facing": "north"}, want: "facing=north"},
		{name: "sorted", in: map[string]string{"b": "2", "a": "1"}, want: "a=1,b=2"},
	}

	for _, tc := range cases {
		got := MakePropsKey(tc.in)
		if got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseStateKey(t *testing.T) {
	cases := []struct {
		in      string
		want    StateKey
		wantErr bool
	}{
		{in: "minecraft:stone", want: StateKey{BlockID: "minecraft:stone"}},
		{in: "glass", want: StateKey{BlockID: "minecraft:glass"}},
		{in: "oak_slab[type=top]", want: StateKey{BlockID: "minecraft:oak_slab", PropsKey: "type=top"}},
		{in: "minecraft:oak_stairs[half=bottom, facing=east]", want: StateKey{BlockID: "minecraft:oak_stairs", PropsKey: "facing=east,half=bottom"}},
		{in: "", wantErr: true},
		{in: "stone[type=top", wantErr: true},
		{in: "stone[type]", wantErr: true},
		{in: "[type=top]", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStateKey(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseStateKey(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Fatalf("ParseStateKey(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStateKeyStringRoundTrip(t *testing.T) {
	for _, s := range []string{"minecraft:stone", "minecraft:oak_slab[type=top]", "minecraft:oak_stairs[facing=east,half=bottom]"} {
		k, err := ParseStateKey(s)
		if err != nil {
			t.Fatalf("ParseStateKey(%q): %v", s, err)
		}
		if got := k.String(); got != s {
			t.Fatalf("String() = %q, want %q", got, s)
		}
	}
}

func TestDefaultShapes(t *testing.T) {
	shapes := DefaultShapes()
	if air, ok := shapes[AirKey]; !ok || air.HasCollision() {
		t.Fatalf("air missing or collidable: %+v", air)
	}
	stairs := shapes[StateKey{BlockID: "minecraft:oak_stairs", PropsKey: "facing=east,half=bottom"}]
	if len(stairs.Collision) != 2 {
		t.Fatalf("stairs should have 2 collision boxes, got %d", len(stairs.Collision))
	}
	if grass := shapes[StateKey{BlockID: "minecraft:short_grass"}]; grass.HasCollision() {
		t.Fatal("short grass should not collide")
	}
	// fresh map per call
	delete(shapes, AirKey)
	if _, ok := DefaultShapes()[AirKey]; !ok {
		t.Fatal("DefaultShapes shares state between calls")
	}
}
