package comp

import (
	"math"
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

func TestBodyWireRoundTrip(t *testing.T) {
	for k := BodyKind(0); k < BodyKindCount; k++ {
		b := BodyData{Kind: k}
		if k == BodyHumanoid {
			b.Species = SpeciesOrc
		}
		got, ok := BodyFromWire(b.Wire())
		if !ok || got != b {
			t.Fatalf("BodyFromWire(%v.Wire()) = %v, %v", b, got, ok)
		}
	}
}

func TestBodyFromWireRejects(t *testing.T) {
	tests := []struct {
		name          string
		kind, species byte
	}{
		{"no body", 0, 0},
		{"unknown kind", byte(BodyKindCount) + 1, 0},
		{"unknown species", 1, byte(SpeciesCount)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := BodyFromWire(tt.kind, tt.species); ok {
				t.Fatal("BodyFromWire() accepted invalid input")
			}
		})
	}
}

func TestNamesArePopulated(t *testing.T) {
	for k := BodyKind(0); k < BodyKindCount; k++ {
		if bodyKindNames[k] == "" {
			t.Errorf("BodyKind %d has no name", k)
		}
	}
	for s := Species(0); s < SpeciesCount; s++ {
		if speciesNames[s] == "" {
			t.Errorf("Species %d has no name", s)
		}
	}
	for c := ChatType(0); c < ChatTypeCount; c++ {
		if chatTypeNames[c] == "" {
			t.Errorf("ChatType %d has no name", c)
		}
	}
}

func TestControllerInputsNormalized(t *testing.T) {
	tests := []struct {
		in   ControllerInputs
		want ControllerInputs
	}{
		{ControllerInputs{}, ControllerInputs{}},
		{ControllerInputs{MoveX: 1}, ControllerInputs{MoveX: 1}},
		{ControllerInputs{MoveX: 0.5, MoveY: -0.5}, ControllerInputs{MoveX: 0.5, MoveY: -0.5}},
		{ControllerInputs{MoveX: -1, MoveY: 1}, ControllerInputs{MoveX: -1 / math.Sqrt2, MoveY: 1 / math.Sqrt2}},
		{ControllerInputs{MoveY: 3}, ControllerInputs{MoveY: 1}},
	}
	for _, tt := range tests {
		got := tt.in.Normalized()
		if math.Abs(float64(got.MoveX-tt.want.MoveX)) > 1e-6 || math.Abs(float64(got.MoveY-tt.want.MoveY)) > 1e-6 {
			t.Errorf("%+v.Normalized() = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPosFloor(t *testing.T) {
	x, y, z := PosData{X: -0.5, Y: 3.9, Z: -7}.Floor()
	if x != -1 || y != 3 || z != -7 {
		t.Fatalf("Floor() = %d,%d,%d", x, y, z)
	}
}

func TestComponentsInWorld(t *testing.T) {
	world := donburi.NewWorld()
	npc := world.Create(Uid, Pos, Body)
	world.Create(Uid, Pos)

	entry := world.Entry(npc)
	Pos.SetValue(entry, PosData{X: 1, Y: 2, Z: 3})
	Body.SetValue(entry, BodyData{Kind: BodyGolem})

	count := 0
	donburi.NewQuery(filter.Contains(Pos, Body)).Each(world, func(e *donburi.Entry) {
		count++
		if Body.Get(e).Kind != BodyGolem {
			t.Errorf("body = %v", Body.Get(e))
		}
	})
	if count != 1 {
		t.Fatalf("query matched %d entities, want 1", count)
	}
}
