package planetgen

import (
	"reflect"
	"strings"
	"testing"

	"github.com/astralisweb/astralis-client/internal/types"
)

func TestGenerate_SameInputsSameParams(t *testing.T) {
	typeIDs := []int64{
		types.PlanetTypeGasGiant,
		types.PlanetTypeIceGiant,
		types.PlanetTypeSuperEarth,
		types.PlanetTypeTerrestrial,
		types.PlanetTypeUnknown,
	}
	for _, typeID := range typeIDs {
		a := Generate(42, typeID)
		b := Generate(42, typeID)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("typeID %d: two runs with identical inputs diverged", typeID)
		}
	}
}

func TestGenerate_DistinctBodiesDiverge(t *testing.T) {
	a := Generate(1, types.PlanetTypeTerrestrial)
	b := Generate(2, types.PlanetTypeTerrestrial)
	if reflect.DeepEqual(a, b) {
		t.Fatalf("expected distinct bodies to produce distinct params")
	}
}

func TestGenerate_GasGiantHasNoOceanOrClouds(t *testing.T) {
	p := Generate(7, types.PlanetTypeGasGiant)
	if p.OceanLandRatio != 0 {
		t.Fatalf("expected oceanLandRatio=0, got %v", p.OceanLandRatio)
	}
	if p.OceanColor != "" {
		t.Fatalf("expected empty oceanColor, got %q", p.OceanColor)
	}
	if p.Clouds != nil {
		t.Fatalf("expected nil clouds, got %+v", p.Clouds)
	}
}

func TestGenerate_TerrestrialShape(t *testing.T) {
	p := Generate(3, types.PlanetTypeTerrestrial)
	if p.OceanColor == "" {
		t.Fatalf("expected an ocean color")
	}
	if p.Clouds == nil {
		t.Fatalf("expected clouds")
	}
	if p.OceanLandRatio < 0 || p.OceanLandRatio > 1 {
		t.Fatalf("oceanLandRatio out of range: %v", p.OceanLandRatio)
	}
	if p.SnowAmount < 0 || p.SnowAmount > 1 {
		t.Fatalf("snowAmount out of range: %v", p.SnowAmount)
	}
}

func TestGenerate_UnknownTypeFallsBackToTerrestrialShape(t *testing.T) {
	for _, typeID := range []int64{types.PlanetTypeUnknown, 99, -1} {
		p := Generate(11, typeID)
		if p.OceanColor == "" {
			t.Fatalf("typeID %d: expected terrestrial-style ocean color", typeID)
		}
		if p.Clouds == nil {
			t.Fatalf("typeID %d: expected terrestrial-style clouds", typeID)
		}
		if p.OceanLandRatio < 0 || p.OceanLandRatio > 1 {
			t.Fatalf("typeID %d: oceanLandRatio out of range: %v", typeID, p.OceanLandRatio)
		}
	}
}

func TestGenerate_TerrainColorsAreHex(t *testing.T) {
	p := Generate(5, types.PlanetTypeIceGiant)
	for i, c := range p.TerrainColors {
		if len(c) != 7 || !strings.HasPrefix(c, "#") {
			t.Fatalf("terrainColors[%d] not a #rrggbb value: %q", i, c)
		}
	}
}

func TestHSLToHex_KnownValues(t *testing.T) {
	cases := []struct {
		h, s, l float64
		want    string
	}{
		{0, 1, 0.5, "#ff0000"},
		{120, 1, 0.5, "#00ff00"},
		{240, 1, 0.5, "#0000ff"},
		{0, 0, 1, "#ffffff"},
		{0, 0, 0, "#000000"},
		{-120, 1, 0.5, "#0000ff"},
	}
	for _, tc := range cases {
		if got := hslToHex(tc.h, tc.s, tc.l); got != tc.want {
			t.Fatalf("hslToHex(%v,%v,%v)=%q want %q", tc.h, tc.s, tc.l, got, tc.want)
		}
	}
}

func TestRNG_SequenceIsStable(t *testing.T) {
	a := newRNG(10, 4)
	b := newRNG(10, 4)
	for i := 0; i < 16; i++ {
		va, vb := a.next(), b.next()
		if va != vb {
			t.Fatalf("draw %d diverged: %v vs %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, va)
		}
	}
}
