// Package planetgen maps a (celestial body id, planet type id) pair to the
// shader configuration consumed by the rendering surface. The generator is
// pure: the seed is derived from the two ids, so the same body always gets
// the same visual.
package planetgen

import (
	"fmt"
	"math"

	"github.com/astralisweb/astralis-client/internal/types"
)

type NoiseParams struct {
	Scale      float64 `json:"scale"`
	Octaves    int     `json:"octaves"`
	Roughness  float64 `json:"roughness"`
	Lacunarity float64 `json:"lacunarity"`
	Distortion float64 `json:"distortion"`
}

type SaturationRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CloudParams struct {
	NoiseScale float64 `json:"noiseScale"`
	Amount     float64 `json:"amount"`
	Density    float64 `json:"density"`
}

type Params struct {
	OceanNoise      NoiseParams     `json:"oceanNoise"`
	EarthNoise      NoiseParams     `json:"earthNoise"`
	OceanLandRatio  float64         `json:"oceanLandRatio"`
	SnowAmount      float64         `json:"snowAmount"`
	TerrainColors   [5]string       `json:"terrainColors"`
	OceanColor      string          `json:"oceanColor,omitempty"`
	ColorSaturation SaturationRange `json:"colorSaturation"`
	BumpStrength    float64         `json:"bumpStrength"`
	Clouds          *CloudParams    `json:"clouds,omitempty"`
}

// Generate derives the full parameter set for one body. typeID values
// outside the known planet types fall back to the terrestrial template with
// a coin-flip perturbation of the land/ocean ratio.
func Generate(bodyID, typeID int64) Params {
	r := newRNG(bodyID, typeID)
	switch typeID {
	case types.PlanetTypeGasGiant:
		return gasGiant(r)
	case types.PlanetTypeIceGiant:
		return iceGiant(r)
	case types.PlanetTypeSuperEarth:
		return superEarth(r)
	case types.PlanetTypeTerrestrial:
		return terrestrial(r)
	default:
		p := terrestrial(r)
		if r.next() < 0.5 {
			p.OceanLandRatio = clamp01(r.varyNear(p.OceanLandRatio, 0.25))
		}
		return p
	}
}

// rng is the sin-based pseudo-random sequence seeded from the two ids.
// Advancing the seed by one per draw keeps the sequence stable across
// calls with identical inputs.
type rng struct {
	seed float64
}

func newRNG(bodyID, typeID int64) *rng {
	return &rng{seed: float64(bodyID*31 + typeID)}
}

func (r *rng) next() float64 {
	r.seed++
	x := math.Sin(r.seed) * 10000
	return x - math.Floor(x)
}

func (r *rng) varyNear(base, maxVariation float64) float64 {
	return base + (r.next()-0.5)*2*maxVariation
}

func gasGiant(r *rng) Params {
	baseHue := r.varyNear(35, 25)
	return Params{
		OceanNoise: NoiseParams{
			Scale:      r.varyNear(0.4, 0.1),
			Octaves:    2,
			Roughness:  r.varyNear(0.3, 0.1),
			Lacunarity: r.varyNear(2.0, 0.3),
			Distortion: r.varyNear(0.2, 0.1),
		},
		EarthNoise: NoiseParams{
			Scale:      r.varyNear(1.6, 0.5),
			Octaves:    3,
			Roughness:  r.varyNear(0.45, 0.1),
			Lacunarity: r.varyNear(3.2, 0.6),
			Distortion: r.varyNear(1.4, 0.4),
		},
		OceanLandRatio:  0,
		SnowAmount:      0,
		TerrainColors:   hueBand(r, baseHue, 10, 0.55, 0.35, 0.08),
		ColorSaturation: SaturationRange{Min: r.varyNear(0.4, 0.1), Max: r.varyNear(0.75, 0.1)},
		BumpStrength:    r.varyNear(0.04, 0.02),
	}
}

func iceGiant(r *rng) Params {
	baseHue := r.varyNear(210, 20)
	return Params{
		OceanNoise: NoiseParams{
			Scale:      r.varyNear(0.8, 0.2),
			Octaves:    4,
			Roughness:  r.varyNear(0.5, 0.1),
			Lacunarity: r.varyNear(2.2, 0.4),
			Distortion: r.varyNear(0.4, 0.2),
		},
		EarthNoise: NoiseParams{
			Scale:      r.varyNear(1.1, 0.3),
			Octaves:    5,
			Roughness:  r.varyNear(0.55, 0.1),
			Lacunarity: r.varyNear(2.4, 0.4),
			Distortion: r.varyNear(0.6, 0.2),
		},
		OceanLandRatio:  clamp01(r.varyNear(0.85, 0.1)),
		SnowAmount:      clamp01(r.varyNear(0.8, 0.15)),
		TerrainColors:   hueBand(r, baseHue, 8, 0.45, 0.6, 0.07),
		OceanColor:      hslToHex(r.varyNear(baseHue+10, 8), 0.7, 0.3),
		ColorSaturation: SaturationRange{Min: r.varyNear(0.3, 0.1), Max: r.varyNear(0.6, 0.1)},
		BumpStrength:    r.varyNear(0.08, 0.03),
		Clouds: &CloudParams{
			NoiseScale: r.varyNear(1.8, 0.4),
			Amount:     clamp01(r.varyNear(0.35, 0.15)),
			Density:    clamp01(r.varyNear(0.4, 0.15)),
		},
	}
}

func superEarth(r *rng) Params {
	baseHue := r.varyNear(110, 25)
	return Params{
		OceanNoise: NoiseParams{
			Scale:      r.varyNear(1.0, 0.25),
			Octaves:    5,
			Roughness:  r.varyNear(0.55, 0.1),
			Lacunarity: r.varyNear(2.1, 0.3),
			Distortion: r.varyNear(0.5, 0.2),
		},
		EarthNoise: NoiseParams{
			Scale:      r.varyNear(1.5, 0.4),
			Octaves:    6,
			Roughness:  r.varyNear(0.65, 0.1),
			Lacunarity: r.varyNear(2.3, 0.3),
			Distortion: r.varyNear(0.8, 0.3),
		},
		OceanLandRatio:  clamp01(r.varyNear(0.45, 0.15)),
		SnowAmount:      clamp01(r.varyNear(0.2, 0.1)),
		TerrainColors:   hueBand(r, baseHue, 12, 0.5, 0.3, 0.09),
		OceanColor:      hslToHex(r.varyNear(215, 15), 0.65, 0.32),
		ColorSaturation: SaturationRange{Min: r.varyNear(0.35, 0.1), Max: r.varyNear(0.7, 0.1)},
		BumpStrength:    r.varyNear(0.16, 0.05),
		Clouds: &CloudParams{
			NoiseScale: r.varyNear(1.4, 0.3),
			Amount:     clamp01(r.varyNear(0.45, 0.15)),
			Density:    clamp01(r.varyNear(0.5, 0.15)),
		},
	}
}

func terrestrial(r *rng) Params {
	baseHue := r.varyNear(40, 15)
	return Params{
		OceanNoise: NoiseParams{
			Scale:      r.varyNear(0.9, 0.2),
			Octaves:    4,
			Roughness:  r.varyNear(0.5, 0.1),
			Lacunarity: r.varyNear(2.0, 0.3),
			Distortion: r.varyNear(0.4, 0.15),
		},
		EarthNoise: NoiseParams{
			Scale:      r.varyNear(1.3, 0.3),
			Octaves:    6,
			Roughness:  r.varyNear(0.6, 0.1),
			Lacunarity: r.varyNear(2.2, 0.3),
			Distortion: r.varyNear(0.7, 0.25),
		},
		OceanLandRatio:  clamp01(r.varyNear(0.66, 0.12)),
		SnowAmount:      clamp01(r.varyNear(0.3, 0.15)),
		TerrainColors:   hueBand(r, baseHue, 20, 0.48, 0.32, 0.08),
		OceanColor:      hslToHex(r.varyNear(220, 12), 0.7, 0.3),
		ColorSaturation: SaturationRange{Min: r.varyNear(0.35, 0.1), Max: r.varyNear(0.75, 0.1)},
		BumpStrength:    r.varyNear(0.12, 0.04),
		Clouds: &CloudParams{
			NoiseScale: r.varyNear(1.5, 0.3),
			Amount:     clamp01(r.varyNear(0.5, 0.15)),
			Density:    clamp01(r.varyNear(0.55, 0.15)),
		},
	}
}

// hueBand produces the five-step terrain gradient: hue walks from baseHue
// in hueStep increments while lightness climbs from baseLight.
func hueBand(r *rng, baseHue, hueStep, sat, baseLight, lightStep float64) [5]string {
	var out [5]string
	for i := 0; i < 5; i++ {
		h := r.varyNear(baseHue+hueStep*float64(i), 6)
		l := clamp01(baseLight + lightStep*float64(i))
		out[i] = hslToHex(h, clamp01(sat), l)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// hslToHex converts hue [0,360), saturation and lightness [0,1] to a
// "#rrggbb" string.
func hslToHex(h, s, l float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1, b1 = c, x, 0
	case h < 120:
		r1, g1, b1 = x, c, 0
	case h < 180:
		r1, g1, b1 = 0, c, x
	case h < 240:
		r1, g1, b1 = 0, x, c
	case h < 300:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}

	toByte := func(v float64) int {
		n := int(math.Round((v + m) * 255))
		if n < 0 {
			n = 0
		}
		if n > 255 {
			n = 255
		}
		return n
	}
	return fmt.Sprintf("#%02x%02x%02x", toByte(r1), toByte(g1), toByte(b1))
}
