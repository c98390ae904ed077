package types

import "time"

// Planet type ids as served by the remote API. The visualization layer
// keys its templates off these values.
const (
	PlanetTypeGasGiant    int64 = 1
	PlanetTypeIceGiant    int64 = 2
	PlanetTypeSuperEarth  int64 = 3
	PlanetTypeTerrestrial int64 = 4
	PlanetTypeUnknown     int64 = 5
)

type CelestialBody struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	BodyType     string    `json:"body_type"`
	PlanetTypeID *int64    `json:"planet_type_id,omitempty"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url,omitempty"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

type Planet struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	PlanetTypeID  int64   `json:"planet_type_id"`
	MassEarths    float64 `json:"mass_earths"`
	RadiusEarths  float64 `json:"radius_earths"`
	OrbitalPeriod float64 `json:"orbital_period_days"`
	HostStarID    *int64  `json:"host_star_id,omitempty"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url,omitempty"`
}

type Star struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SpectralClass string  `json:"spectral_class"`
	MassSuns      float64 `json:"mass_suns"`
	DistanceLy    float64 `json:"distance_ly"`
	Description   string  `json:"description"`
}

type Comet struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	OrbitalPeriod float64 `json:"orbital_period_years"`
	Perihelion    float64 `json:"perihelion_au"`
	Description   string  `json:"description"`
}

type Satellite struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ParentID    int64  `json:"parent_id"`
	Natural     bool   `json:"natural"`
	Description string `json:"description"`
}

type Galaxy struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	GalaxyType  string  `json:"galaxy_type"`
	DistanceMly float64 `json:"distance_mly"`
	Description string  `json:"description"`
}

type Quasar struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Redshift    float64 `json:"redshift"`
	Description string  `json:"description"`
}

type PlanetType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
