package shape

import (
	"fmt"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Polygon is an orb.Polygon container for points.
type Polygon orb.Polygon

func (p Polygon) Contains(pt orb.Point) bool {
	return planar.PolygonContains(orb.Polygon(p), pt)
}

// MultiPolygon is an orb.MultiPolygon container for points.
type MultiPolygon orb.MultiPolygon

func (mp MultiPolygon) Contains(pt orb.Point) bool {
	return planar.MultiPolygonContains(orb.MultiPolygon(mp), pt)
}

// Bound is an orb.Bound container for points.
type Bound orb.Bound

func (b Bound) Contains(pt orb.Point) bool {
	return orb.Bound(b).Contains(pt)
}

// Region is an areal geometry with the properties of the feature it came from.
// It contains geometries planarly; see Planar and Spherical to choose explicitly.
type Region struct {
	// Position is the region's position in the collection it was loaded from.
	Position   int
	Geometry   orb.Geometry
	Properties geojson.Properties

	hash   uint64
	hashed bool
}

// NewRegion returns a Region, hashing its geometry once for cheap
// hashstructure keys (see Hash).
func NewRegion(position int, g orb.Geometry, props geojson.Properties) (Region, error) {
	if !IsAreal(g) {
		return Region{}, fmt.Errorf("region %d: %w: %T", position, ErrNotAreal, g)
	}
	h, err := hashstructure.Hash(struct {
		Position int
		Geometry orb.Geometry
	}{position, g}, hashstructure.FormatV2, nil)
	if err != nil {
		return Region{}, err
	}
	return Region{
		Position:   position,
		Geometry:   g,
		Properties: props,
		hash:       h,
		hashed:     true,
	}, nil
}

// Hash implements hashstructure.Hashable.
// Regions built with NewRegion hash their position and geometry,
// without walking every vertex each time.
func (r Region) Hash() (uint64, error) {
	if r.hashed {
		return r.hash, nil
	}
	return hashstructure.Hash(struct {
		Position int
		Geometry orb.Geometry
	}{r.Position, r.Geometry}, hashstructure.FormatV2, nil)
}

func (r Region) Contains(g orb.Geometry) bool {
	return PlanarContains(r.Geometry, g)
}

func (r Region) String() string {
	return fmt.Sprintf("Region{%d %T}", r.Position, r.Geometry)
}

// Planar is a contain func for regions using PlanarContains.
func Planar(r Region, g orb.Geometry) bool {
	return PlanarContains(r.Geometry, g)
}

// Spherical is a contain func for regions using SphericalContains.
func Spherical(r Region, g orb.Geometry) bool {
	return SphericalContains(r.Geometry, g)
}

// FeatureGeometry is a key func deriving a feature's geometry.
func FeatureGeometry(f *geojson.Feature) orb.Geometry {
	if f == nil {
		return nil
	}
	return f.Geometry
}

func IsAreal(g orb.Geometry) bool {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon, orb.Ring, orb.Bound:
		return true
	}
	return false
}
