package shape

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// PlanarContains reports whether container contains contained, treating lon/lat as a plane.
// A container is an orb.Polygon, orb.MultiPolygon, orb.Ring or orb.Bound;
// anything else contains nothing.
// Non-point geometries are contained if all of their vertices are.
func PlanarContains(container, contained orb.Geometry) bool {
	var contains func(orb.Point) bool
	switch c := container.(type) {
	case orb.Polygon:
		contains = func(pt orb.Point) bool { return planar.PolygonContains(c, pt) }
	case orb.MultiPolygon:
		contains = func(pt orb.Point) bool { return planar.MultiPolygonContains(c, pt) }
	case orb.Ring:
		contains = func(pt orb.Point) bool { return planar.RingContains(c, pt) }
	case orb.Bound:
		contains = c.Contains
	default:
		return false
	}
	if contained == nil || !container.Bound().Contains(contained.Bound().Min) ||
		!container.Bound().Contains(contained.Bound().Max) {
		return false
	}
	return containsAll(contained, contains)
}

// SphericalContains is PlanarContains on the sphere:
// container edges are geodesics, as S2 draws them.
func SphericalContains(container, contained orb.Geometry) bool {
	poly := s2Polygon(container)
	if poly == nil || contained == nil {
		return false
	}
	return containsAll(contained, func(pt orb.Point) bool {
		return poly.ContainsPoint(s2Point(pt))
	})
}

func containsAll(g orb.Geometry, contains func(orb.Point) bool) bool {
	vs := vertices(g)
	if len(vs) == 0 {
		return false
	}
	for _, v := range vs {
		if !contains(v) {
			return false
		}
	}
	return true
}

// vertices are the points which must be inside a container for g to be inside it.
// Holes are inside their outer ring, so only outer rings count.
func vertices(g orb.Geometry) []orb.Point {
	switch v := g.(type) {
	case orb.Point:
		return []orb.Point{v}
	case orb.MultiPoint:
		return v
	case orb.LineString:
		return v
	case orb.MultiLineString:
		var out []orb.Point
		for _, ls := range v {
			out = append(out, ls...)
		}
		return out
	case orb.Ring:
		return v
	case orb.Polygon:
		if len(v) == 0 {
			return nil
		}
		return v[0]
	case orb.MultiPolygon:
		var out []orb.Point
		for _, p := range v {
			if len(p) > 0 {
				out = append(out, p[0]...)
			}
		}
		return out
	case orb.Bound:
		return v.ToRing()
	case orb.Collection:
		var out []orb.Point
		for _, g := range v {
			out = append(out, vertices(g)...)
		}
		return out
	}
	return nil
}

func s2Point(pt orb.Point) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(pt.Lat(), pt.Lon()))
}

// s2Loop makes a normalized (CCW, at most a hemisphere) loop from a ring.
func s2Loop(r orb.Ring) *s2.Loop {
	pts := make([]s2.Point, 0, len(r))
	for i, pt := range r {
		// orb rings repeat the first point last; S2 loops are implicitly closed.
		if i == len(r)-1 && i > 0 && pt.Equal(r[0]) {
			break
		}
		pts = append(pts, s2Point(pt))
	}
	if len(pts) < 3 {
		return nil
	}
	l := s2.LoopFromPoints(pts)
	l.Normalize()
	return l
}

func s2Polygon(g orb.Geometry) *s2.Polygon {
	var rings []orb.Ring
	switch c := g.(type) {
	case orb.Polygon:
		rings = c
	case orb.MultiPolygon:
		for _, p := range c {
			rings = append(rings, p...)
		}
	case orb.Ring:
		rings = []orb.Ring{c}
	case orb.Bound:
		rings = []orb.Ring{c.ToRing()}
	default:
		return nil
	}
	loops := make([]*s2.Loop, 0, len(rings))
	for _, r := range rings {
		if l := s2Loop(r); l != nil {
			loops = append(loops, l)
		}
	}
	if len(loops) == 0 {
		return nil
	}
	return s2.PolygonFromLoops(loops)
}
