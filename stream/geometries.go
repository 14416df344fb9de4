package stream

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/polytag/params"
	"github.com/tidwall/gjson"
	"io"
	"iter"
)

var ErrUnrecognizedLine = errors.New("unrecognized line")

// Geometries reads lines from in as features. A line may be
//   - a GeoJSON Feature
//   - a GeoJSON FeatureCollection, each of its features in turn
//   - a bare GeoJSON geometry
//   - a [lon, lat] pair
//   - an object with lat and lon (or lng, long) fields, kept as properties
//
// Blank lines are skipped. An unreadable line is yielded as an error (with its
// line number) and ends the sequence.
func Geometries(in io.Reader) iter.Seq2[*geojson.Feature, error] {
	return func(yield func(*geojson.Feature, error) bool) {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), params.DefaultScanBufferSize)
		n := 0
		for scanner.Scan() {
			n++
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			features, err := decodeLine(line)
			if err != nil {
				yield(nil, fmt.Errorf("line %d: %w", n, err))
				return
			}
			for _, f := range features {
				if !yield(f, nil) {
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, err)
		}
	}
}

func decodeLine(line []byte) ([]*geojson.Feature, error) {
	if !gjson.ValidBytes(line) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrUnrecognizedLine)
	}
	res := gjson.ParseBytes(line)
	if res.IsArray() {
		coords := res.Array()
		if len(coords) < 2 {
			return nil, fmt.Errorf("%w: short coordinate array", ErrUnrecognizedLine)
		}
		if coords[0].Type != gjson.Number || coords[1].Type != gjson.Number {
			return nil, fmt.Errorf("%w: non-numeric coordinates", ErrUnrecognizedLine)
		}
		return []*geojson.Feature{geojson.NewFeature(orb.Point{coords[0].Float(), coords[1].Float()})}, nil
	}
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedLine, res.Type)
	}
	switch typ := res.Get("type").String(); typ {
	case "Feature":
		f, err := geojson.UnmarshalFeature(line)
		if err != nil {
			return nil, err
		}
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		return []*geojson.Feature{f}, nil
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(line)
		if err != nil {
			return nil, err
		}
		for _, f := range fc.Features {
			if f.Properties == nil {
				f.Properties = geojson.Properties{}
			}
		}
		return fc.Features, nil
	case "Point", "MultiPoint", "LineString", "MultiLineString", "Polygon", "MultiPolygon", "GeometryCollection":
		g, err := geojson.UnmarshalGeometry(line)
		if err != nil {
			return nil, err
		}
		return []*geojson.Feature{geojson.NewFeature(g.Geometry())}, nil
	}
	lat := res.Get("lat")
	lon := res.Get("lon")
	for _, k := range []string{"lng", "long"} {
		if lon.Exists() {
			break
		}
		lon = res.Get(k)
	}
	if lat.Exists() && lon.Exists() {
		if lat.Type != gjson.Number || lon.Type != gjson.Number {
			return nil, fmt.Errorf("%w: non-numeric lat/lon", ErrUnrecognizedLine)
		}
		f := geojson.NewFeature(orb.Point{lon.Float(), lat.Float()})
		res.ForEach(func(key, value gjson.Result) bool {
			f.Properties[key.String()] = value.Value()
			return true
		})
		return []*geojson.Feature{f}, nil
	}
	return nil, fmt.Errorf("%w: no geometry", ErrUnrecognizedLine)
}
