package shape

import (
	"errors"
	"fmt"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/polytag/catz"
	"io"
	"log/slog"
)

var ErrNotAreal = errors.New("geometry is not areal")
var ErrNoRegions = errors.New("no regions")

// LoadFeatureCollection reads the GeoJSON FeatureCollection at path (gzipped if .gz)
// into regions, in feature order.
// Features without areal geometry are skipped with a warning;
// Region.Position keeps the feature's position in the file.
func LoadFeatureCollection(path string) ([]Region, error) {
	r, err := catz.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadFeatureCollection(r)
}

func ReadFeatureCollection(r io.Reader) ([]Region, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	regions := make([]Region, 0, len(fc.Features))
	for i, f := range fc.Features {
		region, err := NewRegion(i, f.Geometry, f.Properties)
		if errors.Is(err, ErrNotAreal) {
			slog.Warn("Skipping non-areal container feature", "position", i, "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	return regions, nil
}

// Tags returns the property value of each region as a tag, aligned with regions.
// Missing properties are empty tags; non-string values are formatted with fmt.
func Tags(regions []Region, property string) []string {
	tags := make([]string, len(regions))
	for i, r := range regions {
		v, ok := r.Properties[property]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			tags[i] = s
			continue
		}
		tags[i] = fmt.Sprint(v)
	}
	return tags
}
