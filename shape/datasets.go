package shape

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"github.com/sams96/rgeo"
	"io"
	"maps"
	"slices"
	"strings"
)

// DatasetPrefix marks a containers path naming a built-in dataset,
// eg. "rgeo:Countries10".
const DatasetPrefix = "rgeo:"

// Datasets are the Natural Earth boundary collections bundled with rgeo.
var Datasets = map[string]func() []byte{
	"Countries110":  rgeo.Countries110,
	"Countries10":   rgeo.Countries10,
	"Provinces10":   rgeo.Provinces10,
	"US_Counties10": rgeo.US_Counties10,
	"Cities10":      rgeo.Cities10,
}

var ErrUnknownDataset = errors.New("unknown dataset")

func DatasetNames() []string {
	return slices.Sorted(maps.Keys(Datasets))
}

// LoadDataset reads the named built-in dataset into regions.
func LoadDataset(name string) ([]Region, error) {
	source, ok := Datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (one of %s)", ErrUnknownDataset, name, strings.Join(DatasetNames(), ", "))
	}
	data := source()
	var r io.Reader = bytes.NewReader(data)
	// rgeo datasets are gzipped GeoJSON; plain GeoJSON reads as is.
	if bytes.HasPrefix(data, []byte{0x1f, 0x8b}) {
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", name, err)
		}
		defer gzr.Close()
		r = gzr
	}
	regions, err := ReadFeatureCollection(r)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, err)
	}
	return regions, nil
}

// LoadContainers loads "rgeo:<name>" with LoadDataset, and any other path
// with LoadFeatureCollection.
func LoadContainers(path string) ([]Region, error) {
	if name, ok := strings.CutPrefix(path, DatasetPrefix); ok {
		return LoadDataset(name)
	}
	return LoadFeatureCollection(path)
}
