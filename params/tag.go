package params

type TagConfig struct {
	// ContainersPath is a GeoJSON FeatureCollection (.geojson, .json, or gzipped .gz)
	// of Polygon, MultiPolygon features. Feature order is container order.
	ContainersPath string

	// TagProperty names the container feature property used as its tag.
	TagProperty string

	// TagKey is the property written to tagged objects.
	TagKey string

	// OutputPath is where tagged objects are written. Empty or "-" is stdout.
	// A .gz suffix gzips.
	OutputPath string

	// SearchAll searches every container for each object.
	// Without it only the first container is ever tested.
	SearchAll bool

	// Spherical uses S2 (great circle edges) instead of planar containment.
	Spherical bool

	// SkipUnmatched logs and passes through objects which no container contains,
	// rather than failing.
	SkipUnmatched bool

	// DropUnmatched drops skipped objects from the output. Implies SkipUnmatched.
	DropUnmatched bool

	// Dedupe drops objects seen recently (by hash) before tagging.
	Dedupe     bool
	DedupeSize int

	// CacheSize is the size of the containment predicate LRU. 0 disables it.
	CacheSize int
}

func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		TagProperty: "name",
		TagKey:      "tag",
		OutputPath:  "-",
		DedupeSize:  10_000,
		CacheSize:   0,
	}
}

// InProcTagConfig is shared by the tag and index commands,
// whose flags write into it.
var InProcTagConfig = DefaultTagConfig()
