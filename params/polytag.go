package params

import (
	"compress/gzip"
)

const (
	EnvPrefix      = "POLYTAG"
	ConfigFileName = ".polytag"

	GZipExt = ".gz"
)

var DefaultGZipCompressionLevel = gzip.BestCompression

// DefaultScanBufferSize is the largest line (one feature) the NDJSON readers will take.
// Country polygons at 1:10m run to a few MB.
var DefaultScanBufferSize = 64 * 1024 * 1024
