package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/polytag/cache"
	"github.com/rotblauer/polytag/params"
	"github.com/rotblauer/polytag/shape"
	"github.com/rotblauer/polytag/stream"
	"github.com/rotblauer/polytag/tagger"
	"io"
	"iter"
	"log/slog"
)

// Summary counts what a run did with its input.
type Summary struct {
	Read       int
	Duplicates int
	Tagged     int
	Unmatched  int
	Dropped    int
}

func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("read", humanize.Comma(int64(s.Read))),
		slog.String("duplicates", humanize.Comma(int64(s.Duplicates))),
		slog.String("tagged", humanize.Comma(int64(s.Tagged))),
		slog.String("unmatched", humanize.Comma(int64(s.Unmatched))),
		slog.String("dropped", humanize.Comma(int64(s.Dropped))),
	)
}

// Tagger tags features read from NDJSON with the tag of the region containing them.
type Tagger struct {
	Config  *params.TagConfig
	Regions []shape.Region

	logger  *slog.Logger
	contain tagger.ContainFn[shape.Region, orb.Geometry]
}

func NewTagger(config *params.TagConfig, regions []shape.Region) (*Tagger, error) {
	if config == nil {
		config = params.DefaultTagConfig()
	}
	var contain tagger.ContainFn[shape.Region, orb.Geometry] = shape.Planar
	if config.Spherical {
		contain = shape.Spherical
	}
	if config.CacheSize > 0 {
		memo, err := cache.MemoContains(contain, config.CacheSize)
		if err != nil {
			return nil, err
		}
		contain = memo
	}
	return &Tagger{
		Config:  config,
		Regions: regions,
		logger:  slog.With("api", "tag"),
		contain: contain,
	}, nil
}

// features reads features from in until ctx is done, dropping duplicates
// if configured. *cur is set to each feature as it is yielded, and *errp to any
// read error.
func (t *Tagger) features(ctx context.Context, in io.Reader, summary *Summary, cur **geojson.Feature, errp *error) iter.Seq[*geojson.Feature] {
	var pass func(*geojson.Feature) bool
	if t.Config.Dedupe {
		pass = cache.NewDedupePassLRUFunc[*geojson.Feature](t.Config.DedupeSize)
	}
	return func(yield func(*geojson.Feature) bool) {
		for f := range stream.Values(stream.Geometries(in), errp) {
			if err := ctx.Err(); err != nil {
				*errp = err
				return
			}
			summary.Read++
			if pass != nil && !pass(f) {
				summary.Duplicates++
				continue
			}
			*cur = f
			if !yield(f) {
				return
			}
		}
	}
}

// unmatched decides what to do with an object's error:
// write it untagged, drop it, or stop.
func (t *Tagger) unmatched(f *geojson.Feature, err error, summary *Summary) (write bool, stop error) {
	var ce *tagger.ContainmentError
	if !errors.As(err, &ce) || !(t.Config.SkipUnmatched || t.Config.DropUnmatched) {
		return false, fmt.Errorf("object %d: %w", summary.Read-1, err)
	}
	summary.Unmatched++
	t.logger.Debug("No container", "object", summary.Read-1, "geometry", f.Geometry)
	if t.Config.DropUnmatched {
		summary.Dropped++
		return false, nil
	}
	return true, nil
}

// Tag reads features from in, and writes each one to out as NDJSON with its tag
// set at Config.TagKey.
func (t *Tagger) Tag(ctx context.Context, in io.Reader, out io.Writer) (Summary, error) {
	summary := Summary{}
	tags := shape.Tags(t.Regions, t.Config.TagProperty)
	enc := json.NewEncoder(out)

	var cur *geojson.Feature
	var readErr error
	objs := t.features(ctx, in, &summary, &cur, &readErr)

	tagObjects := tagger.TagObjects[*geojson.Feature, shape.Region, orb.Geometry, string]
	if t.Config.SearchAll {
		tagObjects = tagger.TagObjectsAll[*geojson.Feature, shape.Region, orb.Geometry, string]
	}

	// Tagging pulls one object per result, so cur is the object of the result in hand.
	for tag, err := range tagObjects(objs, tags, t.Regions, t.contain, shape.FeatureGeometry) {
		if err != nil {
			write, stop := t.unmatched(cur, err, &summary)
			if stop != nil {
				return summary, stop
			}
			if !write {
				continue
			}
		} else {
			cur.Properties[t.Config.TagKey] = tag
			summary.Tagged++
		}
		if err := enc.Encode(cur); err != nil {
			return summary, err
		}
	}
	if readErr != nil {
		return summary, readErr
	}
	t.logger.Info("Tagged", "summary", summary)
	return summary, nil
}

// IndexResult is a line of Index output.
// Object is the input position; Index is null for skipped, unmatched objects.
type IndexResult struct {
	Object int  `json:"object"`
	Index  *int `json:"index"`
}

// Index reads features from in, and writes the container index of each one to out
// as NDJSON IndexResults.
func (t *Tagger) Index(ctx context.Context, in io.Reader, out io.Writer) (Summary, error) {
	summary := Summary{}
	enc := json.NewEncoder(out)

	var cur *geojson.Feature
	var readErr error
	objs := t.features(ctx, in, &summary, &cur, &readErr)

	indexObjects := tagger.IndexObjects[*geojson.Feature, shape.Region, orb.Geometry]
	if t.Config.SearchAll {
		indexObjects = tagger.IndexObjectsAll[*geojson.Feature, shape.Region, orb.Geometry]
	}

	for idx, err := range indexObjects(objs, t.Regions, t.contain, shape.FeatureGeometry) {
		res := IndexResult{Object: summary.Read - 1}
		if err != nil {
			write, stop := t.unmatched(cur, err, &summary)
			if stop != nil {
				return summary, stop
			}
			if !write {
				continue
			}
		} else {
			i := int(idx)
			res.Index = &i
			summary.Tagged++
		}
		if err := enc.Encode(res); err != nil {
			return summary, err
		}
	}
	if readErr != nil {
		return summary, readErr
	}
	t.logger.Info("Indexed", "summary", summary)
	return summary, nil
}
