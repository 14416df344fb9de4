package tagger

import (
	"fmt"
	"iter"
)

// IndexObjects yields Indexer.Index for each object, in order.
// The indexer is narrowed to the first container of containers,
// so any object not contained by containers[0] yields a *ContainmentError.
// Per-object errors are yielded in place of the index and iteration continues;
// the consumer decides whether to stop. An error resolving default funcs is
// yielded once and ends the sequence.
func IndexObjects[O, C, G any](objs iter.Seq[O], containers []C, contain ContainFn[C, G], key KeyFn[O, G]) iter.Seq2[Idx, error] {
	return indexObjects(objs, containers, contain, key, func(ix *Indexer[O, C, G]) func(O) (Idx, error) {
		first, err := ix.At(0)
		if err != nil {
			return func(O) (Idx, error) {
				return 0, &IndexerError{Err: err}
			}
		}
		return first.Index
	})
}

// IndexObjectsAll is IndexObjects searching every container, yielding the
// position of the first container which contains each object.
func IndexObjectsAll[O, C, G any](objs iter.Seq[O], containers []C, contain ContainFn[C, G], key KeyFn[O, G]) iter.Seq2[Idx, error] {
	return indexObjects(objs, containers, contain, key, func(ix *Indexer[O, C, G]) func(O) (Idx, error) {
		return ix.First
	})
}

func indexObjects[O, C, G any](objs iter.Seq[O], containers []C, contain ContainFn[C, G], key KeyFn[O, G],
	indexFn func(ix *Indexer[O, C, G]) func(O) (Idx, error)) iter.Seq2[Idx, error] {
	return func(yield func(Idx, error) bool) {
		ix, err := NewIndexer(containers, contain, key)
		if err != nil {
			yield(0, err)
			return
		}
		index := indexFn(ix)
		for obj := range objs {
			if !yield(index(obj)) {
				return
			}
		}
	}
}

// TagObjects yields tags[idx] for each idx of IndexObjects.
// An idx beyond the end of tags yields an error wrapping ErrOutOfRange;
// keeping tags aligned with containers is the caller's job.
func TagObjects[O, C, G, T any](objs iter.Seq[O], tags []T, containers []C, contain ContainFn[C, G], key KeyFn[O, G]) iter.Seq2[T, error] {
	return lookupTags(IndexObjects(objs, containers, contain, key), tags)
}

// TagObjectsAll yields tags[idx] for each idx of IndexObjectsAll.
func TagObjectsAll[O, C, G, T any](objs iter.Seq[O], tags []T, containers []C, contain ContainFn[C, G], key KeyFn[O, G]) iter.Seq2[T, error] {
	return lookupTags(IndexObjectsAll(objs, containers, contain, key), tags)
}

func lookupTags[T any](indexes iter.Seq2[Idx, error], tags []T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for idx, err := range indexes {
			if err == nil && (idx < 0 || int(idx) >= len(tags)) {
				err = fmt.Errorf("tag %d of %d: %w", idx, len(tags), ErrOutOfRange)
			}
			if err != nil {
				if !yield(zero, err) {
					return
				}
				continue
			}
			if !yield(tags[idx], nil) {
				return
			}
		}
	}
}

// IndexShapes is IndexObjects for objects which are their own geometry,
// in containers which implement Container.
func IndexShapes[G any, C Container[G]](objs iter.Seq[G], containers []C) iter.Seq2[Idx, error] {
	return IndexObjects[G, C, G](objs, containers, Contains[C, G], Identity[G])
}

// TagShapes is TagObjects for objects which are their own geometry,
// in containers which implement Container.
func TagShapes[G any, C Container[G], T any](objs iter.Seq[G], tags []T, containers []C) iter.Seq2[T, error] {
	return TagObjects[G, C, G, T](objs, tags, containers, Contains[C, G], Identity[G])
}
