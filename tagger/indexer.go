package tagger

import (
	"fmt"
	"iter"
	"slices"
)

// Indexer finds the indexes of containers which contain objects.
// Its containers, contain and key funcs are fixed; At and Slice return
// narrowed views sharing the same funcs.
type Indexer[O, C, G any] struct {
	containers []C
	contain    ContainFn[C, G]
	key        KeyFn[O, G]
}

// NewIndexer returns an Indexer over containers.
// A nil contain uses the containers' own Contains method, and fails with
// ErrNoDefaultContains if C does not implement Container[G].
// A nil key uses the object as its geometry, and fails with
// ErrNoDefaultKey if O is not assignable to G.
func NewIndexer[O, C, G any](containers []C, contain ContainFn[C, G], key KeyFn[O, G]) (*Indexer[O, C, G], error) {
	contain, key, err := resolve(contain, key)
	if err != nil {
		return nil, err
	}
	return &Indexer[O, C, G]{
		containers: containers,
		contain:    contain,
		key:        key,
	}, nil
}

func (ix *Indexer[O, C, G]) view(containers []C) *Indexer[O, C, G] {
	return &Indexer[O, C, G]{
		containers: containers,
		contain:    ix.contain,
		key:        ix.key,
	}
}

// Len is the number of containers in view.
func (ix *Indexer[O, C, G]) Len() int {
	return len(ix.containers)
}

// Containers returns the containers in view.
func (ix *Indexer[O, C, G]) Containers() []C {
	return ix.containers
}

// At returns a view of the single container at i.
// Negative i counts back from the end.
func (ix *Indexer[O, C, G]) At(i int) (*Indexer[O, C, G], error) {
	n := len(ix.containers)
	j := i
	if j < 0 {
		j += n
	}
	if j < 0 || j >= n {
		return nil, fmt.Errorf("container %d of %d: %w", i, n, ErrOutOfRange)
	}
	return ix.view(ix.containers[j : j+1 : j+1]), nil
}

// Slice returns a view of containers[lo:hi].
// Negative bounds count back from the end, and bounds are clamped to the
// containers, so a slice past the end is an empty view rather than an error.
func (ix *Indexer[O, C, G]) Slice(lo, hi int) *Indexer[O, C, G] {
	n := len(ix.containers)
	lo, hi = clamp(lo, n), clamp(hi, n)
	if hi < lo {
		hi = lo
	}
	return ix.view(ix.containers[lo:hi:hi])
}

func clamp(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

// Indexes yields the ordinal of each match in the match sequence for obj.
// These are counts of matches, 0, 1, 2..., and not the positions of the
// matching containers; see Positions for those.
func (ix *Indexer[O, C, G]) Indexes(obj O) iter.Seq[Idx] {
	return func(yield func(Idx) bool) {
		i := 0
		for range matches(obj, ix.containers, ix.contain, ix.key) {
			if !yield(Idx(i)) {
				return
			}
			i++
		}
	}
}

// IndexList collects Indexes.
func (ix *Indexer[O, C, G]) IndexList(obj O) []Idx {
	return slices.AppendSeq(make([]Idx, 0), ix.Indexes(obj))
}

// Index returns the first index for obj after narrowing the indexer to its
// first container. Only that first container is ever tested.
// It fails with *IndexerError if there is no first container,
// and with *ContainmentError if the first container does not contain obj.
func (ix *Indexer[O, C, G]) Index(obj O) (Idx, error) {
	first, err := ix.At(0)
	if err != nil {
		return 0, &IndexerError{Err: err}
	}
	for idx := range first.Indexes(obj) {
		return idx, nil
	}
	return 0, &ContainmentError{Object: obj}
}

// Positions yields the position within the view of every container that contains obj.
func (ix *Indexer[O, C, G]) Positions(obj O) iter.Seq[Idx] {
	return func(yield func(Idx) bool) {
		contained := ix.key(obj)
		for i, container := range ix.containers {
			if ix.contain(container, contained) && !yield(Idx(i)) {
				return
			}
		}
	}
}

// First returns the position of the first container in view that contains obj,
// searching all of them.
// Errors are as for Index.
func (ix *Indexer[O, C, G]) First(obj O) (Idx, error) {
	if len(ix.containers) == 0 {
		return 0, &IndexerError{Err: fmt.Errorf("empty container view: %w", ErrOutOfRange)}
	}
	for idx := range ix.Positions(obj) {
		return idx, nil
	}
	return 0, &ContainmentError{Object: obj}
}
