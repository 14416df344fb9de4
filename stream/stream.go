package stream

import (
	"encoding/json"
	"errors"
	"io"
	"iter"
)

// Sequences here are pull-driven: nothing is read or computed until a consumer asks for it.

// NDJSON decodes a stream of JSON values from in.
// A decode error is yielded and ends the sequence.
func NDJSON[T any](in io.Reader) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		dec := json.NewDecoder(in)
		for {
			var element T
			err := dec.Decode(&element)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(element, err)
				return
			}
			if !yield(element, nil) {
				return
			}
		}
	}
}

func Filter[T any](predicate func(T) bool, in iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for element := range in {
			if predicate(element) && !yield(element) {
				return
			}
		}
	}
}

func Transform[I any, O any](transformer func(I) O, in iter.Seq[I]) iter.Seq[O] {
	return func(yield func(O) bool) {
		for element := range in {
			if !yield(transformer(element)) {
				return
			}
		}
	}
}

// Values drops errors from in, stopping at the first one and storing it in *errp.
func Values[T any](in iter.Seq2[T, error], errp *error) iter.Seq[T] {
	return func(yield func(T) bool) {
		for element, err := range in {
			if err != nil {
				*errp = err
				return
			}
			if !yield(element) {
				return
			}
		}
	}
}
