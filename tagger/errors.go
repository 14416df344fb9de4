package tagger

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is the structural failure of addressing a container (or tag)
	// position that does not exist.
	ErrOutOfRange = errors.New("index out of range")

	// ErrNoContainment is matched (errors.Is) by every *ContainmentError.
	ErrNoContainment = errors.New("no container contains object")

	ErrNoDefaultContains = errors.New("container type does not implement Container, a contain func is required")
	ErrNoDefaultKey      = errors.New("object type is not assignable to the contained type, a key func is required")
)

// ContainmentError is returned when no container satisfies the predicate for an object.
// The input was fine; the object just isn't inside anything.
type ContainmentError struct {
	Object any
}

func (e *ContainmentError) Error() string {
	return fmt.Sprintf("%v: %v", ErrNoContainment, e.Object)
}

func (e *ContainmentError) Is(target error) bool {
	return target == ErrNoContainment
}

// IndexerError is returned when the container view itself cannot be addressed,
// eg. narrowing an empty container slice. It wraps the structural cause.
type IndexerError struct {
	Err error
}

func (e *IndexerError) Error() string {
	return "indexer: " + e.Err.Error()
}

func (e *IndexerError) Unwrap() error {
	return e.Err
}
