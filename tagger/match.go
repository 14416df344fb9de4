/*
Package tagger assigns tags to objects by the container they fall in.

Containers are an ordered slice; the position of the container which contains
an object is its index, and an index picks a tag out of a caller-supplied tag
slice aligned with the containers.

Containment itself is not computed here. A ContainFn decides whether a container
contains a geometry, and a KeyFn derives the geometry from an object.
By default a container must implement Container, and an object is its own geometry.

All sequences are lazy (iter.Seq, iter.Seq2): nothing is tested until a value
is pulled, and results for later objects, errors included, surface only when
those objects are reached.
*/
package tagger

import (
	"fmt"
	"github.com/rotblauer/polytag/common"
	"iter"
	"reflect"
)

// Idx is the position of a matched container in the searched containers.
type Idx int

// Container is anything that can say whether it contains a G.
type Container[G any] interface {
	Contains(G) bool
}

// ContainFn reports whether container contains contained.
type ContainFn[C, G any] func(container C, contained G) bool

// KeyFn derives the geometry of an object.
type KeyFn[O, G any] func(obj O) G

// Contains is the native ContainFn, deferring to the container's own Contains method.
func Contains[C Container[G], G any](container C, contained G) bool {
	return container.Contains(contained)
}

// Identity is the default KeyFn: the object is the geometry.
func Identity[T any](obj T) T {
	return obj
}

// nativeContains is Contains for type parameters not constrained to Container.
// Only installed after implementsContainer checks out.
func nativeContains[C, G any](container C, contained G) bool {
	return any(container).(Container[G]).Contains(contained)
}

// identityKey is Identity for type parameters where O is assignable to G.
func identityKey[O, G any](obj O) G {
	g, _ := any(obj).(G)
	return g
}

func implementsContainer[C, G any]() bool {
	return reflect.TypeFor[C]().Implements(reflect.TypeFor[Container[G]]())
}

func assignable[O, G any]() bool {
	return reflect.TypeFor[O]().AssignableTo(reflect.TypeFor[G]())
}

// resolve fills in the default contain and key funcs where nil.
func resolve[O, C, G any](contain ContainFn[C, G], key KeyFn[O, G]) (ContainFn[C, G], KeyFn[O, G], error) {
	if contain == nil {
		if !implementsContainer[C, G]() {
			return nil, nil, ErrNoDefaultContains
		}
		contain = nativeContains[C, G]
	}
	if key == nil {
		if !assignable[O, G]() {
			return nil, nil, ErrNoDefaultKey
		}
		key = identityKey[O, G]
	}
	return contain, key, nil
}

// Match is an object, its geometry, and a container which contains that
// geometry according to Contain.
type Match[O, C, G any] struct {
	Object    O
	Contained G
	Container C
	Contain   ContainFn[C, G]
}

func (m Match[O, C, G]) String() string {
	return fmt.Sprintf("Match{Object: %v, Contained: %v, Container: %v, Contain: %s}",
		m.Object, m.Contained, m.Container, common.ReflectFunctionName(m.Contain))
}

// Matches yields a Match for every container, in order, that contains the object's geometry.
// The key is derived once, when iteration starts.
// Nil contain or key select the defaults (Contains, Identity). If those do not apply
// to the type parameters, the sequence is a single ErrNoDefaultContains or
// ErrNoDefaultKey error.
func Matches[O, C, G any](obj O, containers []C, contain ContainFn[C, G], key KeyFn[O, G]) iter.Seq2[Match[O, C, G], error] {
	return func(yield func(Match[O, C, G], error) bool) {
		containFn, keyFn, err := resolve(contain, key)
		if err != nil {
			yield(Match[O, C, G]{}, err)
			return
		}
		for m := range matches(obj, containers, containFn, keyFn) {
			if !yield(m, nil) {
				return
			}
		}
	}
}

func matches[O, C, G any](obj O, containers []C, contain ContainFn[C, G], key KeyFn[O, G]) iter.Seq[Match[O, C, G]] {
	return func(yield func(Match[O, C, G]) bool) {
		contained := key(obj)
		for _, container := range containers {
			if !contain(container, contained) {
				continue
			}
			if !yield(Match[O, C, G]{
				Object:    obj,
				Contained: contained,
				Container: container,
				Contain:   contain,
			}) {
				return
			}
		}
	}
}
