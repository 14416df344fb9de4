package common

import (
	"reflect"
	"runtime"
)

// ReflectFunctionName returns the fully-qualified name of a function,
// or "" for a nil function.
// eg. "github.com/rotblauer/polytag/shape.Planar"
// eg. "github.com/paulmach/orb/planar.PolygonContains"
func ReflectFunctionName(i interface{}) string {
	v := reflect.ValueOf(i)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	return runtime.FuncForPC(v.Pointer()).Name()
}
