// Package signature reads the parameter list of a plot function and pairs
// each parameter with its initial slider value.
package signature

import (
	"errors"
	"fmt"
	"reflect"
)

// DefaultValue is used for parameters that declare no default.
const DefaultValue = 1.0

var (
	// ErrNotFunc is returned when the inspected value is not a function.
	ErrNotFunc = errors.New("signature: not a function")
	// ErrBadParam is returned for parameters that cannot be driven by a slider.
	ErrBadParam = errors.New("signature: parameter is not numeric")
	// ErrBadResult is returned when the result list is not T or (T, error).
	ErrBadResult = errors.New("signature: function must return a value or (value, error)")
	// ErrFuncNotFound is returned when a named function is missing from source.
	ErrFuncNotFound = errors.New("signature: function not found")
)

// Param is one slider-controlled input.
type Param struct {
	Name    string
	Initial float64
	// Declared reports whether Initial came from a declared default.
	Declared bool
}

// Signature describes a callable plot function.
type Signature struct {
	Params []reflect.Type
	// ReturnsError is true for functions returning (value, error).
	ReturnsError bool
}

// Arity returns the number of parameters.
func (s Signature) Arity() int {
	return len(s.Params)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Of reflects the shape of a Go function. Every parameter must be a numeric
// kind; variadic functions are rejected.
func Of(fn any) (Signature, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return Signature{}, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}
	if t.IsVariadic() {
		return Signature{}, fmt.Errorf("%w: variadic parameters", ErrBadParam)
	}

	sig := Signature{Params: make([]reflect.Type, t.NumIn())}
	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		if !Numeric(in.Kind()) {
			return Signature{}, fmt.Errorf("%w: parameter %d has type %s", ErrBadParam, i+1, in)
		}
		sig.Params[i] = in
	}

	switch t.NumOut() {
	case 1:
	case 2:
		if !t.Out(1).Implements(errorType) {
			return Signature{}, fmt.Errorf("%w: second result is %s", ErrBadResult, t.Out(1))
		}
		sig.ReturnsError = true
	default:
		return Signature{}, fmt.Errorf("%w: got %d results", ErrBadResult, t.NumOut())
	}
	return sig, nil
}

// Numeric reports whether k can carry a slider value.
func Numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// PositionalNames returns p1..pn for functions whose names are unknown.
func PositionalNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i+1)
	}
	return names
}

// Inspect pairs names, in declaration order, with their declared defaults.
// Parameters without a default start at DefaultValue.
func Inspect(names []string, defaults map[string]float64) []Param {
	params := make([]Param, len(names))
	for i, name := range names {
		p := Param{Name: name, Initial: DefaultValue}
		if v, ok := defaults[name]; ok {
			p.Initial = v
			p.Declared = true
		}
		params[i] = p
	}
	return params
}
