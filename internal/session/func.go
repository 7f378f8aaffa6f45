package session

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"runtime"
	"strings"

	"sliderplot/internal/signature"
)

// invoke calls fn and turns panics into errors. A runtime division by zero
// becomes ErrDivisionByZero.
func invoke(fn Func, args []float64) (out any, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if isDivideByZero(r) {
			err = fmt.Errorf("%w: %v", ErrDivisionByZero, r)
			return
		}
		err = fmt.Errorf("%w: %v", ErrPanic, r)
	}()
	return fn(args)
}

// isDivideByZero matches the sentinel or the runtime's integer division
// fault. Other panics mentioning division are ordinary panics.
func isDivideByZero(r any) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}
	if errors.Is(err, ErrDivisionByZero) {
		return true
	}
	var rerr runtime.Error
	return errors.As(err, &rerr) && strings.Contains(rerr.Error(), "integer divide by zero")
}

// FromFunc adapts a Go function with numeric parameters into a Func.
// The function may return a value or (value, error). Integer parameters
// receive the rounded slider value.
func FromFunc(fn any) (Func, signature.Signature, error) {
	sig, err := signature.Of(fn)
	if err != nil {
		return nil, signature.Signature{}, err
	}
	v := reflect.ValueOf(fn)

	call := func(args []float64) (any, error) {
		if len(args) != sig.Arity() {
			return nil, fmt.Errorf("expected %d arguments, got %d", sig.Arity(), len(args))
		}
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			in[i] = convert(a, sig.Params[i])
		}
		res := v.Call(in)
		if sig.ReturnsError {
			if e, _ := res[1].Interface().(error); e != nil {
				return nil, e
			}
		}
		return res[0].Interface(), nil
	}
	return call, sig, nil
}

func convert(a float64, t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(a).Convert(t)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if a < 0 {
			a = 0
		}
		return reflect.ValueOf(uint64(math.Round(a))).Convert(t)
	default:
		return reflect.ValueOf(int64(math.Round(a))).Convert(t)
	}
}
