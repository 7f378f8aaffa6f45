// Package script loads plot functions from Go source files at runtime.
//
// A script is a package main file that declares the plot function and,
// optionally, a package level Defaults map:
//
//	package main
//
//	import "math"
//
//	var Defaults = map[string]float64{"frequency": math.Pi}
//
//	func Plot(amplitude, frequency float64) [][]float64 { ... }
//
// Parameter names come from the source itself; the function runs inside a
// yaegi interpreter restricted to an allow-list of standard packages.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"sliderplot/internal/logging"
	"sliderplot/internal/session"
	"sliderplot/internal/signature"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// DefaultFunc is the plot function name looked up when none is configured.
const DefaultFunc = "Plot"

var (
	// ErrForbiddenImport is returned when a script imports a package outside
	// the allow-list.
	ErrForbiddenImport = errors.New("script: forbidden import")
	// ErrEval wraps interpreter failures.
	ErrEval = errors.New("script: evaluation failed")
)

// Script is a loaded plot function together with its declared parameters.
type Script struct {
	Path      string
	FuncName  string
	Names     []string
	Defaults  map[string]float64
	Func      session.Func
	Signature signature.Signature
	LoadedAt  time.Time
}

// Params pairs the parameter names with the script defaults.
func (s *Script) Params() []signature.Param {
	return signature.Inspect(s.Names, s.Defaults)
}

// Loader evaluates scripts.
type Loader struct {
	funcName        string
	allowedPackages map[string]bool
}

// NewLoader returns a loader for the named plot function. An empty name
// selects DefaultFunc.
func NewLoader(funcName string) *Loader {
	if funcName == "" {
		funcName = DefaultFunc
	}
	return &Loader{
		funcName: funcName,
		allowedPackages: map[string]bool{
			"errors":     true,
			"fmt":        true,
			"math":       true,
			"math/cmplx": true,
			"math/rand":  true,
			"sort":       true,
			"strconv":    true,
			"strings":    true,
			"time":       true,

			// no os, os/exec, net, syscall, unsafe
		},
	}
}

// FuncName returns the plot function name the loader looks up.
func (l *Loader) FuncName() string {
	return l.funcName
}

// Load reads and evaluates the script at path.
func (l *Loader) Load(ctx context.Context, path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return l.LoadSource(ctx, path, src)
}

// LoadSource evaluates src. path is only used for reporting.
func (l *Loader) LoadSource(ctx context.Context, path string, src []byte) (*Script, error) {
	log := logging.Get(logging.CategoryScript)

	imports, err := Imports(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := l.validateImports(imports); err != nil {
		return nil, err
	}

	names, err := signature.Names(ctx, src, l.funcName)
	if err != nil {
		return nil, err
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load stdlib symbols: %w", err)
	}
	if _, err := i.EvalWithContext(ctx, string(src)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEval, err)
	}

	v, err := i.EvalWithContext(ctx, "main."+l.funcName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", signature.ErrFuncNotFound, l.funcName, err)
	}
	fn, sig, err := session.FromFunc(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.funcName, err)
	}
	if len(names) != sig.Arity() {
		return nil, fmt.Errorf("%w: %s declares %d names for %d parameters",
			signature.ErrBadParam, l.funcName, len(names), sig.Arity())
	}

	defaults, err := l.defaults(ctx, i)
	if err != nil {
		return nil, err
	}

	log.Info("loaded %s from %s: params=%v defaults=%d", l.funcName, path, names, len(defaults))
	return &Script{
		Path:      path,
		FuncName:  l.funcName,
		Names:     names,
		Defaults:  defaults,
		Func:      fn,
		Signature: sig,
		LoadedAt:  time.Now(),
	}, nil
}

// defaults reads main.Defaults if the script declares it.
func (l *Loader) defaults(ctx context.Context, i *interp.Interpreter) (map[string]float64, error) {
	v, err := i.EvalWithContext(ctx, "main.Defaults")
	if err != nil {
		// undeclared
		return nil, nil
	}
	v = reflect.Indirect(v)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: Defaults must be a map[string]float64, got %s", signature.ErrBadParam, v.Type())
	}
	out := make(map[string]float64, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		f, ok := toFloat(iter.Value())
		if !ok {
			return nil, fmt.Errorf("%w: Defaults[%q] is not numeric", signature.ErrBadParam, iter.Key().String())
		}
		out[iter.Key().String()] = f
	}
	return out, nil
}

func toFloat(v reflect.Value) (float64, bool) {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	switch {
	case v.CanFloat():
		return v.Float(), true
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	}
	return 0, false
}

func (l *Loader) validateImports(imports []string) error {
	var forbidden []string
	for _, pkg := range imports {
		if !l.allowedPackages[pkg] {
			forbidden = append(forbidden, pkg)
		}
	}
	if len(forbidden) > 0 {
		return fmt.Errorf("%w: %s (allowed: %s)", ErrForbiddenImport,
			strings.Join(forbidden, ", "), strings.Join(l.allowed(), ", "))
	}
	return nil
}

func (l *Loader) allowed() []string {
	pkgs := make([]string, 0, len(l.allowedPackages))
	for pkg := range l.allowedPackages {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	return pkgs
}
