// Package shape classifies the value returned by a plot function into one of
// four layouts and extracts the (x, y) lines it carries.
//
// Classification is structural: the first element is indexed repeatedly and
// the number of successful index operations picks the layout.
//
//	depth 1: []float64                      single series against 0..L-1
//	depth 2: [x, y]                         one explicit pair
//	depth 3: [[x, y], [x, y], ...]          lines sharing one surface
//	depth 4: [[[x, y], ...], [[x, y]], ...] one surface per group
//
// A pair may carry a third string element used as the line label.
package shape

import (
	"errors"
	"fmt"
	"reflect"
)

// Kind is the layout inferred from the nesting depth of a function result.
type Kind int

const (
	KindUnknown Kind = iota
	SingleSeries
	XYPair
	MultiLine
	MultiPlot
)

// MaxDepth is the deepest nesting the classifier accepts.
const MaxDepth = 4

var (
	// ErrUnsupportedDepth is returned when the nesting depth is outside 1..4.
	ErrUnsupportedDepth = errors.New("shape: unsupported output depth")
	// ErrNotNumeric is returned when a coordinate is not a number.
	ErrNotNumeric = errors.New("shape: non-numeric coordinate")
	// ErrMalformedPair is returned when an (x, y) pair is incomplete or mismatched.
	ErrMalformedPair = errors.New("shape: malformed (x, y) pair")
)

func (k Kind) String() string {
	switch k {
	case SingleSeries:
		return "single-series"
	case XYPair:
		return "xy-pair"
	case MultiLine:
		return "multi-line"
	case MultiPlot:
		return "multi-plot"
	default:
		return "unknown"
	}
}

// KindForDepth maps a nesting depth to its layout.
func KindForDepth(depth int) (Kind, bool) {
	if depth < 1 || depth > MaxDepth {
		return KindUnknown, false
	}
	return Kind(depth), true
}

// Line is one curve's data.
type Line struct {
	X     []float64
	Y     []float64
	Label string
}

// Len returns the number of points.
func (l Line) Len() int {
	return len(l.X)
}

// Output is the typed form of a plot function result.
// Groups holds one entry per surface; every kind except MultiPlot has
// exactly one group.
type Output struct {
	Kind   Kind
	Groups [][]Line
}

// Lines flattens all groups in surface order.
func (o Output) Lines() []Line {
	n := 0
	for _, g := range o.Groups {
		n += len(g)
	}
	lines := make([]Line, 0, n)
	for _, g := range o.Groups {
		lines = append(lines, g...)
	}
	return lines
}

// Counts returns the number of lines in each group.
func (o Output) Counts() []int {
	counts := make([]int, len(o.Groups))
	for i, g := range o.Groups {
		counts[i] = len(g)
	}
	return counts
}

// SameLayout reports whether two outputs share kind and per-group line counts.
func (o Output) SameLayout(other Output) bool {
	if o.Kind != other.Kind || len(o.Groups) != len(other.Groups) {
		return false
	}
	for i := range o.Groups {
		if len(o.Groups[i]) != len(other.Groups[i]) {
			return false
		}
	}
	return true
}

// Series builds a single-series output plotted against its index.
func Series(y []float64) Output {
	return Output{Kind: SingleSeries, Groups: [][]Line{{{X: Index(len(y)), Y: y}}}}
}

// XY builds an output holding one explicit pair.
func XY(x, y []float64) Output {
	return Output{Kind: XYPair, Groups: [][]Line{{{X: x, Y: y}}}}
}

// Lines builds a multi-line output sharing one surface.
func Lines(lines ...Line) Output {
	return Output{Kind: MultiLine, Groups: [][]Line{lines}}
}

// Plots builds a multi-plot output, one surface per group.
func Plots(groups ...[]Line) Output {
	return Output{Kind: MultiPlot, Groups: groups}
}

// Index returns 0, 1, ..., n-1 as floats.
func Index(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

// Depth counts how many times the first element of v can be indexed.
// Only slices and arrays are indexable; strings are leaves.
func Depth(v any) int {
	depth := 0
	cur := reflect.ValueOf(v)
	for {
		cur = indirect(cur)
		if !indexable(cur) || cur.Len() == 0 {
			return depth
		}
		cur = cur.Index(0)
		depth++
	}
}

// Classify converts a plot function result into a typed Output.
func Classify(v any) (Output, error) {
	switch out := v.(type) {
	case Output:
		return out, nil
	case *Output:
		if out != nil {
			return *out, nil
		}
	}

	depth := Depth(v)
	kind, ok := KindForDepth(depth)
	if !ok {
		return Output{}, fmt.Errorf("%w: %d (want 1..%d)", ErrUnsupportedDepth, depth, MaxDepth)
	}

	rv := indirect(reflect.ValueOf(v))
	switch kind {
	case SingleSeries:
		y, err := floats(rv)
		if err != nil {
			return Output{}, err
		}
		return Series(y), nil

	case XYPair:
		line, err := pair(rv)
		if err != nil {
			return Output{}, err
		}
		return Output{Kind: XYPair, Groups: [][]Line{{line}}}, nil

	case MultiLine:
		lines, err := pairs(rv)
		if err != nil {
			return Output{}, err
		}
		return Output{Kind: MultiLine, Groups: [][]Line{lines}}, nil

	default:
		groups := make([][]Line, rv.Len())
		for i := range groups {
			lines, err := pairs(indirect(rv.Index(i)))
			if err != nil {
				return Output{}, fmt.Errorf("group %d: %w", i, err)
			}
			groups[i] = lines
		}
		return Output{Kind: MultiPlot, Groups: groups}, nil
	}
}

func pairs(v reflect.Value) ([]Line, error) {
	if !indexable(v) {
		return nil, fmt.Errorf("%w: expected a sequence of pairs, got %s", ErrMalformedPair, kindName(v))
	}
	lines := make([]Line, v.Len())
	for i := range lines {
		line, err := pair(indirect(v.Index(i)))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines[i] = line
	}
	return lines, nil
}

func pair(v reflect.Value) (Line, error) {
	if !indexable(v) || v.Len() < 2 {
		return Line{}, fmt.Errorf("%w: need x and y", ErrMalformedPair)
	}
	x, err := floats(indirect(v.Index(0)))
	if err != nil {
		return Line{}, fmt.Errorf("x: %w", err)
	}
	y, err := floats(indirect(v.Index(1)))
	if err != nil {
		return Line{}, fmt.Errorf("y: %w", err)
	}
	if len(x) != len(y) {
		return Line{}, fmt.Errorf("%w: len(x)=%d len(y)=%d", ErrMalformedPair, len(x), len(y))
	}
	line := Line{X: x, Y: y}
	if v.Len() > 2 {
		if label := indirect(v.Index(2)); label.IsValid() && label.Kind() == reflect.String {
			line.Label = label.String()
		}
	}
	return line, nil
}

func floats(v reflect.Value) ([]float64, error) {
	if !indexable(v) {
		return nil, fmt.Errorf("%w: expected a sequence, got %s", ErrNotNumeric, kindName(v))
	}
	if v.Type().Elem().Kind() == reflect.Float64 && v.Kind() == reflect.Slice {
		out := make([]float64, v.Len())
		reflect.Copy(reflect.ValueOf(out), v)
		return out, nil
	}
	out := make([]float64, v.Len())
	for i := range out {
		f, ok := ToFloat(v.Index(i))
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %s", ErrNotNumeric, i, kindName(indirect(v.Index(i))))
		}
		out[i] = f
	}
	return out, nil
}

// ToFloat converts any numeric reflect value (through interfaces and
// pointers) to float64.
func ToFloat(v reflect.Value) (float64, bool) {
	v = indirect(v)
	if !v.IsValid() {
		return 0, false
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	default:
		return 0, false
	}
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func indexable(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func kindName(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Kind().String()
}
