package canvas

import (
	"math"
	"strconv"
)

// Viewport is the data range mapped onto the whole canvas.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (v Viewport) valid() bool {
	return v.XMin < v.XMax && v.YMin < v.YMax &&
		finite(v.XMin) && finite(v.XMax) && finite(v.YMin) && finite(v.YMax)
}

// Series draws the polyline through (xs[i], ys[i]). Segments are clipped to
// the canvas and non-finite points break the line.
func (c *Canvas) Series(v Viewport, xs, ys []float64, color int) {
	if !v.valid() || len(xs) == 0 || len(xs) != len(ys) {
		return
	}
	w, h := c.DotSize()
	if w < 2 || h < 2 {
		return
	}
	xMax, yMax := float64(w-1), float64(h-1)

	prevOK := false
	var prevX, prevY float64
	for i := range xs {
		x, y := xs[i], ys[i]
		if !finite(x) || !finite(y) {
			prevOK = false
			continue
		}
		curX := (x - v.XMin) / (v.XMax - v.XMin) * xMax
		curY := (v.YMax - y) / (v.YMax - v.YMin) * yMax
		if prevOK {
			if cx0, cy0, cx1, cy1, ok := ClipLine(prevX, prevY, curX, curY, 0, 0, xMax, yMax); ok {
				c.Line(round(cx0), round(cy0), round(cx1), round(cy1), color)
			}
		} else if curX >= 0 && curX <= xMax && curY >= 0 && curY <= yMax {
			c.Set(round(curX), round(curY), color)
		}
		prevOK = true
		prevX, prevY = curX, curY
	}
}

// ClipLine clips the segment (x0, y0)-(x1, y1) to the rectangle with the
// Liang-Barsky algorithm. ok is false when the segment lies outside.
func ClipLine(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	u1, u2 := 0.0, 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return 0, 0, 0, 0, false
			}
			u1 = math.Max(u1, t)
		} else {
			if t < u1 {
				return 0, 0, 0, 0, false
			}
			u2 = math.Min(u2, t)
		}
	}

	cx0 = clamp(x0+u1*dx, xmin, xmax)
	cy0 = clamp(y0+u1*dy, ymin, ymax)
	cx1 = clamp(x0+u2*dx, xmin, xmax)
	cy1 = clamp(y0+u2*dy, ymin, ymax)
	return cx0, cy0, cx1, cy1, true
}

// NiceStep rounds raw up to 1, 2 or 5 times a power of ten.
func NiceStep(raw float64) float64 {
	if raw <= 0 || !finite(raw) {
		return 1
	}
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	if pow == 0 || !finite(pow) {
		return 1
	}
	switch frac := raw / pow; {
	case frac <= 1:
		return pow
	case frac <= 2:
		return 2 * pow
	case frac <= 5:
		return 5 * pow
	default:
		return 10 * pow
	}
}

// maxTicks bounds Ticks against pathological ranges.
const maxTicks = 64

// Ticks returns the multiples of a nice step within [lo, hi], aiming for
// about target ticks, and the step used.
func Ticks(lo, hi float64, target int) ([]float64, float64) {
	if !(lo < hi) || !finite(lo) || !finite(hi) {
		return nil, 0
	}
	target = max(target, 1)
	step := NiceStep((hi - lo) / float64(target))
	var ticks []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9 && len(ticks) < maxTicks; v += step {
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, v)
	}
	return ticks, step
}

// FormatTick renders a tick value with as many decimals as step needs.
// Very large or very small magnitudes use exponent notation.
func FormatTick(v, step float64) string {
	if !finite(v) {
		return ""
	}
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	if av >= 1e5 || av < 1e-3 {
		return strconv.FormatFloat(v, 'g', 3, 64)
	}
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func round(v float64) int {
	return int(math.Round(v))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
