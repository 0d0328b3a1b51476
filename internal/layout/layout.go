// Package layout projects the rotated sphere onto the screen plane.
//
// The projection is orthographic: x and y are scaled by the radius and
// offset by the viewport center, while depth only drives the scale factor,
// opacity, stacking order and interactivity of each element.
package layout

import (
	"math"
	"sort"

	"sphereview/internal/mathutil"
	"sphereview/internal/sphere"
)

const (
	// MinScale keeps far-side elements visible instead of shrinking to zero.
	MinScale = 0.3
	// OpacityBoost is added to the scale factor when opacity follows depth.
	OpacityBoost = 0.1
)

// Point is a 2D screen position.
type Point struct {
	X, Y float64
}

// ElementLayout is the placement of one element for one layout pass.
type ElementLayout struct {
	Index       int     `json:"index"`       // element index in host enumeration order
	PointIndex  int     `json:"point_index"` // generator index the element was placed on
	Position    Point   `json:"position"`
	Scale       float64 `json:"scale"`   // in [MinScale, 1]
	Opacity     float64 `json:"opacity"` // scale+OpacityBoost when adjusted, otherwise 1
	ZIndex      float64 `json:"z_index"` // equal to Scale; larger draws on top
	Depth       float64 `json:"depth"`   // rotated z in [-1, 1]; negative faces the viewer
	FrontFacing bool    `json:"front_facing"`
}

// Params describes one layout pass.
type Params struct {
	Count         int
	Radius        float64
	Rotation      mathutil.Quat
	Center        Point
	AdjustOpacity bool
}

// Project places one already-rotated unit vector.
func Project(r mathutil.Vec3, radius float64, center Point, adjustOpacity bool) ElementLayout {
	if radius < 0 || math.IsNaN(radius) {
		radius = 0
	}
	z := r[2]
	normalizedZ := (z + 1) / 2
	scale := math.Min(math.Max(1-normalizedZ, MinScale), 1)

	opacity := 1.0
	if adjustOpacity {
		opacity = scale + OpacityBoost
	}

	return ElementLayout{
		Position:    Point{X: r[0]*radius + center.X, Y: r[1]*radius + center.Y},
		Scale:       scale,
		Opacity:     opacity,
		ZIndex:      scale,
		Depth:       z,
		FrontFacing: z < 0,
	}
}

// Compute runs a layout pass without caching the point set.
func Compute(p Params) []ElementLayout {
	return place(sphere.Generate(p.Count), p)
}

// Engine runs layout passes over a point cache so repeated passes with the
// same element count skip regeneration.
type Engine struct {
	cache *sphere.Cache
}

func NewEngine() *Engine {
	return &Engine{cache: sphere.NewCache()}
}

// Compute runs a layout pass for p.
func (e *Engine) Compute(p Params) []ElementLayout {
	return place(e.cache.Points(p.Count), p)
}

// place assigns generator points to elements in reverse: element i receives
// point count-1-i, so the last element enumerated sits nearest +z.
func place(pts []mathutil.Vec3, p Params) []ElementLayout {
	n := len(pts)
	if n == 0 {
		return nil
	}
	out := make([]ElementLayout, n)
	for i := range out {
		pi := n - 1 - i
		l := Project(p.Rotation.Act(pts[pi]), p.Radius, p.Center, p.AdjustOpacity)
		l.Index = i
		l.PointIndex = pi
		out[i] = l
	}
	return out
}

// DrawOrder returns element indices sorted back to front by stacking order.
// Ties keep enumeration order.
func DrawOrder(ls []ElementLayout) []int {
	order := make([]int, len(ls))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ls[order[a]].ZIndex < ls[order[b]].ZIndex
	})
	return order
}

// FrontFacingCount returns how many elements are interactive.
func FrontFacingCount(ls []ElementLayout) int {
	n := 0
	for _, l := range ls {
		if l.FrontFacing {
			n++
		}
	}
	return n
}

// HitTest returns the index of the topmost front-facing element whose
// scaled footprint of the given base size contains pt, or -1.
func HitTest(ls []ElementLayout, pt Point, size float64) int {
	order := DrawOrder(ls)
	for k := len(order) - 1; k >= 0; k-- {
		l := ls[order[k]]
		if !l.FrontFacing {
			continue
		}
		half := size * l.Scale / 2
		if math.Abs(pt.X-l.Position.X) <= half && math.Abs(pt.Y-l.Position.Y) <= half {
			return l.Index
		}
	}
	return -1
}
