package program

import "math"

// Color is a constant RenderProgram node.
type Color struct{ V Vec4 }

func NewColor(v Vec4) Color                 { return Color{V: v} }
func (c Color) Children() []Node            { return nil }
func (c Color) NeedsFace() bool             { return false }
func (c Color) NeedsArea() bool             { return false }
func (c Color) NeedsCentroid() bool         { return false }
func (c Color) Simplified() Node            { return c }
func (c Color) WithPathInclusion(func(uint64) bool) Node { return c }
func (c Color) Eval(EvalContext) Vec4       { return c.V }
func (c Color) Equal(o Node) bool {
	other, ok := o.(Color)
	return ok && other.V == c.V
}

// Stack composites a list of layers from bottom to top using straight-alpha
// "over" composition.
type Stack struct{ Layers []Node }

func NewStack(layers ...Node) Stack { return Stack{Layers: layers} }
func (s Stack) Children() []Node    { return s.Layers }
func (s Stack) NeedsFace() bool     { return anyNeedsFace(s.Layers) }
func (s Stack) NeedsArea() bool     { return anyNeedsArea(s.Layers) }
func (s Stack) NeedsCentroid() bool { return anyNeedsCentroid(s.Layers) }

func (s Stack) Eval(ctx EvalContext) Vec4 {
	var acc Vec4
	for _, l := range s.Layers {
		acc = over(acc, l.Eval(ctx))
	}
	return acc
}

func over(bottom, top Vec4) Vec4 {
	outA := top.A + bottom.A*(1-top.A)
	if outA == 0 {
		return Vec4{}
	}
	return Vec4{
		R: (top.R*top.A + bottom.R*bottom.A*(1-top.A)) / outA,
		G: (top.G*top.A + bottom.G*bottom.A*(1-top.A)) / outA,
		B: (top.B*top.A + bottom.B*bottom.A*(1-top.A)) / outA,
		A: outA,
	}
}

func (s Stack) Simplified() Node {
	layers := simplifyChildren(s.Layers)
	var flat []Node
	for _, l := range layers {
		if inner, ok := l.(Stack); ok {
			flat = append(flat, inner.Layers...)
		} else {
			flat = append(flat, l)
		}
	}
	// Drop everything below the topmost opaque constant-color layer and
	// everything fully transparent.
	var kept []Node
	for _, l := range flat {
		if c, ok := AsColor(l); ok && c.V.A <= 1e-8 {
			continue
		}
		kept = append(kept, l)
		if c, ok := AsColor(l); ok && c.V.A >= 1-1e-8 {
			kept = []Node{c}
		}
	}
	if len(kept) == 0 {
		return Color{V: Vec4{}}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return Stack{Layers: kept}
}

func (s Stack) WithPathInclusion(predicate func(uint64) bool) Node {
	return Stack{Layers: withPathInclusionChildren(s.Layers, predicate)}
}

func (s Stack) Equal(o Node) bool {
	other, ok := o.(Stack)
	if !ok || len(other.Layers) != len(s.Layers) {
		return false
	}
	for i := range s.Layers {
		if !s.Layers[i].Equal(other.Layers[i]) {
			return false
		}
	}
	return true
}

// PathBoolean branches on whether a given path (by stable identity)
// includes the current face, per the active fill rule.
type PathBoolean struct {
	PathID          uint64
	Inside, Outside Node
}

func NewPathBoolean(pathID uint64, inside, outside Node) PathBoolean {
	return PathBoolean{PathID: pathID, Inside: inside, Outside: outside}
}
func (p PathBoolean) Children() []Node    { return []Node{p.Inside, p.Outside} }
func (p PathBoolean) NeedsFace() bool     { return true }
func (p PathBoolean) NeedsArea() bool     { return anyNeedsArea(p.Children()) }
func (p PathBoolean) NeedsCentroid() bool { return anyNeedsCentroid(p.Children()) }
func (p PathBoolean) Eval(ctx EvalContext) Vec4 {
	// A direct evaluator call implies the caller already specialized the
	// program against a face's winding map (WithPathInclusion); reaching
	// an un-specialized PathBoolean during Eval is a programming error
	// upstream, so default to the outside branch.
	return p.Outside.Eval(ctx)
}
func (p PathBoolean) Simplified() Node {
	return PathBoolean{PathID: p.PathID, Inside: p.Inside.Simplified(), Outside: p.Outside.Simplified()}
}
func (p PathBoolean) WithPathInclusion(predicate func(uint64) bool) Node {
	inside := p.Inside.WithPathInclusion(predicate)
	outside := p.Outside.WithPathInclusion(predicate)
	if predicate(p.PathID) {
		return inside
	}
	return outside
}
func (p PathBoolean) Equal(o Node) bool {
	other, ok := o.(PathBoolean)
	return ok && other.PathID == p.PathID && p.Inside.Equal(other.Inside) && p.Outside.Equal(other.Outside)
}

// LinearBlend blends A and B along an axis from (X0,Y0) to (X1,Y1), using
// the fraction of the centroid's projection onto the axis as the mix
// ratio t.
type LinearBlend struct {
	X0, Y0, X1, Y1 float64
	A, B           Node
}

func (l LinearBlend) Children() []Node    { return []Node{l.A, l.B} }
func (l LinearBlend) NeedsFace() bool     { return anyNeedsFace(l.Children()) }
func (l LinearBlend) NeedsArea() bool     { return anyNeedsArea(l.Children()) }
func (l LinearBlend) NeedsCentroid() bool { return true }
func (l LinearBlend) ratio(ctx EvalContext) float64 {
	dx, dy := l.X1-l.X0, l.Y1-l.Y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0
	}
	t := ((ctx.CentroidX-l.X0)*dx + (ctx.CentroidY-l.Y0)*dy) / lenSq
	return clamp01(t)
}
func (l LinearBlend) Eval(ctx EvalContext) Vec4 {
	t := l.ratio(ctx)
	a, b := l.A.Eval(ctx), l.B.Eval(ctx)
	return lerpVec4(a, b, t)
}
func lerpVec4(a, b Vec4, t float64) Vec4 {
	return Vec4{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
func (l LinearBlend) Simplified() Node {
	a, b := l.A.Simplified(), l.B.Simplified()
	if ca, ok := AsColor(a); ok {
		if cb, ok := AsColor(b); ok && ca.Equal(cb) {
			return ca
		}
	}
	return LinearBlend{l.X0, l.Y0, l.X1, l.Y1, a, b}
}
func (l LinearBlend) WithPathInclusion(predicate func(uint64) bool) Node {
	return LinearBlend{l.X0, l.Y0, l.X1, l.Y1, l.A.WithPathInclusion(predicate), l.B.WithPathInclusion(predicate)}
}
func (l LinearBlend) Equal(o Node) bool {
	other, ok := o.(LinearBlend)
	return ok && other.X0 == l.X0 && other.Y0 == l.Y0 && other.X1 == l.X1 && other.Y1 == l.Y1 &&
		l.A.Equal(other.A) && l.B.Equal(other.B)
}

// RadialBlend blends A (center) and B (edge) by the centroid's normalized
// distance from (CX,CY), clamped to the unit disk of radius R.
type RadialBlend struct {
	CX, CY, R float64
	A, B      Node
}

func (r RadialBlend) Children() []Node    { return []Node{r.A, r.B} }
func (r RadialBlend) NeedsFace() bool     { return anyNeedsFace(r.Children()) }
func (r RadialBlend) NeedsArea() bool     { return anyNeedsArea(r.Children()) }
func (r RadialBlend) NeedsCentroid() bool { return true }
func (r RadialBlend) Eval(ctx EvalContext) Vec4 {
	dx, dy := ctx.CentroidX-r.CX, ctx.CentroidY-r.CY
	dist := math.Hypot(dx, dy)
	t := clamp01(dist / math.Max(r.R, 1e-12))
	return lerpVec4(r.A.Eval(ctx), r.B.Eval(ctx), t)
}
func (r RadialBlend) Simplified() Node {
	a, b := r.A.Simplified(), r.B.Simplified()
	if ca, ok := AsColor(a); ok {
		if cb, ok := AsColor(b); ok && ca.Equal(cb) {
			return ca
		}
	}
	return RadialBlend{r.CX, r.CY, r.R, a, b}
}
func (r RadialBlend) WithPathInclusion(predicate func(uint64) bool) Node {
	return RadialBlend{r.CX, r.CY, r.R, r.A.WithPathInclusion(predicate), r.B.WithPathInclusion(predicate)}
}
func (r RadialBlend) Equal(o Node) bool {
	other, ok := o.(RadialBlend)
	return ok && other.CX == r.CX && other.CY == r.CY && other.R == r.R &&
		r.A.Equal(other.A) && r.B.Equal(other.B)
}

// BarycentricBlend blends three nodes A,B,C weighted by the centroid's
// barycentric coordinates within triangle (X0,Y0)-(X1,Y1)-(X2,Y2).
type BarycentricBlend struct {
	X0, Y0, X1, Y1, X2, Y2 float64
	A, B, C                Node
}

func (t BarycentricBlend) Children() []Node    { return []Node{t.A, t.B, t.C} }
func (t BarycentricBlend) NeedsFace() bool     { return anyNeedsFace(t.Children()) }
func (t BarycentricBlend) NeedsArea() bool     { return anyNeedsArea(t.Children()) }
func (t BarycentricBlend) NeedsCentroid() bool { return true }
func (t BarycentricBlend) weights(px, py float64) (w0, w1, w2 float64) {
	denom := (t.Y1-t.Y2)*(t.X0-t.X2) + (t.X2-t.X1)*(t.Y0-t.Y2)
	if denom == 0 {
		return 1, 0, 0
	}
	w0 = ((t.Y1-t.Y2)*(px-t.X2) + (t.X2-t.X1)*(py-t.Y2)) / denom
	w1 = ((t.Y2-t.Y0)*(px-t.X2) + (t.X0-t.X2)*(py-t.Y2)) / denom
	w2 = 1 - w0 - w1
	return
}
func (t BarycentricBlend) Eval(ctx EvalContext) Vec4 {
	w0, w1, w2 := t.weights(ctx.CentroidX, ctx.CentroidY)
	a, b, c := t.A.Eval(ctx), t.B.Eval(ctx), t.C.Eval(ctx)
	return Vec4{
		R: a.R*w0 + b.R*w1 + c.R*w2,
		G: a.G*w0 + b.G*w1 + c.G*w2,
		B: a.B*w0 + b.B*w1 + c.B*w2,
		A: a.A*w0 + b.A*w1 + c.A*w2,
	}
}
func (t BarycentricBlend) Simplified() Node {
	return BarycentricBlend{t.X0, t.Y0, t.X1, t.Y1, t.X2, t.Y2, t.A.Simplified(), t.B.Simplified(), t.C.Simplified()}
}
func (t BarycentricBlend) WithPathInclusion(predicate func(uint64) bool) Node {
	return BarycentricBlend{t.X0, t.Y0, t.X1, t.Y1, t.X2, t.Y2,
		t.A.WithPathInclusion(predicate), t.B.WithPathInclusion(predicate), t.C.WithPathInclusion(predicate)}
}
func (t BarycentricBlend) Equal(o Node) bool {
	other, ok := o.(BarycentricBlend)
	return ok && other.X0 == t.X0 && other.Y0 == t.Y0 && other.X1 == t.X1 && other.Y1 == t.Y1 &&
		other.X2 == t.X2 && other.Y2 == t.Y2 &&
		t.A.Equal(other.A) && t.B.Equal(other.B) && t.C.Equal(other.C)
}

// Premultiply and Unpremultiply convert a child's color between straight
// and premultiplied alpha.
type Premultiply struct{ Child Node }

func (p Premultiply) Children() []Node    { return []Node{p.Child} }
func (p Premultiply) NeedsFace() bool     { return p.Child.NeedsFace() }
func (p Premultiply) NeedsArea() bool     { return p.Child.NeedsArea() }
func (p Premultiply) NeedsCentroid() bool { return p.Child.NeedsCentroid() }
func (p Premultiply) Eval(ctx EvalContext) Vec4 {
	v := p.Child.Eval(ctx)
	return Vec4{v.R * v.A, v.G * v.A, v.B * v.A, v.A}
}
func (p Premultiply) Simplified() Node {
	c := p.Child.Simplified()
	if col, ok := AsColor(c); ok {
		return Color{V: Premultiply{Child: col}.Eval(EvalContext{})}
	}
	return Premultiply{Child: c}
}
func (p Premultiply) WithPathInclusion(predicate func(uint64) bool) Node {
	return Premultiply{Child: p.Child.WithPathInclusion(predicate)}
}
func (p Premultiply) Equal(o Node) bool {
	other, ok := o.(Premultiply)
	return ok && p.Child.Equal(other.Child)
}

type Unpremultiply struct{ Child Node }

func (u Unpremultiply) Children() []Node    { return []Node{u.Child} }
func (u Unpremultiply) NeedsFace() bool     { return u.Child.NeedsFace() }
func (u Unpremultiply) NeedsArea() bool     { return u.Child.NeedsArea() }
func (u Unpremultiply) NeedsCentroid() bool { return u.Child.NeedsCentroid() }
func (u Unpremultiply) Eval(ctx EvalContext) Vec4 {
	v := u.Child.Eval(ctx)
	if v.A == 0 {
		return Vec4{}
	}
	return Vec4{v.R / v.A, v.G / v.A, v.B / v.A, v.A}
}
func (u Unpremultiply) Simplified() Node {
	c := u.Child.Simplified()
	if col, ok := AsColor(c); ok {
		return Color{V: Unpremultiply{Child: col}.Eval(EvalContext{})}
	}
	return Unpremultiply{Child: c}
}
func (u Unpremultiply) WithPathInclusion(predicate func(uint64) bool) Node {
	return Unpremultiply{Child: u.Child.WithPathInclusion(predicate)}
}
func (u Unpremultiply) Equal(o Node) bool {
	other, ok := o.(Unpremultiply)
	return ok && u.Child.Equal(other.Child)
}

// Normalize rescales a premultiplied color so alpha saturates to 1 when it
// exceeds the 1-ε opaque threshold, matching the VM's NormalDebug-adjacent
// Normalize opcode.
type Normalize struct{ Child Node }

func (n Normalize) Children() []Node    { return []Node{n.Child} }
func (n Normalize) NeedsFace() bool     { return n.Child.NeedsFace() }
func (n Normalize) NeedsArea() bool     { return n.Child.NeedsArea() }
func (n Normalize) NeedsCentroid() bool { return n.Child.NeedsCentroid() }
func (n Normalize) Eval(ctx EvalContext) Vec4 {
	v := n.Child.Eval(ctx)
	if v.A > 1 {
		return Vec4{v.R / v.A, v.G / v.A, v.B / v.A, 1}
	}
	return v
}
func (n Normalize) Simplified() Node {
	c := n.Child.Simplified()
	if col, ok := AsColor(c); ok {
		return Color{V: Normalize{Child: col}.Eval(EvalContext{})}
	}
	return Normalize{Child: c}
}
func (n Normalize) WithPathInclusion(predicate func(uint64) bool) Node {
	return Normalize{Child: n.Child.WithPathInclusion(predicate)}
}
func (n Normalize) Equal(o Node) bool {
	other, ok := o.(Normalize)
	return ok && n.Child.Equal(other.Child)
}
