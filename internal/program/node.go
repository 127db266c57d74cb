// Package program implements the RenderProgram DAG: an
// immutable expression tree that is simplified, specialized per face
// against that face's winding map, and either evaluated directly or
// compiled to the stack-VM bytecode in internal/vm.
package program

// Vec4 is an RGBA color or general 4-vector, matching the stack VM's
// operand type.
type Vec4 struct{ R, G, B, A float64 }

// Add, Mul etc. are deliberately omitted here: arithmetic on Vec4 lives
// next to the node that needs it (LinearBlend, BlendCompose, ...) rather
// than as a generic vector-math grab bag.

// EvalContext carries the per-pixel-sample state a RenderProgram evaluates
// against.
type EvalContext struct {
	HasFace              bool
	Area                 float64
	CentroidX, CentroidY float64
	MinX, MinY, MaxX, MaxY float64
}

// Node is a RenderProgram DAG node. Every concrete node type
// in this package implements it.
type Node interface {
	Children() []Node
	NeedsFace() bool
	NeedsArea() bool
	NeedsCentroid() bool
	// Simplified returns an algebraically simplified equivalent node
	//; implementations must be idempotent.
	Simplified() Node
	// WithPathInclusion replaces every PathBoolean node against predicate,
	// returning the specialized (not yet simplified) tree.
	WithPathInclusion(predicate func(pathID uint64) bool) Node
	// Equal reports structural equality with other.
	Equal(other Node) bool
	// Eval is the direct recursive evaluator.
	Eval(ctx EvalContext) Vec4
}

func anyNeedsFace(children []Node) bool {
	for _, c := range children {
		if c.NeedsFace() {
			return true
		}
	}
	return false
}

func anyNeedsArea(children []Node) bool {
	for _, c := range children {
		if c.NeedsArea() {
			return true
		}
	}
	return false
}

func anyNeedsCentroid(children []Node) bool {
	for _, c := range children {
		if c.NeedsCentroid() {
			return true
		}
	}
	return false
}

// simplifyChildren returns a copy of children, each simplified.
func simplifyChildren(children []Node) []Node {
	out := make([]Node, len(children))
	for i, c := range children {
		out[i] = c.Simplified()
	}
	return out
}

func withPathInclusionChildren(children []Node, predicate func(uint64) bool) []Node {
	out := make([]Node, len(children))
	for i, c := range children {
		out[i] = c.WithPathInclusion(predicate)
	}
	return out
}

// AsColor returns (color, true) if n is a Color node (used by Simplified
// implementations to fold constant subtrees).
func AsColor(n Node) (Color, bool) {
	c, ok := n.(Color)
	return c, ok
}
