package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VisitFunc receives each node with its world transform. Returning false
// stops the walk.
type VisitFunc func(id NodeID, n *Node, world mgl32.Mat4) bool

// WalkRecursive visits the tree under root depth-first, parents before
// children, children in insertion order.
func (g *Graph) WalkRecursive(root NodeID, fn VisitFunc) {
	g.walk(root, mgl32.Ident4(), fn)
}

func (g *Graph) walk(id NodeID, parent mgl32.Mat4, fn VisitFunc) bool {
	n := g.Node(id)
	if n == nil {
		return true
	}
	world := parent.Mul4(n.GetTransform())
	if !fn(id, n, world) {
		return false
	}
	for _, c := range n.children {
		if !g.walk(c, world, fn) {
			return false
		}
	}
	return true
}

type stackEntry struct {
	id     NodeID
	parent mgl32.Mat4
}

// WalkStack visits the same (node, world) pairs as WalkRecursive using an
// explicit stack. Siblings come out in reverse insertion order.
func (g *Graph) WalkStack(root NodeID, fn VisitFunc) {
	stack := []stackEntry{{id: root, parent: mgl32.Ident4()}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := g.Node(top.id)
		if n == nil {
			continue
		}
		world := top.parent.Mul4(n.GetTransform())
		if !fn(top.id, n, world) {
			return
		}
		for _, c := range n.children {
			stack = append(stack, stackEntry{id: c, parent: world})
		}
	}
}

// RenderRecursive draws every node under root. A nil override keeps each
// node's own program and material.
func (g *Graph) RenderRecursive(root NodeID, d Drawer, viewProjection mgl32.Mat4, override *Override) {
	g.WalkRecursive(root, func(_ NodeID, n *Node, world mgl32.Mat4) bool {
		n.Render(d, viewProjection, world, override)
		return true
	})
}

// RenderStack is RenderRecursive on the explicit stack.
func (g *Graph) RenderStack(root NodeID, d Drawer, viewProjection mgl32.Mat4, override *Override) {
	g.WalkStack(root, func(_ NodeID, n *Node, world mgl32.Mat4) bool {
		n.Render(d, viewProjection, world, override)
		return true
	})
}
