package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
)

// Graph owns the nodes of a scene. Nodes are addressed by NodeID and never
// removed; the graph lives as long as the scene that built it.
type Graph struct {
	nodes []*Node
}

func NewGraph() *Graph {
	return &Graph{nodes: make([]*Node, 0, 32)}
}

// NewNode creates a detached node.
func (g *Graph) NewNode(name string) NodeID {
	g.nodes = append(g.nodes, newNode(name))
	return NodeID(len(g.nodes) - 1)
}

// Node returns the node for id, or nil.
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// AddChild appends child to parent's children. The graph is expected to stay
// a tree; nothing here checks for cycles, see Validate.
func (g *Graph) AddChild(parent, child NodeID) error {
	p := g.Node(parent)
	if p == nil || g.Node(child) == nil {
		err := errors.Wrapf(core.ErrInvalidNode, "add child %d to %d", child, parent)
		core.LogError(err.Error())
		return err
	}
	p.children = append(p.children, child)
	return nil
}

// Validate checks that everything reachable from root is a tree: no node is
// reached twice and every child id exists.
func (g *Graph) Validate(root NodeID) error {
	if g.Node(root) == nil {
		return errors.Wrapf(core.ErrInvalidNode, "root %d", root)
	}
	visited := make(map[NodeID]bool, len(g.nodes))
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			return errors.Wrapf(core.ErrSceneCycle, "node %d ('%s') is reachable twice", id, g.nodes[id].Name)
		}
		visited[id] = true
		for _, c := range g.nodes[id].children {
			if g.Node(c) == nil {
				return errors.Wrapf(core.ErrInvalidNode, "node %d has child %d", id, c)
			}
			stack = append(stack, c)
		}
	}
	return nil
}

// WorldTransform searches the tree under root for target and returns its
// world matrix.
func (g *Graph) WorldTransform(root, target NodeID) (mgl32.Mat4, bool) {
	var (
		found bool
		world mgl32.Mat4
	)
	g.WalkStack(root, func(id NodeID, _ *Node, w mgl32.Mat4) bool {
		if id == target {
			found, world = true, w
			return false
		}
		return true
	})
	return world, found
}

// WorldPosition is the origin of target's local frame in world space.
func (g *Graph) WorldPosition(root, target NodeID) (mgl32.Vec3, bool) {
	w, ok := g.WorldTransform(root, target)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return w.Col(3).Vec3(), true
}
