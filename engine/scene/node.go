package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/math"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
)

// NodeID addresses a node inside its Graph.
type NodeID int32

// InvalidNode is never handed out by a Graph.
const InvalidNode NodeID = -1

// Drawer receives one draw call per rendered node.
type Drawer interface {
	Draw(call *metadata.DrawCall)
}

// Override replaces every node's program and material during a traversal.
type Override struct {
	Program  metadata.ProgramSlot
	Material Material
}

/**
 * @brief A scene element: a local transform, an optional mesh (not owned),
 * a program slot with its material, extra texture bindings and ordered
 * children.
 */
type Node struct {
	Name string

	transform math.Transform
	mesh      *metadata.Mesh
	program   metadata.ProgramSlot
	material  Material
	textures  []metadata.NamedBinding
	children  []NodeID
}

func newNode(name string) *Node {
	return &Node{
		Name:      name,
		transform: math.TransformCreate(),
		program:   metadata.NoProgram,
		material:  NoUniforms,
	}
}

func (n *Node) SetTranslation(v mgl32.Vec3) { n.transform.SetTranslation(v) }
func (n *Node) Translate(v mgl32.Vec3)      { n.transform.Translate(v) }
func (n *Node) SetScaling(v mgl32.Vec3)     { n.transform.SetScaling(v) }

func (n *Node) SetRotationX(angle float32) { n.transform.SetRotationX(angle) }
func (n *Node) SetRotationY(angle float32) { n.transform.SetRotationY(angle) }
func (n *Node) SetRotationZ(angle float32) { n.transform.SetRotationZ(angle) }

// RotateX adds delta to the stored angle around X. Angles are not wrapped.
func (n *Node) RotateX(delta float32) { n.transform.RotateX(delta) }
func (n *Node) RotateY(delta float32) { n.transform.RotateY(delta) }
func (n *Node) RotateZ(delta float32) { n.transform.RotateZ(delta) }

func (n *Node) Translation() mgl32.Vec3 { return n.transform.Translation }
func (n *Node) Rotation() mgl32.Vec3    { return n.transform.Rotation }
func (n *Node) Scaling() mgl32.Vec3     { return n.transform.Scaling }

// GetTransform returns the local matrix, rebuilt from the channels.
func (n *Node) GetTransform() mgl32.Mat4 {
	return n.transform.GetMatrix()
}

func (n *Node) SetGeometry(mesh *metadata.Mesh) {
	n.mesh = mesh
}

func (n *Node) Geometry() *metadata.Mesh {
	return n.mesh
}

// SetProgram stores the slot, so a reloaded program is picked up on the next
// draw. A nil material means NoUniforms.
func (n *Node) SetProgram(slot metadata.ProgramSlot, material Material) {
	if material == nil {
		material = NoUniforms
	}
	n.program = slot
	n.material = material
}

func (n *Node) Program() metadata.ProgramSlot {
	return n.program
}

// AddTexture binds handle to the sampler slot, replacing an earlier node
// binding of the same name. It also overrides the mesh binding at draw time.
func (n *Node) AddTexture(slot string, handle metadata.TextureHandle, kind metadata.TextureKind) {
	b := metadata.TextureBinding{Handle: handle, Kind: kind}
	for i := range n.textures {
		if n.textures[i].Name == slot {
			n.textures[i].Binding = b
			return
		}
	}
	n.textures = append(n.textures, metadata.NamedBinding{Name: slot, Binding: b})
}

func (n *Node) Textures() []metadata.NamedBinding {
	return n.textures
}

func (n *Node) Children() []NodeID {
	return n.children
}

// Render issues the draw for this node only. Nodes without a drawable mesh
// are skipped.
func (n *Node) Render(d Drawer, viewProjection, world mgl32.Mat4, override *Override) {
	if !n.mesh.Ready() {
		return
	}
	call := &metadata.DrawCall{
		Mesh:           n.mesh,
		Program:        n.program,
		Material:       n.material,
		Textures:       n.textures,
		World:          world,
		ViewProjection: viewProjection,
	}
	if override != nil {
		call.Program = override.Program
		call.Material = override.Material
		if call.Material == nil {
			call.Material = NoUniforms
		}
	}
	d.Draw(call)
}
