package testbed

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/parallax/engine/renderer/components"
	"github.com/spaghettifunk/parallax/engine/scene"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FollowContext keeps the camera on a node of a moving graph. When the target
// is released the camera eases back to where it was before following began.
type FollowContext struct {
	// Distance the camera closes in to.
	Distance float32
	// ReturnDuration is how long, in seconds, the way back takes.
	ReturnDuration float32
	// LookHome is what the camera faces once it is back.
	LookHome mgl32.Vec3

	target   scene.NodeID
	last     scene.NodeID
	lastPos  mgl32.Vec3
	resetPos mgl32.Vec3
	ret      [3]*gween.Tween
}

func NewFollowContext() *FollowContext {
	return &FollowContext{
		Distance:       3,
		ReturnDuration: 1,
		target:         scene.InvalidNode,
		last:           scene.InvalidNode,
	}
}

func (f *FollowContext) Follow(target scene.NodeID) {
	f.target = target
}

func (f *FollowContext) Release() {
	f.target = scene.InvalidNode
}

func (f *FollowContext) Target() scene.NodeID {
	return f.target
}

func (f *FollowContext) Following() bool {
	return f.target != scene.InvalidNode
}

// Returning is true while the camera is easing back to its reset position.
func (f *FollowContext) Returning() bool {
	return f.ret[0] != nil
}

func (f *FollowContext) ResetPosition() mgl32.Vec3 {
	return f.resetPos
}

// Update moves camera for one frame of dt seconds. A target that cannot be
// found under root is treated as released.
func (f *FollowContext) Update(graph *scene.Graph, root scene.NodeID, camera *components.Camera, dt float32) {
	var (
		pos   mgl32.Vec3
		found bool
	)
	if f.target != scene.InvalidNode {
		pos, found = graph.WorldPosition(root, f.target)
	}

	switch {
	case found:
		f.ret = [3]*gween.Tween{}
		if f.last == scene.InvalidNode {
			f.resetPos = camera.GetPosition()
		}
		camera.LookAt(pos)
		toTarget := pos.Sub(camera.GetPosition())
		if l := toTarget.Len(); l > f.Distance {
			camera.Translate(toTarget.Normalize().Mul(dt * 0.5 * (l - f.Distance)))
		}
		if f.last == f.target {
			camera.Translate(pos.Sub(f.lastPos))
		}
		f.lastPos = pos
		f.last = f.target
		return
	case f.last != scene.InvalidNode:
		from := camera.GetPosition()
		for i := range f.ret {
			f.ret[i] = gween.New(from[i], f.resetPos[i], f.ReturnDuration, ease.OutCubic)
		}
	}
	f.last = scene.InvalidNode

	if f.ret[0] == nil {
		return
	}
	var (
		next mgl32.Vec3
		done = true
	)
	for i, tw := range f.ret {
		v, finished := tw.Update(dt)
		next[i] = v
		done = done && finished
	}
	camera.SetPosition(next)
	camera.LookAt(f.LookHome)
	if done {
		f.ret = [3]*gween.Tween{}
	}
}
