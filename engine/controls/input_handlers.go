package controls

import (
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

// subscribe registers the permanent listeners. Caller must hold the mutex.
func (oc *orbitControlsImpl) subscribe() {
	listen := func(kind input.EventKind, fn func(e *input.Event)) {
		oc.subscriptions = append(oc.subscriptions, oc.surface.Subscribe(kind, oc.guard(fn)))
	}

	listen(input.EventContextMenu, oc.onContextMenu)
	listen(input.EventMouseDown, oc.onMouseDown)
	listen(input.EventWheel, oc.onMouseWheel)
	listen(input.EventKeyDown, oc.onKeyDown)
	listen(input.EventTouchStart, oc.onTouchStart)
	listen(input.EventTouchMove, oc.onTouchMove)
	listen(input.EventTouchEnd, oc.onTouchEnd)

	if !oc.nativeTouch {
		listen(input.EventPointerDown, oc.onPointerDown)
		listen(input.EventPointerMove, oc.onPointerMove)
		listen(input.EventPointerUp, oc.onPointerRelease)
		listen(input.EventPointerOut, oc.onPointerRelease)
		listen(input.EventPointerLeave, oc.onPointerRelease)
		listen(input.EventPointerCancel, oc.onPointerRelease)
	}
}

// guard wraps a handler so it runs under the mutex, is skipped after Dispose,
// and delivers its notifications once the mutex is released.
func (oc *orbitControlsImpl) guard(fn func(e *input.Event)) input.Handler {
	return func(e *input.Event) {
		oc.mu.Lock()
		if oc.disposed {
			oc.mu.Unlock()
			return
		}
		fn(e)
		callbacks := oc.takePending()
		oc.mu.Unlock()

		fire(callbacks)
	}
}

// installGestureListeners adds the move and up listeners that live for one mouse gesture.
func (oc *orbitControlsImpl) installGestureListeners() {
	if len(oc.gestureSubscriptions) > 0 {
		return
	}
	oc.gestureSubscriptions = append(oc.gestureSubscriptions,
		oc.surface.Subscribe(input.EventMouseMove, oc.guard(oc.onMouseMove)),
		oc.surface.Subscribe(input.EventMouseUp, oc.guard(oc.onMouseUp)),
	)
}

func (oc *orbitControlsImpl) removeGestureListeners() {
	for _, sub := range oc.gestureSubscriptions {
		oc.surface.Unsubscribe(sub)
	}
	oc.gestureSubscriptions = nil
}

func (oc *orbitControlsImpl) onContextMenu(e *input.Event) {
	e.PreventDefault()
}

func (oc *orbitControlsImpl) onMouseDown(e *input.Event) {
	if !oc.settings.Enabled {
		return
	}
	e.PreventDefault()

	point := mgl64.Vec2{e.X, e.Y}
	var next State
	switch e.Button {
	case oc.settings.MouseButtons.Orbit:
		if !oc.settings.EnableRotate {
			return
		}
		oc.rotateStart = point
		next = StateRotate
	case oc.settings.MouseButtons.Zoom:
		if !oc.zoomAllowed() {
			return
		}
		oc.dollyStart = point
		next = StateDolly
	case oc.settings.MouseButtons.Pan:
		if !oc.panAllowed() {
			return
		}
		oc.panStart = point
		next = StatePan
	default:
		return
	}

	oc.transition(next)
	oc.installGestureListeners()
}

func (oc *orbitControlsImpl) onMouseMove(e *input.Event) {
	// compatibility mouse events from a synthesized pinch
	if oc.zoomGesture || !oc.settings.Enabled {
		return
	}
	e.PreventDefault()

	switch oc.state {
	case StateRotate:
		if !oc.settings.EnableRotate {
			return
		}
		oc.rotateMove(e.X, e.Y, referenceWidth)
	case StateDolly:
		if !oc.zoomAllowed() {
			return
		}
		oc.mouseDollyMove(e.X, e.Y)
	case StatePan:
		if !oc.panAllowed() {
			return
		}
		oc.panMove(e.X, e.Y)
	}
}

// onMouseUp always ends the gesture so the scoped listeners never outlive it, even when disabled mid-drag.
func (oc *orbitControlsImpl) onMouseUp(_ *input.Event) {
	oc.removeGestureListeners()
	oc.transition(StateIdle)
}

func (oc *orbitControlsImpl) onMouseWheel(e *input.Event) {
	if !oc.settings.Enabled || !oc.zoomAllowed() || oc.state != StateIdle {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	oc.queue(notifyStart)
	if e.DeltaY < 0 {
		oc.zoomIn(oc.zoomScale())
	} else if e.DeltaY > 0 {
		oc.zoomOut(oc.zoomScale())
	}
	oc.queue(notifyDolly)
	oc.queue(notifyEnd)
}

func (oc *orbitControlsImpl) onKeyDown(e *input.Event) {
	if !oc.settings.Enabled || !oc.settings.EnableKeys || !oc.panAllowed() {
		return
	}

	keys := oc.settings.Keys
	speed := oc.settings.KeyPanSpeed
	switch e.KeyCode {
	case keys.Up:
		oc.pan(0, speed)
	case keys.Bottom:
		oc.pan(0, -speed)
	case keys.Left:
		oc.pan(speed, 0)
	case keys.Right:
		oc.pan(-speed, 0)
	default:
		return
	}
	e.PreventDefault()
}

func (oc *orbitControlsImpl) onTouchStart(e *input.Event) {
	if !oc.settings.Enabled {
		return
	}
	e.PreventDefault()

	// a start for a disabled gesture is ignored and leaves any active gesture running
	switch len(e.Touches) {
	case 1:
		if !oc.settings.EnableRotate {
			return
		}
		oc.rotateStart = mgl64.Vec2{e.Touches[0].X, e.Touches[0].Y}
		oc.transition(StateTouchRotate)
	case 2:
		if !oc.zoomAllowed() {
			return
		}
		oc.dollyStart = mgl64.Vec2{0, touchDistance(e.Touches)}
		oc.transition(StateTouchDolly)
	case 3:
		if !oc.panAllowed() {
			return
		}
		oc.panStart = mgl64.Vec2{e.Touches[0].X, e.Touches[0].Y}
		oc.transition(StateTouchPan)
	default:
		oc.transition(StateIdle)
	}
}

func (oc *orbitControlsImpl) onTouchMove(e *input.Event) {
	if !oc.settings.Enabled {
		return
	}
	e.PreventDefault()
	e.StopPropagation()

	switch len(e.Touches) {
	case 1:
		if !oc.settings.EnableRotate || oc.state != StateTouchRotate {
			return
		}
		oc.rotateMove(e.Touches[0].X, e.Touches[0].Y, referenceHeight)
	case 2:
		if !oc.zoomAllowed() || oc.state != StateTouchDolly {
			return
		}
		oc.pinchMove(e.Touches)
	case 3:
		if !oc.panAllowed() || oc.state != StateTouchPan {
			return
		}
		oc.panMove(e.Touches[0].X, e.Touches[0].Y)
	default:
		oc.transition(StateIdle)
	}
}

func (oc *orbitControlsImpl) onTouchEnd(_ *input.Event) {
	if !oc.settings.Enabled {
		return
	}
	oc.transition(StateIdle)
}

func (oc *orbitControlsImpl) onPointerDown(e *input.Event) {
	if e.PointerType != input.PointerTypeTouch {
		return
	}
	oc.pointers.set(e.PointerID, e.X, e.Y)

	if oc.pointers.len() != 2 {
		oc.leaveZoomGesture()
		return
	}
	oc.zoomGesture = true
	if !oc.settings.Enabled || !oc.zoomAllowed() {
		return
	}
	e.PreventDefault()
	oc.dollyStart = mgl64.Vec2{0, touchDistance(oc.pointers.touches())}
	oc.transition(StateTouchDolly)
}

func (oc *orbitControlsImpl) onPointerMove(e *input.Event) {
	if e.PointerType != input.PointerTypeTouch || !oc.pointers.has(e.PointerID) {
		return
	}
	oc.pointers.set(e.PointerID, e.X, e.Y)

	if !oc.zoomGesture || oc.state != StateTouchDolly || !oc.settings.Enabled || !oc.zoomAllowed() {
		return
	}
	e.PreventDefault()
	oc.pinchMove(oc.pointers.touches())
}

func (oc *orbitControlsImpl) onPointerRelease(e *input.Event) {
	if e.PointerType != input.PointerTypeTouch || !oc.pointers.remove(e.PointerID) {
		return
	}
	if oc.pointers.len() != 2 {
		oc.leaveZoomGesture()
	}
}

// leaveZoomGesture ends a synthesized pinch, if one is running.
func (oc *orbitControlsImpl) leaveZoomGesture() {
	if oc.zoomGesture && oc.state == StateTouchDolly {
		oc.transition(StateIdle)
	}
	oc.zoomGesture = false
}

// rotateMove turns a pointer displacement into rotation deltas.
// A horizontal drag of referenceWidth pixels is one full revolution; verticalReference sets the vertical sensitivity.
func (oc *orbitControlsImpl) rotateMove(x, y, verticalReference float64) {
	end := mgl64.Vec2{x, y}
	delta := end.Sub(oc.rotateStart)

	oc.rotateLeft(2 * math.Pi * delta.X() / referenceWidth * oc.settings.RotateSpeed)
	oc.rotateUp(2 * math.Pi * delta.Y() / verticalReference * oc.settings.RotateSpeed)

	oc.rotateStart = end
	oc.queue(notifyRotate)
}

func (oc *orbitControlsImpl) mouseDollyMove(x, y float64) {
	end := mgl64.Vec2{x, y}
	delta := end.Sub(oc.dollyStart)

	if delta.Y() > 0 {
		oc.zoomOut(oc.zoomScale())
	} else if delta.Y() < 0 {
		oc.zoomIn(oc.zoomScale())
	}
	oc.dollyStart = end
}

// pinchMove dollies by the change in distance between the first two touches.
func (oc *orbitControlsImpl) pinchMove(touches []input.Touch) {
	end := mgl64.Vec2{0, touchDistance(touches)}
	delta := end.Sub(oc.dollyStart)

	step := oc.zoomScale() * oc.settings.MobileZoomFactor
	if delta.Y() > 0 {
		oc.zoomIn(step)
	} else if delta.Y() < 0 {
		oc.zoomOut(step)
	}
	oc.dollyStart = end
	oc.queue(notifyDolly)
}

func (oc *orbitControlsImpl) panMove(x, y float64) {
	end := mgl64.Vec2{x, y}
	delta := end.Sub(oc.panStart)
	oc.pan(delta.X(), delta.Y())
	oc.panStart = end
}

func touchDistance(touches []input.Touch) float64 {
	dx := touches[0].X - touches[1].X
	dy := touches[0].Y - touches[1].Y
	return math.Sqrt(dx*dx + dy*dy)
}
