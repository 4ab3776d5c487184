package controls

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counters struct {
	start, end, change, rotate, dolly int
}

func track(oc OrbitControls) *counters {
	c := &counters{}
	oc.SetStartCallback(func() { c.start++ })
	oc.SetEndCallback(func() { c.end++ })
	oc.SetChangeCallback(func() { c.change++ })
	oc.SetRotateCallback(func() { c.rotate++ })
	oc.SetDollyCallback(func() { c.dolly++ })
	return c
}

func mouse(hub *input.Hub, kind input.EventKind, button input.MouseButton, x, y float64) *input.Event {
	e := &input.Event{Kind: kind, Button: button, X: x, Y: y}
	hub.Dispatch(e)
	return e
}

func wheel(hub *input.Hub, deltaY float64) *input.Event {
	e := &input.Event{Kind: input.EventWheel, DeltaY: deltaY}
	hub.Dispatch(e)
	return e
}

func key(hub *input.Hub, code uint32) {
	hub.Dispatch(&input.Event{Kind: input.EventKeyDown, KeyCode: code})
}

func touches(hub *input.Hub, kind input.EventKind, points ...input.Touch) {
	hub.Dispatch(&input.Event{Kind: kind, Touches: points})
}

func pointer(hub *input.Hub, kind input.EventKind, id int, x, y float64) {
	hub.Dispatch(&input.Event{Kind: kind, PointerID: id, PointerType: input.PointerTypeTouch, X: x, Y: y})
}

func drag(hub *input.Hub, button input.MouseButton, fromX, fromY, toX, toY float64) {
	mouse(hub, input.EventMouseDown, button, fromX, fromY)
	mouse(hub, input.EventMouseMove, button, toX, toY)
	mouse(hub, input.EventMouseUp, button, toX, toY)
}

// bareCamera hides the projection methods of a real camera.
type bareCamera struct {
	cam camera.Camera
}

func (b *bareCamera) Position() mgl64.Vec3 { return b.cam.Position() }
func (b *bareCamera) SetPosition(p mgl64.Vec3) { b.cam.SetPosition(p) }
func (b *bareCamera) Up() mgl64.Vec3 { return b.cam.Up() }
func (b *bareCamera) Orientation() mgl64.Quat { return b.cam.Orientation() }
func (b *bareCamera) LookAt(target mgl64.Vec3) { b.cam.LookAt(target) }
func (b *bareCamera) Zoom() float64 { return b.cam.Zoom() }
func (b *bareCamera) SetZoom(zoom float64) { b.cam.SetZoom(zoom) }

func TestRotateDragOfReferenceWidthIsFullRevolution(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	oc := NewOrbitControls(cam, hub,
		WithDistanceBounds(100, 1000),
		WithPolarBounds(0, math.Pi/2),
	)

	before := oc.AzimuthalAngle()
	drag(hub, input.MouseButtonLeft, 100, 100, 100+referenceWidth, 100)
	oc.Update()

	assert.InDelta(t, -2*math.Pi, oc.AzimuthalAngle()-before, 1e-9)
	assertVecNear(t, mgl64.Vec3{0, 0, 500}, cam.Position(), 1e-6)
}

func TestWheelZoomOutScalesRadius(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	oc := NewOrbitControls(cam, hub, WithDistanceBounds(100, 1000))
	c := track(oc)

	e := wheel(hub, 120)
	assert.True(t, e.DefaultPrevented())
	assert.True(t, oc.Update())

	assert.InDelta(t, 500/0.95, oc.SphericalRadius(), 1e-9)
	assert.Equal(t, 1, c.start)
	assert.Equal(t, 1, c.end)
	assert.Equal(t, 1, c.dolly)
	assert.Equal(t, 1, c.change)

	wheel(hub, -120)
	oc.Update()
	assert.InDelta(t, 500, oc.SphericalRadius(), 1e-9)
}

func TestWheelRadiusClampedToMaxDistance(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 990))
	oc := NewOrbitControls(cam, hub, WithDistanceBounds(100, 1000))

	for i := 0; i < 10; i++ {
		wheel(hub, 120)
		oc.Update()
		assert.LessOrEqual(t, oc.SphericalRadius(), 1000.0)
	}
	assert.InDelta(t, 1000, oc.SphericalRadius(), 1e-9)

	for i := 0; i < 200; i++ {
		wheel(hub, -120)
		oc.Update()
		assert.GreaterOrEqual(t, oc.SphericalRadius(), 100.0)
	}
	assert.InDelta(t, 100, oc.SphericalRadius(), 1e-9)
}

func TestWheelIgnoredWhenZoomDisabled(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	oc := NewOrbitControls(cam, hub)
	oc.UpdateSettings(func(s *Settings) { s.EnableZoom = false })
	c := track(oc)

	e := wheel(hub, 120)
	assert.False(t, e.DefaultPrevented())
	assert.False(t, oc.Update())
	assert.InDelta(t, 500, oc.SphericalRadius(), 1e-9)
	assert.Equal(t, counters{}, *c)
}

func TestWheelIgnoredDuringGesture(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	oc := NewOrbitControls(cam, hub)

	mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 10, 10)
	wheel(hub, 120)
	oc.Update()
	assert.InDelta(t, 500, oc.SphericalRadius(), 1e-9)
}

func TestZoomValidatorRejectsStep(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	var seen []float64
	oc := NewOrbitControls(cam, hub, WithZoomValidator(func(scale float64) bool {
		seen = append(seen, scale)
		return scale > 1
	}))

	wheel(hub, -120)
	oc.Update()
	assert.InDelta(t, 500, oc.SphericalRadius(), 1e-9)

	wheel(hub, 120)
	oc.Update()
	assert.InDelta(t, 500/0.95, oc.SphericalRadius(), 1e-9)

	require.Len(t, seen, 2)
	assert.InDelta(t, 0.95, seen[0], 1e-12)
	assert.InDelta(t, 1/0.95, seen[1], 1e-12)
}

func TestPolarAngleStaysOffThePoles(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)

	// dragging down lowers φ toward the up axis
	drag(hub, input.MouseButtonLeft, 0, 0, 0, 10000)
	oc.Update()
	assert.Equal(t, makeSafeEpsilon, oc.PolarAngle())

	drag(hub, input.MouseButtonLeft, 0, 10000, 0, -10000)
	oc.Update()
	assert.Equal(t, math.Pi-makeSafeEpsilon, oc.PolarAngle())

	p := cam.Position()
	for i := range p {
		assert.False(t, math.IsNaN(p[i]))
	}
	assert.InDelta(t, 10, p.Len(), 1e-9)
}

func TestPolarBoundsHold(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(-20, 20, 50))
	oc := NewOrbitControls(cam, hub, WithPolarBounds(math.Pi/4, math.Pi/2))

	for _, dy := range []float64{-800, 300, 900, -2000, 50} {
		drag(hub, input.MouseButtonLeft, 0, 0, 0, dy)
		oc.Update()
		phi := oc.PolarAngle()
		assert.GreaterOrEqual(t, phi, math.Pi/4)
		assert.LessOrEqual(t, phi, math.Pi/2)
	}
}

func TestMinAboveMaxYieldsMin(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	oc := NewOrbitControls(cam, hub, WithDistanceBounds(300, 200))

	assert.InDelta(t, 300, oc.SphericalRadius(), 1e-9)
}

func TestAzimuthBoundsClamp(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub, WithAzimuthBounds(-math.Pi/4, math.Pi/4))

	drag(hub, input.MouseButtonLeft, 0, 0, 400, 0)
	oc.Update()
	assert.InDelta(t, -math.Pi/4, oc.AzimuthalAngle(), 1e-9)

	drag(hub, input.MouseButtonLeft, 400, 0, -400, 0)
	oc.Update()
	assert.InDelta(t, math.Pi/4, oc.AzimuthalAngle(), 1e-9)
}

func TestIdleUpdateIsIdempotent(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(-20, 20, 50))
	oc := NewOrbitControls(cam, hub)
	c := track(oc)

	drag(hub, input.MouseButtonLeft, 0, 0, 40, 25)
	assert.True(t, oc.Update())
	settled := cam.Position()

	for i := 0; i < 20; i++ {
		assert.False(t, oc.Update())
	}
	assert.Equal(t, 1, c.change)
	assertVecNear(t, settled, cam.Position(), 1e-9)
}

func TestDampingDecaysGeometrically(t *testing.T) {
	const factor = 0.25
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub, WithDamping(factor))

	drag(hub, input.MouseButtonLeft, 0, 0, 10, 0)
	initial := -2 * math.Pi * 10 / referenceWidth

	previous := oc.AzimuthalAngle()
	for n := 0; n < 8; n++ {
		oc.Update()
		current := oc.AzimuthalAngle()
		assert.InDelta(t, initial*math.Pow(1-factor, float64(n)), current-previous, 1e-9, "tick %d", n)
		previous = current
	}
}

func TestSyntheticPinchMatchesNativePinch(t *testing.T) {
	native := input.NewHub(input.WithTouch(true))
	nativeCam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	nativeOC := NewOrbitControls(nativeCam, native)

	synthetic := input.NewHub()
	syntheticCam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	syntheticOC := NewOrbitControls(syntheticCam, synthetic)
	c := track(syntheticOC)

	touches(native, input.EventTouchStart, input.Touch{X: 100, Y: 100}, input.Touch{X: 200, Y: 100})
	pointer(synthetic, input.EventPointerDown, 1, 100, 100)
	pointer(synthetic, input.EventPointerDown, 2, 200, 100)
	assert.Equal(t, StateTouchDolly, nativeOC.State())
	assert.Equal(t, StateTouchDolly, syntheticOC.State())

	for _, x := range []float64{250, 300, 280, 150, 160} {
		touches(native, input.EventTouchMove, input.Touch{X: 100, Y: 100}, input.Touch{X: x, Y: 100})
		pointer(synthetic, input.EventPointerMove, 2, x, 100)
		nativeOC.Update()
		syntheticOC.Update()
		assert.InDelta(t, nativeOC.SphericalRadius(), syntheticOC.SphericalRadius(), 1e-9)
	}
	assert.NotEqual(t, 500.0, syntheticOC.SphericalRadius())

	pointer(synthetic, input.EventPointerUp, 2, 160, 100)
	assert.Equal(t, StateIdle, syntheticOC.State())
	assert.Equal(t, 1, c.start)
	assert.Equal(t, 1, c.end)
	assert.Equal(t, 5, c.dolly)
}

func TestSyntheticPinchIgnoresCompatMouseMoves(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	oc := NewOrbitControls(cam, hub)
	c := track(oc)

	// a browser-style compat mousedown arrives alongside the first touch pointer
	pointer(hub, input.EventPointerDown, 1, 100, 100)
	mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 100, 100)
	pointer(hub, input.EventPointerDown, 2, 200, 100)
	mouse(hub, input.EventMouseMove, input.MouseButtonLeft, 400, 100)

	assert.Equal(t, 0, c.rotate)
}

func TestPointerPathInactiveOnNativeTouchSurface(t *testing.T) {
	hub := input.NewHub(input.WithTouch(true))
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	oc := NewOrbitControls(cam, hub)

	assert.Equal(t, 0, hub.Listeners(input.EventPointerDown))
	pointer(hub, input.EventPointerDown, 1, 100, 100)
	pointer(hub, input.EventPointerDown, 2, 200, 100)
	assert.Equal(t, StateIdle, oc.State())
}

func TestTouchRotateUsesReferenceHeight(t *testing.T) {
	hub := input.NewHub(input.WithTouch(true))
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)
	c := track(oc)

	before := oc.PolarAngle()
	touches(hub, input.EventTouchStart, input.Touch{X: 0, Y: 0})
	touches(hub, input.EventTouchMove, input.Touch{X: 0, Y: -100})
	oc.Update()

	assert.InDelta(t, 2*math.Pi*100/referenceHeight, oc.PolarAngle()-before, 1e-9)
	assert.Equal(t, 1, c.rotate)
}

func TestTouchCountMismatch(t *testing.T) {
	hub := input.NewHub(input.WithTouch(true))
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)
	c := track(oc)

	touches(hub, input.EventTouchStart, input.Touch{X: 0, Y: 0})
	require.Equal(t, StateTouchRotate, oc.State())

	// 2 touches while rotating: rejected, state kept
	touches(hub, input.EventTouchMove, input.Touch{X: 0, Y: 0}, input.Touch{X: 50, Y: 0})
	assert.Equal(t, StateTouchRotate, oc.State())
	assert.Equal(t, 0, c.dolly)

	// 4 touches: forced idle
	touches(hub, input.EventTouchMove,
		input.Touch{X: 0, Y: 0}, input.Touch{X: 1, Y: 0}, input.Touch{X: 2, Y: 0}, input.Touch{X: 3, Y: 0})
	assert.Equal(t, StateIdle, oc.State())
	assert.Equal(t, 1, c.start)
	assert.Equal(t, 1, c.end)

	touches(hub, input.EventTouchStart,
		input.Touch{X: 0, Y: 0}, input.Touch{X: 1, Y: 0}, input.Touch{X: 2, Y: 0}, input.Touch{X: 3, Y: 0})
	assert.Equal(t, StateIdle, oc.State())
	assert.Equal(t, 1, c.start)
}

func TestDisabledTouchStartKeepsActiveGesture(t *testing.T) {
	hub := input.NewHub(input.WithTouch(true))
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)
	c := track(oc)

	touches(hub, input.EventTouchStart, input.Touch{X: 0, Y: 0}, input.Touch{X: 100, Y: 0})
	require.Equal(t, StateTouchDolly, oc.State())

	oc.UpdateSettings(func(s *Settings) { s.EnablePan = false })
	touches(hub, input.EventTouchStart, input.Touch{X: 0, Y: 0}, input.Touch{X: 50, Y: 0}, input.Touch{X: 100, Y: 0})
	assert.Equal(t, StateTouchDolly, oc.State())

	oc.UpdateSettings(func(s *Settings) { s.EnableRotate = false })
	touches(hub, input.EventTouchStart, input.Touch{X: 0, Y: 0})
	assert.Equal(t, StateTouchDolly, oc.State())
	assert.Equal(t, 1, c.start)
	assert.Equal(t, 0, c.end)

	// the pinch keeps working after the ignored starts
	touches(hub, input.EventTouchMove, input.Touch{X: 0, Y: 0}, input.Touch{X: 200, Y: 0})
	assert.Equal(t, 1, c.dolly)

	touches(hub, input.EventTouchEnd)
	assert.Equal(t, StateIdle, oc.State())
	assert.Equal(t, 1, c.end)
}

func TestThreeFingerTouchPans(t *testing.T) {
	hub := input.NewHub(input.WithTouch(true))
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)

	three := func(x float64) []input.Touch {
		return []input.Touch{{X: x, Y: 0}, {X: x + 10, Y: 0}, {X: x + 20, Y: 0}}
	}
	touches(hub, input.EventTouchStart, three(0)...)
	require.Equal(t, StateTouchPan, oc.State())
	touches(hub, input.EventTouchMove, three(40)...)
	touches(hub, input.EventTouchEnd)
	oc.Update()

	assert.Less(t, oc.Target().X(), 0.0)
	assert.InDelta(t, 0, oc.Target().Y(), 1e-9)
	assert.Equal(t, StateIdle, oc.State())
}

func TestGestureNotificationsOncePerGesture(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)
	c := track(oc)

	mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 0, 0)
	for i := 1; i <= 5; i++ {
		mouse(hub, input.EventMouseMove, input.MouseButtonLeft, float64(i*3), 0)
	}
	mouse(hub, input.EventMouseUp, input.MouseButtonLeft, 15, 0)

	assert.Equal(t, 1, c.start)
	assert.Equal(t, 1, c.end)
	assert.Equal(t, 5, c.rotate)

	// switching buttons mid-gesture passes through idle
	mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 0, 0)
	mouse(hub, input.EventMouseDown, input.MouseButtonRight, 0, 0)
	assert.Equal(t, StatePan, oc.State())
	assert.Equal(t, 3, c.start)
	assert.Equal(t, 2, c.end)
	mouse(hub, input.EventMouseUp, input.MouseButtonRight, 0, 0)
	assert.Equal(t, 3, c.end)
}

func TestScopedMouseListeners(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)

	assert.Equal(t, 0, hub.Listeners(input.EventMouseMove))
	mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 0, 0)
	assert.Equal(t, 1, hub.Listeners(input.EventMouseMove))
	assert.Equal(t, 1, hub.Listeners(input.EventMouseUp))

	mouse(hub, input.EventMouseDown, input.MouseButtonMiddle, 0, 0)
	assert.Equal(t, 1, hub.Listeners(input.EventMouseMove))

	mouse(hub, input.EventMouseUp, input.MouseButtonMiddle, 0, 0)
	assert.Equal(t, 0, hub.Listeners(input.EventMouseMove))
	assert.Equal(t, 0, hub.Listeners(input.EventMouseUp))
	assert.Equal(t, StateIdle, oc.State())
}

func TestMouseDollyDragDownZoomsOut(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	oc := NewOrbitControls(cam, hub)

	drag(hub, input.MouseButtonMiddle, 0, 0, 0, 30)
	oc.Update()
	assert.InDelta(t, 500/0.95, oc.SphericalRadius(), 1e-9)

	drag(hub, input.MouseButtonMiddle, 0, 30, 0, 0)
	oc.Update()
	assert.InDelta(t, 500, oc.SphericalRadius(), 1e-9)
}

func TestKeyboardPan(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)

	key(hub, common.KeyUp)
	oc.Update()
	expected := 2 * 7 * 10 * math.Tan(cam.Fov()/2) / 800
	assert.InDelta(t, expected, oc.Target().Y(), 1e-9)
	assert.InDelta(t, 0, oc.Target().X(), 1e-9)

	key(hub, common.KeyLeft)
	oc.Update()
	assert.Less(t, oc.Target().X(), 0.0)
	assert.Equal(t, StateIdle, oc.State())

	// camera translates with the target
	assertVecNear(t, oc.Target().Add(mgl64.Vec3{0, 0, 10}), cam.Position(), 1e-9)
}

func TestKeyboardIgnoredWhenKeysDisabled(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)
	oc.UpdateSettings(func(s *Settings) { s.EnableKeys = false })

	key(hub, common.KeyUp)
	assert.False(t, oc.Update())
	assert.Equal(t, mgl64.Vec3{}, oc.Target())
}

func TestPanNeedsSurfaceSize(t *testing.T) {
	hub := input.NewHub(input.WithSize(0, 0))
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)

	drag(hub, input.MouseButtonRight, 0, 0, 50, 50)
	oc.Update()
	assert.Equal(t, mgl64.Vec3{}, oc.Target())
}

func TestDisabledControllerIgnoresInput(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)
	oc.UpdateSettings(func(s *Settings) { s.Enabled = false })
	c := track(oc)

	e := mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 0, 0)
	assert.False(t, e.DefaultPrevented())
	assert.Equal(t, StateIdle, oc.State())
	wheel(hub, 120)
	key(hub, common.KeyUp)
	assert.False(t, oc.Update())
	assert.Equal(t, counters{}, *c)
}

func TestContextMenuPrevented(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera()
	NewOrbitControls(cam, hub)

	e := &input.Event{Kind: input.EventContextMenu}
	hub.Dispatch(e)
	assert.True(t, e.DefaultPrevented())
}

func TestResetRestoresPoseExactly(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(-20, 20, 50))
	oc := NewOrbitControls(cam, hub, WithTarget(mgl64.Vec3{1, 2, 3}))

	drag(hub, input.MouseButtonLeft, 0, 0, 120, -45)
	drag(hub, input.MouseButtonRight, 0, 0, 30, 30)
	wheel(hub, 120)
	key(hub, common.KeyUp)
	for i := 0; i < 5; i++ {
		oc.Update()
	}
	require.NotEqual(t, mgl64.Vec3{-20, 20, 50}, cam.Position())

	mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 0, 0)
	c := track(oc)
	oc.Reset()

	assert.Equal(t, mgl64.Vec3{-20, 20, 50}, cam.Position())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, oc.Target())
	assert.Equal(t, 1.0, cam.Zoom())
	assert.Equal(t, StateIdle, oc.State())
	assert.Equal(t, 1, c.end)
	assert.Equal(t, 1, c.change)
	assert.Equal(t, 0, hub.Listeners(input.EventMouseMove))

	// nothing pending survives the reset
	assert.False(t, oc.Update())
	assertVecNear(t, mgl64.Vec3{-20, 20, 50}, cam.Position(), 1e-9)
}

func TestDisposeRemovesEveryListener(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)
	c := track(oc)

	require.Greater(t, hub.TotalListeners(), 0)
	mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 0, 0)
	require.Equal(t, 1, hub.Listeners(input.EventMouseMove))

	oc.Dispose()
	assert.Equal(t, 0, hub.TotalListeners())
	assert.Equal(t, 1, c.start)
	assert.Equal(t, 0, c.end)

	assert.NotPanics(t, oc.Dispose)
	mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 0, 0)
	wheel(hub, 120)
	assert.Equal(t, 1, c.start)
}

func TestUnsupportedCameraDisablesDollyAndPan(t *testing.T) {
	var buf bytes.Buffer
	hub := input.NewHub()
	cam := &bareCamera{cam: camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))}
	oc := NewOrbitControls(cam, hub, WithLogger(log.New(&buf, "", 0)))
	assert.Equal(t, 1, strings.Count(buf.String(), "unsupported camera"))

	oc.UpdateSettings(func(s *Settings) {
		s.EnableZoom = true
		s.EnablePan = true
	})

	wheel(hub, 120)
	key(hub, common.KeyUp)
	mouse(hub, input.EventMouseDown, input.MouseButtonRight, 0, 0)
	assert.Equal(t, StateIdle, oc.State())
	mouse(hub, input.EventMouseDown, input.MouseButtonMiddle, 0, 0)
	assert.Equal(t, StateIdle, oc.State())
	assert.False(t, oc.Update())
	assert.InDelta(t, 10, oc.SphericalRadius(), 1e-9)

	// orbit still works
	drag(hub, input.MouseButtonLeft, 0, 0, 100, 0)
	assert.True(t, oc.Update())
	assert.Equal(t, 1, strings.Count(buf.String(), "unsupported camera"))
}

func TestOrthographicDollyChangesZoomWithinBounds(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewOrthographicCamera(camera.WithPosition(0, 0, 10), camera.WithFrustum(-10, 10, 10, -10))
	oc := NewOrbitControls(cam, hub, WithZoomBounds(0.5, 2))
	c := track(oc)

	wheel(hub, -120)
	assert.True(t, oc.Update())
	assert.InDelta(t, 1/0.95, cam.Zoom(), 1e-12)
	assert.Equal(t, 1, c.change)

	for i := 0; i < 50; i++ {
		wheel(hub, -120)
		oc.Update()
	}
	assert.Equal(t, 2.0, cam.Zoom())
	assert.InDelta(t, 10, oc.SphericalRadius(), 1e-9)

	for i := 0; i < 50; i++ {
		wheel(hub, 120)
		oc.Update()
	}
	assert.Equal(t, 0.5, cam.Zoom())
	assert.InDelta(t, 10, oc.SphericalRadius(), 1e-9)
}

func TestOrthographicPanUsesFrustum(t *testing.T) {
	hub := input.NewHub(input.WithSize(200, 200))
	cam := camera.NewOrthographicCamera(camera.WithPosition(0, 0, 10), camera.WithFrustum(-10, 10, 10, -10))
	oc := NewOrbitControls(cam, hub)

	drag(hub, input.MouseButtonRight, 0, 0, 0, 20)
	oc.Update()

	// 20 px of a 200 px surface spanning 20 world units
	assert.InDelta(t, 2, oc.Target().Y(), 1e-9)
	assert.InDelta(t, 0, oc.Target().X(), 1e-9)
}

func TestNonYUpOrbitsAroundUpAxis(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithUp(0, 0, 1), camera.WithPosition(10, 0, 0))
	oc := NewOrbitControls(cam, hub)

	drag(hub, input.MouseButtonLeft, 0, 0, referenceWidth/4, 0)
	oc.Update()

	p := cam.Position()
	assert.InDelta(t, 0, p.Z(), 1e-9)
	assert.InDelta(t, 10, p.Len(), 1e-9)
	assertVecNear(t, mgl64.Vec3{0, -10, 0}, p, 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, cam.Up())
}

func TestAutoRotateOnlyWhileIdle(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub, WithAutoRotate(2))
	step := 2 * math.Pi / 3600 * 2

	before := oc.AzimuthalAngle()
	assert.True(t, oc.Update())
	assert.InDelta(t, -step, oc.AzimuthalAngle()-before, 1e-9)

	mouse(hub, input.EventMouseDown, input.MouseButtonLeft, 0, 0)
	before = oc.AzimuthalAngle()
	assert.False(t, oc.Update())
	assert.InDelta(t, 0, oc.AzimuthalAngle()-before, 1e-9)

	mouse(hub, input.EventMouseUp, input.MouseButtonLeft, 0, 0)
	before = oc.AzimuthalAngle()
	oc.Update()
	assert.InDelta(t, -step, oc.AzimuthalAngle()-before, 1e-9)

	assert.False(t, oc.ToggleAutoRotate())
	before = oc.AzimuthalAngle()
	assert.False(t, oc.Update())
	assert.InDelta(t, 0, oc.AzimuthalAngle()-before, 1e-9)
}

func TestSetSphericalRadiusAppliesImmediately(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 500))
	oc := NewOrbitControls(cam, hub, WithDistanceBounds(100, 1000))

	oc.SetSphericalRadius(200)
	assert.InDelta(t, 200, oc.SphericalRadius(), 1e-9)
	assertVecNear(t, mgl64.Vec3{0, 0, 200}, cam.Position(), 1e-9)

	oc.SetSphericalRadius(5000)
	assert.InDelta(t, 1000, oc.SphericalRadius(), 1e-9)
}

func TestCallbacksMayReenterController(t *testing.T) {
	hub := input.NewHub()
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := NewOrbitControls(cam, hub)

	var phi float64
	oc.SetChangeCallback(func() { phi = oc.PolarAngle() })
	oc.SetStartCallback(func() { _ = oc.State() })

	drag(hub, input.MouseButtonLeft, 0, 0, 0, 50)
	require.True(t, oc.Update())
	assert.Equal(t, oc.PolarAngle(), phi)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "touch-dolly", StateTouchDolly.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.False(t, StateIdle.Active())
	assert.True(t, StatePan.Active())
}

func assertVecNear(t *testing.T, expected, actual mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}
