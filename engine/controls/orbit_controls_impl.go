package controls

import (
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// changeEpsilon is the threshold for both squared displacement and orientation change.
	changeEpsilon = 1e-6

	// referenceWidth and referenceHeight define rotation sensitivity: dragging
	// referenceWidth pixels horizontally is one full revolution.
	referenceWidth  = 575.0
	referenceHeight = 625.0
)

type projectionKind int

const (
	projectionUnsupported projectionKind = iota
	projectionPerspective
	projectionOrthographic
)

type notification int

const (
	notifyStart notification = iota
	notifyEnd
	notifyChange
	notifyRotate
	notifyDolly
)

// accumulator holds the deltas gathered by input handlers between ticks.
type accumulator struct {
	sphericalDelta Spherical
	scale          float64
	panOffset      mgl64.Vec3
	zoomChanged    bool
}

func (a *accumulator) reset() {
	a.sphericalDelta = Spherical{}
	a.scale = 1
	a.panOffset = mgl64.Vec3{}
	a.zoomChanged = false
}

type orbitControlsImpl struct {
	mu *sync.Mutex

	camera     Camera
	surface    input.Surface
	logger     *log.Logger
	settings   Settings
	projection projectionKind

	target mgl64.Vec3

	// pose captured at construction, restored by Reset
	target0   mgl64.Vec3
	position0 mgl64.Vec3
	zoom0     float64

	// rotation from the camera's up vector to +Y, and its inverse
	quat        mgl64.Quat
	quatInverse mgl64.Quat

	state     State
	spherical Spherical
	acc       accumulator

	lastPosition   mgl64.Vec3
	lastQuaternion mgl64.Quat

	rotateStart mgl64.Vec2
	panStart    mgl64.Vec2
	dollyStart  mgl64.Vec2

	nativeTouch bool
	pointers    *pointerTracker
	zoomGesture bool

	subscriptions        []input.Subscription
	gestureSubscriptions []input.Subscription
	disposed             bool

	zoomValidator func(scale float64) bool

	onStart  func()
	onEnd    func()
	onChange func()
	onRotate func()
	onDolly  func()

	pending []notification
}

var _ OrbitControls = &orbitControlsImpl{}

// NewOrbitControls creates a controller bound to a camera and an input surface.
// Listeners are registered on the surface immediately and the camera is moved to face the target.
//
// Parameters:
//   - cam: the camera to drive
//   - surface: the input event source
//   - options: variadic list of OrbitControlsOption functions to configure the controller
//
// Returns:
//   - OrbitControls: the new controller
func NewOrbitControls(cam Camera, surface input.Surface, options ...OrbitControlsOption) OrbitControls {
	oc := &orbitControlsImpl{
		mu:             &sync.Mutex{},
		camera:         cam,
		surface:        surface,
		logger:         log.Default(),
		settings:       DefaultSettings(),
		lastQuaternion: mgl64.QuatIdent(),
		pointers:       newPointerTracker(),
		zoomValidator:  func(float64) bool { return true },
	}
	oc.acc.reset()

	for _, option := range options {
		option(oc)
	}

	oc.projection = detectProjection(cam)
	if oc.projection == projectionUnsupported {
		oc.logger.Printf("orbit controls: unsupported camera type %T, dolly and pan disabled", cam)
	}

	oc.target0 = oc.target
	oc.position0 = cam.Position()
	oc.zoom0 = cam.Zoom()

	oc.quat = mgl64.QuatBetweenVectors(cam.Up(), mgl64.Vec3{0, 1, 0})
	oc.quatInverse = oc.quat.Inverse()

	oc.nativeTouch = surface.SupportsTouch()
	oc.subscribe()

	oc.update()
	// nobody can be listening yet
	oc.pending = nil

	return oc
}

func detectProjection(cam Camera) projectionKind {
	if _, ok := cam.(PerspectiveProjection); ok {
		return projectionPerspective
	}
	if _, ok := cam.(OrthographicProjection); ok {
		return projectionOrthographic
	}
	return projectionUnsupported
}

func (oc *orbitControlsImpl) Update() bool {
	oc.mu.Lock()
	changed := oc.update()
	callbacks := oc.takePending()
	oc.mu.Unlock()

	fire(callbacks)
	return changed
}

// update runs one tick of the transform engine. Caller must hold the mutex.
func (oc *orbitControlsImpl) update() bool {
	position := oc.camera.Position()

	offset := position.Sub(oc.target)
	offset = oc.quat.Rotate(offset)
	oc.spherical.SetFromVector(offset)

	if oc.settings.AutoRotate && oc.state == StateIdle {
		oc.rotateLeft(oc.autoRotationAngle())
	}

	oc.spherical.Theta += oc.acc.sphericalDelta.Theta
	oc.spherical.Phi += oc.acc.sphericalDelta.Phi

	if !math.IsInf(oc.settings.MinAzimuthAngle, 0) || !math.IsInf(oc.settings.MaxAzimuthAngle, 0) {
		oc.spherical.Theta = clamp(oc.spherical.Theta, oc.settings.MinAzimuthAngle, oc.settings.MaxAzimuthAngle)
	}
	oc.spherical.Phi = clamp(oc.spherical.Phi, oc.settings.MinPolarAngle, oc.settings.MaxPolarAngle)
	oc.spherical.MakeSafe()

	oc.spherical.Radius *= oc.acc.scale
	oc.spherical.Radius = clamp(oc.spherical.Radius, oc.settings.MinDistance, oc.settings.MaxDistance)

	oc.target = oc.target.Add(oc.acc.panOffset)

	offset = oc.quatInverse.Rotate(oc.spherical.Vector())
	position = oc.target.Add(offset)
	oc.camera.SetPosition(position)
	oc.camera.LookAt(oc.target)

	if oc.settings.EnableDamping {
		decay := 1 - oc.settings.DampingFactor
		oc.acc.sphericalDelta.Theta *= decay
		oc.acc.sphericalDelta.Phi *= decay
	} else {
		oc.acc.sphericalDelta = Spherical{}
	}
	oc.acc.scale = 1
	oc.acc.panOffset = mgl64.Vec3{}

	orientation := oc.camera.Orientation()
	moved := position.Sub(oc.lastPosition)
	if oc.acc.zoomChanged ||
		moved.Dot(moved) > changeEpsilon ||
		8*(1-oc.lastQuaternion.Dot(orientation)) > changeEpsilon {
		oc.queue(notifyChange)
		oc.lastPosition = position
		oc.lastQuaternion = orientation
		oc.acc.zoomChanged = false
		return true
	}
	return false
}

func (oc *orbitControlsImpl) Reset() {
	oc.mu.Lock()
	oc.removeGestureListeners()
	oc.transition(StateIdle)
	oc.zoomGesture = false
	oc.acc.reset()

	oc.target = oc.target0
	oc.camera.SetPosition(oc.position0)
	oc.camera.SetZoom(oc.zoom0)
	oc.camera.LookAt(oc.target)

	// bounds are re-applied by the next Update; the restored pose is exact until then
	oc.spherical.SetFromVector(oc.quat.Rotate(oc.position0.Sub(oc.target0)))
	oc.lastPosition = oc.position0
	oc.lastQuaternion = oc.camera.Orientation()
	oc.queue(notifyChange)

	callbacks := oc.takePending()
	oc.mu.Unlock()

	fire(callbacks)
}

func (oc *orbitControlsImpl) Dispose() {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if oc.disposed {
		return
	}
	oc.disposed = true

	for _, sub := range oc.subscriptions {
		oc.surface.Unsubscribe(sub)
	}
	oc.subscriptions = nil
	oc.removeGestureListeners()

	// abandoned, not ended
	oc.state = StateIdle
	oc.zoomGesture = false
	oc.pending = nil
}

func (oc *orbitControlsImpl) PolarAngle() float64 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.spherical.Phi
}

func (oc *orbitControlsImpl) AzimuthalAngle() float64 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.spherical.Theta
}

func (oc *orbitControlsImpl) SphericalRadius() float64 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.spherical.Radius
}

func (oc *orbitControlsImpl) SetSphericalRadius(radius float64) {
	oc.mu.Lock()
	if oc.spherical.Radius == 0 {
		oc.mu.Unlock()
		return
	}
	oc.acc.scale = radius / oc.spherical.Radius
	oc.update()
	callbacks := oc.takePending()
	oc.mu.Unlock()

	fire(callbacks)
}

func (oc *orbitControlsImpl) Target() mgl64.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControlsImpl) SetTarget(target mgl64.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
}

func (oc *orbitControlsImpl) State() State {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.state
}

func (oc *orbitControlsImpl) Settings() Settings {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.settings
}

func (oc *orbitControlsImpl) SetSettings(s Settings) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.settings = s
}

func (oc *orbitControlsImpl) UpdateSettings(fn func(s *Settings)) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	fn(&oc.settings)
}

func (oc *orbitControlsImpl) SetAutoRotate(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.settings.AutoRotate = enabled
}

func (oc *orbitControlsImpl) ToggleAutoRotate() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.settings.AutoRotate = !oc.settings.AutoRotate
	return oc.settings.AutoRotate
}

func (oc *orbitControlsImpl) SetStartCallback(callback func()) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.onStart = callback
}

func (oc *orbitControlsImpl) SetEndCallback(callback func()) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.onEnd = callback
}

func (oc *orbitControlsImpl) SetChangeCallback(callback func()) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.onChange = callback
}

func (oc *orbitControlsImpl) SetRotateCallback(callback func()) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.onRotate = callback
}

func (oc *orbitControlsImpl) SetDollyCallback(callback func()) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.onDolly = callback
}

// queue records a notification for delivery once the mutex is released. Caller must hold the mutex.
func (oc *orbitControlsImpl) queue(n notification) {
	oc.pending = append(oc.pending, n)
}

// takePending resolves queued notifications to their callbacks and clears the queue.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) takePending() []func() {
	if len(oc.pending) == 0 {
		return nil
	}
	callbacks := make([]func(), 0, len(oc.pending))
	for _, n := range oc.pending {
		var cb func()
		switch n {
		case notifyStart:
			cb = oc.onStart
		case notifyEnd:
			cb = oc.onEnd
		case notifyChange:
			cb = oc.onChange
		case notifyRotate:
			cb = oc.onRotate
		case notifyDolly:
			cb = oc.onDolly
		}
		if cb != nil {
			callbacks = append(callbacks, cb)
		}
	}
	oc.pending = oc.pending[:0]
	return callbacks
}

func fire(callbacks []func()) {
	for _, cb := range callbacks {
		cb()
	}
}

func (oc *orbitControlsImpl) autoRotationAngle() float64 {
	return 2 * math.Pi / 60 / 60 * oc.settings.AutoRotateSpeed
}

func (oc *orbitControlsImpl) zoomScale() float64 {
	return math.Pow(0.95, oc.settings.ZoomSpeed)
}

func (oc *orbitControlsImpl) rotateLeft(angle float64) {
	oc.acc.sphericalDelta.Theta -= angle
}

func (oc *orbitControlsImpl) rotateUp(angle float64) {
	oc.acc.sphericalDelta.Phi -= angle
}

func (oc *orbitControlsImpl) panLeft(distance float64) {
	right := oc.camera.Orientation().Rotate(mgl64.Vec3{1, 0, 0})
	oc.acc.panOffset = oc.acc.panOffset.Add(right.Mul(-distance))
}

func (oc *orbitControlsImpl) panUp(distance float64) {
	up := oc.camera.Orientation().Rotate(mgl64.Vec3{0, 1, 0})
	oc.acc.panOffset = oc.acc.panOffset.Add(up.Mul(distance))
}

// pan converts a pixel delta on the surface into a world-space pan offset.
func (oc *orbitControlsImpl) pan(deltaX, deltaY float64) {
	width, height := oc.surface.Size()

	switch oc.projection {
	case projectionPerspective:
		if height <= 0 {
			return
		}
		fov := oc.camera.(PerspectiveProjection).Fov()
		targetDistance := oc.camera.Position().Sub(oc.target).Len() * math.Tan(fov/2)
		oc.panLeft(2 * deltaX * targetDistance / float64(height))
		oc.panUp(2 * deltaY * targetDistance / float64(height))
	case projectionOrthographic:
		if width <= 0 || height <= 0 {
			return
		}
		left, right, top, bottom := oc.camera.(OrthographicProjection).Frustum()
		zoom := oc.camera.Zoom()
		oc.panLeft(deltaX * (right - left) / zoom / float64(width))
		oc.panUp(deltaY * (top - bottom) / zoom / float64(height))
	}
}

// zoomOut moves the view away from the target: the radius grows by 1/dollyScale.
func (oc *orbitControlsImpl) zoomOut(dollyScale float64) {
	if !oc.zoomValidator(1 / dollyScale) {
		return
	}
	switch oc.projection {
	case projectionPerspective:
		oc.acc.scale /= dollyScale
	case projectionOrthographic:
		oc.camera.SetZoom(clamp(oc.camera.Zoom()*dollyScale, oc.settings.MinZoom, oc.settings.MaxZoom))
		oc.acc.zoomChanged = true
	}
}

// zoomIn moves the view toward the target: the radius shrinks by dollyScale.
func (oc *orbitControlsImpl) zoomIn(dollyScale float64) {
	if !oc.zoomValidator(dollyScale) {
		return
	}
	switch oc.projection {
	case projectionPerspective:
		oc.acc.scale *= dollyScale
	case projectionOrthographic:
		oc.camera.SetZoom(clamp(oc.camera.Zoom()/dollyScale, oc.settings.MinZoom, oc.settings.MaxZoom))
		oc.acc.zoomChanged = true
	}
}

func (oc *orbitControlsImpl) zoomAllowed() bool {
	return oc.settings.EnableZoom && oc.projection != projectionUnsupported
}

func (oc *orbitControlsImpl) panAllowed() bool {
	return oc.settings.EnablePan && oc.projection != projectionUnsupported
}
