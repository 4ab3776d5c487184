package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl64"
)

type projectionKind int

const (
	projectionPerspective projectionKind = iota
	projectionOrthographic
)

// cameraImpl holds the pose and projection state shared by both projection kinds.
// Matrices are derived from the pose on demand, so moving the camera every tick costs nothing
// until a renderer asks for them.
type cameraImpl struct {
	mu *sync.Mutex

	kind projectionKind

	position    mgl64.Vec3
	up          mgl64.Vec3
	orientation mgl64.Quat

	zoom   float64
	aspect float64
	near   float64
	far    float64

	// perspective only
	fov float64

	// orthographic only
	left, right, top, bottom float64

	dirty                bool
	viewMatrix           mgl64.Mat4
	projectionMatrix     mgl64.Mat4
	viewProjectionMatrix mgl64.Mat4
}

// Camera defines the pose and projection interface shared by perspective and orthographic cameras.
// The camera owns its position and orientation; controllers move it through SetPosition and LookAt.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl64.Vec3: world-space position
	Position() mgl64.Vec3

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - p: new world-space position
	SetPosition(p mgl64.Vec3)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl64.Vec3: the up vector
	Up() mgl64.Vec3

	// SetUp sets the camera's up vector. Takes effect on the next LookAt.
	//
	// Parameters:
	//   - up: the new up vector
	SetUp(up mgl64.Vec3)

	// Orientation returns the camera's world-space rotation.
	// The camera looks down its local -Z axis with local +Y as up.
	//
	// Returns:
	//   - mgl64.Quat: the orientation quaternion
	Orientation() mgl64.Quat

	// LookAt rotates the camera so it faces target, keeping its up vector as close to Up() as possible.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target mgl64.Vec3)

	// Zoom returns the projection zoom factor (1 = no zoom).
	//
	// Returns:
	//   - float64: the zoom factor
	Zoom() float64

	// SetZoom sets the projection zoom factor and recomputes the projection matrix.
	//
	// Parameters:
	//   - zoom: the zoom factor
	SetZoom(zoom float64)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float64: the aspect ratio
	Aspect() float64

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float64)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float64: near plane distance
	Near() float64

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float64: far plane distance
	Far() float64

	// SetClipPlanes sets the near and far clipping plane distances and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	//   - far: far plane distance
	SetClipPlanes(near, far float64)

	// ViewMatrix returns the world-to-view matrix for the current pose.
	//
	// Returns:
	//   - mgl64.Mat4: the view matrix
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the view-to-clip matrix, with WebGPU clip depth [0, 1].
	//
	// Returns:
	//   - mgl64.Mat4: the projection matrix
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns projection * view, the matrix a renderer uploads to draw in world space.
	//
	// Returns:
	//   - mgl64.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl64.Mat4
}

// PerspectiveCamera is a Camera with a vertical field of view.
type PerspectiveCamera interface {
	Camera

	// Fov returns the unzoomed vertical field of view in radians.
	//
	// Returns:
	//   - float64: field of view in radians
	Fov() float64

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float64)
}

// OrthographicCamera is a Camera with an axis-aligned view volume.
type OrthographicCamera interface {
	Camera

	// Frustum returns the unzoomed view volume extents in camera space.
	//
	// Returns:
	//   - left, right, top, bottom: view volume extents
	Frustum() (left, right, top, bottom float64)

	// SetFrustum sets the view volume extents and recomputes matrices.
	//
	// Parameters:
	//   - left, right, top, bottom: view volume extents
	SetFrustum(left, right, top, bottom float64)
}

type perspectiveCamera struct {
	*cameraImpl
}

type orthographicCamera struct {
	*cameraImpl
}

var _ PerspectiveCamera = perspectiveCamera{}
var _ OrthographicCamera = orthographicCamera{}

func newCameraImpl(kind projectionKind) *cameraImpl {
	return &cameraImpl{
		mu:          &sync.Mutex{},
		kind:        kind,
		position:    mgl64.Vec3{0, 0, 1},
		up:          mgl64.Vec3{0, 1, 0},
		orientation: mgl64.QuatIdent(),
		zoom:        1,
		aspect:      1,
		near:        0.1,
		far:         2000,
		fov:         50 * math.Pi / 180,
		left:        -1,
		right:       1,
		top:         1,
		bottom:      -1,
	}
}

// NewPerspectiveCamera creates a new perspective camera.
// Defaults: position (0, 0, 1) looking down -Z, up +Y, 50° vertical fov, aspect 1, near 0.1, far 2000.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - PerspectiveCamera: the newly created camera
func NewPerspectiveCamera(options ...CameraBuilderOption) PerspectiveCamera {
	c := newCameraImpl(projectionPerspective)
	for _, option := range options {
		option(c)
	}
	c.dirty = true
	return perspectiveCamera{c}
}

// NewOrthographicCamera creates a new orthographic camera.
// Defaults: position (0, 0, 1) looking down -Z, up +Y, view volume [-1, 1] x [-1, 1], near 0.1, far 2000.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - OrthographicCamera: the newly created camera
func NewOrthographicCamera(options ...CameraBuilderOption) OrthographicCamera {
	c := newCameraImpl(projectionOrthographic)
	for _, option := range options {
		option(c)
	}
	c.dirty = true
	return orthographicCamera{c}
}

func (c *cameraImpl) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.dirty = true
}

func (c *cameraImpl) Up() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) Orientation() mgl64.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) LookAt(target mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = lookRotation(c.position, target, c.up)
	c.dirty = true
}

func (c *cameraImpl) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) SetZoom(zoom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
	c.dirty = true
}

func (c *cameraImpl) Aspect() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.dirty = true
}

func (c *cameraImpl) Near() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetClipPlanes(near, far float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.far = far
	c.dirty = true
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshMatrices()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshMatrices()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshMatrices()
	return c.viewProjectionMatrix
}

func (c perspectiveCamera) Fov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c perspectiveCamera) SetFov(fov float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.dirty = true
}

func (c orthographicCamera) Frustum() (left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.top, c.bottom
}

func (c orthographicCamera) SetFrustum(left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left, c.right, c.top, c.bottom = left, right, top, bottom
	c.dirty = true
}

// lookRotation builds the orientation of an object at eye facing target, with its local +Z pointing
// away from target. When up is parallel to the view direction the direction is nudged so the basis
// stays well defined.
func lookRotation(eye, target, up mgl64.Vec3) mgl64.Quat {
	z := eye.Sub(target)
	if z.Dot(z) == 0 {
		z = mgl64.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Dot(x) == 0 {
		if math.Abs(up.Z()) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(x, y, z).Mat4()).Normalize()
}

// refreshMatrices recomputes the view, projection and view-projection matrices if the pose or
// projection changed since the last read. Caller must hold the mutex.
func (c *cameraImpl) refreshMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false

	forward := c.orientation.Rotate(mgl64.Vec3{0, 0, -1})
	localUp := c.orientation.Rotate(mgl64.Vec3{0, 1, 0})
	c.viewMatrix = mgl64.LookAtV(c.position, c.position.Add(forward), localUp)

	zoom := c.zoom
	if zoom <= 0 {
		zoom = 1
	}

	switch c.kind {
	case projectionOrthographic:
		cx := (c.right + c.left) / 2
		cy := (c.top + c.bottom) / 2
		dx := (c.right - c.left) / (2 * zoom)
		dy := (c.top - c.bottom) / (2 * zoom)
		c.projectionMatrix = common.Orthographic(cx-dx, cx+dx, cy+dy, cy-dy, c.near, c.far)
	default:
		fovY := 2 * math.Atan(math.Tan(c.fov/2)/zoom)
		c.projectionMatrix = common.Perspective(fovY, c.aspect, c.near, c.far)
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
