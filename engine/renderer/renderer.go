package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"github.com/go-gl/mathgl/mgl64"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingClearColor    *Color
	gridHalfExtent       float64
	gridDivisions        int

	released bool
}

// Renderer presents frames to a window surface.
//
// The renderer owns the GPU device and the window's surface. Each Frame clears the surface to the
// current clear color and draws a reference grid on the XZ plane with the world axes, seen through
// the last view-projection matrix the host supplied.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color used by subsequent frames.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c Color)

	// SetViewProjection sets the camera matrix used to draw the reference grid.
	//
	// Parameters:
	//   - m: the camera's view-projection matrix with WebGPU clip depth
	SetViewProjection(m mgl64.Mat4)

	// Frame renders and presents one frame.
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or submitted
	Frame() error

	// Release frees the GPU device and surface. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given window.
// Panics if no GPU adapter or device is available.
//
// Parameters:
//   - backendType: the GPU backend implementation
//   - window: the window whose surface is presented to
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:             &sync.Mutex{},
		backendType:    backendType,
		gridHalfExtent: 500,
		gridDivisions:  20,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		lines := referenceGrid(float32(r.gridHalfExtent), r.gridDivisions, float32(r.gridHalfExtent/5))
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, lines)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c Color) {
	r.backend.SetClearColor(c)
}

func (r *renderer) SetViewProjection(m mgl64.Mat4) {
	r.backend.SetViewProjection(common.Mat4ToFloat32(m))
}

func (r *renderer) Frame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return nil
	}
	return r.backend.DrawFrame()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}
