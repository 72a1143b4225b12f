package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-topdown/common"
	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
	"github.com/Carmen-Shannon/oxy-topdown/engine/renderer/lines"
	"github.com/Carmen-Shannon/oxy-topdown/engine/window"
)

// Frame is everything drawn in one frame: the camera uniform and a line list in world space.
type Frame struct {
	Camera   camera.GPUCameraUniform
	Vertices []common.Vertex
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	clearColor           [3]float64
}

// Renderer draws line-list frames through a top-down camera.
//
// The backend owns a single line pipeline whose bind group 0 holds the camera uniform.
// Each Render call uploads the uniform and vertices, then encodes, submits and presents one frame.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Render draws one frame and presents it.
	//
	// Parameters:
	//   - f: the camera uniform and line vertices
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired or a buffer could not be created
	Render(f Frame) error

	// Release frees every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the window's surface.
// Panics if no adapter, device or line pipeline can be created.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window whose surface is drawn into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  [3]float64{0.1, 0.1, 0.1},
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa, r.clearColor)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Render(f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.WriteCamera(f.Camera.Marshal())
	if err := r.backend.WriteVertices(lines.Marshal(f.Vertices)); err != nil {
		return err
	}
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.backend.DrawLines(uint32(len(f.Vertices)))
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
