package main

import (
	"fmt"
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/config"
	"github.com/Carmen-Shannon/oxy-orbit/engine"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/controls"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/Carmen-Shannon/oxy-orbit/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"github.com/go-gl/mathgl/mgl64"
)

type hostOptions struct {
	configPath string
	watch      bool
	title      string
	width      int
	height     int
	ortho      bool
	autoRotate bool
	damping    bool
	tickRate   float64
	vsync      bool
	grid       int
	profile    bool

	// set when the flag was given explicitly, so it wins over the config file
	autoRotateSet bool
	dampingSet    bool
}

// viewerDefaults are the controller settings of the viewer before any config file is applied.
func viewerDefaults() controls.Settings {
	s := controls.DefaultSettings()
	s.MinDistance = 100
	s.MaxDistance = 1000
	s.MaxPolarAngle = math.Pi / 2
	s.EnableDamping = true
	s.DampingFactor = 0.25
	return s
}

// hostSettings resolves the controller settings: viewer defaults, then the config file, then explicit flags.
func hostSettings(o hostOptions) (controls.Settings, error) {
	s := viewerDefaults()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath, s)
		if err != nil {
			return s, err
		}
		s = loaded
	}
	if o.autoRotateSet {
		s.AutoRotate = o.autoRotate
	}
	if o.dampingSet {
		s.EnableDamping = o.damping
	}
	return s, nil
}

// viewCamera is the camera surface the host needs: driven by the controls, resized by the engine
// and read by the renderer.
type viewCamera interface {
	controls.Camera
	engine.AspectReceiver
	ViewProjectionMatrix() mgl64.Mat4
}

func newViewCamera(ortho bool) viewCamera {
	if ortho {
		return camera.NewOrthographicCamera(
			camera.WithPosition(-20, 20, 50),
			camera.WithFrustum(-50, 50, 50, -50),
		)
	}
	return camera.NewPerspectiveCamera(
		camera.WithPosition(-20, 20, 50),
		camera.WithFov(50*math.Pi/180),
		camera.WithClipPlanes(1, 2000),
	)
}

func run(o hostOptions) error {
	if o.watch && o.configPath == "" {
		return fmt.Errorf("--watch requires --config")
	}

	settings, err := hostSettings(o)
	if err != nil {
		return err
	}

	win := window.NewWindow(
		window.WithTitle(common.Coalesce(o.title, "oxy-orbit")),
		window.WithWidth(o.width),
		window.WithHeight(o.height),
	)

	cam := newViewCamera(o.ortho)
	oc := controls.NewOrbitControls(cam, win, controls.WithSettings(settings))

	presentMode := renderer.PresentModeUncapped
	if o.vsync {
		presentMode = renderer.PresentModeVSync
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithClearColor(poseColor(oc.PolarAngle(), oc.AzimuthalAngle())),
		renderer.WithReferenceGrid(500, o.grid),
	)

	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithControls(oc),
		engine.WithAspectReceiver(cam),
		engine.WithTickRate(o.tickRate),
		engine.WithProfiling(o.profile),
	)

	hotkeys := win.Subscribe(input.EventKeyDown, func(ev *input.Event) {
		switch ev.KeyCode {
		case common.KeyR:
			oc.Reset()
		case common.KeySpace:
			log.Printf("auto-rotate: %v", oc.ToggleAutoRotate())
		}
	})
	defer win.Unsubscribe(hotkeys)

	e.SetRenderCallback(func(float32) {
		r.SetClearColor(poseColor(oc.PolarAngle(), oc.AzimuthalAngle()))
		r.SetViewProjection(cam.ViewProjectionMatrix())
	})

	if o.watch {
		base := viewerDefaults()
		w, err := config.NewWatcher(o.configPath, func(s controls.Settings) {
			if o.autoRotateSet {
				s.AutoRotate = o.autoRotate
			}
			if o.dampingSet {
				s.EnableDamping = o.damping
			}
			oc.SetSettings(s)
			log.Printf("reloaded %s", o.configPath)
		}, config.WithBase(base))
		if err != nil {
			return err
		}
		w.Start()
		defer w.Close()
	}

	e.Run()

	oc.Dispose()
	r.Release()
	if err := win.Close(); err != nil {
		return fmt.Errorf("failed to close window: %w", err)
	}
	return nil
}
