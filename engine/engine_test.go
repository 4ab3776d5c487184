package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/controls"
	"github.com/Carmen-Shannon/oxy-orbit/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLoopAdvancesControls(t *testing.T) {
	cam := camera.NewPerspectiveCamera(camera.WithPosition(0, 0, 10))
	oc := controls.NewOrbitControls(cam, input.NewHub(), controls.WithAutoRotate(30))

	var ticks, frames atomic.Int32
	var changes atomic.Int32
	oc.SetChangeCallback(func() { changes.Add(1) })

	e := NewEngine(WithTickRate(200), WithRenderFrameLimit(200), WithControls(oc)).(*engine)
	e.SetTickCallback(func(float32) { ticks.Add(1) })
	e.SetRenderCallback(func(float32) { frames.Add(1) })

	start := oc.AzimuthalAngle()
	e.handle()
	require.Eventually(t, func() bool { return ticks.Load() >= 5 && frames.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	e.Quit()
	e.Quit()
	e.wg.Wait()

	assert.Greater(t, changes.Load(), int32(0))
	assert.Less(t, oc.AzimuthalAngle(), start)
	assert.Same(t, oc, e.Controls())
}

func TestSetTickRateWhileStopped(t *testing.T) {
	e := NewEngine().(*engine)
	assert.Equal(t, time.Second/60, e.engineTickRate)

	e.SetTickRate(120)
	assert.Equal(t, time.Duration(float64(time.Second)/120), e.engineTickRate)

	e.SetTickRate(0)
	assert.Equal(t, time.Duration(float64(time.Second)/60), e.engineTickRate)
}

func TestResizeUpdatesAspect(t *testing.T) {
	cam := camera.NewPerspectiveCamera()
	e := NewEngine(WithAspectReceiver(cam)).(*engine)

	e.resize(1600, 800)
	assert.Equal(t, 2.0, cam.Aspect())

	// zero height keeps the last aspect
	e.resize(1600, 0)
	assert.Equal(t, 2.0, cam.Aspect())
}
