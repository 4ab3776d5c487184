package renderer

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineVertexMatchesShaderLayout(t *testing.T) {
	assert.Equal(t, uintptr(24), unsafe.Sizeof(lineVertex{}))
	assert.Contains(t, linesShaderSource, "@location(1) color: vec3<f32>")
}

func TestReferenceGridLayout(t *testing.T) {
	v := referenceGrid(500, 20, 100)
	require.Len(t, v, 4*21+6)

	// grid lines span the full extent on the ground plane
	assert.Equal(t, [3]float32{-500, 0, -500}, v[0].Position)
	assert.Equal(t, [3]float32{-500, 0, 500}, v[1].Position)
	for _, vertex := range v[:4*21] {
		assert.Equal(t, float32(0), vertex.Position[1])
		assert.Equal(t, gridColor, vertex.Color)
	}
	last := v[4*20:]
	assert.Equal(t, float32(500), last[0].Position[0])

	axes := v[4*21:]
	assert.Equal(t, [3]float32{100, 0, 0}, axes[1].Position)
	assert.Equal(t, [3]float32{0, 100, 0}, axes[3].Position)
	assert.Equal(t, [3]float32{0, 0, 100}, axes[5].Position)
	assert.Equal(t, axisColors[1], axes[2].Color)
}

func TestReferenceGridWithoutDivisionsDrawsAxesOnly(t *testing.T) {
	v := referenceGrid(500, 0, 50)
	require.Len(t, v, 6)
	assert.Equal(t, [3]float32{}, v[0].Position)
}
