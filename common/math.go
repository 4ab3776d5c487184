package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl64"
)

// clipDepthZeroToOne remaps the [-1, 1] clip depth produced by mgl64 projections to the [0, 1]
// range WebGPU rasterizes against.
var clipDepthZeroToOne = mgl64.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective creates a perspective projection matrix with WebGPU clip depth.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl64.Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float64) mgl64.Mat4 {
	return clipDepthZeroToOne.Mul4(mgl64.Perspective(fovY, aspect, near, far))
}

// Orthographic creates an orthographic projection matrix with WebGPU clip depth.
// A degenerate view volume yields the identity matrix.
//
// Parameters:
//   - left, right: horizontal extent of the view volume
//   - top, bottom: vertical extent of the view volume
//   - near, far: clipping plane distances
//
// Returns:
//   - mgl64.Mat4: the projection matrix
func Orthographic(left, right, top, bottom, near, far float64) mgl64.Mat4 {
	if right == left || top == bottom || far == near {
		return mgl64.Ident4()
	}
	return clipDepthZeroToOne.Mul4(mgl64.Ortho(left, right, bottom, top, near, far))
}

// Mat4ToFloat32 narrows a matrix to the float32 column-major layout shaders consume.
//
// Parameters:
//   - m: the matrix to convert
//
// Returns:
//   - [16]float32: the matrix elements in column-major order
func Mat4ToFloat32(m mgl64.Mat4) [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// SliceToBytes reinterprets a slice of fixed-size values as raw bytes for GPU upload.
// The returned slice aliases data.
//
// Parameters:
//   - data: the slice to view as bytes
//
// Returns:
//   - []byte: the raw bytes, or nil for an empty slice
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}
