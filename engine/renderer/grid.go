package renderer

import _ "embed"

//go:embed shaders/lines.wgsl
var linesShaderSource string

// lineVertex matches the VertexInput struct of shaders/lines.wgsl.
type lineVertex struct {
	Position [3]float32
	Color    [3]float32
}

var (
	gridColor  = [3]float32{0.35, 0.35, 0.4}
	axisColors = [3][3]float32{
		{0.9, 0.2, 0.2},
		{0.2, 0.85, 0.3},
		{0.25, 0.45, 0.95},
	}
)

// referenceGrid builds the line list drawn around the orbit target: a square grid on the XZ plane
// centred on the origin with divisions cells per side, followed by the three world axes.
// divisions <= 0 leaves only the axes.
func referenceGrid(halfExtent float32, divisions int, axisLength float32) []lineVertex {
	var vertices []lineVertex
	if divisions > 0 {
		vertices = make([]lineVertex, 0, 4*(divisions+1)+6)
		step := 2 * halfExtent / float32(divisions)
		for i := 0; i <= divisions; i++ {
			d := -halfExtent + float32(i)*step
			vertices = append(vertices,
				lineVertex{Position: [3]float32{d, 0, -halfExtent}, Color: gridColor},
				lineVertex{Position: [3]float32{d, 0, halfExtent}, Color: gridColor},
				lineVertex{Position: [3]float32{-halfExtent, 0, d}, Color: gridColor},
				lineVertex{Position: [3]float32{halfExtent, 0, d}, Color: gridColor},
			)
		}
	}

	for axis, color := range axisColors {
		var end [3]float32
		end[axis] = axisLength
		vertices = append(vertices,
			lineVertex{Color: color},
			lineVertex{Position: end, Color: color},
		)
	}
	return vertices
}
