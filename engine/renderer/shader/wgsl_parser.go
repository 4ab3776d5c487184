package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFormatInfo holds the wgpu vertex format and its byte size for offset calculation
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// typeLayout holds the byte size and alignment of a WGSL host-shareable type.
type typeLayout struct {
	size  uint64
	align uint64
}

type parsedField struct {
	typeName  string
	location  int
	isBuiltin bool
}

type parsedStruct struct {
	name   string
	fields []parsedField
}

var wgslVertexFormats = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
}

var wgslTypeLayouts = map[string]typeLayout{
	"f32":         {4, 4},
	"u32":         {4, 4},
	"i32":         {4, 4},
	"vec2<f32>":   {8, 8},
	"vec2f":       {8, 8},
	"vec3<f32>":   {12, 16},
	"vec3f":       {12, 16},
	"vec4<f32>":   {16, 16},
	"vec4f":       {16, 16},
	"mat4x4<f32>": {64, 16},
	"mat4x4f":     {64, 16},
}

var (
	lineCommentRegex   = regexp.MustCompile(`//[^\n]*`)
	structBlockRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex      = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex       = regexp.MustCompile(`@builtin\(\w+\)`)
	fieldRegex         = regexp.MustCompile(`(\w+)\s*:\s*([^,]+)$`)
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

func parseEntryPoint(source string, shaderType ShaderType) string {
	re := vertexEntryRegex
	if shaderType == ShaderTypeFragment {
		re = fragmentEntryRegex
	}
	if match := re.FindStringSubmatch(lineCommentRegex.ReplaceAllString(source, "")); match != nil {
		return match[1]
	}
	return ""
}

// parseVertexLayouts builds one vertex buffer layout per pure vertex input struct, meaning a struct
// with @location fields and no @builtin field. Attributes are packed in declaration order.
func parseVertexLayouts(source string) []wgpu.VertexBufferLayout {
	var layouts []wgpu.VertexBufferLayout
	for _, ps := range parseStructBlocks(source) {
		if !isVertexInputStruct(ps) {
			continue
		}
		if layout, ok := buildVertexBufferLayout(ps); ok {
			layouts = append(layouts, layout)
		}
	}
	return layouts
}

// parseBindGroupLayouts extracts @group(N) @binding(M) buffer declarations. Uniform and storage buffers
// get a MinBindingSize computed from their struct layout when every field type is known.
func parseBindGroupLayouts(source string, visibility wgpu.ShaderStage) map[int]wgpu.BindGroupLayoutDescriptor {
	cleaned := lineCommentRegex.ReplaceAllString(source, "")
	known := make(map[string]typeLayout, len(wgslTypeLayouts))
	for name, l := range wgslTypeLayouts {
		known[name] = l
	}
	for _, ps := range parseStructBlocks(cleaned) {
		if l, ok := structLayout(ps, known); ok {
			known[ps.name] = l
		}
	}

	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	for _, m := range bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		addressSpace := strings.TrimSpace(strings.Split(m[3], ",")[0])

		var bufferType wgpu.BufferBindingType
		switch addressSpace {
		case "uniform":
			bufferType = wgpu.BufferBindingTypeUniform
		case "storage":
			bufferType = wgpu.BufferBindingTypeReadOnlyStorage
			if strings.Contains(m[3], "read_write") {
				bufferType = wgpu.BufferBindingTypeStorage
			}
		default:
			continue
		}

		entry := wgpu.BindGroupLayoutEntry{
			Binding:    uint32(binding),
			Visibility: visibility,
			Buffer: wgpu.BufferBindingLayout{
				Type: bufferType,
			},
		}
		if l, ok := known[strings.TrimSpace(m[5])]; ok {
			entry.Buffer.MinBindingSize = l.size
		}
		groups[group] = append(groups[group], entry)
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for group, entries := range groups {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Binding < entries[j].Binding })
		result[group] = wgpu.BindGroupLayoutDescriptor{
			Label:   "group " + strconv.Itoa(group),
			Entries: entries,
		}
	}
	return result
}

func parseStructBlocks(source string) []parsedStruct {
	cleaned := lineCommentRegex.ReplaceAllString(source, "")
	var structs []parsedStruct
	for _, match := range structBlockRegex.FindAllStringSubmatch(cleaned, -1) {
		structs = append(structs, parsedStruct{name: match[1], fields: parseStructFields(match[2])})
	}
	return structs
}

// parseStructFields splits a struct body on commas. Field types with commas inside angle brackets
// (array<f32, 4>) are not supported; no shader in this module declares one.
func parseStructFields(body string) []parsedField {
	var fields []parsedField
	for _, line := range strings.Split(body, ",") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field := parsedField{location: -1, isBuiltin: builtinRegex.MatchString(line)}
		if loc := locationRegex.FindStringSubmatch(line); loc != nil {
			field.location, _ = strconv.Atoi(loc[1])
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.typeName = strings.TrimSpace(fm[2])
		fields = append(fields, field)
	}
	return fields
}

func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

func buildVertexBufferLayout(ps parsedStruct) (wgpu.VertexBufferLayout, bool) {
	attrs := make([]wgpu.VertexAttribute, 0, len(ps.fields))
	var offset uint64
	for _, f := range ps.fields {
		info, ok := wgslVertexFormats[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += info.size
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, true
}

// structLayout computes the host-shareable size and alignment of a struct: each member is placed at
// the next multiple of its alignment and the total is rounded up to the struct alignment.
func structLayout(ps parsedStruct, known map[string]typeLayout) (typeLayout, bool) {
	var offset, align uint64 = 0, 1
	for _, f := range ps.fields {
		l, ok := known[f.typeName]
		if !ok {
			return typeLayout{}, false
		}
		offset = roundUp(l.align, offset) + l.size
		align = max(align, l.align)
	}
	return typeLayout{size: roundUp(align, offset), align: align}, len(ps.fields) > 0
}

func roundUp(alignment, value uint64) uint64 {
	return (value + alignment - 1) &^ (alignment - 1)
}
