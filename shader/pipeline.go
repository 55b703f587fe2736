package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// Pipeline is a compiled shader ready to bind and draw. It is an opaque
// handle from the renderer's point of view — everything it needs to
// issue a draw call lives behind the gpu package's Texture/TextureView
// abstractions, so Pipeline remembers the source it was built from
// (for reload comparisons) and the SPIR-V naga produced from it.
type Pipeline struct {
	source string
	spirv  []byte
}

// ShaderPipeline compiles Shadertoy-compatible GLSL fragment shaders
// into Pipelines, following backend/wgpu/pipeline.go's PipelineCache
// shape: device-scoped, one compiled pipeline cached at a time (a
// CustomShaderRenderer owns exactly one active pipeline, never a pool
// of them).
//
// Compile translates the Shadertoy `void mainImage(out vec4, in vec2)`
// entry point into a WGSL function (translateMainImageToWGSL) and hands
// it to naga.Compile for real syntax/type validation and SPIR-V
// assembly, mirroring internal/native/shader_helper.go's
// CompileShaderToSPIRV. The translator only covers the fixed mainImage
// signature and shared GLSL/WGSL syntax; anything naga can't parse
// after translation surfaces as naga's own diagnostic text.
type ShaderPipeline struct {
	device any
}

// NewShaderPipeline creates a pipeline compiler bound to device.
func NewShaderPipeline(device any) *ShaderPipeline {
	return &ShaderPipeline{device: device}
}

// CompileError carries a shader compiler's diagnostic text verbatim,
// per §7's ShaderCompileError taxonomy entry.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string { return e.Message }

// Compile builds a Pipeline from Shadertoy-compatible GLSL source.
// Returns a *CompileError on failure; the caller (CustomShaderRenderer)
// is responsible for keeping its previous pipeline intact when this
// returns an error, per spec.md §4.7's reload contract.
func (sp *ShaderPipeline) Compile(source string) (*Pipeline, error) {
	if source == "" {
		return nil, &CompileError{Message: "shader: empty source"}
	}

	wgsl, err := translateMainImageToWGSL(source)
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}

	spirv, err := naga.Compile(wgsl)
	if err != nil {
		return nil, &CompileError{Message: fmt.Sprintf("shader: %v", err)}
	}

	return &Pipeline{source: source, spirv: spirv}, nil
}
