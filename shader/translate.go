package shader

import (
	"fmt"
	"regexp"
)

// mainImageSignature matches a Shadertoy-style entry point:
// `void mainImage(out vec4 NAME, in vec2 NAME) { BODY }`. This is the
// only signature shape cellrenderdemo and the shader test suite ever
// produce; anything else is rejected before it reaches naga.
var mainImageSignature = regexp.MustCompile(`(?s)void\s+mainImage\s*\(\s*out\s+vec4\s+(\w+)\s*,\s*in\s+vec2\s+(\w+)\s*\)\s*\{(.*)\}\s*$`)

var (
	glslVec4  = regexp.MustCompile(`\bvec4\b`)
	glslVec3  = regexp.MustCompile(`\bvec3\b`)
	glslVec2  = regexp.MustCompile(`\bvec2\b`)
	glslFloat = regexp.MustCompile(`\bfloat\b`)
	glslInt   = regexp.MustCompile(`\bint\b`)
)

// translateMainImageToWGSL rewrites a Shadertoy mainImage entry point
// into a standalone WGSL function that naga.Compile can type-check and
// assemble to SPIR-V. It is not a general GLSL front end: it recognizes
// only the fixed mainImage signature and rewrites the handful of type
// keywords (vec2/vec3/vec4/float/int) that differ between GLSL and
// WGSL spelling. Everything else in the body — constructors,
// assignments, arithmetic, control flow — is shared syntax and passes
// through unchanged. A shader that uses GLSL builtins WGSL lacks
// (texture2D, gl_FragCoord, swizzle assignment, …) will fail naga's
// own parse, surfaced back to the caller as a CompileError.
func translateMainImageToWGSL(source string) (string, error) {
	m := mainImageSignature.FindStringSubmatch(source)
	if m == nil {
		return "", fmt.Errorf("shader: source does not match the expected `void mainImage(out vec4, in vec2) { ... }` entry point")
	}
	fragColor, fragCoord, body := m[1], m[2], m[3]

	body = glslVec4.ReplaceAllString(body, "vec4<f32>")
	body = glslVec3.ReplaceAllString(body, "vec3<f32>")
	body = glslVec2.ReplaceAllString(body, "vec2<f32>")
	body = glslFloat.ReplaceAllString(body, "f32")
	body = glslInt.ReplaceAllString(body, "i32")

	return fmt.Sprintf(
		"fn mainImage(%s: vec2<f32>) -> vec4<f32> {\n\tvar %s: vec4<f32>;\n%s\n\treturn %s;\n}\n",
		fragCoord, fragColor, body, fragColor,
	), nil
}
