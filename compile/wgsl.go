package compile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/shadercache/shader"
)

// ErrNoGeometryStage is returned by CompileGeometry: WGSL has no
// geometry shaders.
var ErrNoGeometryStage = errors.New("compile: WGSL has no geometry stage")

// WGSLCompiler compiles WGSL program sources to SPIR-V kernels with
// naga, specializing each variant through a generated const preamble.
//
// The zero value is ready to use.
type WGSLCompiler struct{}

// NewWGSLCompiler creates the default compiler.
func NewWGSLCompiler() *WGSLCompiler { return &WGSLCompiler{} }

// CompileVertex compiles a vertex variant.
func (c *WGSLCompiler) CompileVertex(info *shader.Info, key *shader.Key) (*shader.CompiledKernel, error) {
	return c.compile(info, key, "@vertex")
}

// CompileFragment compiles a fragment variant.
func (c *WGSLCompiler) CompileFragment(info *shader.Info, key *shader.Key) (*shader.CompiledKernel, error) {
	return c.compile(info, key, "@fragment")
}

// CompileGeometry always fails; see ErrNoGeometryStage.
func (c *WGSLCompiler) CompileGeometry(*shader.Info, *shader.Key) (*shader.CompiledKernel, error) {
	return nil, ErrNoGeometryStage
}

// CompileCompute compiles a compute variant.
func (c *WGSLCompiler) CompileCompute(info *shader.Info, key *shader.Key) (*shader.CompiledKernel, error) {
	return c.compile(info, key, "@compute")
}

func (c *WGSLCompiler) compile(info *shader.Info, key *shader.Key, entryAttr string) (*shader.CompiledKernel, error) {
	if !strings.Contains(info.Source, entryAttr) {
		return nil, fmt.Errorf("compile: source has no %s entry point", entryAttr)
	}

	source := Preamble(key) + info.Source

	code, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile: naga: %w", err)
	}

	return &shader.CompiledKernel{
		Code: code,
		Info: kernelInfo(info, key),
	}, nil
}

// Preamble renders the variant key as WGSL const declarations. The
// preamble must be deterministic: identical keys yield identical
// kernels.
func Preamble(key *shader.Key) string {
	var b strings.Builder
	b.WriteString("// variant specialization\n")

	switch key.Stage {
	case shader.StageVertex:
		fmt.Fprintf(&b, "const SC_RASTERIZER_DISCARD: bool = %t;\n", key.Vertex.RasterizerDiscard)
		fmt.Fprintf(&b, "const SC_CLIP_PLANE_COUNT: u32 = %du;\n", key.Vertex.ClipPlaneCount)
	case shader.StageFragment:
		fmt.Fprintf(&b, "const SC_FLAT_SHADE: bool = %t;\n", key.Fragment.Flatshade)
		fmt.Fprintf(&b, "const SC_FB_HEIGHT: u32 = %du;\n", key.Fragment.FBHeight)
		fmt.Fprintf(&b, "const SC_COLOR_BUFFER_COUNT: u32 = %du;\n", key.Fragment.ColorBufferCount)
	}

	for i := 0; i < int(key.SamplerCount); i++ {
		sw := key.Swizzles[i]
		fmt.Fprintf(&b, "const SC_SWIZZLE_%d: vec4<u32> = vec4<u32>(%du, %du, %du, %du);\n",
			i, sw.R, sw.G, sw.B, sw.A)
	}
	if key.SamplerCount > 0 {
		fmt.Fprintf(&b, "const SC_SATURATE_S: u32 = %du;\n", key.SaturateS)
		fmt.Fprintf(&b, "const SC_SATURATE_T: u32 = %du;\n", key.SaturateT)
		fmt.Fprintf(&b, "const SC_SATURATE_R: u32 = %du;\n", key.SaturateR)
	}

	return b.String()
}
