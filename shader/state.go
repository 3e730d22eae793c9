package shader

// Stage identifies a shader pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageGeometry
	StageCompute

	stageCount
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	case StageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// DirtyFlags is a bitmask of pipeline state categories that changed
// since the last kernel selection. Programs declare which categories
// affect their codegen; selection is skipped entirely when the two
// masks do not intersect.
type DirtyFlags uint32

const (
	DirtyRasterizer DirtyFlags = 1 << iota
	DirtyFramebuffer
	DirtyVertexSamplers
	DirtyFragmentSamplers
	DirtyGeometrySamplers
	DirtyVertexProgram
)

// MaxSamplers is the maximum number of sampler bindings a kernel
// variant can specialize on.
const MaxSamplers = 16

// MaxVaryings is the maximum number of inter-stage outputs tracked in
// kernel metadata and geometry variant keys.
const MaxVaryings = 32

// Swizzle selects the source channel for one component of a sampler
// view.
type Swizzle uint8

const (
	SwizzleR Swizzle = iota
	SwizzleG
	SwizzleB
	SwizzleA
	SwizzleZero
	SwizzleOne
)

// SwizzleSet is a per-channel swizzle for one sampler view.
type SwizzleSet struct {
	R, G, B, A Swizzle
}

// identitySwizzle passes all channels through unchanged.
var identitySwizzle = SwizzleSet{SwizzleR, SwizzleG, SwizzleB, SwizzleA}

// shadowSwizzle broadcasts the comparison result, which lands in the
// red channel, and forces alpha to one.
var shadowSwizzle = SwizzleSet{SwizzleR, SwizzleR, SwizzleR, SwizzleOne}

// Semantic classifies an inter-stage varying.
type Semantic uint8

const (
	SemanticGeneric Semantic = iota
	SemanticPosition
	SemanticPointSize
	SemanticColor
	SemanticEdgeFlag
)

// OutputDecl describes one output varying of a shader kernel, used to
// key geometry variants on the upstream vertex layout.
type OutputDecl struct {
	Semantic Semantic
	Index    uint8
}

// SamplerView is the view state of one bound texture.
type SamplerView struct {
	Swizzle SwizzleSet
}

// SamplerState is the sampler state that affects codegen. The saturate
// bits are set when a non-nearest filter is combined with clamp wrap
// mode, in which case the kernel must clamp coordinates itself.
type SamplerState struct {
	SaturateS bool
	SaturateT bool
	SaturateR bool
}

// RasterizerState is the subset of rasterizer state that shader
// codegen depends on.
type RasterizerState struct {
	Discard         bool
	ClipPlaneEnable uint32
	Flatshade       bool
}

// FramebufferState is the subset of framebuffer state that shader
// codegen depends on.
type FramebufferState struct {
	Height           uint32
	ColorBufferCount uint8
}

// PipelineState is a snapshot of the context state that variant keys
// are derived from. The caller fills only the categories relevant to
// the stages it selects kernels for.
type PipelineState struct {
	Rasterizer  RasterizerState
	Framebuffer FramebufferState

	// SamplerViews and Samplers are the bound views and sampler
	// states per stage, indexed by binding slot. Nil entries use
	// default swizzles.
	SamplerViews [stageCount][]*SamplerView
	Samplers     [stageCount][]*SamplerState

	// VertexOutputs is the output layout of the currently selected
	// vertex kernel. Geometry variants depend on it.
	VertexOutputs []OutputDecl
}

// viewsFor returns the sampler views bound to a stage.
func (s *PipelineState) viewsFor(stage Stage) []*SamplerView {
	if stage >= stageCount {
		return nil
	}
	return s.SamplerViews[stage]
}

// samplersFor returns the sampler states bound to a stage.
func (s *PipelineState) samplersFor(stage Stage) []*SamplerState {
	if stage >= stageCount {
		return nil
	}
	return s.Samplers[stage]
}
