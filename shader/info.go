package shader

// ComputeRequirements carries the memory requirements a compute
// program declares at creation.
type ComputeRequirements struct {
	LocalMem   int
	PrivateMem int
	InputMem   int
}

// StreamOutputDecl maps one shader output to a transform-feedback
// buffer slot.
type StreamOutputDecl struct {
	// RegisterIndex is the shader output register to capture. The
	// variant remaps it to an attribute slot of the compiled kernel.
	RegisterIndex  int
	StartComponent int
	ComponentCount int
	Buffer         int
}

// StreamOutputInfo declares the stream-output (transform feedback)
// mapping of a program.
type StreamOutputInfo struct {
	Outputs []StreamOutputDecl
}

// Info is the result of static analysis of a program's source. It
// records the shader-level facts that decide which pipeline state can
// affect codegen, so that selection can skip key recomputation when
// nothing relevant changed.
type Info struct {
	Stage  Stage
	Source string

	// SamplerCount is one past the highest sampler binding used.
	SamplerCount int

	// ShadowSamplers has a bit set per comparison-sampler binding.
	ShadowSamplers uint32

	// HasPosition reports whether a fragment program reads the
	// builtin position; only then does the framebuffer height enter
	// the variant key.
	HasPosition bool

	// HasColorInterp reports whether the program has an interpolated
	// color input, which makes flatshading relevant.
	HasColorInterp bool

	HasInstanceID bool
	HasVertexID   bool

	// EdgeFlagOut is the output location of an edge-flag varying, or
	// -1. EdgeFlagIn is the input location it is passed through from,
	// or -1.
	EdgeFlagOut int
	EdgeFlagIn  int

	// Dependencies is the set of state categories that can change
	// this program's variant key.
	Dependencies DirtyFlags

	StreamOutput StreamOutputInfo
	Compute      ComputeRequirements
}

// dependenciesFor returns the state categories whose values feed the
// variant key of the given stage.
func dependenciesFor(stage Stage) DirtyFlags {
	switch stage {
	case StageVertex:
		return DirtyVertexSamplers | DirtyRasterizer
	case StageGeometry:
		return DirtyGeometrySamplers | DirtyVertexProgram | DirtyRasterizer
	case StageFragment:
		return DirtyFragmentSamplers | DirtyRasterizer | DirtyFramebuffer
	default:
		return 0
	}
}
