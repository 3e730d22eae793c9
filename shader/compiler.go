package shader

// OutputReg describes one output attribute of a compiled kernel and
// the shader register it was sourced from.
type OutputReg struct {
	Register      int
	Semantic      Semantic
	SemanticIndex uint8
}

// KernelInfo is the per-kernel metadata a Compiler reports alongside
// the machine code. It feeds kernel parameter queries and the CSO.
type KernelInfo struct {
	InputCount      int
	OutputCount     int
	URBDataStartReg int

	// Outputs lists the kernel's output attributes in attribute
	// order; len(Outputs) == OutputCount for well-formed kernels.
	Outputs []OutputReg

	InputHasPosition  bool
	OutputHasPosition bool
	UsesKill          bool
	BarycentricModes  int
	DiscardAdjacency  bool

	// StreamOutput reports whether the kernel writes transform
	// feedback itself (pre-rasterization stages only).
	StreamOutput bool

	// ClipStateSize is the push-constant space the kernel reserves
	// for user clip planes, in bytes.
	ClipStateSize int
}

// CompiledKernel is the result of compiling one variant.
type CompiledKernel struct {
	// Code is the immutable machine-code blob uploaded to the kernel
	// buffer. Compilers must not retain or mutate it after returning.
	Code []byte
	Info KernelInfo
}

// Compiler turns a program and a variant key into machine code. One
// method per stage, mirroring the stage-specific backends compilers
// actually have. Implementations report failure by error; a nil
// CompiledKernel with nil error is a contract violation.
type Compiler interface {
	CompileVertex(info *Info, key *Key) (*CompiledKernel, error)
	CompileFragment(info *Info, key *Key) (*CompiledKernel, error)
	CompileGeometry(info *Info, key *Key) (*CompiledKernel, error)
	CompileCompute(info *Info, key *Key) (*CompiledKernel, error)
}

// CSO is the precomputed stage-specific descriptor bound to the
// pipeline when a variant is selected. It is constructed once per
// distinct variant, never per selection.
type CSO struct {
	Stage Stage

	// URBEntryReadLength is the number of URB rows the kernel reads,
	// two attributes per row.
	URBEntryReadLength uint32

	// GRFStart is the first general register the payload is loaded
	// into.
	GRFStart uint32

	// OutputLength is the number of output rows the kernel writes.
	OutputLength uint32
}

// buildCSO derives the descriptor from kernel metadata. Pre-pipeline
// stages read per-vertex rows; compute kernels carry no descriptor
// state beyond the stage tag.
func buildCSO(stage Stage, ki *KernelInfo) CSO {
	cso := CSO{Stage: stage}
	if stage == StageCompute {
		return cso
	}
	cso.URBEntryReadLength = uint32(ki.InputCount+1) / 2
	cso.GRFStart = uint32(ki.URBDataStartReg)
	cso.OutputLength = uint32(ki.OutputCount+1) / 2
	return cso
}
