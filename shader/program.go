package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/shadercache/internal/logging"
)

// Errors returned by program operations.
var (
	ErrNilCompiler = errors.New("shader: compiler is required")
	ErrNilState    = errors.New("shader: pipeline state is required")
	ErrNoKernel    = errors.New("shader: no kernel selected")
	ErrNotUploaded = errors.New("shader: selected kernel is not uploaded")
)

// GCPolicy bounds the kernel memory a single program may hold.
// Collection triggers once the variants exceed Trigger bytes and
// evicts least-recently-selected variants until at most Target bytes
// remain.
type GCPolicy struct {
	Trigger int
	Target  int
}

// DefaultGCPolicy collects at 4KiB down to 2KiB.
var DefaultGCPolicy = GCPolicy{Trigger: 4096, Target: 2048}

// withDefaults fills zero fields from DefaultGCPolicy.
func (g GCPolicy) withDefaults() GCPolicy {
	if g.Trigger <= 0 {
		g.Trigger = DefaultGCPolicy.Trigger
	}
	if g.Target <= 0 || g.Target >= g.Trigger {
		g.Target = g.Trigger / 2
	}
	return g
}

// ChangeNotifier receives change reports from programs it manages.
// Implemented by shadercache.Cache.
type ChangeNotifier interface {
	NotifyChanged(p *Program)
}

// Config carries optional program creation parameters.
type Config struct {
	// StreamOutput declares the transform-feedback mapping of a
	// pre-rasterization program.
	StreamOutput *StreamOutputInfo

	// Compute carries the memory requirements of a compute program.
	Compute ComputeRequirements

	// GC overrides the default collection policy. Zero fields use
	// the defaults.
	GC GCPolicy

	// Framebuffer seeds the key guess for the eager compile at
	// creation. When the caller already knows the render target, the
	// precompiled kernel matches the first real selection instead of
	// being recompiled.
	Framebuffer *FramebufferState
}

// Program is one logical shader: a WGSL source plus the kernels
// compiled from it for specific pipeline states.
//
// A Program belongs to the rendering context that created it and is
// not safe for concurrent use.
type Program struct {
	info     Info
	compiler Compiler
	gc       GCPolicy

	variants  variantList
	index     map[Key]*variantNode
	totalSize int

	cur   *Variant
	cache ChangeNotifier
}

// NewProgram analyzes the source, then eagerly compiles a first kernel
// for a guessed key so that a freshly created program always has a
// current variant. Compilation failure fails creation.
func NewProgram(stage Stage, source string, comp Compiler, cfg *Config) (*Program, error) {
	if comp == nil {
		return nil, ErrNilCompiler
	}

	info, err := Analyze(stage, source)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		if cfg.StreamOutput != nil {
			info.StreamOutput = *cfg.StreamOutput
		}
		info.Compute = cfg.Compute
	}

	p := &Program{
		info:     info,
		compiler: comp,
		gc:       GCPolicy{}.withDefaults(),
		index:    make(map[Key]*variantNode),
	}
	var fb *FramebufferState
	if cfg != nil {
		p.gc = cfg.GC.withDefaults()
		fb = cfg.Framebuffer
	}

	if _, err := p.UseVariant(GuessKey(&p.info, fb)); err != nil {
		return nil, fmt.Errorf("shader: precompile %s program: %w", stage, err)
	}

	return p, nil
}

// Stage returns the program's pipeline stage.
func (p *Program) Stage() Stage { return p.info.Stage }

// Info returns the program's analysis results.
func (p *Program) Info() Info { return p.info }

// Dependencies returns the state categories that affect this program's
// codegen.
func (p *Program) Dependencies() DirtyFlags { return p.info.Dependencies }

// Current returns the selected variant, or nil before any selection.
func (p *Program) Current() *Variant { return p.cur }

// TotalSize returns the summed kernel bytes of all live variants.
func (p *Program) TotalSize() int { return p.totalSize }

// VariantCount returns the number of live variants.
func (p *Program) VariantCount() int { return p.variants.Len() }

// Variants returns the live variants, most recently selected first.
func (p *Program) Variants() []*Variant {
	vs := make([]*Variant, 0, p.variants.Len())
	for n := p.variants.head; n != nil; n = n.next {
		vs = append(vs, n.v)
	}
	return vs
}

// BindCache records the owning cache. Called by Cache.Add.
func (p *Program) BindCache(n ChangeNotifier) { p.cache = n }

// UnbindCache clears the owning cache. Called by Cache.Remove.
func (p *Program) UnbindCache() { p.cache = nil }

// InvalidateUploads clears the upload record of every variant, forcing
// the next non-incremental pass to write them again.
func (p *Program) InvalidateUploads() {
	for n := p.variants.head; n != nil; n = n.next {
		n.v.ClearUploaded()
	}
}

// SelectKernel selects the kernel for the given pipeline state,
// compiling one if no existing variant matches. The dirty mask names
// the state categories that changed since the last call; when none of
// them affect this program the previous selection stands and the key
// is not even recomputed.
//
// Returns true when the selected kernel differs from the previous one,
// in which case dependent GPU state must be re-bound.
func (p *Program) SelectKernel(state *PipelineState, dirty DirtyFlags) (bool, error) {
	if p.info.Dependencies&dirty == 0 {
		return false, nil
	}
	if state == nil {
		return false, ErrNilState
	}

	key, err := KeyForState(&p.info, state)
	if err != nil {
		return false, err
	}

	prev := p.cur
	if _, err := p.UseVariant(key); err != nil {
		return false, err
	}

	return p.cur != prev, nil
}

// UseVariant makes the variant for the key current, compiling and
// registering it first if it does not exist yet. On a hit the variant
// moves to the front of the recency order and its descriptor is left
// alone.
func (p *Program) UseVariant(key Key) (*Variant, error) {
	node, ok := p.index[key]
	if ok {
		p.variants.MoveToFront(node)
	} else {
		p.collect()

		v, err := p.compileVariant(&key)
		if err != nil {
			return nil, err
		}

		node = p.variants.PushFront(v)
		p.index[key] = node
		p.totalSize += v.Size()

		if p.cache != nil {
			p.cache.NotifyChanged(p)
		}

		logging.Logger().Debug("compiled shader variant",
			"stage", p.info.Stage.String(),
			"size", v.Size(),
			"variants", p.variants.Len(),
			"total", p.totalSize)
	}

	p.cur = node.v
	return node.v, nil
}

// KernelOffset returns the kernel-buffer offset of the current
// variant. Valid only after selection and a completed upload pass.
func (p *Program) KernelOffset() (uint32, error) {
	if p.cur == nil {
		return 0, ErrNoKernel
	}
	if !p.cur.Uploaded() {
		return 0, ErrNotUploaded
	}
	return p.cur.CacheOffset(), nil
}

// CSO returns the stage descriptor of the current variant.
func (p *Program) CSO() (CSO, error) {
	if p.cur == nil {
		return CSO{}, ErrNoKernel
	}
	return p.cur.CSO(), nil
}

// StreamOutput returns the remapped stream-output mapping of the
// current variant.
func (p *Program) StreamOutput() (StreamOutputInfo, error) {
	if p.cur == nil {
		return StreamOutputInfo{}, ErrNoKernel
	}
	return p.cur.StreamOutput(), nil
}

// compileVariant invokes the stage compiler and assembles the variant:
// kernel blob, metadata, remapped stream output, and the descriptor,
// built once here and never per selection.
func (p *Program) compileVariant(key *Key) (*Variant, error) {
	var (
		ck  *CompiledKernel
		err error
	)
	switch p.info.Stage {
	case StageVertex:
		ck, err = p.compiler.CompileVertex(&p.info, key)
	case StageFragment:
		ck, err = p.compiler.CompileFragment(&p.info, key)
	case StageGeometry:
		ck, err = p.compiler.CompileGeometry(&p.info, key)
	case StageCompute:
		ck, err = p.compiler.CompileCompute(&p.info, key)
	default:
		return nil, fmt.Errorf("shader: unsupported stage %d", p.info.Stage)
	}
	if err != nil {
		return nil, fmt.Errorf("shader: compile %s variant: %w", p.info.Stage, err)
	}
	if ck == nil || len(ck.Code) == 0 {
		return nil, fmt.Errorf("shader: compiler returned no %s kernel", p.info.Stage)
	}

	v := &Variant{
		key:    *key,
		kernel: ck.Code,
		info:   ck.Info,
	}
	v.so = remapStreamOutput(&p.info.StreamOutput, &ck.Info)
	v.cso = buildCSO(p.info.Stage, &ck.Info)

	return v, nil
}

// collect evicts least-recently-selected variants once the program
// exceeds the GC trigger, until at most the target size remains or the
// list is exhausted. Eviction is terminal for a variant.
func (p *Program) collect() {
	if p.totalSize < p.gc.Trigger {
		return
	}

	evicted := 0
	for node := p.variants.Tail(); node != nil && p.totalSize > p.gc.Target; node = p.variants.Tail() {
		p.variants.Remove(node)
		delete(p.index, node.v.Key())
		p.totalSize -= node.v.Size()
		if p.cur == node.v {
			p.cur = nil
		}
		evicted++
	}

	logging.Logger().Debug("collected shader variants",
		"stage", p.info.Stage.String(),
		"evicted", evicted,
		"total", p.totalSize)
}

// remapStreamOutput rewrites register indices in the declared stream
// output to attribute slots of the compiled kernel. Point size lives
// in the W channel, so a single-component capture of it starts at
// component 3.
func remapStreamOutput(so *StreamOutputInfo, ki *KernelInfo) StreamOutputInfo {
	if len(so.Outputs) == 0 {
		return StreamOutputInfo{}
	}

	out := StreamOutputInfo{Outputs: make([]StreamOutputDecl, len(so.Outputs))}
	copy(out.Outputs, so.Outputs)

	for i := range out.Outputs {
		decl := &out.Outputs[i]

		attr := -1
		for a, o := range ki.Outputs {
			if o.Register == decl.RegisterIndex {
				attr = a
				break
			}
		}
		if attr < 0 {
			logging.Logger().Warn("stream output captures an undefined register",
				"register", decl.RegisterIndex)
			decl.RegisterIndex = 0
			continue
		}
		decl.RegisterIndex = attr

		if ki.Outputs[attr].Semantic == SemanticPointSize &&
			decl.StartComponent == 0 && decl.ComponentCount == 1 {
			decl.StartComponent = 3
		}
	}

	return out
}
