// Command kerneldemo exercises the shader cache end to end: it creates
// a few programs, selects variants under changing pipeline state, and
// prints the resulting kernel buffer layout.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"

	"github.com/gogpu/shadercache"
	"github.com/gogpu/shadercache/caps"
	"github.com/gogpu/shadercache/shader"
)

// demoCompiler fabricates kernels of pseudo-random size so the demo
// needs no GPU toolchain.
type demoCompiler struct {
	rng *rand.Rand
}

func (c *demoCompiler) compile(stage shader.Stage) (*shader.CompiledKernel, error) {
	size := 256 + c.rng.Intn(1024)
	code := make([]byte, size)
	c.rng.Read(code)
	return &shader.CompiledKernel{
		Code: code,
		Info: shader.KernelInfo{InputCount: 2, OutputCount: 2, URBDataStartReg: 1},
	}, nil
}

func (c *demoCompiler) CompileVertex(*shader.Info, *shader.Key) (*shader.CompiledKernel, error) {
	return c.compile(shader.StageVertex)
}

func (c *demoCompiler) CompileFragment(*shader.Info, *shader.Key) (*shader.CompiledKernel, error) {
	return c.compile(shader.StageFragment)
}

func (c *demoCompiler) CompileGeometry(*shader.Info, *shader.Key) (*shader.CompiledKernel, error) {
	return c.compile(shader.StageGeometry)
}

func (c *demoCompiler) CompileCompute(*shader.Info, *shader.Key) (*shader.CompiledKernel, error) {
	return c.compile(shader.StageCompute)
}

const vsSource = `
struct VSIn {
    @location(0) pos: vec3<f32>,
    @location(1) color: vec4<f32>,
}
struct VSOut {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec4<f32>,
}
@vertex fn main(in: VSIn) -> VSOut {
    var out: VSOut;
    out.position = vec4<f32>(in.pos, 1.0);
    out.color = in.color;
    return out;
}
`

const fsSource = `
@fragment fn main(@builtin(position) pos: vec4<f32>,
                  @location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
    return color;
}
`

func main() {
	var (
		seed    = flag.Int64("seed", 1, "compiler rng seed")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	debug := caps.DebugFlagsFromEnv()
	if *verbose || debug&caps.DebugDumpKernels != 0 {
		shadercache.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	comp := &demoCompiler{rng: rand.New(rand.NewSource(*seed))}

	var cfg *shader.Config
	if debug&caps.DebugNoGC != 0 {
		cfg = &shader.Config{GC: shader.GCPolicy{Trigger: 1 << 30}}
	}

	vs, err := shader.NewProgram(shader.StageVertex, vsSource, comp, cfg)
	if err != nil {
		log.Fatalf("create vertex program: %v", err)
	}
	fs, err := shader.NewProgram(shader.StageFragment, fsSource, comp, cfg)
	if err != nil {
		log.Fatalf("create fragment program: %v", err)
	}

	c := shadercache.NewCache()
	c.Add(vs)
	c.Add(fs)

	// Walk a few framebuffer heights to force fragment variants.
	state := &shader.PipelineState{}
	state.Framebuffer.ColorBufferCount = 1
	for _, h := range []uint32{480, 600, 1080} {
		state.Framebuffer.Height = h
		if _, err := fs.SelectKernel(state, shader.DirtyFramebuffer); err != nil {
			log.Fatalf("select fragment kernel: %v", err)
		}
	}

	incremental := debug&caps.DebugNoIncremental == 0

	size, err := c.Upload(nil, 0, false)
	if err != nil {
		log.Fatalf("size upload: %v", err)
	}
	buf := shadercache.NewMemBuffer(size)
	written, err := c.Upload(buf, 0, false)
	if err != nil {
		log.Fatalf("upload: %v", err)
	}

	fmt.Printf("kernel buffer: %d bytes reserved, %d written\n", size, written)
	for name, p := range map[string]*shader.Program{"vs": vs, "fs": fs} {
		for i, v := range p.Variants() {
			fmt.Printf("  %s[%d]: %4d bytes at offset %d\n", name, i, v.Size(), v.CacheOffset())
		}
	}

	// A second incremental pass has nothing to do.
	written, err = c.Upload(buf, uint32(written), incremental)
	if err != nil {
		log.Fatalf("incremental upload: %v", err)
	}
	fmt.Printf("incremental pass wrote %d bytes\n", written)
}
