package shader

import "testing"

func TestAnalyzeSamplers(t *testing.T) {
	src := `
@group(0) @binding(0) var samp: sampler;
@group(0) @binding(2) var shadow_samp: sampler_comparison;
@group(0) @binding(3) var tex: texture_2d<f32>;
`
	info, err := Analyze(StageFragment, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if info.SamplerCount != 3 {
		t.Errorf("SamplerCount = %d, want 3 (one past highest binding)", info.SamplerCount)
	}
	if info.ShadowSamplers != 1<<2 {
		t.Errorf("ShadowSamplers = %#b, want bit 2", info.ShadowSamplers)
	}
}

func TestAnalyzeFragmentPosition(t *testing.T) {
	src := `
struct In {
	@builtin(position) pos: vec4<f32>,
}
@fragment fn main(in: In) -> @location(0) vec4<f32> { return in.pos; }
`
	info, err := Analyze(StageFragment, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !info.HasPosition {
		t.Error("HasPosition = false for a position-reading fragment shader")
	}

	// The same builtin in a vertex shader is an output, not a read.
	info, err = Analyze(StageVertex, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if info.HasPosition {
		t.Error("HasPosition = true for a vertex shader")
	}
}

func TestAnalyzeColorInterp(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{
			"interpolated color",
			"struct In {\n\t@location(1) color: vec4<f32>,\n}",
			true,
		},
		{
			"flat color",
			"struct In {\n\t@location(1) @interpolate(flat) color: vec4<f32>,\n}",
			false,
		},
		{
			"no color input",
			"struct In {\n\t@location(0) uv: vec2<f32>,\n}",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Analyze(StageFragment, tt.src)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if info.HasColorInterp != tt.want {
				t.Errorf("HasColorInterp = %v, want %v", info.HasColorInterp, tt.want)
			}
		})
	}
}

func TestAnalyzeVertexBuiltins(t *testing.T) {
	src := `
@vertex fn main(
	@builtin(vertex_index) vid: u32,
	@builtin(instance_index) iid: u32,
) -> @builtin(position) vec4<f32> { return vec4<f32>(); }
`
	info, err := Analyze(StageVertex, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !info.HasVertexID {
		t.Error("HasVertexID = false")
	}
	if !info.HasInstanceID {
		t.Error("HasInstanceID = false")
	}
}

func TestAnalyzeEdgeFlag(t *testing.T) {
	src := `
struct In {
	@location(0) pos: vec3<f32>,
	@location(2) flag: f32,
}
struct Out {
	@builtin(position) pos: vec4<f32>,
	@location(1) edge_flag: f32,
}
@vertex fn main(in: In) -> Out {
	var out: Out;
	out.edge_flag = in.flag;
	return out;
}
`
	info, err := Analyze(StageVertex, src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if info.EdgeFlagOut != 1 {
		t.Errorf("EdgeFlagOut = %d, want 1", info.EdgeFlagOut)
	}
	if info.EdgeFlagIn != 2 {
		t.Errorf("EdgeFlagIn = %d, want 2", info.EdgeFlagIn)
	}

	info, err = Analyze(StageVertex, "@vertex fn main() {}")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if info.EdgeFlagOut != -1 || info.EdgeFlagIn != -1 {
		t.Errorf("edge flags = %d, %d, want -1, -1", info.EdgeFlagOut, info.EdgeFlagIn)
	}
}

func TestAnalyzeDependencies(t *testing.T) {
	tests := []struct {
		stage Stage
		want  DirtyFlags
	}{
		{StageVertex, DirtyVertexSamplers | DirtyRasterizer},
		{StageGeometry, DirtyGeometrySamplers | DirtyVertexProgram | DirtyRasterizer},
		{StageFragment, DirtyFragmentSamplers | DirtyRasterizer | DirtyFramebuffer},
		{StageCompute, 0},
	}
	for _, tt := range tests {
		info, err := Analyze(tt.stage, "")
		if err != nil {
			t.Fatalf("Analyze(%s): %v", tt.stage, err)
		}
		if info.Dependencies != tt.want {
			t.Errorf("%s dependencies = %#b, want %#b", tt.stage, info.Dependencies, tt.want)
		}
	}
}

func TestAnalyzeUnknownStage(t *testing.T) {
	if _, err := Analyze(stageCount, ""); err == nil {
		t.Error("Analyze accepted an out-of-range stage")
	}
}
