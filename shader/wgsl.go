package shader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// WGSL source scanning. This is a declaration-level scan, not a full
// parse: it extracts the handful of facts that feed variant keys and
// kernel parameter queries. Malformed source is the compiler's problem;
// the scan just finds nothing.

var (
	// @group(0) @binding(2) var samp: sampler;
	samplerDeclRe = regexp.MustCompile(`@binding\((\d+)\)\s*var\s+\w+\s*:\s*(sampler_comparison|sampler)\b`)

	// @location(3) color: vec4<f32>,
	locationFieldRe = regexp.MustCompile(`@location\((\d+)\)\s+(\w+)\s*:`)

	// out.edge_flag = in.flag;
	edgeFlagAssignRe = regexp.MustCompile(`\.edge_flag\s*=\s*\w+\.(\w+)`)
)

// Analyze scans WGSL source and extracts the shader-level facts that
// determine state dependencies and variant keys.
func Analyze(stage Stage, source string) (Info, error) {
	if stage >= stageCount {
		return Info{}, fmt.Errorf("shader: unsupported stage %d", stage)
	}

	info := Info{
		Stage:        stage,
		Source:       source,
		EdgeFlagIn:   -1,
		EdgeFlagOut:  -1,
		Dependencies: dependenciesFor(stage),
	}

	for _, m := range samplerDeclRe.FindAllStringSubmatch(source, -1) {
		idx, err := strconv.Atoi(m[1])
		if err != nil || idx >= MaxSamplers {
			continue
		}
		if idx >= info.SamplerCount {
			info.SamplerCount = idx + 1
		}
		if m[2] == "sampler_comparison" {
			info.ShadowSamplers |= 1 << idx
		}
	}

	if stage == StageFragment && strings.Contains(source, "@builtin(position)") {
		info.HasPosition = true
	}
	if stage == StageVertex {
		info.HasInstanceID = strings.Contains(source, "@builtin(instance_index)")
		info.HasVertexID = strings.Contains(source, "@builtin(vertex_index)")
	}

	for _, line := range strings.Split(source, "\n") {
		m := locationFieldRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[2]
		if strings.Contains(name, "color") && !strings.Contains(line, "@interpolate(flat)") {
			info.HasColorInterp = true
		}
		if stage == StageVertex && name == "edge_flag" {
			if loc, err := strconv.Atoi(m[1]); err == nil {
				info.EdgeFlagOut = loc
			}
		}
	}

	if stage == StageVertex && info.EdgeFlagOut >= 0 {
		if m := edgeFlagAssignRe.FindStringSubmatch(source); m != nil {
			info.EdgeFlagIn = fieldLocation(source, m[1])
		}
	}

	return info, nil
}

// fieldLocation returns the @location index of the named field, or -1.
func fieldLocation(source, name string) int {
	re := regexp.MustCompile(`@location\((\d+)\)\s+` + regexp.QuoteMeta(name) + `\s*:`)
	m := re.FindStringSubmatch(source)
	if m == nil {
		return -1
	}
	loc, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return loc
}
