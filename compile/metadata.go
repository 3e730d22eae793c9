package compile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/shadercache/shader"
)

// Kernel metadata is derived from a declaration-level scan of the
// entry point's input and output interface. naga gives back only the
// SPIR-V blob, so the counts and semantics the cache needs for CSO
// construction and stream-output remapping are extracted here.

var (
	structRe  = regexp.MustCompile(`(?s)struct\s+(\w+)\s*\{(.*?)\}`)
	locRe     = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRe = regexp.MustCompile(`@builtin\((\w+)\)`)
	nameRe    = regexp.MustCompile(`(\w+)\s*:`)

	vertexEntryRe   = regexp.MustCompile(`@vertex\s+fn\s+\w+\s*\(([^)]*)\)\s*(?:->\s*([^{]+))?\{`)
	fragmentEntryRe = regexp.MustCompile(`@fragment\s+fn\s+\w+\s*\(([^)]*)\)\s*(?:->\s*([^{]+))?\{`)
)

// ioField is one field of the entry point interface.
type ioField struct {
	name     string
	location int // -1 for builtins
	builtin  string
}

// kernelInfo assembles the per-kernel metadata for a compiled variant.
func kernelInfo(info *shader.Info, key *shader.Key) shader.KernelInfo {
	ki := shader.KernelInfo{}

	switch info.Stage {
	case shader.StageVertex:
		in, out := entryIO(info.Source, vertexEntryRe)
		ki.InputCount = countLocated(in)
		ki.Outputs = outputRegs(out)
		ki.OutputCount = len(ki.Outputs)
		ki.OutputHasPosition = hasBuiltin(out, "position")
		ki.URBDataStartReg = 1
		ki.ClipStateSize = int(key.Vertex.ClipPlaneCount) * 16
		ki.StreamOutput = len(info.StreamOutput.Outputs) > 0
	case shader.StageFragment:
		in, _ := entryIO(info.Source, fragmentEntryRe)
		ki.InputCount = countLocated(in)
		ki.OutputCount = int(key.Fragment.ColorBufferCount)
		ki.InputHasPosition = info.HasPosition
		ki.OutputHasPosition = strings.Contains(info.Source, "@builtin(frag_depth)")
		ki.UsesKill = strings.Contains(info.Source, "discard")
		if ki.InputCount > 0 {
			ki.BarycentricModes = 1
		}
		ki.URBDataStartReg = 2
	case shader.StageCompute:
		// Compute kernels have no vertex-pipeline interface.
	}

	return ki
}

// entryIO extracts the input and output fields of the entry point
// matched by entryRe, resolving struct-typed parameters and returns
// through their declarations.
func entryIO(source string, entryRe *regexp.Regexp) (in, out []ioField) {
	structs := parseStructs(source)

	m := entryRe.FindStringSubmatch(source)
	if m == nil {
		return nil, nil
	}

	for _, param := range splitFields(m[1]) {
		in = append(in, resolveFields(param, structs)...)
	}
	if ret := strings.TrimSpace(m[2]); ret != "" {
		out = resolveFields(ret, structs)
	}

	return in, out
}

// parseStructs maps struct names to their interface fields.
func parseStructs(source string) map[string][]ioField {
	structs := make(map[string][]ioField)
	for _, m := range structRe.FindAllStringSubmatch(source, -1) {
		var fields []ioField
		for _, line := range splitFields(m[2]) {
			if f, ok := scanField(line); ok {
				fields = append(fields, f)
			}
		}
		structs[m[1]] = fields
	}
	return structs
}

// resolveFields turns one parameter or return declaration into
// interface fields. A declaration is either attributed directly or
// typed as a declared struct.
func resolveFields(decl string, structs map[string][]ioField) []ioField {
	if f, ok := scanField(decl); ok {
		return []ioField{f}
	}
	for name, fields := range structs {
		if strings.Contains(decl, name) {
			return fields
		}
	}
	return nil
}

// scanField extracts location/builtin attributes and the field name
// from one declaration. Unattributed declarations are not interface
// fields.
func scanField(decl string) (ioField, bool) {
	f := ioField{location: -1}

	if m := builtinRe.FindStringSubmatch(decl); m != nil {
		f.builtin = m[1]
	}
	if m := locRe.FindStringSubmatch(decl); m != nil {
		loc, err := strconv.Atoi(m[1])
		if err != nil {
			return ioField{}, false
		}
		f.location = loc
	}
	if f.builtin == "" && f.location < 0 {
		return ioField{}, false
	}

	// The field name follows the attributes.
	rest := decl
	if i := strings.LastIndex(decl, ")"); i >= 0 && i+1 < len(decl) {
		rest = decl[i+1:]
	}
	if m := nameRe.FindStringSubmatch(rest); m != nil {
		f.name = m[1]
	}

	return f, true
}

// splitFields splits a parameter list or struct body into per-field
// declarations.
func splitFields(body string) []string {
	var fields []string
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			fields = append(fields, part)
		}
	}
	return fields
}

// countLocated counts user-defined (located) fields.
func countLocated(fields []ioField) int {
	n := 0
	for _, f := range fields {
		if f.location >= 0 {
			n++
		}
	}
	return n
}

// hasBuiltin reports whether a builtin appears among the fields.
func hasBuiltin(fields []ioField, name string) bool {
	for _, f := range fields {
		if f.builtin == name {
			return true
		}
	}
	return false
}

// outputRegs maps output fields to attribute descriptors. Located
// outputs use their location as the register index; the position
// builtin carries no register.
func outputRegs(fields []ioField) []shader.OutputReg {
	var regs []shader.OutputReg
	for _, f := range fields {
		reg := shader.OutputReg{Register: f.location}
		switch {
		case f.builtin == "position" || f.name == "position":
			reg.Semantic = shader.SemanticPosition
			reg.Register = -1
		case f.name == "point_size" || f.name == "psize":
			reg.Semantic = shader.SemanticPointSize
		case strings.Contains(f.name, "color"):
			reg.Semantic = shader.SemanticColor
		case f.name == "edge_flag":
			reg.Semantic = shader.SemanticEdgeFlag
		default:
			reg.Semantic = shader.SemanticGeneric
			if f.location >= 0 {
				reg.SemanticIndex = uint8(f.location)
			}
		}
		regs = append(regs, reg)
	}
	return regs
}
