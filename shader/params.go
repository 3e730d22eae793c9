package shader

import "fmt"

// Param identifies a kernel parameter query. Boolean facts are
// reported as 0 or 1.
type Param int

const (
	// ParamInputCount is the kernel's input attribute count.
	ParamInputCount Param = iota
	// ParamOutputCount is the kernel's output attribute count.
	ParamOutputCount
	// ParamURBDataStartReg is the first register payload data is
	// loaded into.
	ParamURBDataStartReg

	// ParamVSInputInstanceID reports whether the program reads the
	// instance index builtin.
	ParamVSInputInstanceID
	// ParamVSInputVertexID reports whether the program reads the
	// vertex index builtin.
	ParamVSInputVertexID
	// ParamVSInputEdgeFlag reports whether the last vertex input is
	// an edge-flag passthrough.
	ParamVSInputEdgeFlag
	// ParamVSClipStateSize is the push-constant space reserved for
	// user clip planes, in bytes.
	ParamVSClipStateSize
	// ParamVSStreamOutput reports whether the vertex kernel writes
	// transform feedback itself.
	ParamVSStreamOutput

	// ParamGSDiscardAdjacency reports whether the geometry kernel
	// drops adjacency vertices.
	ParamGSDiscardAdjacency

	// ParamFSInputZ reports whether the fragment kernel reads the
	// position Z/W payload.
	ParamFSInputZ
	// ParamFSInputW is an alias query for the same payload fact.
	ParamFSInputW
	// ParamFSOutputZ reports whether the fragment kernel writes
	// depth.
	ParamFSOutputZ
	// ParamFSUsesKill reports whether the fragment kernel discards.
	ParamFSUsesKill
	// ParamFSBarycentricModes is the barycentric interpolation mode
	// mask of the fragment kernel.
	ParamFSBarycentricModes
)

// Param queries a parameter of the current kernel. Unknown parameters
// return an error rather than a silent zero.
func (p *Program) Param(param Param) (int, error) {
	if p.cur == nil {
		return 0, ErrNoKernel
	}
	ki := p.cur.Info()

	switch param {
	case ParamInputCount:
		return ki.InputCount, nil
	case ParamOutputCount:
		return ki.OutputCount, nil
	case ParamURBDataStartReg:
		return ki.URBDataStartReg, nil

	case ParamVSInputInstanceID:
		return btoi(p.info.HasInstanceID), nil
	case ParamVSInputVertexID:
		return btoi(p.info.HasVertexID), nil
	case ParamVSInputEdgeFlag:
		// The state tracker appends the edge-flag input last.
		return btoi(p.info.EdgeFlagIn >= 0), nil
	case ParamVSClipStateSize:
		return ki.ClipStateSize, nil
	case ParamVSStreamOutput:
		return btoi(ki.StreamOutput), nil

	case ParamGSDiscardAdjacency:
		return btoi(ki.DiscardAdjacency), nil

	case ParamFSInputZ, ParamFSInputW:
		return btoi(ki.InputHasPosition), nil
	case ParamFSOutputZ:
		return btoi(ki.OutputHasPosition), nil
	case ParamFSUsesKill:
		return btoi(ki.UsesKill), nil
	case ParamFSBarycentricModes:
		return ki.BarycentricModes, nil

	default:
		return 0, fmt.Errorf("shader: unknown kernel parameter %d", param)
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
