package shader

import (
	"fmt"
	"math/bits"
)

// VertexKey is the vertex-stage part of a variant key.
type VertexKey struct {
	RasterizerDiscard bool
	ClipPlaneCount    uint8
}

// GeometryKey is the geometry-stage part of a variant key.
type GeometryKey struct {
	RasterizerDiscard bool
	InputCount        uint8
	Inputs            [MaxVaryings]OutputDecl
}

// FragmentKey is the fragment-stage part of a variant key.
type FragmentKey struct {
	Flatshade        bool
	FBHeight         uint32
	ColorBufferCount uint8
}

// Key is the exact set of state values a kernel variant was compiled
// for. Two variants are the same variant if and only if their keys
// compare equal; Key is a comparable struct so it doubles as a map key
// for exact lookup.
//
// Only the fields for the program's stage are populated; the rest stay
// zero so keys of different stages never collide.
type Key struct {
	Stage Stage

	Vertex   VertexKey
	Geometry GeometryKey
	Fragment FragmentKey

	SamplerCount uint8
	Swizzles     [MaxSamplers]SwizzleSet

	// Per-coordinate saturation bitmasks, one bit per sampler slot.
	SaturateS uint16
	SaturateT uint16
	SaturateR uint16
}

// KeyForState derives the variant key for a program's next kernel from
// the current pipeline state. Only state the program's static analysis
// marked as relevant is folded in.
func KeyForState(info *Info, state *PipelineState) (Key, error) {
	var key Key
	key.Stage = info.Stage

	switch info.Stage {
	case StageVertex:
		key.Vertex.RasterizerDiscard = state.Rasterizer.Discard
		key.Vertex.ClipPlaneCount = uint8(bits.Len32(state.Rasterizer.ClipPlaneEnable))
	case StageGeometry:
		key.Geometry.RasterizerDiscard = state.Rasterizer.Discard
		n := len(state.VertexOutputs)
		if n > MaxVaryings {
			n = MaxVaryings
		}
		key.Geometry.InputCount = uint8(n)
		copy(key.Geometry.Inputs[:], state.VertexOutputs[:n])
	case StageFragment:
		key.Fragment.Flatshade = info.HasColorInterp && state.Rasterizer.Flatshade
		if info.HasPosition {
			key.Fragment.FBHeight = state.Framebuffer.Height
		} else {
			key.Fragment.FBHeight = 1
		}
		key.Fragment.ColorBufferCount = state.Framebuffer.ColorBufferCount
	case StageCompute:
		// Compute kernels have no non-orthogonal render state.
	default:
		return Key{}, fmt.Errorf("shader: unsupported stage %d", info.Stage)
	}

	keySamplers(&key, info, state.viewsFor(info.Stage), state.samplersFor(info.Stage))

	return key, nil
}

// GuessKey builds the key used for the eager compile at program
// creation, before any pipeline state is known. A framebuffer hint, if
// given, seeds the fragment fields so the guess can match the first
// real selection; fb may be nil. The guess may be superseded by the
// first real selection.
func GuessKey(info *Info, fb *FramebufferState) Key {
	var key Key
	key.Stage = info.Stage

	if info.Stage == StageFragment {
		key.Fragment.FBHeight = 1
		key.Fragment.ColorBufferCount = 1
		if fb != nil {
			if info.HasPosition && fb.Height > 0 {
				key.Fragment.FBHeight = fb.Height
			}
			if fb.ColorBufferCount > 0 {
				key.Fragment.ColorBufferCount = fb.ColorBufferCount
			}
		}
	}

	keySamplers(&key, info, nil, nil)

	return key
}

// keySamplers fills the sampler-dependent key fields for the declared
// sampler count. Slots without a bound view fall back to the shadow
// swizzle for comparison samplers and the identity swizzle otherwise.
func keySamplers(key *Key, info *Info, views []*SamplerView, samplers []*SamplerState) {
	n := info.SamplerCount
	if n > MaxSamplers {
		n = MaxSamplers
	}
	key.SamplerCount = uint8(n)

	for i := 0; i < n; i++ {
		var view *SamplerView
		if i < len(views) {
			view = views[i]
		}
		switch {
		case view != nil:
			key.Swizzles[i] = view.Swizzle
		case info.ShadowSamplers&(1<<i) != 0:
			key.Swizzles[i] = shadowSwizzle
		default:
			key.Swizzles[i] = identitySwizzle
		}

		if i < len(samplers) && samplers[i] != nil {
			if samplers[i].SaturateS {
				key.SaturateS |= 1 << i
			}
			if samplers[i].SaturateT {
				key.SaturateT |= 1 << i
			}
			if samplers[i].SaturateR {
				key.SaturateR |= 1 << i
			}
		}
	}
}
