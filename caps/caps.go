// Package caps models screen capabilities and debug options as static
// lookup tables: configuration data, not state machines.
package caps

import "fmt"

// Family identifies a device generation. Later families are strictly
// more capable in the queries below.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyGen6
	FamilyGen7
	FamilyGen8
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyGen6:
		return "gen6"
	case FamilyGen7:
		return "gen7"
	case FamilyGen8:
		return "gen8"
	default:
		return "unknown"
	}
}

// DeviceInfo is the static description of one device.
type DeviceInfo struct {
	Family       Family
	VRAMSize     uint64
	HasStreamout bool
}

// Cap identifies a screen capability query.
type Cap int

const (
	// Boolean capabilities.
	CapNPOTTextures Cap = iota
	CapAnisotropicFilter
	CapOcclusionQuery
	CapTextureSwizzle
	CapShadowMap
	CapPrimitiveRestart
	CapInstanceID
	CapCompute

	// Per-family capabilities.
	CapIndependentBlend
	CapSeamlessCubeMap

	// Counted capabilities.
	CapMaxTextureLevels
	CapMaxStreamOutputBuffers
	CapMaxStreamOutputComponents
	CapConstantBufferAlignment
	CapKernelAlignment
	CapMaxTextureBufferSize
)

// Screen answers capability queries for one device.
type Screen struct {
	info DeviceInfo
}

// NewScreen creates a screen for the device.
func NewScreen(info DeviceInfo) *Screen {
	return &Screen{info: info}
}

// Info returns the device description.
func (s *Screen) Info() DeviceInfo { return s.info }

// Cap answers a capability query. Unknown capabilities return an
// error rather than a silent zero.
func (s *Screen) Cap(c Cap) (int, error) {
	switch c {
	// Supported everywhere.
	case CapNPOTTextures,
		CapAnisotropicFilter,
		CapOcclusionQuery,
		CapTextureSwizzle,
		CapShadowMap,
		CapPrimitiveRestart,
		CapInstanceID,
		CapCompute:
		return 1, nil

	// Supported from gen7 on.
	case CapIndependentBlend, CapSeamlessCubeMap:
		if s.info.Family >= FamilyGen7 {
			return 1, nil
		}
		return 0, nil

	case CapMaxTextureLevels:
		if s.info.Family >= FamilyGen7 {
			return 15, nil
		}
		return 14, nil

	case CapMaxStreamOutputBuffers:
		if s.info.HasStreamout {
			return 4, nil
		}
		return 0, nil
	case CapMaxStreamOutputComponents:
		return 32 * 4, nil

	case CapConstantBufferAlignment:
		return 256, nil
	case CapKernelAlignment:
		return 64, nil

	case CapMaxTextureBufferSize:
		if s.info.VRAMSize > 0xFFFFFFFF {
			return 0xFFFFFFFF, nil
		}
		return int(s.info.VRAMSize), nil

	default:
		return 0, fmt.Errorf("caps: unknown capability %d", c)
	}
}
