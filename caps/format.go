// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package caps

import "github.com/gogpu/gputypes"

// FormatBinding describes how a format is meant to be used.
type FormatBinding int

const (
	BindingSampled FormatBinding = iota
	BindingRenderTarget
	BindingDepthStencil
)

// formatSupport is the static per-family support table. Families not
// listed for a format do not support it at all.
var formatSupport = map[gputypes.TextureFormat]struct {
	minFamily    Family
	render       bool
	depthStencil bool
}{
	gputypes.TextureFormatR8Unorm:             {minFamily: FamilyGen6, render: true},
	gputypes.TextureFormatRGBA8Unorm:          {minFamily: FamilyGen6, render: true},
	gputypes.TextureFormatBGRA8Unorm:          {minFamily: FamilyGen6, render: true},
	gputypes.TextureFormatDepth24PlusStencil8: {minFamily: FamilyGen6, depthStencil: true},
}

// FormatSupported reports whether the device supports a format for
// the given binding.
func (s *Screen) FormatSupported(format gputypes.TextureFormat, binding FormatBinding) bool {
	sup, ok := formatSupport[format]
	if !ok || s.info.Family < sup.minFamily {
		return false
	}
	switch binding {
	case BindingSampled:
		return true
	case BindingRenderTarget:
		return sup.render
	case BindingDepthStencil:
		return sup.depthStencil
	default:
		return false
	}
}
