// Package compile provides the default shader.Compiler, backed by the
// naga WGSL compiler.
//
// Each variant is specialized by prepending a block of SC_-prefixed
// const declarations derived from the variant key (clip plane count,
// framebuffer height, flatshade, sampler swizzles) to the program
// source before compiling it to SPIR-V. Sources that want to
// specialize reference those constants; sources that don't are
// unaffected, unused constants being valid WGSL.
//
// WGSL has no geometry stage, so CompileGeometry always fails;
// geometry programs need a backend-specific Compiler.
package compile
