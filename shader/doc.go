// Package shader manages logical shader programs and their compiled
// kernel variants.
//
// A Program holds one WGSL source and a set of kernels compiled for
// specific combinations of pipeline state (the variant key). Selection
// walks the key space:
//
//	changed, err := prog.SelectKernel(state, dirty)
//
// On a key miss the program garbage-collects least-recently-used
// variants, asks its Compiler for a new kernel, and reports the change
// to the owning cache so the kernel gets picked up by the next upload
// pass.
//
// Program is owned by a single rendering context and is not safe for
// concurrent use. Distinct programs are independent.
package shader
