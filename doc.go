// Package shadercache manages compiled shader kernels and their upload
// into a GPU-visible kernel buffer.
//
// Programs (see the shader sub-package) register with a Cache. The
// cache tracks which programs gained kernels since the last upload and
// writes only those in the next pass:
//
//	c := shadercache.NewCache()
//	c.Add(prog)
//
//	size, _ := c.Upload(nil, 0, false) // dry run for allocation
//	buf := shadercache.NewMemBuffer(size)
//	written, err := c.Upload(buf, 0, false)
//
// Kernels are written at 64-byte aligned offsets; the dry run reserves
// an extra 128 bytes past the last kernel because execution units may
// prefetch beyond the end of a kernel program.
//
// A Cache is owned by one rendering context and is not safe for
// concurrent use. Independent contexts use independent caches.
//
// By default shadercache produces no log output; call SetLogger to
// enable diagnostics.
package shadercache
