package shadercache

import (
	"errors"
	"fmt"

	"github.com/gogpu/shadercache/internal/logging"
	"github.com/gogpu/shadercache/internal/overflow"
	"github.com/gogpu/shadercache/shader"
)

const (
	// KernelAlign is the required alignment of every kernel start
	// offset in the kernel buffer.
	KernelAlign = 64

	// PrefetchPad is the space reserved past the last kernel.
	// Execution units may prefetch up to 128 bytes beyond the end of
	// a kernel program, possibly into the next page; the pad keeps
	// that prefetch inside the buffer.
	PrefetchPad = 128
)

// ErrOffsetOverflow is returned when upload offset accounting would
// wrap around.
var ErrOffsetOverflow = errors.New("shadercache: kernel buffer offset overflow")

// membership of a program within the cache.
type listID uint8

const (
	listNone listID = iota
	listResident
	listChanged
)

// Cache is the registry of shader programs whose kernels share one
// kernel buffer. It keeps two insertion-ordered lists: resident
// programs, whose kernels were written by an earlier pass, and changed
// programs, which gained kernels since. A registered program is always
// in exactly one of the two.
//
// The cache tracks membership and upload state only; programs own
// their variants. Cache is owned by a single rendering context and is
// not safe for concurrent use.
type Cache struct {
	resident []*shader.Program
	changed  []*shader.Program
	member   map[*shader.Program]listID
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{member: make(map[*shader.Program]listID)}
}

// Add registers a program. All its kernels are marked not-uploaded so
// the next pass writes them, and the program enters the changed list.
// Adding an already registered program just marks it changed.
func (c *Cache) Add(p *shader.Program) {
	p.InvalidateUploads()

	if c.member[p] != listNone {
		c.NotifyChanged(p)
		return
	}

	p.BindCache(c)
	c.changed = append(c.changed, p)
	c.member[p] = listChanged
}

// Remove unregisters a program from whichever list holds it.
func (c *Cache) Remove(p *shader.Program) {
	switch c.member[p] {
	case listResident:
		c.resident = removeProgram(c.resident, p)
	case listChanged:
		c.changed = removeProgram(c.changed, p)
	default:
		return
	}
	delete(c.member, p)
	p.UnbindCache()
}

// NotifyChanged moves a managed program to the changed list. Programs
// call this through the shader.ChangeNotifier interface when they gain
// a kernel.
func (c *Cache) NotifyChanged(p *shader.Program) {
	switch c.member[p] {
	case listResident:
		c.resident = removeProgram(c.resident, p)
	case listChanged:
		return
	default:
		return
	}
	c.changed = append(c.changed, p)
	c.member[p] = listChanged
}

// Len returns the number of registered programs.
func (c *Cache) Len() int { return len(c.member) }

// Pending returns the number of programs with kernels awaiting upload.
func (c *Cache) Pending() int { return len(c.changed) }

// Upload writes managed kernels into the kernel buffer starting at
// offset. When incremental is true only kernels added since the last
// pass are written; otherwise the pass also re-writes every resident
// kernel that lost its upload record.
//
// A nil buf performs a dry run: no writes, no state changes, and the
// returned size includes the trailing PrefetchPad whenever any kernel
// bytes were accounted. The dry run uses the same offset arithmetic as
// the real pass, so the result is a safe allocation size.
//
// On a write failure the pass aborts and the error is returned.
// Kernels written before the failure keep their uploaded state; the
// caller must treat the whole upload as failed and must not submit
// work against the buffer.
func (c *Cache) Upload(buf KernelBuffer, offset uint32, incremental bool) (int, error) {
	if buf == nil {
		return c.uploadSize(offset, incremental)
	}

	base := offset

	if !incremental {
		for _, p := range c.resident {
			next, err := uploadProgram(p, buf, offset, true)
			if err != nil {
				return 0, err
			}
			offset = next
		}
	}

	for len(c.changed) > 0 {
		p := c.changed[0]

		next, err := uploadProgram(p, buf, offset, incremental)
		if err != nil {
			return 0, err
		}
		offset = next

		c.changed = c.changed[1:]
		c.resident = append(c.resident, p)
		c.member[p] = listResident
	}

	written := int(offset - base)
	logging.Logger().Debug("uploaded shader kernels",
		"base", base,
		"written", written,
		"incremental", incremental)
	return written, nil
}

// uploadSize computes the size an upload from the same pre-state would
// take, using the identical walk and offset arithmetic as the real
// pass.
func (c *Cache) uploadSize(offset uint32, incremental bool) (int, error) {
	base := offset

	if !incremental {
		for _, p := range c.resident {
			next, err := uploadProgram(p, nil, offset, true)
			if err != nil {
				return 0, err
			}
			offset = next
		}
	}
	for _, p := range c.changed {
		next, err := uploadProgram(p, nil, offset, incremental)
		if err != nil {
			return 0, err
		}
		offset = next
	}

	if offset > base {
		padded, ov := overflow.Add32(offset, PrefetchPad)
		if ov {
			return 0, ErrOffsetOverflow
		}
		offset = padded
	}

	return int(offset - base), nil
}

// uploadProgram writes (or, with a nil buf, accounts) one program's
// kernels in recency order. Kernels that are already uploaded are
// skipped when skipUploaded is set. Returns the advanced offset.
func uploadProgram(p *shader.Program, buf KernelBuffer, offset uint32, skipUploaded bool) (uint32, error) {
	for _, v := range p.Variants() {
		if skipUploaded && v.Uploaded() {
			continue
		}

		aligned, ov := overflow.Add32(offset, KernelAlign-1)
		if ov {
			return 0, ErrOffsetOverflow
		}
		aligned &^= KernelAlign - 1

		if buf != nil {
			if err := buf.Write(aligned, v.Kernel()); err != nil {
				return 0, fmt.Errorf("shadercache: upload %s kernel at %d: %w",
					p.Stage(), aligned, err)
			}
			v.MarkUploaded(aligned)
		}

		next, ov := overflow.Add32(aligned, uint32(v.Size()))
		if ov {
			return 0, ErrOffsetOverflow
		}
		offset = next
	}

	return offset, nil
}

// removeProgram drops the first occurrence of p, preserving order.
func removeProgram(list []*shader.Program, p *shader.Program) []*shader.Program {
	for i, q := range list {
		if q == p {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
