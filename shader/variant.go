package shader

// Variant is one compiled kernel: the machine code for a specific
// variant key. The blob and metadata are immutable after compilation;
// only the upload bookkeeping changes, and never from Uploaded back to
// not-uploaded except through Cache.Add re-registration.
type Variant struct {
	key    Key
	kernel []byte
	info   KernelInfo
	cso    CSO
	so     StreamOutputInfo

	uploaded    bool
	cacheOffset uint32
}

// Key returns the variant key the kernel was compiled for.
func (v *Variant) Key() Key { return v.key }

// Kernel returns the machine-code blob. Callers must not modify it.
func (v *Variant) Kernel() []byte { return v.kernel }

// Size returns the kernel size in bytes.
func (v *Variant) Size() int { return len(v.kernel) }

// Info returns the per-kernel metadata.
func (v *Variant) Info() KernelInfo { return v.info }

// CSO returns the precomputed stage descriptor.
func (v *Variant) CSO() CSO { return v.cso }

// StreamOutput returns the kernel's remapped stream-output mapping.
func (v *Variant) StreamOutput() StreamOutputInfo { return v.so }

// Uploaded reports whether the kernel currently lives in a kernel
// buffer.
func (v *Variant) Uploaded() bool { return v.uploaded }

// CacheOffset returns the byte offset of the kernel within the kernel
// buffer. Only valid while Uploaded reports true.
func (v *Variant) CacheOffset() uint32 { return v.cacheOffset }

// MarkUploaded records a completed upload. Called by the upload pass.
func (v *Variant) MarkUploaded(offset uint32) {
	v.uploaded = true
	v.cacheOffset = offset
}

// ClearUploaded invalidates the upload record, forcing the next pass
// to write the kernel again. Called when a program enters a cache.
func (v *Variant) ClearUploaded() {
	v.uploaded = false
	v.cacheOffset = 0
}
