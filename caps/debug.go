package caps

import (
	"os"
	"strings"

	"github.com/gogpu/shadercache/internal/logging"
)

// DebugFlags is a bitmask of debug options.
type DebugFlags uint32

const (
	// DebugNoGC disables per-program variant garbage collection.
	DebugNoGC DebugFlags = 1 << iota
	// DebugNoIncremental forces full uploads on every pass.
	DebugNoIncremental
	// DebugDumpKeys logs composed variant keys.
	DebugDumpKeys
	// DebugDumpKernels logs compiled kernel sizes and offsets.
	DebugDumpKernels
	// DebugNoCompileCache compiles a fresh kernel on every selection.
	DebugNoCompileCache
)

// DebugEnv is the environment variable holding a comma-separated list
// of debug flag names.
const DebugEnv = "SHADERCACHE_DEBUG"

// debugOptions is the named-value table, one entry per flag.
var debugOptions = []struct {
	name string
	flag DebugFlags
	help string
}{
	{"nogc", DebugNoGC, "Disable variant garbage collection"},
	{"noincr", DebugNoIncremental, "Force full kernel uploads"},
	{"dumpkeys", DebugDumpKeys, "Log composed variant keys"},
	{"dumpkernels", DebugDumpKernels, "Log kernel sizes and offsets"},
	{"nocache", DebugNoCompileCache, "Recompile on every selection"},
}

// ParseDebugFlags parses a comma-separated flag list. Unknown names
// are logged and skipped.
func ParseDebugFlags(s string) DebugFlags {
	var flags DebugFlags
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		found := false
		for _, opt := range debugOptions {
			if opt.name == name {
				flags |= opt.flag
				found = true
				break
			}
		}
		if !found {
			logging.Logger().Warn("unknown debug flag", "flag", name, "env", DebugEnv)
		}
	}
	return flags
}

// DebugFlagsFromEnv reads the flag list from DebugEnv.
func DebugFlagsFromEnv() DebugFlags {
	return ParseDebugFlags(os.Getenv(DebugEnv))
}
