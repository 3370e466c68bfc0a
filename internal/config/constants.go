// Package config holds process-wide constants shared across compiler stages,
// adapted from funxy's internal/config/constants.go.
package config

// Version is the current luminac version, set at build time via -ldflags.
var Version = "0.1.0"

// SourceFileExt is the canonical Lumina source extension.
const SourceFileExt = ".lm"

// LockfileName is the expected project lockfile.
const LockfileName = "lumina.lock.json"

// LockfileNameYAML is the YAML fallback accepted alongside LockfileName.
const LockfileNameYAML = "lumina.lock.yaml"

// TrimSourceExt removes the recognized source extension from a filename.
// Returns the original string if it doesn't match.
func TrimSourceExt(name string) string {
	if len(name) >= len(SourceFileExt) && name[len(name)-len(SourceFileExt):] == SourceFileExt {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}

// HasSourceExt returns true if path ends with the recognized source extension.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceFileExt) && path[len(path)-len(SourceFileExt):] == SourceFileExt
}

// StdPrefix is the specifier prefix resolved against the built-in prelude
// registry rather than the project lockfile.
const StdPrefix = "@std/"

// Runtime surface names the code generator emits by exact name.
// These are part of the ABI between generated code and the JS runtime
// library; the compiler core never re-specifies their semantics.
const (
	RuntimeIO       = "io"
	RuntimeStr      = "str"
	RuntimeMath     = "math"
	RuntimeList     = "list"
	RuntimeVec      = "vec"
	RuntimeHashMap  = "hashmap"
	RuntimeHashSet  = "hashset"
	RuntimeChannel  = "channel"
	RuntimeThread   = "thread"
	RuntimeSync     = "sync"
	RuntimeFS       = "fs"
	RuntimeHTTP     = "http"
	RuntimeTime     = "time"
	RuntimeRegex    = "regex"
	RuntimeCrypto   = "crypto"
	ResultTypeName  = "Result"
	OptionTypeName  = "Option"
	SomeCtorName    = "Some"
	NoneCtorName    = "None"
	OkCtorName      = "Ok"
	ErrCtorName     = "Err"
	SetHelperName   = "__set"
	FormatValueName = "formatValue"
	StringifyHelper = "__lumina_stringify"
	RangeHelper     = "__lumina_range"
	SliceHelper     = "__lumina_slice"
	IndexHelper     = "__lumina_index"
	TryHelper       = "__lumina_try"
	PanicTypeName   = "LuminaPanic"
)

// StdModules lists the prelude module names injected by the module registry
// unless shadowed by an explicit import.
var StdModules = []string{
	RuntimeIO, RuntimeStr, RuntimeMath, RuntimeList, RuntimeVec,
	RuntimeHashMap, RuntimeHashSet, RuntimeChannel, RuntimeThread,
	RuntimeSync, RuntimeFS, RuntimeHTTP, RuntimeTime, RuntimeRegex, RuntimeCrypto,
}
