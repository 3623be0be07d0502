// Package version reports the module version baked into the binary.
package version

import "runtime/debug"

// value may be set at release time via -ldflags "-X ...version.value=v1.2.3".
var value = ""

// String returns the release version, falling back to the module
// version recorded by the Go toolchain, then to "(devel)".
func String() string {
	if value != "" {
		return value
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "(devel)"
}
