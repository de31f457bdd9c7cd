// Package imfvar holds process-wide settings of an imf build.
package imfvar

import (
	"runtime/debug"
)

// Version is derived at startup from the build information: the module version,
// or the VCS revision for development builds.
var Version = version()

// Pedantic makes parsers outside the rfc5322 package reject syntax that is only
// valid in obsolete forms, instead of accepting it.
var Pedantic bool

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	settings := map[string]string{}
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	rev := settings["vcs.revision"]
	if rev == "" {
		return "(devel)"
	}
	switch settings["vcs.modified"] {
	case "false":
		return rev
	case "true":
		return rev + "+modifications"
	}
	return rev + "+unknown"
}
