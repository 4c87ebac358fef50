package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These are set at build time with -ldflags "-X ...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a one-line description of the running build.
func String() string {
	commit := Commit
	if commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
					commit = setting.Value[:7]
				}
			}
		}
	}
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, commit, BuildDate, runtime.Version())
}

// ShowVersion prints version information to stdout.
func ShowVersion() {
	fmt.Println(String())
}
