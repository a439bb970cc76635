package crcverify

import (
	"fmt"
	"io"
	"runtime/debug"
	"strconv"
)

// Set at build time via `-ldflags "-X 'github.com/doismellburning/crcverify/src.CRCVERIFY_VERSION=X'"`
// Left empty, the module version recorded by `go install module@version` is used.
var CRCVERIFY_VERSION string

func getBuildSettingOrDefault(bi *debug.BuildInfo, key string, defaultValue string) string {
	if bi == nil {
		return defaultValue
	}

	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}

	return defaultValue
}

// moduleVersion picks the version to report.  A source build outside of a
// module download has "(devel)" as its main module version, which says
// nothing, so that counts as unknown.
func moduleVersion(bi *debug.BuildInfo, ldflagsVersion string) string {
	if ldflagsVersion != "" {
		return ldflagsVersion
	}

	if bi != nil && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	return "!UNKNOWN!"
}

func versionLine(bi *debug.BuildInfo, name string, ldflagsVersion string) string {
	var buildTimeStr = getBuildSettingOrDefault(bi, "vcs.time", "UNKNOWN")

	var (
		buildCommit               = getBuildSettingOrDefault(bi, "vcs.revision", "UNKNOWN")
		buildDirtyStr             = getBuildSettingOrDefault(bi, "vcs.modified", "INVALID")
		buildDirty, buildDirtyErr = strconv.ParseBool(buildDirtyStr)
	)

	if buildDirty {
		buildCommit += "-DIRTY"
	} else if buildDirtyErr != nil {
		buildCommit += "-UNKNOWNDIRTY"
	}

	var module = "unknown module"
	if bi != nil && bi.Main.Path != "" {
		module = bi.Main.Path
	}

	return fmt.Sprintf("%s - Version %s (%s, revision %s, built at %s)",
		name, moduleVersion(bi, ldflagsVersion), module, buildCommit, buildTimeStr)
}

func printVersion(w io.Writer, name string, verbose bool) {
	var buildInfo, _ = debug.ReadBuildInfo()

	fmt.Fprintln(w, versionLine(buildInfo, name, CRCVERIFY_VERSION))

	if verbose {
		fmt.Fprintf(w, "\nBuildInfo: %+v\n", buildInfo)
	}
}
