// Package hints builds the actionable suffixes the CLI appends to error
// messages. Every hint has the form "\n  hint: <text>"; an empty string
// means there is nothing useful to add.
package hints

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-cookbook/internal/fileutil"
)

const pandocBinEnv = "COOKBOOK_PANDOC_BIN"

// InContainer reports whether the process runs in Docker. Replaced in tests.
var InContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a CI system is driving the process. Replaced in tests.
var InCI = func() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod variables that usually fix a failed
// Chrome launch: no sandbox under CI or containers, an explicit binary
// otherwise.
func ForBrowserConnect() string {
	var parts []string
	if (InCI() || InContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return format(strings.Join(parts, "; "))
}

// ForTimeout points at the timeout knobs.
func ForTimeout() string {
	return format("for large cookbooks, use --timeout flag or COOKBOOK_TIMEOUT")
}

// ForPandocNotFound points at the pandoc installer, and at the binary
// override when it is unset.
func ForPandocNotFound() string {
	hint := "install pandoc (https://pandoc.org/installing.html)"
	if os.Getenv(pandocBinEnv) == "" {
		hint += " or set " + pandocBinEnv
	}
	return format(hint)
}

func ForManifestNotFound(path string) string {
	return format("create " + path + " or pass --structure /path/to/structure.yaml")
}

// ForMissingRecipes suggests scaffolding when count declared recipes have
// no file.
func ForMissingRecipes(count int) string {
	switch {
	case count <= 0:
		return ""
	case count == 1:
		return format("run 'cookbook scaffold --missing' to create a stub recipe file")
	}
	return format(fmt.Sprintf("run 'cookbook scaffold --missing' to create %d stub recipe files", count))
}

// ForConfigNotFound suggests --config, plus the first per-user location
// among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), ".config/go-cookbook") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the styles that do exist.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func slashed(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
