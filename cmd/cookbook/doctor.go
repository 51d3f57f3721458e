package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	cookbook "github.com/alnah/go-cookbook"
	"github.com/alnah/go-cookbook/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is what doctor prints, or encodes with --json.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   toolInfo   `json:"chrome"`
	Pandoc   toolInfo   `json:"pandoc"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo describes an external program one output format depends on.
type toolInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Container  bool   `json:"container"`
	CI         bool   `json:"ci"`
	Sandbox    bool   `json:"sandbox"`
	BrowserBin string `json:"rod_browser_bin"`
	PandocBin  string `json:"pandoc_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd checks what rendering needs and returns ExitGeneral when
// something is broken. A missing Chrome or pandoc only costs one format,
// so it is a warning.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", usageError(err))
		return ExitUsage
	}

	result := runDoctor()
	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor() *doctorResult {
	result := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Container:  hints.InContainer(),
			CI:         hints.InCI(),
			Sandbox:    os.Getenv("ROD_NO_SANDBOX") != "1",
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
			PandocBin:  os.Getenv(cookbook.PandocBinEnv),
		},
	}

	for _, check := range []func(*doctorResult){checkChrome, checkPandoc, checkSandbox, checkSystem} {
		check(result)
	}

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	default:
		result.Status = statusReady
	}
	return result
}

// checkChrome looks for the browser used by pdf output. An explicit
// ROD_BROWSER_BIN that does not exist is an error since rendering would fail.
func checkChrome(result *doctorResult) {
	path := result.Env.BrowserBin
	if path == "" {
		var found bool
		if path, found = launcher.LookPath(); !found {
			result.warn("Chrome/Chromium not found: pdf output will download Chromium on first use, or set ROD_BROWSER_BIN")
			return
		}
	}
	if _, err := os.Stat(path); err != nil {
		result.fail("Chrome not found at %s", path)
		return
	}
	result.Chrome = probeVersion(result, "Chrome", path)
}

// checkPandoc looks for the pandoc executable used by document output.
func checkPandoc(result *doctorResult) {
	bin := result.Env.PandocBin
	if bin == "" {
		bin = "pandoc"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		result.warn("pandoc not found (%s): document output unavailable, install pandoc or set %s",
			bin, cookbook.PandocBinEnv)
		return
	}
	result.Pandoc = probeVersion(result, "pandoc", path)
}

// probeVersion runs "path --version" and keeps the first output line.
func probeVersion(result *doctorResult, name, path string) toolInfo {
	info := toolInfo{Found: true, Path: path}
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- resolved tool path
	if err != nil {
		result.warn("Could not get %s version: %v", name, err)
		return info
	}
	info.Version, _, _ = strings.Cut(strings.TrimSpace(string(out)), "\n")
	return info
}

// checkSandbox flags Chrome's sandbox where it usually cannot start.
func checkSandbox(result *doctorResult) {
	if (result.Env.Container || result.Env.CI) && result.Env.Sandbox {
		result.warn("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkSystem verifies the temp directory used for print and pandoc files.
func checkSystem(result *doctorResult) {
	dir := os.TempDir()
	probe := filepath.Join(dir, "cookbook-doctor-test")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		result.fail("Temp directory not writable: %s", dir)
		return
	}
	_ = os.Remove(probe)
	result.System.TempWritable = true
}

// printDoctorResult writes the human-readable report.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprint(w, "cookbook doctor\n\n")

	printTool(w, "Chrome/Chromium (pdf)", r.Chrome)
	if r.Chrome.Found {
		if r.Env.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	}
	fmt.Fprintln(w)

	printTool(w, "pandoc (document)", r.Pandoc)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	printList(w, "Warnings:", "WARN", r.Warnings)
	printList(w, "Errors:", "ERROR", r.Errors)

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to render every format")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printTool(w io.Writer, title string, t toolInfo) {
	fmt.Fprintln(w, title)
	if !t.Found {
		fmt.Fprintln(w, "  [WARN] Not found")
		return
	}
	fmt.Fprintf(w, "  [OK] Found at %s\n", t.Path)
	if t.Version != "" {
		fmt.Fprintf(w, "  [OK] Version: %s\n", t.Version)
	}
}

func printList(w io.Writer, title, tag string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, line := range lines {
		fmt.Fprintf(w, "  [%s] %s\n", tag, line)
	}
	fmt.Fprintln(w)
}
