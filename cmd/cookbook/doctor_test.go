package main

// Notes:
// - Tests touching environment variables are not parallel.
// - Chrome detection depends on the host and is only exercised through
//   the ROD_BROWSER_BIN error path.

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	cookbook "github.com/alnah/go-cookbook"
)

// ---------------------------------------------------------------------------
// TestCheckSandbox - Sandbox warning under containers and CI
// ---------------------------------------------------------------------------

func TestCheckSandbox(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		env      envInfo
		wantWarn bool
	}{
		{"container with sandbox", envInfo{Container: true, Sandbox: true}, true},
		{"ci with sandbox", envInfo{CI: true, Sandbox: true}, true},
		{"container without sandbox", envInfo{Container: true}, false},
		{"plain host", envInfo{Sandbox: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := &doctorResult{Env: tt.env}
			checkSandbox(result)
			if got := len(result.Warnings) == 1; got != tt.wantWarn {
				t.Errorf("Warnings = %v, want warning: %v", result.Warnings, tt.wantWarn)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCheckPandoc / TestCheckChrome - Tool detection
// ---------------------------------------------------------------------------

func TestCheckPandoc_NotFoundIsWarning(t *testing.T) {
	t.Parallel()

	result := &doctorResult{Env: envInfo{PandocBin: filepath.Join(t.TempDir(), "no-pandoc")}}
	checkPandoc(result)

	if result.Pandoc.Found {
		t.Error("pandoc should not be found")
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], cookbook.PandocBinEnv) {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestCheckChrome_BadBrowserBinIsError(t *testing.T) {
	t.Parallel()

	bin := filepath.Join(t.TempDir(), "no-chrome")
	result := &doctorResult{Env: envInfo{BrowserBin: bin}}
	checkChrome(result)

	if result.Chrome.Found {
		t.Error("chrome should not be found")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], bin) {
		t.Errorf("Errors = %v", result.Errors)
	}
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", filepath.Join(t.TempDir(), "no-chrome"))

	env, stdout, _ := testEnv()
	code := runDoctorCmd([]string{"--json"}, env)

	if code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if result.Status != "errors" {
		t.Errorf("Status = %q, want errors", result.Status)
	}
	if !result.System.TempWritable {
		t.Error("temp directory should be writable")
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	if code := runDoctorCmd([]string{"--bogus"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "invalid usage") {
		t.Errorf("stderr = %q", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Human-readable output
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *doctorResult
		want   []string
	}{
		{
			name: "ready",
			result: &doctorResult{
				Status: "ready",
				Chrome: toolInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120"},
				Pandoc: toolInfo{Found: true, Path: "/usr/bin/pandoc", Version: "pandoc 3.1"},
				Env:    envInfo{OS: "linux", Arch: "amd64", Sandbox: true},
				System: systemInfo{TempWritable: true},
			},
			want: []string{
				"[OK] Found at /usr/bin/chromium",
				"[OK] Sandbox: enabled",
				"[OK] Version: pandoc 3.1",
				"[OK] Platform: linux/amd64",
				"Status: Ready to render every format",
			},
		},
		{
			name: "warnings",
			result: &doctorResult{
				Status:   "warnings",
				Env:      envInfo{OS: "linux", Arch: "arm64", Container: true, CI: true},
				System:   systemInfo{TempWritable: true},
				Warnings: []string{"pandoc not found"},
			},
			want: []string{
				"pandoc (document)\n  [WARN] Not found",
				"[OK] Container: detected",
				"[OK] CI: detected",
				"[WARN] pandoc not found",
				"Status: Ready with warnings",
			},
		},
		{
			name: "errors",
			result: &doctorResult{
				Status: "errors",
				Errors: []string{"Temp directory not writable: /tmp"},
			},
			want: []string{
				"[ERROR] Temp directory: not writable",
				"[ERROR] Temp directory not writable: /tmp",
				"Status: Not ready",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printDoctorResult(&buf, tt.result)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q\n%s", want, buf.String())
				}
			}
		})
	}
}
