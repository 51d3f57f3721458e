package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid path enables custom loader", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader")
		}
	})

	t.Run("invalid path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles", "default.css", "/* override */")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom style wins", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "/* override */" {
			t.Errorf("LoadStyle() = %q, want custom override", got)
		}
	})

	t.Run("missing custom style falls back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle(PrintStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(got, ".page-break") {
			t.Error("expected embedded print style")
		}
	})

	t.Run("missing custom template falls back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTemplate(SiteTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(got, "recipes-data") {
			t.Error("expected embedded site template")
		}
	})

	t.Run("validation errors do not fall back", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadStyle("../x"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("unknown everywhere is not found", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadTemplate("nowhere"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})
}

func TestAssetResolver_Names(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles", "default.css", "")
	writeAsset(t, tmpDir, "styles", "rustic.css", "")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	got, err := resolver.Names(Style)
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if want := "default,print,rustic"; strings.Join(got, ",") != want {
		t.Errorf("Names(Style) = %v, want %s", got, want)
	}
}
