package assets

import (
	"errors"
	"testing"
)

func TestKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     Kind
		str      string
		file     string
		notFound error
	}{
		{Style, "style", "styles/x.css", ErrStyleNotFound},
		{Template, "template", "templates/x.html", ErrTemplateNotFound},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.kind.file("x"); got != tt.file {
			t.Errorf("%v.file(x) = %q, want %q", tt.kind, got, tt.file)
		}
		if got := tt.kind.notFound(); got != tt.notFound {
			t.Errorf("%v.notFound() = %v, want %v", tt.kind, got, tt.notFound)
		}
	}

	if got := Kind(9).String(); got != "Kind(9)" {
		t.Errorf("String() = %q, want Kind(9)", got)
	}
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "default", false},
		{"hyphenated name", "my-style", false},
		{"underscored name", "my_style", false},
		{"empty", "", true},
		{"forward slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"dot", "a.b", true},
		{"traversal", "..", true},
		{"nul byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}
