package cookbook

import (
	"errors"
	"strings"
	"testing"
)

func TestScaffoldRecipe(t *testing.T) {
	t.Parallel()

	data, err := ScaffoldRecipe("chicken_soup")
	if err != nil {
		t.Fatalf("ScaffoldRecipe() error = %v", err)
	}

	for _, want := range []string{"title: Chicken Soup", `prep_time: ""`, `cook_time: ""`, `servings: ""`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("scaffold missing %q:\n%s", want, data)
		}
	}

	raw, err := ParseRecipe("chicken_soup", data)
	if err != nil {
		t.Fatalf("scaffold does not parse: %v", err)
	}
	if !raw.IsPlaceholder() {
		t.Error("scaffolded record should classify as a placeholder")
	}
	if raw.Title != "Chicken Soup" {
		t.Errorf("Title = %q, want %q", raw.Title, "Chicken Soup")
	}
}

func TestScaffoldRecipe_InvalidID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "a/b", "../x"} {
		if _, err := ScaffoldRecipe(id); !errors.Is(err, ErrInvalidRecipeID) {
			t.Errorf("ScaffoldRecipe(%q) error = %v, want ErrInvalidRecipeID", id, err)
		}
	}
}

func TestTitleFromID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{"soup", "Soup"},
		{"chicken_noodle-soup", "Chicken Noodle Soup"},
		{"__pad__", "Pad"},
		{"crème_brûlée", "Crème Brûlée"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			if got := TitleFromID(tt.id); got != tt.want {
				t.Errorf("TitleFromID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}
