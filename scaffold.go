package cookbook

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/alnah/go-cookbook/internal/yamlutil"
)

// recipeTemplate is the record written for a recipe that has no file yet.
// Empty timing and servings mark it as an unfilled template.
type recipeTemplate struct {
	Title        string   `yaml:"title"`
	PrepTime     string   `yaml:"prep_time"`
	CookTime     string   `yaml:"cook_time"`
	Servings     string   `yaml:"servings"`
	Ingredients  []string `yaml:"ingredients"`
	Instructions []string `yaml:"instructions"`
	Notes        string   `yaml:"notes"`
}

// ScaffoldRecipe returns a template record for id, titled after the id.
func ScaffoldRecipe(id string) ([]byte, error) {
	if err := ValidateRecipeID(id); err != nil {
		return nil, err
	}
	data, err := yamlutil.Marshal(recipeTemplate{
		Title:        TitleFromID(id),
		Ingredients:  []string{},
		Instructions: []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("scaffolding %s: %w", id, err)
	}
	return data, nil
}

// TitleFromID turns "chicken_noodle-soup" into "Chicken Noodle Soup".
func TitleFromID(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
