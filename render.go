package cookbook

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Notices written in place of a recipe that could not be loaded.
const (
	NoticeNotFound     = "Recipe file not found."
	NoticeMalformed    = "Recipe file could not be parsed."
	NoticeEmptySection = "No recipes in this section."
)

// Sink receives the cookbook traversal and builds one output artifact.
// Render calls the methods in document order:
//
//	Begin
//	  SectionHeading
//	    EmptySection                        (section without recipes)
//	    BeginRecipe
//	      RecipeTitle Commentary? Meta
//	      Ingredients Instructions Notes? Attribution?
//	    | BeginRecipe Placeholder           (record missing or unparsable)
//	    EndRecipe                           (page boundary)
//	  EndSection
//	Finish
//
// Only Finish may fail; sinks buffer until then.
type Sink interface {
	Begin(title string)
	SectionHeading(name string)
	EmptySection()
	EndSection()
	BeginRecipe(id string)
	RecipeTitle(title string)
	Commentary(text string)
	Meta(prepTime, cookTime, servings string)
	Ingredients(groups []Group)
	// Instructions numbers steps from 1 within each group.
	Instructions(groups []Group)
	Notes(notes []string)
	Attribution(text string)
	Placeholder(id, notice string)
	EndRecipe()
	Finish(ctx context.Context, w io.Writer) error
}

// Document is what Render walks: a title, the section order, and where
// records come from.
type Document struct {
	Title     string
	Structure *Structure
	Loader    RecordLoader
}

// RenderStats counts what a traversal produced.
type RenderStats struct {
	Sections     int      `json:"sections"`
	Recipes      int      `json:"recipes"`
	Placeholders int      `json:"placeholders"`
	Missing      []string `json:"missing,omitempty"`
	Malformed    []string `json:"malformed,omitempty"`
}

// Render walks doc in manifest order and feeds sink. Missing and unparsable
// records become placeholders; any other loader error aborts the run. The
// sink is not finished.
func Render(ctx context.Context, doc Document, sink Sink) (*RenderStats, error) {
	return render(ctx, doc, sink, zap.NewNop())
}

func render(ctx context.Context, doc Document, sink Sink, log *zap.Logger) (*RenderStats, error) {
	if doc.Structure == nil {
		return nil, ErrNilStructure
	}
	if doc.Loader == nil {
		return nil, ErrNilLoader
	}

	stats := &RenderStats{}
	sink.Begin(doc.Title)

	for _, section := range doc.Structure.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stats.Sections++
		sink.SectionHeading(section.Name)
		if len(section.Recipes) == 0 {
			sink.EmptySection()
		}

		for _, id := range section.Recipes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			raw, err := doc.Loader.Load(id)
			sink.BeginRecipe(id)
			switch {
			case err == nil:
				writeRecipe(sink, Normalize(raw))
				stats.Recipes++
				log.Debug("rendered recipe", zap.String("id", id), zap.String("section", section.Name))
			case errors.Is(err, ErrRecordNotFound):
				sink.Placeholder(id, NoticeNotFound)
				stats.Placeholders++
				stats.Missing = append(stats.Missing, id)
				log.Warn("recipe file not found", zap.String("id", id), zap.String("section", section.Name))
			case errors.Is(err, ErrRecordParse):
				sink.Placeholder(id, NoticeMalformed)
				stats.Placeholders++
				stats.Malformed = append(stats.Malformed, id)
				log.Warn("recipe file could not be parsed", zap.String("id", id), zap.Error(err))
			default:
				return nil, fmt.Errorf("loading recipe %s: %w", id, err)
			}
			sink.EndRecipe()
		}

		sink.EndSection()
	}

	return stats, nil
}

// writeRecipe emits one recipe in the fixed field order. Optional fields are
// skipped when empty.
func writeRecipe(sink Sink, r Recipe) {
	sink.RecipeTitle(r.Title)
	if r.Commentary != "" {
		sink.Commentary(r.Commentary)
	}
	sink.Meta(r.PrepTime, r.CookTime, r.Servings)
	sink.Ingredients(r.Ingredients)
	sink.Instructions(r.Instructions)
	if len(r.Notes) > 0 {
		sink.Notes(r.Notes)
	}
	if r.Attribution != "" {
		sink.Attribution(r.Attribution)
	}
}
