package recipe

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/christinemirimba/VibeCodingHackathon/domain"
)

// generatedRecipeCount is the number of recipes the model is asked for per
// request. The reply may contain fewer; it must contain at least one.
const generatedRecipeCount = 3

// generatedRecipePayload is the agreed output contract with the model: a
// single JSON array of these objects and nothing else.
type generatedRecipePayload struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Ingredients  []string               `json:"ingredients"`
	Instructions []string               `json:"instructions"`
	Nutrition    *domain.NutritionFacts `json:"nutrition,omitempty"`
}

// buildPrompt produces a deterministic instruction for the model from the
// ingredient list and the free/premium branch.
func buildPrompt(ingredients []string, premium bool) string {
	list := strings.Join(ingredients, ", ")

	var b strings.Builder
	if premium {
		fmt.Fprintf(&b,
			"Suggest %d premium, professional-grade recipes with a Kenyan twist using the following ingredients: %s. "+
				"Provide detailed nutritional information for each recipe. ",
			generatedRecipeCount, list)
	} else {
		fmt.Fprintf(&b,
			"Suggest %d simple, easy-to-make recipes with the following ingredients: %s. ",
			generatedRecipeCount, list)
	}

	fmt.Fprintf(&b,
		"Respond with a single valid JSON array of exactly %d recipe objects. "+
			"Each object must have these fields: \"title\" (string), \"description\" (string), "+
			"\"ingredients\" (array of strings), \"instructions\" (array of strings) and "+
			"\"nutrition\" (object with integer fields \"calories\", \"protein\", \"carbohydrates\" and \"fat\"). "+
			"Do not include any explanations, markdown or text outside of the JSON array.",
		generatedRecipeCount)

	return b.String()
}

// parseGeneratedRecipes converts the model's reply into recipe payloads.
// The reply must be the agreed JSON array, optionally wrapped in a markdown
// code fence; anything else is rejected. The reply text is never evaluated,
// only decoded.
func parseGeneratedRecipes(raw string) ([]generatedRecipePayload, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, fmt.Errorf("empty model reply")
	}

	decoder := json.NewDecoder(strings.NewReader(cleaned))
	var payloads []generatedRecipePayload
	if err := decoder.Decode(&payloads); err != nil {
		return nil, fmt.Errorf("reply is not a valid JSON array: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("reply contains trailing content after the JSON array")
	}

	if len(payloads) == 0 {
		return nil, fmt.Errorf("reply contains no recipes")
	}
	if len(payloads) > generatedRecipeCount {
		return nil, fmt.Errorf("reply contains %d recipes, expected at most %d", len(payloads), generatedRecipeCount)
	}

	for i, payload := range payloads {
		if strings.TrimSpace(payload.Title) == "" {
			return nil, fmt.Errorf("recipe %d is missing a title", i)
		}
		if len(payload.Ingredients) == 0 {
			return nil, fmt.Errorf("recipe %d has no ingredients", i)
		}
		if len(payload.Instructions) == 0 {
			return nil, fmt.Errorf("recipe %d has no instructions", i)
		}
	}

	return payloads, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
