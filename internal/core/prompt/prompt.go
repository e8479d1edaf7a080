// Package prompt builds the natural-language request sent to the generation
// service.
package prompt

import (
	"text/template"

	"github.com/hay-kot/chefhat/internal/core/language"
	"github.com/hay-kot/chefhat/pkg/tmpl"
)

// RecipeCount is the number of recipes every prompt asks for.
const RecipeCount = 3

const (
	englishTemplate = `My ingredients are: {{ .Ingredients }}. Please suggest {{ .Count }} recipes that can be made with these ingredients and write a short recipe for each. Please respond in English.`
	turkishTemplate = `Elimdeki malzemeler: {{ .Ingredients }}. Bu malzemelerle yapılabilecek {{ .Count }} yemek tarifi öner ve her biri için kısa bir tarif yaz. Lütfen Türkçe yanıt ver.`
)

var templates = map[language.Code]*template.Template{
	language.English: mustParse(englishTemplate),
	language.Turkish: mustParse(turkishTemplate),
}

type data struct {
	Ingredients string
	Count       int
}

// Build returns the prompt requesting RecipeCount recipes from the given
// ingredients, phrased in lang. Unsupported languages use English. The
// ingredients are inserted verbatim.
func Build(ingredients string, lang language.Code) string {
	t, ok := templates[lang]
	if !ok {
		t = templates[language.English]
	}

	out, err := tmpl.Execute(t, data{Ingredients: ingredients, Count: RecipeCount})
	if err != nil {
		// Both templates only reference fields of data.
		panic(err)
	}
	return out
}

func mustParse(s string) *template.Template {
	t, err := tmpl.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}
