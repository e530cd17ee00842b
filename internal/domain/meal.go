package domain

import "github.com/shopspring/decimal"

// Meal sections in display order.
const (
	SectionBreakfast       = "Breakfast"
	SectionSecondBreakfast = "Second Breakfast"
	SectionLunch           = "Lunch"
	SectionDinner          = "Dinner"
)

// DefaultMealName is used when a meal is saved without a name.
const DefaultMealName = "Unnamed meal"

var mealSections = []string{SectionBreakfast, SectionSecondBreakfast, SectionLunch, SectionDinner}

// MealSections returns the meal sections in display order.
func MealSections() []string {
	return append([]string{}, mealSections...)
}

// ValidSection reports whether s is a known meal section.
func ValidSection(s string) bool {
	for _, sec := range mealSections {
		if sec == s {
			return true
		}
	}
	return false
}

// Macros holds the tracked nutritional quantities.
type Macros struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fat      float64 `json:"fat" yaml:"fat"`
}

// Meal is one logged meal.
type Meal struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Section string `json:"section" yaml:"section"`
	Macros  `yaml:",inline"`
}

// DefaultMacroGoals are the daily targets used when none are configured.
var DefaultMacroGoals = Macros{Calories: 2500, Protein: 180, Carbs: 250, Fat: 70}

// MealTotals sums every macro across meals.
func MealTotals(meals []Meal) Macros {
	var t Macros
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fat += m.Fat
	}
	return t
}

// MealProgress returns totals/goals per macro clamped to [0, 1] and rounded
// to two decimal places.
func MealProgress(totals, goals Macros) Macros {
	return Macros{
		Calories: ratio(totals.Calories, goals.Calories),
		Protein:  ratio(totals.Protein, goals.Protein),
		Carbs:    ratio(totals.Carbs, goals.Carbs),
		Fat:      ratio(totals.Fat, goals.Fat),
	}
}

func ratio(sum, goal float64) float64 {
	if goal <= 0 || sum <= 0 {
		return 0
	}
	r := decimal.NewFromFloat(sum).Div(decimal.NewFromFloat(goal))
	if r.GreaterThan(decimal.NewFromInt(1)) {
		return 1
	}
	return r.Round(2).InexactFloat64()
}
