package diet

import (
	"encoding/json"
	"fmt"

	"pet-diet-planner/internal/domain/catalog"
)

// DraftContext es el contexto enriquecido que se serializa en el prompt.
type DraftContext struct {
	Animal       AnimalProfile
	Preferences  Preferences
	Input        UserInput
	Condition    Condition
	BreedRange   *catalog.BreedWeightRange
	CaloriesHint *int
	Today        string
}

const draftInstructions = `You are a veterinary nutrition assistant helping a clinic draft a diet plan for one pet.

Respond with ONE pure JSON object and nothing else: no markdown, no code fences, no prose.
Use exactly these fields (omit a field or use null when unsure):
{
  "name": string,            // short plan title
  "food_type": string,       // e.g. dry, wet, mixed, barf
  "goal": string,
  "start_date": "YYYY-MM-DD",
  "end_date": "YYYY-MM-DD" or null,
  "status": "proposed",
  "meals_per_day": integer >= 1,
  "daily_calories": integer or null,
  "monthly_cost": number or null,
  "food_id": string or null,  // only ids present in the clinic catalog
  "portion_grams": integer or null,
  "schedule": ["HH:MM", ...],
  "justification": string     // why this plan fits the animal
}

Safety rules:
- Never estimate grams or calories without a known body weight; use null instead.
- When "daily_calories_hint" is present, stay close to it unless the request overrides calories.
- Respect the weight condition: do not propose caloric surplus for an overweight animal or a deficit for an underweight one.
- Never include foods listed as disliked, and never suggest foods toxic to the species (grapes, onion, chocolate, xylitol, etc.).
- Keep meal times between 06:00 and 22:00 unless the request schedule says otherwise.
- If information is missing, choose conservative maintenance values and say so in the justification.`

type promptAnimal struct {
	ID       string   `json:"id"`
	Species  string   `json:"species"`
	Name     string   `json:"name,omitempty"`
	Breed    string   `json:"breed,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
}

type promptPreferences struct {
	Goal              string   `json:"goal,omitempty"`
	LikedFoods        []string `json:"liked_foods,omitempty"`
	DislikedFoods     []string `json:"disliked_foods,omitempty"`
	PreferredFoodType string   `json:"preferred_food_type,omitempty"`
}

type promptRequest struct {
	Goal          *string  `json:"goal,omitempty"`
	MealsPerDay   *int     `json:"meals_per_day,omitempty"`
	FoodType      *string  `json:"food_type,omitempty"`
	MonthlyBudget *float64 `json:"monthly_budget,omitempty"`
	DailyCalories *int     `json:"daily_calories,omitempty"`
	Schedule      any      `json:"schedule,omitempty"`
	StartDate     *string  `json:"start_date,omitempty"`
	EndDate       *string  `json:"end_date,omitempty"`
}

type promptRange struct {
	Breed string  `json:"breed"`
	MinKg float64 `json:"min_kg"`
	MaxKg float64 `json:"max_kg"`
}

type promptEnriched struct {
	WeightCondition   Condition    `json:"weight_condition"`
	HealthyRange      *promptRange `json:"healthy_weight_range,omitempty"`
	DailyCaloriesHint *int         `json:"daily_calories_hint,omitempty"`
	Today             string       `json:"today"`
}

type promptContext struct {
	Animal      promptAnimal      `json:"animal"`
	Preferences promptPreferences `json:"preferences"`
	Request     promptRequest     `json:"request"`
	Enriched    promptEnriched    `json:"enriched"`
}

// BuildPrompt combina instrucciones fijas + contexto JSON.
func BuildPrompt(dc DraftContext) (string, error) {
	pc := promptContext{
		Animal: promptAnimal{
			ID:       dc.Animal.ID,
			Species:  dc.Animal.Species,
			Name:     dc.Animal.Name,
			Breed:    dc.Animal.Breed,
			WeightKg: dc.Animal.WeightKg,
		},
		Preferences: promptPreferences{
			Goal:              dc.Preferences.Goal,
			LikedFoods:        dc.Preferences.LikedFoods,
			DislikedFoods:     dc.Preferences.DislikedFoods,
			PreferredFoodType: dc.Preferences.PreferredFoodType,
		},
		Request: promptRequest{
			Goal:          dc.Input.Goal,
			MealsPerDay:   dc.Input.MealsPerDay,
			FoodType:      dc.Input.FoodType,
			MonthlyBudget: dc.Input.MonthlyBudget,
			DailyCalories: dc.Input.DailyCalories,
			Schedule:      dc.Input.Schedule,
			StartDate:     dc.Input.StartDate,
			EndDate:       dc.Input.EndDate,
		},
		Enriched: promptEnriched{
			WeightCondition:   dc.Condition,
			DailyCaloriesHint: dc.CaloriesHint,
			Today:             dc.Today,
		},
	}
	if _, ok := dc.Animal.Weight(); !ok {
		pc.Animal.WeightKg = nil
	}
	if dc.BreedRange != nil {
		pc.Enriched.HealthyRange = &promptRange{
			Breed: dc.BreedRange.Breed,
			MinKg: dc.BreedRange.MinKg,
			MaxKg: dc.BreedRange.MaxKg,
		}
	}

	b, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal prompt context: %w", err)
	}
	return draftInstructions + "\n\nCONTEXT:\n" + string(b), nil
}
