package diet

import (
	"math"
	"strings"
	"unicode"

	"pet-diet-planner/internal/domain/catalog"
)

const (
	rerFactor   = 70.0
	rerExponent = 0.75

	dogMultiplier   = 1.6
	otherMultiplier = 1.2

	lossCap   = 0.80
	gainFloor = 1.20
)

// GoalDirection clasifica el texto del objetivo.
type GoalDirection int

const (
	GoalNeutral GoalDirection = iota
	GoalLoss
	GoalGain
)

// Raíces que se comparan contra el inicio de cada palabra del objetivo.
// "masa"/"mass" solos no indican aumento ("mantener masa muscular").
var (
	lossStems   = []string{"perder", "bajar", "adelgaz", "lose", "loss", "losing", "slim"}
	gainStems   = []string{"ganar", "subir", "aumentar", "engord", "gain", "bulk"}
	reduceStems = []string{"reduc"}
	weightWords = []string{"peso", "weight"}
)

// ParseGoal detecta si el objetivo habla de bajar o subir de peso (es/en).
// Si aparecen ambos, gana pérdida.
func ParseGoal(goal string) GoalDirection {
	words := goalWords(goal)
	if len(words) == 0 {
		return GoalNeutral
	}
	for i, w := range words {
		if hasStem(w, lossStems) {
			return GoalLoss
		}
		// "reducir peso", "reducción de peso", "reduce weight"
		if hasStem(w, reduceStems) && weightFollows(words[i+1:]) {
			return GoalLoss
		}
	}
	for _, w := range words {
		if hasStem(w, gainStems) {
			return GoalGain
		}
	}
	return GoalNeutral
}

func goalWords(goal string) []string {
	return strings.FieldsFunc(strings.ToLower(goal), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func hasStem(word string, stems []string) bool {
	for _, s := range stems {
		if strings.HasPrefix(word, s) {
			return true
		}
	}
	return false
}

// weightFollows acepta "peso" inmediato o tras "de".
func weightFollows(rest []string) bool {
	if len(rest) > 0 && rest[0] == "de" {
		rest = rest[1:]
	}
	return len(rest) > 0 && hasStem(rest[0], weightWords)
}

// RER = 70 * kg^0.75
func RER(weightKg float64) float64 {
	return rerFactor * math.Pow(weightKg, rerExponent)
}

func speciesMultiplier(species string) float64 {
	if catalog.IsDogLike(species) {
		return dogMultiplier
	}
	return otherMultiplier
}

func conditionAdjustment(cond Condition, goal string) float64 {
	adj := 1.0
	switch cond {
	case ConditionOver:
		adj = 0.85
	case ConditionUnder:
		adj = 1.15
	}

	// el objetivo solo puede empujar en su propia dirección
	switch ParseGoal(goal) {
	case GoalLoss:
		adj = math.Min(adj, lossCap)
	case GoalGain:
		adj = math.Max(adj, gainFloor)
	}
	return adj
}

// EstimateDailyCalories devuelve kcal/día redondeadas, o false si no hay peso (>0).
func EstimateDailyCalories(species string, weightKg *float64, cond Condition, goal string) (int, bool) {
	if weightKg == nil || *weightKg <= 0 {
		return 0, false
	}
	kcal := RER(*weightKg) * speciesMultiplier(species) * conditionAdjustment(cond, goal)
	return int(math.Round(kcal)), true
}
