package diet

import (
	"context"
	"math"
	"sort"
	"strings"

	"pet-diet-planner/internal/domain/catalog"
	"pet-diet-planner/internal/platform/logger"
)

const healthyWindow = 3

// FoodSelector elige un alimento del catálogo y calcula la porción en gramos.
type FoodSelector struct {
	foods catalog.FoodRepository
	log   logger.Logger
}

func NewFoodSelector(foods catalog.FoodRepository, log logger.Logger) *FoodSelector {
	if log == nil {
		log = logger.Nop()
	}
	return &FoodSelector{foods: foods, log: log}
}

// Candidates = alimentos de la especie ∪ alimentos "both", filtrados por tipo si viene.
// Especie no reconocida => solo "both".
func (s *FoodSelector) Candidates(ctx context.Context, species, preferredType string) ([]catalog.FoodItem, error) {
	if s == nil || s.foods == nil {
		return nil, nil
	}
	preferredType = strings.TrimSpace(preferredType)

	targets := []catalog.TargetSpecies{catalog.TargetBoth}
	if t, ok := catalog.SpeciesTarget(species); ok {
		targets = []catalog.TargetSpecies{t, catalog.TargetBoth}
	}

	seen := map[string]struct{}{}
	out := make([]catalog.FoodItem, 0)
	for _, t := range targets {
		items, err := s.foods.ListFoods(ctx, catalog.FoodFilter{Species: t, Type: preferredType})
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if _, dup := seen[it.ID]; dup {
				continue
			}
			seen[it.ID] = struct{}{}
			out = append(out, it)
		}
	}
	return out, nil
}

// Selection es el resultado de FoodSelector.Select.
type Selection struct {
	Item         catalog.FoodItem
	PortionGrams *int
}

// Select elige alimento y porción. Un error del catálogo se loguea y equivale a
// pool vacío (found=false): la selección simplemente se saltea.
func (s *FoodSelector) Select(ctx context.Context, species, preferredType string, cond Condition, identityKey string, targetKcal *int) (Selection, bool) {
	pool, err := s.Candidates(ctx, species, preferredType)
	if err != nil {
		s.log.Warn("food catalog query failed", map[string]any{
			"species": species,
			"type":    preferredType,
			"error":   err,
		})
		return Selection{}, false
	}

	item, ok := PickFood(pool, cond, identityKey)
	if !ok {
		return Selection{}, false
	}
	return Selection{Item: item, PortionGrams: PortionGrams(targetKcal, item)}, true
}

// FindByID busca un alimento del pool (para drafts que ya traen food_id).
func (s *FoodSelector) FindByID(ctx context.Context, id string) (catalog.FoodItem, bool) {
	if s == nil || s.foods == nil || strings.TrimSpace(id) == "" {
		return catalog.FoodItem{}, false
	}
	items, err := s.foods.ListFoods(ctx, catalog.FoodFilter{ID: id})
	if err != nil {
		s.log.Warn("food lookup by id failed", map[string]any{"food_id": id, "error": err})
		return catalog.FoodItem{}, false
	}
	if len(items) == 0 {
		return catalog.FoodItem{}, false
	}
	return items[0], true
}

// PickFood es la elección pura y determinística.
//   - over:  tramo de menor kcal/100g
//   - under: tramo de mayor kcal/100g
//   - healthy/undetermined: ventana de ~3 centrada en la mediana
//
// Sin kcal conocidas se usa el pool completo. El índice final es Seed(key) % len.
func PickFood(pool []catalog.FoodItem, cond Condition, identityKey string) (catalog.FoodItem, bool) {
	if len(pool) == 0 {
		return catalog.FoodItem{}, false
	}

	known := make([]catalog.FoodItem, 0, len(pool))
	for _, it := range pool {
		if it.HasKcal() {
			known = append(known, it)
		}
	}

	candidates := pool
	if len(known) > 0 {
		sort.SliceStable(known, func(i, j int) bool {
			return *known[i].KcalPer100g < *known[j].KcalPer100g
		})

		switch cond {
		case ConditionOver:
			candidates = tier(known, *known[0].KcalPer100g)
		case ConditionUnder:
			candidates = tier(known, *known[len(known)-1].KcalPer100g)
		default:
			candidates = middleWindow(known, healthyWindow)
		}
	}

	return candidates[Seed(identityKey)%len(candidates)], true
}

func tier(sorted []catalog.FoodItem, kcal float64) []catalog.FoodItem {
	out := make([]catalog.FoodItem, 0, 1)
	for _, it := range sorted {
		if *it.KcalPer100g == kcal {
			out = append(out, it)
		}
	}
	return out
}

func middleWindow(sorted []catalog.FoodItem, size int) []catalog.FoodItem {
	n := len(sorted)
	if n <= size {
		return sorted
	}
	start := n/2 - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > n {
		end = n
		start = n - size
	}
	return sorted[start:end]
}

// PortionGrams = round(kcal objetivo / (kcal_100g / 100)). nil si falta algún dato.
func PortionGrams(targetKcal *int, item catalog.FoodItem) *int {
	if targetKcal == nil || *targetKcal <= 0 || !item.HasKcal() {
		return nil
	}
	g := int(math.Round(float64(*targetKcal) / (*item.KcalPer100g / 100)))
	if g <= 0 {
		return nil
	}
	return &g
}

// MonthlyCost estima el costo mensual (30 días) si hay porción y precio por kg.
func MonthlyCost(portionGrams *int, item catalog.FoodItem) *float64 {
	if portionGrams == nil || item.PricePerKg == nil || *item.PricePerKg <= 0 {
		return nil
	}
	kgPerMonth := float64(*portionGrams) * 30 / 1000
	c := math.Round(kgPerMonth*(*item.PricePerKg)*100) / 100
	return &c
}
