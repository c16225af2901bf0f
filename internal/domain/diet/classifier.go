package diet

import (
	"context"
	"strings"

	"pet-diet-planner/internal/domain/catalog"
	"pet-diet-planner/internal/platform/logger"
)

// Classifier resuelve el rango saludable de la raza y clasifica la condición de peso.
type Classifier struct {
	breeds catalog.BreedRepository
	log    logger.Logger
}

func NewClassifier(breeds catalog.BreedRepository, log logger.Logger) *Classifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Classifier{breeds: breeds, log: log}
}

// ResolveRange busca la raza por substring case-insensitive y toma el primer match.
// Si la especie se reconoce, se prefiere el primer match de esa especie.
// found=false sin error => no hay datos; err != nil => falló el catálogo.
func (c *Classifier) ResolveRange(ctx context.Context, species, breed string) (catalog.BreedWeightRange, bool, error) {
	breed = strings.TrimSpace(breed)
	if breed == "" || c == nil || c.breeds == nil {
		return catalog.BreedWeightRange{}, false, nil
	}

	rows, err := c.breeds.FindBreeds(ctx, breed)
	if err != nil {
		return catalog.BreedWeightRange{}, false, err
	}
	if len(rows) == 0 {
		return catalog.BreedWeightRange{}, false, nil
	}

	pick := rows[0]
	if target, ok := catalog.SpeciesTarget(species); ok {
		for _, b := range rows {
			if b.Species == target {
				pick = b
				break
			}
		}
	}

	r := pick.Range()
	if r.MinKg <= 0 || r.MaxKg <= 0 || r.MinKg > r.MaxKg {
		return catalog.BreedWeightRange{}, false, nil
	}
	return r, true, nil
}

// Classify resuelve el rango y clasifica. Nunca falla: un error del catálogo
// se loguea y se trata como "sin rango".
func (c *Classifier) Classify(ctx context.Context, species, breed string, weightKg *float64) (Condition, *catalog.BreedWeightRange) {
	r, found, err := c.ResolveRange(ctx, species, breed)
	if err != nil {
		c.log.Warn("breed range lookup failed", map[string]any{
			"breed": breed,
			"error": err,
		})
	}
	if !found {
		return ClassifyWeight(weightKg, nil), nil
	}
	return ClassifyWeight(weightKg, &r), &r
}

// ClassifyWeight es la clasificación pura: over / under / healthy / undetermined.
func ClassifyWeight(weightKg *float64, r *catalog.BreedWeightRange) Condition {
	if weightKg == nil || *weightKg <= 0 || r == nil {
		return ConditionUndetermined
	}
	w := *weightKg
	switch {
	case w > r.MaxKg:
		return ConditionOver
	case w < r.MinKg:
		return ConditionUnder
	default:
		return ConditionHealthy
	}
}
