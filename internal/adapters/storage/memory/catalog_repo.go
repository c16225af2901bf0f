package memory

import (
	"context"
	"strings"
	"sync"

	"pet-diet-planner/internal/domain/catalog"
)

// CatalogRepo sirve alimentos y razas desde memoria.
// Implementa catalog.FoodRepository y catalog.BreedRepository.
type CatalogRepo struct {
	mu     sync.RWMutex
	foods  []catalog.FoodItem
	breeds []catalog.Breed
}

func NewCatalogRepo(foods []catalog.FoodItem, breeds []catalog.Breed) *CatalogRepo {
	r := &CatalogRepo{}
	r.Replace(foods, breeds)
	return r
}

// Replace cambia el catálogo completo (recarga de seed).
func (r *CatalogRepo) Replace(foods []catalog.FoodItem, breeds []catalog.Breed) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.foods = append([]catalog.FoodItem(nil), foods...)
	r.breeds = append([]catalog.Breed(nil), breeds...)
}

func (r *CatalogRepo) ListFoods(ctx context.Context, f catalog.FoodFilter) ([]catalog.FoodItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(strings.TrimSpace(f.Name))
	typ := strings.TrimSpace(f.Type)

	// Orden de inserción (el orden del seed)
	out := make([]catalog.FoodItem, 0)
	for _, it := range r.foods {
		if f.ID != "" && it.ID != f.ID {
			continue
		}
		if f.Species != "" && it.Species != f.Species {
			continue
		}
		if typ != "" && !strings.EqualFold(it.Type, typ) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(it.Name), name) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *CatalogRepo) FindBreeds(ctx context.Context, query string) ([]catalog.Breed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Breed, 0)
	for _, b := range r.breeds {
		if b.Matches(query) {
			out = append(out, b)
		}
	}
	return out, nil
}
