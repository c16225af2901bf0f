package catalog

import "context"

// FoodFilter filtra el catálogo de alimentos. Campos vacíos = sin filtro.
type FoodFilter struct {
	Species TargetSpecies
	Type    string // match exacto case-insensitive
	Name    string // substring case-insensitive
	ID      string
}

type FoodRepository interface {
	ListFoods(ctx context.Context, filter FoodFilter) ([]FoodItem, error)
}

type BreedRepository interface {
	// FindBreeds busca razas por substring case-insensitive en name/common/official.
	FindBreeds(ctx context.Context, query string) ([]Breed, error)
}

// Repository es un catálogo completo; todos los adapters de storage lo implementan.
type Repository interface {
	FoodRepository
	BreedRepository
}
