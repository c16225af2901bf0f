// Package catalogseed carga catálogos de alimentos y razas desde YAML.
// Lo usan los stores memory y sqlite (y la CLI) para arrancar con datos.
package catalogseed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pet-diet-planner/internal/domain/catalog"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type foodRow struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Species     string   `yaml:"species"`
	KcalPer100g *float64 `yaml:"kcal_per_100g"`
	PricePerKg  *float64 `yaml:"price_per_kg"`
}

type breedRow struct {
	ID           string  `yaml:"id"`
	Species      string  `yaml:"species"`
	Name         string  `yaml:"name"`
	CommonName   string  `yaml:"common_name"`
	OfficialName string  `yaml:"official_name"`
	MinKg        float64 `yaml:"min_kg"`
	MaxKg        float64 `yaml:"max_kg"`
}

type file struct {
	Foods  []foodRow  `yaml:"foods"`
	Breeds []breedRow `yaml:"breeds"`
}

// Seed es el catálogo ya convertido a tipos de dominio.
type Seed struct {
	Foods  []catalog.FoodItem
	Breeds []catalog.Breed
}

// Default devuelve el catálogo embebido.
func Default() (Seed, error) {
	return Parse(defaultCatalog)
}

// Load lee un YAML del disco. path vacío => catálogo embebido.
func Load(path string) (Seed, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("catalogseed: read %s: %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (Seed, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Seed{}, fmt.Errorf("catalogseed: parse yaml: %w", err)
	}

	out := Seed{
		Foods:  make([]catalog.FoodItem, 0, len(f.Foods)),
		Breeds: make([]catalog.Breed, 0, len(f.Breeds)),
	}
	seen := map[string]struct{}{}
	for i, r := range f.Foods {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return Seed{}, fmt.Errorf("catalogseed: food #%d without id", i)
		}
		if _, dup := seen[id]; dup {
			return Seed{}, fmt.Errorf("catalogseed: duplicated food id %q", id)
		}
		seen[id] = struct{}{}

		sp, err := parseTarget(r.Species)
		if err != nil {
			return Seed{}, fmt.Errorf("catalogseed: food %q: %w", id, err)
		}
		out.Foods = append(out.Foods, catalog.FoodItem{
			ID:          id,
			Name:        strings.TrimSpace(r.Name),
			Type:        strings.TrimSpace(r.Type),
			Species:     sp,
			KcalPer100g: r.KcalPer100g,
			PricePerKg:  r.PricePerKg,
		})
	}

	for i, r := range f.Breeds {
		if strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.CommonName) == "" {
			return Seed{}, fmt.Errorf("catalogseed: breed #%d without name", i)
		}
		sp, err := parseTarget(r.Species)
		if err != nil {
			return Seed{}, fmt.Errorf("catalogseed: breed %q: %w", r.Name, err)
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = fmt.Sprintf("breed-%d", i+1)
		}
		out.Breeds = append(out.Breeds, catalog.Breed{
			ID:           id,
			Species:      sp,
			Name:         strings.TrimSpace(r.Name),
			CommonName:   strings.TrimSpace(r.CommonName),
			OfficialName: strings.TrimSpace(r.OfficialName),
			MinKg:        r.MinKg,
			MaxKg:        r.MaxKg,
		})
	}
	return out, nil
}

func parseTarget(s string) (catalog.TargetSpecies, error) {
	switch t := catalog.TargetSpecies(strings.ToLower(strings.TrimSpace(s))); t {
	case catalog.TargetDog, catalog.TargetCat, catalog.TargetBoth:
		return t, nil
	default:
		if target, ok := catalog.SpeciesTarget(s); ok {
			return target, nil
		}
		return "", fmt.Errorf("unknown species %q", s)
	}
}
