package catalog

import "strings"

// TargetSpecies indica para qué especie está pensado un alimento.
type TargetSpecies string

const (
	TargetDog  TargetSpecies = "dog"
	TargetCat  TargetSpecies = "cat"
	TargetBoth TargetSpecies = "both"
)

// FoodItem es una fila del catálogo de alimentos.
type FoodItem struct {
	ID      string
	Name    string
	Type    string // dry, wet, barf, etc. (texto libre del catálogo)
	Species TargetSpecies

	KcalPer100g *float64
	PricePerKg  *float64
}

// HasKcal indica si el item trae densidad calórica utilizable.
func (f FoodItem) HasKcal() bool {
	return f.KcalPer100g != nil && *f.KcalPer100g > 0
}

// BreedWeightRange es el rango de peso saludable de una raza.
type BreedWeightRange struct {
	Breed string // etiqueta de la raza que matcheó
	MinKg float64
	MaxKg float64
}

// Breed es una fila del catálogo de razas.
// Se busca por substring case-insensitive sobre Name, CommonName y OfficialName.
type Breed struct {
	ID           string
	Species      TargetSpecies
	Name         string
	CommonName   string
	OfficialName string
	MinKg        float64
	MaxKg        float64
}

// Matches implementa el match por substring usado por todos los adapters en memoria.
func (b Breed) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return false
	}
	for _, f := range []string{b.Name, b.CommonName, b.OfficialName} {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Range convierte la fila al rango que consume el clasificador.
func (b Breed) Range() BreedWeightRange {
	label := b.Name
	if label == "" {
		label = b.CommonName
	}
	return BreedWeightRange{Breed: label, MinKg: b.MinKg, MaxKg: b.MaxKg}
}

// SpeciesTarget normaliza la especie del animal a la especie del catálogo.
// Acepta términos en inglés y español ("dog", "perro", "gata", "felino", ...).
func SpeciesTarget(species string) (TargetSpecies, bool) {
	s := strings.ToLower(strings.TrimSpace(species))
	switch {
	case s == "":
		return "", false
	case IsDogLike(s):
		return TargetDog, true
	case IsCatLike(s):
		return TargetCat, true
	default:
		return "", false
	}
}

var (
	dogPrefixes = []string{"dog", "perr", "canin"}
	catPrefixes = []string{"cat", "gat", "felin"}
)

// IsDogLike hace match por prefijo sobre términos de perro.
func IsDogLike(species string) bool {
	return hasAnyPrefix(species, dogPrefixes)
}

// IsCatLike hace match por prefijo sobre términos de gato.
func IsCatLike(species string) bool {
	return hasAnyPrefix(species, catPrefixes)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
