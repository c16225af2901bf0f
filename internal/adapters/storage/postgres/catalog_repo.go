package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-diet-planner/internal/domain/catalog"
)

// CatalogRepo implementa catalog.FoodRepository y catalog.BreedRepository.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// likeEscape vuelve literales los comodines de LIKE (\, % y _) del texto del usuario.
// Va junto a ESCAPE '\' en la consulta.
func likeEscape(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// foodQuery arma el SELECT con placeholders $n según los filtros presentes.
func foodQuery(f catalog.FoodFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if id := strings.TrimSpace(f.ID); id != "" {
		add("id = $%d", id)
	}
	if f.Species != "" {
		add("species = $%d", string(f.Species))
	}
	if t := strings.TrimSpace(f.Type); t != "" {
		add("LOWER(type) = LOWER($%d)", t)
	}
	if n := strings.TrimSpace(f.Name); n != "" {
		add(`name ILIKE '%%' || $%d || '%%' ESCAPE '\'`, likeEscape(n))
	}

	q := `SELECT id, name, type, species, kcal_per_100g, price_per_kg FROM food_catalog`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id ASC"
	return q, args
}

func (r *CatalogRepo) ListFoods(ctx context.Context, f catalog.FoodFilter) ([]catalog.FoodItem, error) {
	q, args := foodQuery(f)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.FoodItem, 0)
	for rows.Next() {
		var (
			it      catalog.FoodItem
			species string
			kcal    sql.NullFloat64
			price   sql.NullFloat64
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Type, &species, &kcal, &price); err != nil {
			return nil, err
		}
		it.Species = catalog.TargetSpecies(species)
		it.KcalPer100g = fromNullFloat(kcal)
		it.PricePerKg = fromNullFloat(price)
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) FindBreeds(ctx context.Context, query string) ([]catalog.Breed, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, species, name, common_name, official_name, min_kg, max_kg
		FROM breed_catalog
		WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR common_name ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR official_name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY id ASC
	`, likeEscape(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Breed, 0)
	for rows.Next() {
		var (
			b       catalog.Breed
			species string
		)
		if err := rows.Scan(&b.ID, &species, &b.Name, &b.CommonName, &b.OfficialName, &b.MinKg, &b.MaxKg); err != nil {
			return nil, err
		}
		b.Species = catalog.TargetSpecies(species)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Upsert carga/actualiza el catálogo (seed inicial).
func (r *CatalogRepo) Upsert(ctx context.Context, foods []catalog.FoodItem, breeds []catalog.Breed) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range foods {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO food_catalog (id, name, type, species, kcal_per_100g, price_per_kg)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				type = EXCLUDED.type,
				species = EXCLUDED.species,
				kcal_per_100g = EXCLUDED.kcal_per_100g,
				price_per_kg = EXCLUDED.price_per_kg
		`, it.ID, it.Name, it.Type, string(it.Species), toNullFloat(it.KcalPer100g), toNullFloat(it.PricePerKg)); err != nil {
			return fmt.Errorf("upsert food %s: %w", it.ID, err)
		}
	}
	for _, b := range breeds {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO breed_catalog (id, species, name, common_name, official_name, min_kg, max_kg)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (id) DO UPDATE SET
				species = EXCLUDED.species,
				name = EXCLUDED.name,
				common_name = EXCLUDED.common_name,
				official_name = EXCLUDED.official_name,
				min_kg = EXCLUDED.min_kg,
				max_kg = EXCLUDED.max_kg
		`, b.ID, string(b.Species), b.Name, b.CommonName, b.OfficialName, b.MinKg, b.MaxKg); err != nil {
			return fmt.Errorf("upsert breed %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}
