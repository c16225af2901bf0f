package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-diet-planner/internal/domain/catalog"
)

// CatalogRepo implementa catalog.FoodRepository y catalog.BreedRepository.
// Respeta el orden de carga del seed (columna position).
// LOWER/LIKE de SQLite solo pliegan ASCII y tratan % y _ como comodines, así
// que los filtros de texto se aplican en Go sobre las filas ya ordenadas.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// SeedCatalog reemplaza el catálogo completo en una transacción.
func (r *CatalogRepo) SeedCatalog(ctx context.Context, foods []catalog.FoodItem, breeds []catalog.Breed) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM food_catalog`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM breed_catalog`); err != nil {
		return err
	}

	for i, it := range foods {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO food_catalog (id, name, type, species, kcal_per_100g, price_per_kg, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, it.ID, it.Name, it.Type, string(it.Species), nullFloat(it.KcalPer100g), nullFloat(it.PricePerKg), i)
		if err != nil {
			return fmt.Errorf("failed to insert food %s: %w", it.ID, err)
		}
	}
	for i, b := range breeds {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO breed_catalog (id, species, name, common_name, official_name, min_kg, max_kg, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, b.ID, string(b.Species), b.Name, b.CommonName, b.OfficialName, b.MinKg, b.MaxKg, i)
		if err != nil {
			return fmt.Errorf("failed to insert breed %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

func (r *CatalogRepo) ListFoods(ctx context.Context, f catalog.FoodFilter) ([]catalog.FoodItem, error) {
	query := `
		SELECT id, name, type, species, kcal_per_100g, price_per_kg
		FROM food_catalog
		WHERE 1=1
	`
	args := []any{}

	if id := strings.TrimSpace(f.ID); id != "" {
		query += " AND id = ?"
		args = append(args, id)
	}
	if f.Species != "" {
		query += " AND species = ?"
		args = append(args, string(f.Species))
	}
	query += " ORDER BY position, id"

	typ := strings.TrimSpace(f.Type)
	name := strings.ToLower(strings.TrimSpace(f.Name))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
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
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		if typ != "" && !strings.EqualFold(it.Type, typ) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(it.Name), name) {
			continue
		}
		it.Species = catalog.TargetSpecies(species)
		it.KcalPer100g = floatPtr(kcal)
		it.PricePerKg = floatPtr(price)
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
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query breeds: %w", err)
	}
	defer rows.Close()

	out := make([]catalog.Breed, 0)
	for rows.Next() {
		var (
			b       catalog.Breed
			species string
		)
		if err := rows.Scan(&b.ID, &species, &b.Name, &b.CommonName, &b.OfficialName, &b.MinKg, &b.MaxKg); err != nil {
			return nil, fmt.Errorf("failed to scan breed: %w", err)
		}
		if !b.Matches(query) {
			continue
		}
		b.Species = catalog.TargetSpecies(species)
		out = append(out, b)
	}
	return out, rows.Err()
}
