package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-diet-planner/internal/domain/diet"
)

type ProposalsRepo struct {
	db *sql.DB
}

func NewProposalsRepo(db *sql.DB) *ProposalsRepo {
	return &ProposalsRepo{db: db}
}

// ancho fijo para que ORDER BY created_at sea cronológico
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

const proposalColumns = `id, animal_id, name, food_type, goal, start_date, end_date, status,
	meals_per_day, daily_calories, monthly_cost, food_id, portion_grams, schedule,
	justification, created_at`

func (r *ProposalsRepo) Save(ctx context.Context, sp diet.StoredProposal) error {
	p := sp.Proposal
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diet_proposals (`+proposalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sp.ID, p.AnimalID, p.Name, p.FoodType, p.Goal,
		p.StartDate, nullString(p.EndDate), string(p.Status),
		p.MealsPerDay, nullInt(p.DailyCalories), nullFloat(p.MonthlyCost),
		nullString(p.FoodID), nullInt(p.PortionGrams), nullString(p.Schedule),
		p.Justification, sp.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert proposal: %w", err)
	}
	return nil
}

func (r *ProposalsRepo) GetByID(ctx context.Context, id string) (diet.StoredProposal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+proposalColumns+` FROM diet_proposals WHERE id = ?`, id)
	sp, err := scanProposal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return diet.StoredProposal{}, diet.ErrNotFound
	}
	return sp, err
}

func (r *ProposalsRepo) ListByAnimal(ctx context.Context, animalID string) ([]diet.StoredProposal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+proposalColumns+`
		FROM diet_proposals
		WHERE animal_id = ?
		ORDER BY created_at DESC, id ASC
	`, animalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	out := make([]diet.StoredProposal, 0)
	for rows.Next() {
		sp, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProposal(s rowScanner) (diet.StoredProposal, error) {
	var (
		sp        diet.StoredProposal
		p         diet.DietProposal
		status    string
		createdAt string
		end       sql.NullString
		kcal      sql.NullInt64
		cost      sql.NullFloat64
		foodID    sql.NullString
		portion   sql.NullInt64
		schedule  sql.NullString
	)
	err := s.Scan(
		&sp.ID, &p.AnimalID, &p.Name, &p.FoodType, &p.Goal,
		&p.StartDate, &end, &status,
		&p.MealsPerDay, &kcal, &cost, &foodID, &portion, &schedule,
		&p.Justification, &createdAt,
	)
	if err != nil {
		return diet.StoredProposal{}, err
	}

	if sp.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
		return diet.StoredProposal{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	p.Status = diet.Status(status)
	p.EndDate = stringPtr(end)
	p.DailyCalories = intPtr(kcal)
	p.MonthlyCost = floatPtr(cost)
	p.FoodID = stringPtr(foodID)
	p.PortionGrams = intPtr(portion)
	p.Schedule = stringPtr(schedule)

	sp.Proposal = p
	return sp, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}
