package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-diet-planner/internal/domain/diet"
)

type ProposalsRepo struct {
	db *sql.DB
}

func NewProposalsRepo(db *sql.DB) *ProposalsRepo {
	return &ProposalsRepo{db: db}
}

const proposalColumns = `
	id, animal_id,
	name, food_type, goal,
	start_date, end_date, status,
	meals_per_day, daily_calories, monthly_cost,
	food_id, portion_grams, schedule,
	justification, created_at`

func (r *ProposalsRepo) Save(ctx context.Context, sp diet.StoredProposal) error {
	p := sp.Proposal
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diet_proposals (`+proposalColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6::date,$7::date,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		sp.ID,
		p.AnimalID,
		p.Name,
		p.FoodType,
		p.Goal,
		p.StartDate,
		toNullString(p.EndDate),
		string(p.Status),
		p.MealsPerDay,
		toNullInt(p.DailyCalories),
		toNullFloat(p.MonthlyCost),
		toNullString(p.FoodID),
		toNullInt(p.PortionGrams),
		toNullString(p.Schedule),
		p.Justification,
		sp.CreatedAt,
	)
	return err
}

func (r *ProposalsRepo) GetByID(ctx context.Context, id string) (diet.StoredProposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return diet.StoredProposal{}, diet.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+proposalColumns+` FROM diet_proposals WHERE id = $1`, id)
	sp, err := scanProposal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return diet.StoredProposal{}, diet.ErrNotFound
	}
	return sp, err
}

func (r *ProposalsRepo) ListByAnimal(ctx context.Context, animalID string) ([]diet.StoredProposal, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+proposalColumns+`
		FROM diet_proposals
		WHERE animal_id = $1
		ORDER BY created_at DESC, id ASC
	`, animalID)
	if err != nil {
		return nil, err
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

type scanner interface {
	Scan(dest ...any) error
}

func scanProposal(s scanner) (diet.StoredProposal, error) {
	var (
		sp       diet.StoredProposal
		p        diet.DietProposal
		status   string
		start    time.Time
		end      sql.NullTime
		kcal     sql.NullInt64
		cost     sql.NullFloat64
		foodID   sql.NullString
		portion  sql.NullInt64
		schedule sql.NullString
	)
	if err := s.Scan(
		&sp.ID,
		&p.AnimalID,
		&p.Name,
		&p.FoodType,
		&p.Goal,
		&start,
		&end,
		&status,
		&p.MealsPerDay,
		&kcal,
		&cost,
		&foodID,
		&portion,
		&schedule,
		&p.Justification,
		&sp.CreatedAt,
	); err != nil {
		return diet.StoredProposal{}, err
	}

	// DATE llega como time.Time a medianoche UTC
	p.StartDate = start.Format(diet.DateLayout)
	if end.Valid {
		d := end.Time.Format(diet.DateLayout)
		p.EndDate = &d
	}
	p.Status = diet.Status(status)
	p.DailyCalories = fromNullInt(kcal)
	p.MonthlyCost = fromNullFloat(cost)
	p.FoodID = fromNullString(foodID)
	p.PortionGrams = fromNullInt(portion)
	p.Schedule = fromNullString(schedule)

	sp.Proposal = p
	return sp, nil
}
