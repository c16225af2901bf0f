package diet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-diet-planner/internal/domain/catalog"
	"pet-diet-planner/internal/platform/logger"
)

// Stage del armado de una propuesta (solo para logs/diagnóstico).
type Stage string

const (
	StageNew       Stage = "new"
	StageDrafted   Stage = "drafted"
	StageSanitized Stage = "sanitized"
	StageEnriched  Stage = "enriched"
	StageValidated Stage = "validated"
	StageComplete  Stage = "complete"
	StageError     Stage = "error"
)

const (
	defaultMealsPerDay = 2
	defaultFoodType    = "dry"
)

// DraftSource devuelve el texto crudo del modelo. *Drafter la implementa.
// Ready se consulta antes de tocar cualquier catálogo.
type DraftSource interface {
	Ready() error
	Draft(ctx context.Context, dc DraftContext) (string, error)
}

// Assembler orquesta: clasificar, estimar, pedir borrador, sanear, mezclar,
// completar con heurísticas y validar.
type Assembler struct {
	classifier *Classifier
	drafter    DraftSource
	foods      *FoodSelector
	validator  *Validator
	log        logger.Logger
	metrics    Metrics
	now        func() time.Time
}

type AssemblerDeps struct {
	Breeds  catalog.BreedRepository
	Foods   catalog.FoodRepository
	Drafter DraftSource
	Log     logger.Logger
	Metrics Metrics
	Now     func() time.Time
}

func NewAssembler(d AssemblerDeps) *Assembler {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	m := d.Metrics
	if m == nil {
		m = nopMetrics{}
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Assembler{
		classifier: NewClassifier(d.Breeds, log),
		drafter:    d.Drafter,
		foods:      NewFoodSelector(d.Foods, log),
		validator:  NewValidator(),
		log:        log,
		metrics:    m,
		now:        now,
	}
}

// Assemble arma y valida una propuesta. Nada se persiste acá.
func (a *Assembler) Assemble(ctx context.Context, req Request) (DietProposal, error) {
	log := a.log.With(map[string]any{"animal_id": req.Animal.ID})
	stage := func(s Stage) {
		log.Debug("diet assembly stage", map[string]any{"stage": string(s)})
	}
	stage(StageNew)

	if err := checkRequest(req); err != nil {
		return a.fail(log, StageNew, err)
	}
	if a.drafter == nil {
		return a.fail(log, StageNew, &ConfigurationError{Reason: "no drafter configured"})
	}
	if err := a.drafter.Ready(); err != nil {
		return a.fail(log, StageNew, err)
	}

	animal := req.Animal
	cond, rng := a.classifier.Classify(ctx, animal.Species, animal.Breed, animal.WeightKg)

	input := PartialFromInput(req.Input, req.Preferences)
	goal := deref(input.Goal)

	var estimate *int
	if kcal, ok := EstimateDailyCalories(animal.Species, animal.WeightKg, cond, goal); ok {
		estimate = &kcal
	}

	raw, err := a.drafter.Draft(ctx, DraftContext{
		Animal:       animal,
		Preferences:  req.Preferences,
		Input:        req.Input,
		Condition:    cond,
		BreedRange:   rng,
		CaloriesHint: estimate,
		Today:        a.now().Format(DateLayout),
	})
	if err != nil {
		return a.fail(log, StageNew, err)
	}
	stage(StageDrafted)

	fields, err := ParseDraft(raw)
	if err != nil {
		log.Warn("model output not usable, continuing with defaults", map[string]any{"error": err})
		fields = map[string]any{}
	}
	draft := PartialFromDraft(fields)
	if _, ok := animal.Weight(); !ok {
		// sin peso conocido no se aceptan kcal ni gramos del modelo
		draft.DailyCalories = nil
		draft.PortionGrams = nil
	}
	stage(StageSanitized)

	merged := Merge(draft, input)
	a.enrich(ctx, &merged, req, cond, estimate)
	stage(StageEnriched)

	proposal := merged.Proposal(animal.ID)
	if err := a.validator.Validate(proposal); err != nil {
		return a.fail(log, StageEnriched, err)
	}
	stage(StageValidated)

	a.metrics.Assembly(string(StageComplete))
	stage(StageComplete)
	return proposal, nil
}

// enrich completa lo que no trajeron ni el draft ni el usuario.
func (a *Assembler) enrich(ctx context.Context, p *PartialProposal, req Request, cond Condition, estimate *int) {
	animal := req.Animal

	if p.DailyCalories == nil {
		p.DailyCalories = estimate
	}

	var item *catalog.FoodItem
	switch {
	case p.FoodID == nil:
		// el tipo ya mezclado (draft > usuario) filtra el pool; si no hay alimentos
		// de ese tipo la selección se saltea y food_id queda vacío
		sel, ok := a.foods.Select(ctx, animal.Species, deref(p.FoodType), cond, animal.ID, p.DailyCalories)
		if ok {
			id := sel.Item.ID
			p.FoodID = &id
			if p.PortionGrams == nil {
				p.PortionGrams = sel.PortionGrams
			}
			item = &sel.Item
		}
	default:
		if found, ok := a.foods.FindByID(ctx, *p.FoodID); ok {
			item = &found
			if p.PortionGrams == nil {
				p.PortionGrams = PortionGrams(p.DailyCalories, found)
			}
		}
	}

	if p.FoodType == nil {
		ft := defaultFoodType
		if item != nil && strings.TrimSpace(item.Type) != "" {
			ft = item.Type
		}
		p.FoodType = &ft
	}
	if p.MonthlyCost == nil && item != nil {
		p.MonthlyCost = MonthlyCost(p.PortionGrams, *item)
	}

	if p.MealsPerDay == nil {
		n := defaultMealsPerDay
		p.MealsPerDay = &n
	}
	if p.Schedule == nil {
		s := GenerateSchedule(animal.ID, *p.MealsPerDay, animal.Species)
		p.Schedule = &s
	}

	if p.Name == nil {
		n := DefaultName(animal.Name)
		p.Name = &n
	}
	if p.Goal == nil {
		g := DefaultGoal(cond)
		p.Goal = &g
	}
	if p.StartDate == nil {
		d := a.now().Format(DateLayout)
		p.StartDate = &d
	}
	if p.Status == nil {
		st := StatusProposed
		p.Status = &st
	}
	if p.Justification == nil {
		j := Justify(*p.Goal, animal.WeightKg, cond, *p.FoodType, p.DailyCalories)
		p.Justification = &j
	}
}

func (a *Assembler) fail(log logger.Logger, at Stage, err error) (DietProposal, error) {
	log.Warn("diet assembly failed", map[string]any{
		"stage": string(at),
		"error": err,
	})
	a.metrics.Assembly(string(StageError))
	return DietProposal{}, err
}

// checkRequest rechaza overrides del usuario que nunca podrían validar.
func checkRequest(req Request) error {
	if strings.TrimSpace(req.Animal.ID) == "" {
		return fmt.Errorf("%w: animal id is required", ErrInvalidInput)
	}
	in := req.Input
	if in.MealsPerDay != nil && (*in.MealsPerDay < 1 || *in.MealsPerDay > 12) {
		return fmt.Errorf("%w: meals_per_day must be between 1 and 12", ErrInvalidInput)
	}
	if in.DailyCalories != nil && *in.DailyCalories <= 0 {
		return fmt.Errorf("%w: daily_calories must be positive", ErrInvalidInput)
	}
	if in.MonthlyBudget != nil && *in.MonthlyBudget < 0 {
		return fmt.Errorf("%w: monthly_budget must not be negative", ErrInvalidInput)
	}
	dates := []struct {
		name string
		v    *string
	}{{"start_date", in.StartDate}, {"end_date", in.EndDate}}
	for _, d := range dates {
		if d.v == nil {
			continue
		}
		if v := asDate(*d.v); v != nil && !isDate(*v) {
			return fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidInput, d.name)
		}
	}
	if in.Status != nil && strings.TrimSpace(*in.Status) != "" && asStatus(*in.Status) == nil {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *in.Status)
	}
	return nil
}

func isDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
