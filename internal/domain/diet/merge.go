package diet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// PartialProposal es una propuesta con todos los campos opcionales.
// nil = la capa no aporta el campo.
type PartialProposal struct {
	Name          *string
	FoodType      *string
	Goal          *string
	StartDate     *string
	EndDate       *string
	Status        *Status
	MealsPerDay   *int
	DailyCalories *int
	MonthlyCost   *float64
	FoodID        *string
	PortionGrams  *int
	Schedule      *string // canónico "HH:MM,HH:MM"
	Justification *string
}

// Merge combina capas por campo: gana la primera capa que trae valor.
// El orden de uso es draft > input del usuario/preferencias > defaults calculados.
func Merge(layers ...PartialProposal) PartialProposal {
	var out PartialProposal
	for _, l := range layers {
		out.Name = firstSet(out.Name, l.Name)
		out.FoodType = firstSet(out.FoodType, l.FoodType)
		out.Goal = firstSet(out.Goal, l.Goal)
		out.StartDate = firstSet(out.StartDate, l.StartDate)
		out.EndDate = firstSet(out.EndDate, l.EndDate)
		out.Status = firstSet(out.Status, l.Status)
		out.MealsPerDay = firstSet(out.MealsPerDay, l.MealsPerDay)
		out.DailyCalories = firstSet(out.DailyCalories, l.DailyCalories)
		out.MonthlyCost = firstSet(out.MonthlyCost, l.MonthlyCost)
		out.FoodID = firstSet(out.FoodID, l.FoodID)
		out.PortionGrams = firstSet(out.PortionGrams, l.PortionGrams)
		out.Schedule = firstSet(out.Schedule, l.Schedule)
		out.Justification = firstSet(out.Justification, l.Justification)
	}
	return out
}

func firstSet[T any](cur, next *T) *T {
	if cur != nil {
		return cur
	}
	return next
}

// PartialFromDraft toma los campos del JSON del modelo.
// Un valor de tipo JSON incorrecto se ignora (como si no viniera).
func PartialFromDraft(m map[string]any) PartialProposal {
	if len(m) == 0 {
		return PartialProposal{}
	}
	p := PartialProposal{
		Name:          asString(m["name"]),
		FoodType:      asString(m["food_type"]),
		Goal:          asString(m["goal"]),
		StartDate:     asDate(m["start_date"]),
		EndDate:       asDate(m["end_date"]),
		Status:        asStatus(m["status"]),
		MealsPerDay:   asInt(m["meals_per_day"]),
		DailyCalories: asInt(m["daily_calories"]),
		MonthlyCost:   asFloat(m["monthly_cost"]),
		FoodID:        asID(m["food_id"]),
		PortionGrams:  asInt(m["portion_grams"]),
		Justification: asString(m["justification"]),
	}
	if s, ok := NormalizeSchedule(m["schedule"]); ok {
		p.Schedule = &s
	}
	return p
}

// PartialFromInput arma la capa del usuario. UserInput pisa a Preferences.
func PartialFromInput(in UserInput, prefs Preferences) PartialProposal {
	p := PartialProposal{
		Goal:          firstSet(trimmed(in.Goal), trimmed(&prefs.Goal)),
		FoodType:      firstSet(trimmed(in.FoodType), trimmed(&prefs.PreferredFoodType)),
		MealsPerDay:   in.MealsPerDay,
		DailyCalories: in.DailyCalories,
		MonthlyCost:   in.MonthlyBudget,
	}
	if in.StartDate != nil {
		p.StartDate = asDate(*in.StartDate)
	}
	if in.EndDate != nil {
		p.EndDate = asDate(*in.EndDate)
	}
	if in.Status != nil {
		p.Status = asStatus(*in.Status)
	}
	if s, ok := NormalizeSchedule(in.Schedule); ok {
		p.Schedule = &s
	}
	return p
}

// Proposal materializa la propuesta final. Los campos obligatorios sin valor
// quedan en cero y los rechaza la validación.
func (p PartialProposal) Proposal(animalID string) DietProposal {
	out := DietProposal{
		AnimalID:      animalID,
		Name:          deref(p.Name),
		FoodType:      deref(p.FoodType),
		Goal:          deref(p.Goal),
		StartDate:     deref(p.StartDate),
		EndDate:       p.EndDate,
		Status:        deref(p.Status),
		MealsPerDay:   deref(p.MealsPerDay),
		DailyCalories: p.DailyCalories,
		MonthlyCost:   p.MonthlyCost,
		FoodID:        p.FoodID,
		PortionGrams:  p.PortionGrams,
		Schedule:      p.Schedule,
		Justification: deref(p.Justification),
	}
	return out
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func asString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return trimmed(&s)
}

// asInt acepta números enteros (float64 de encoding/json) o strings numéricos.
func asInt(v any) *int {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return nil
		}
		n := int(t)
		return &n
	case int:
		return &t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

func asFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return &t
	case int:
		f := float64(t)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return &f
	}
	return nil
}

// asID: el modelo a veces devuelve el id como número.
func asID(v any) *string {
	switch t := v.(type) {
	case string:
		return asString(t)
	case float64:
		if t != math.Trunc(t) {
			return nil
		}
		s := strconv.FormatInt(int64(t), 10)
		return &s
	}
	return nil
}

var dateLayouts = []string{DateLayout, time.RFC3339, "02/01/2006", "2006/01/02"}

// asDate canoniza a YYYY-MM-DD. Un string no reconocible se conserva tal cual
// para que la validación del contrato lo rechace.
func asDate(v any) *string {
	s := asString(v)
	if s == nil {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			d := t.Format(DateLayout)
			return &d
		}
	}
	return s
}

var statusAliases = map[string]Status{
	"draft":      StatusDraft,
	"borrador":   StatusDraft,
	"proposed":   StatusProposed,
	"proposal":   StatusProposed,
	"propuesta":  StatusProposed,
	"propuesto":  StatusProposed,
	"active":     StatusActive,
	"activa":     StatusActive,
	"activo":     StatusActive,
	"paused":     StatusPaused,
	"pausada":    StatusPaused,
	"pausado":    StatusPaused,
	"finished":   StatusFinished,
	"finalizada": StatusFinished,
	"finalizado": StatusFinished,
	"completed":  StatusFinished,
}

// asStatus normaliza; un estado desconocido se trata como ausente.
func asStatus(v any) *Status {
	s := asString(v)
	if s == nil {
		return nil
	}
	st, ok := statusAliases[strings.ToLower(*s)]
	if !ok {
		return nil
	}
	return &st
}

// DefaultGoal deriva el objetivo de la condición de peso.
func DefaultGoal(cond Condition) string {
	switch cond {
	case ConditionOver:
		return "gradual weight loss"
	case ConditionUnder:
		return "healthy weight gain"
	case ConditionHealthy:
		return "maintain a healthy weight"
	default:
		return "balanced maintenance"
	}
}

// DefaultName arma el nombre del plan.
func DefaultName(animalName string) string {
	if n := strings.TrimSpace(animalName); n != "" {
		return "Diet plan for " + n
	}
	return "Diet plan"
}

// Justify sintetiza la justificación cuando el modelo no la trae.
func Justify(goal string, weightKg *float64, cond Condition, foodType string, kcal *int) string {
	clauses := make([]string, 0, 4)
	if goal = strings.TrimSpace(goal); goal != "" {
		clauses = append(clauses, fmt.Sprintf("Plan oriented to %s.", goal))
	}
	if weightKg != nil && *weightKg > 0 {
		c := fmt.Sprintf("Current weight is %s kg", strconv.FormatFloat(*weightKg, 'f', -1, 64))
		if cond != ConditionUndetermined && cond != "" {
			c += fmt.Sprintf(" (%s for its breed range)", conditionLabel(cond))
		}
		clauses = append(clauses, c+".")
	}
	if foodType = strings.TrimSpace(foodType); foodType != "" {
		clauses = append(clauses, fmt.Sprintf("Based on %s food.", foodType))
	}
	if kcal != nil {
		clauses = append(clauses, fmt.Sprintf("Daily target of %d kcal.", *kcal))
	}
	if len(clauses) == 0 {
		return "Maintenance plan built from default nutrition heuristics."
	}
	return strings.Join(clauses, " ")
}

func conditionLabel(c Condition) string {
	switch c {
	case ConditionOver:
		return "above"
	case ConditionUnder:
		return "below"
	default:
		return "within"
	}
}
