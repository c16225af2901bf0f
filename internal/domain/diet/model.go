package diet

import "time"

// Condition es la condición de peso respecto del rango de la raza.
type Condition string

const (
	ConditionOver         Condition = "over"
	ConditionUnder        Condition = "under"
	ConditionHealthy      Condition = "healthy"
	ConditionUndetermined Condition = "undetermined"
)

// Status del plan propuesto.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusProposed Status = "proposed"
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

const DateLayout = "2006-01-02"

// AnimalProfile es de solo lectura para el motor (lo administra el módulo de animales).
type AnimalProfile struct {
	ID       string // identity key: solo semilla determinística, nunca lookup
	Species  string
	Name     string
	Breed    string
	WeightKg *float64
}

// Weight devuelve el peso solo si es utilizable (>0).
func (a AnimalProfile) Weight() (float64, bool) {
	if a.WeightKg == nil || *a.WeightKg <= 0 {
		return 0, false
	}
	return *a.WeightKg, true
}

// Preferences de la mascota cargadas por la clínica.
type Preferences struct {
	Goal              string
	LikedFoods        []string
	DislikedFoods     []string
	PreferredFoodType string
}

// UserInput son overrides del request. nil = no enviado.
type UserInput struct {
	Goal          *string
	MealsPerDay   *int
	FoodType      *string
	MonthlyBudget *float64
	DailyCalories *int
	Schedule      any // string, lista o objeto; se normaliza
	StartDate     *string
	EndDate       *string
	Status        *string
}

// Request es la entrada completa de una generación.
type Request struct {
	Animal      AnimalProfile
	Preferences Preferences
	Input       UserInput
}

// DietProposal es la salida del motor. Se arma una vez por request y no se muta.
type DietProposal struct {
	AnimalID      string   `json:"animal_id" validate:"required"`
	Name          string   `json:"name" validate:"required,max=200"`
	FoodType      string   `json:"food_type" validate:"required,max=100"`
	Goal          string   `json:"goal" validate:"required,max=500"`
	StartDate     string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       *string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status        Status   `json:"status" validate:"required,oneof=draft proposed active paused finished"`
	MealsPerDay   int      `json:"meals_per_day" validate:"min=1,max=12"`
	DailyCalories *int     `json:"daily_calories,omitempty" validate:"omitempty,gt=0"`
	MonthlyCost   *float64 `json:"monthly_cost,omitempty" validate:"omitempty,gte=0"`
	FoodID        *string  `json:"food_id,omitempty" validate:"omitempty,min=1"`
	PortionGrams  *int     `json:"portion_grams,omitempty" validate:"omitempty,gt=0"`
	Schedule      *string  `json:"schedule,omitempty" validate:"omitempty,hhmm_list"`
	Justification string   `json:"justification" validate:"required"`
}

// StoredProposal es lo que devuelve el store externo.
type StoredProposal struct {
	ID        string
	Proposal  DietProposal
	CreatedAt time.Time
}
