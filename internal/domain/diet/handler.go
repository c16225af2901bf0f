package diet

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-diet-planner/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Route("/diet-proposals", func(pr chi.Router) {
		pr.Post("/", createProposalHandler(svc, log))
		pr.Get("/{proposalID}", getProposalHandler(svc, log))
	})

	// Historial de propuestas de un animal
	r.Get("/animals/{animalID}/diet-proposals", listProposalsHandler(svc, log))
}

type animalPayload struct {
	ID       string   `json:"id"`
	Species  string   `json:"species"`
	Name     string   `json:"name"`
	Breed    string   `json:"breed"`
	WeightKg *float64 `json:"weight_kg"`
}

type preferencesPayload struct {
	Goal              string   `json:"goal"`
	LikedFoods        []string `json:"liked_foods"`
	DislikedFoods     []string `json:"disliked_foods"`
	PreferredFoodType string   `json:"preferred_food_type"`
}

type createProposalRequest struct {
	Animal      animalPayload      `json:"animal"`
	Preferences preferencesPayload `json:"preferences"`

	// Overrides opcionales: nil = no enviado.
	Goal          *string  `json:"goal"`
	MealsPerDay   *int     `json:"meals_per_day"`
	FoodType      *string  `json:"food_type"`
	MonthlyBudget *float64 `json:"monthly_budget"`
	DailyCalories *int     `json:"daily_calories"`
	Schedule      any      `json:"schedule" swaggertype:"string"` // string, lista u objeto
	StartDate     *string  `json:"start_date"`                    // YYYY-MM-DD
	EndDate       *string  `json:"end_date"`                      // YYYY-MM-DD
	Status        *string  `json:"status"`
}

func (req createProposalRequest) toRequest() Request {
	return Request{
		Animal: AnimalProfile{
			ID:       req.Animal.ID,
			Species:  req.Animal.Species,
			Name:     req.Animal.Name,
			Breed:    req.Animal.Breed,
			WeightKg: req.Animal.WeightKg,
		},
		Preferences: Preferences{
			Goal:              req.Preferences.Goal,
			LikedFoods:        req.Preferences.LikedFoods,
			DislikedFoods:     req.Preferences.DislikedFoods,
			PreferredFoodType: req.Preferences.PreferredFoodType,
		},
		Input: UserInput{
			Goal:          req.Goal,
			MealsPerDay:   req.MealsPerDay,
			FoodType:      req.FoodType,
			MonthlyBudget: req.MonthlyBudget,
			DailyCalories: req.DailyCalories,
			Schedule:      req.Schedule,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			Status:        req.Status,
		},
	}
}

type proposalResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	DietProposal
}

type errorResponse struct {
	Error string `json:"error"`
}

// createProposalHandler godoc
// @Summary Generar propuesta de dieta
// @Description Arma una propuesta con el modelo de IA y heurísticas de nutrición (calorías, alimento, porción, horarios), la valida y la guarda. Los overrides del request tienen prioridad sobre las preferencias; el borrador del modelo tiene prioridad sobre ambos.
// @Tags diet
// @Accept json
// @Produce json
// @Param payload body createProposalRequest true "Animal, preferencias y overrides"
// @Success 201 {object} proposalResponse
// @Failure 400 {object} errorResponse "invalid json / datos inválidos"
// @Failure 422 {object} errorResponse "la propuesta no cumple el contrato"
// @Failure 502 {object} errorResponse "fallaron modelo primario y fallback"
// @Failure 503 {object} errorResponse "IA no configurada"
// @Router /diet-proposals [post]
func createProposalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProposalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		sp, err := svc.Generate(r.Context(), req.toRequest())
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		writeJSON(w, http.StatusCreated, toProposalResponse(sp))
	}
}

// getProposalHandler godoc
// @Summary Obtener propuesta de dieta
// @Tags diet
// @Produce json
// @Param proposalID path string true "ID de la propuesta"
// @Success 200 {object} proposalResponse
// @Failure 404 {object} errorResponse "proposal not found"
// @Router /diet-proposals/{proposalID} [get]
func getProposalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sp, err := svc.Get(r.Context(), chi.URLParam(r, "proposalID"))
		if err != nil {
			writeServiceError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toProposalResponse(sp))
	}
}

// listProposalsHandler godoc
// @Summary Listar propuestas de un animal
// @Description Devuelve las propuestas guardadas del animal, más recientes primero.
// @Tags diet
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {array} proposalResponse
// @Router /animals/{animalID}/diet-proposals [get]
func listProposalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		out := make([]proposalResponse, 0, len(items))
		for _, sp := range items {
			out = append(out, toProposalResponse(sp))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toProposalResponse(sp StoredProposal) proposalResponse {
	return proposalResponse{ID: sp.ID, CreatedAt: sp.CreatedAt, DietProposal: sp.Proposal}
}

// StatusFor mapea errores del motor a códigos HTTP.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, ErrSchemaValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("diet request failed", map[string]any{"error": err})
		msg = "internal error"
	}
	writeError(w, status, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
