package diet

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pet-diet-planner/internal/domain/catalog"
	"pet-diet-planner/internal/platform/logger"
)

var fixedNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func testBreeds() *fakeBreeds {
	return &fakeBreeds{rows: []catalog.Breed{
		{ID: "b1", Species: catalog.TargetDog, Name: "Beagle", MinKg: 9, MaxKg: 11},
		{ID: "b2", Species: catalog.TargetCat, Name: "Siamés", CommonName: "Siamese", MinKg: 2.5, MaxKg: 5.5},
	}}
}

func testFoods() *fakeFoods {
	light := food("dog-light", catalog.TargetDog, "dry", 310)
	light.PricePerKg = ptr(8.0)
	return &fakeFoods{items: []catalog.FoodItem{
		light,
		food("dog-std", catalog.TargetDog, "dry", 360),
		food("cat-a", catalog.TargetCat, "dry", 350),
		food("cat-b", catalog.TargetCat, "wet", 380),
		food("both-c", catalog.TargetBoth, "dry", 400),
		food("cat-d", catalog.TargetCat, "dry", 420),
	}}
}

type assemblerFixture struct {
	breeds  *fakeBreeds
	foods   *fakeFoods
	backend *fakeBackend
	metrics *fakeMetrics
	asm     *Assembler
}

func newAssemblerFixture(key string, replies ...fakeReply) assemblerFixture {
	b := &fakeBackend{replies: replies}
	m := &fakeMetrics{}
	breeds, foods := testBreeds(), testFoods()
	asm := NewAssembler(AssemblerDeps{
		Breeds:  breeds,
		Foods:   foods,
		Drafter: newTestDrafter(b, key),
		Metrics: m,
		Now:     func() time.Time { return fixedNow },
	})
	return assemblerFixture{breeds: breeds, foods: foods, backend: b, metrics: m, asm: asm}
}

func TestAssemble_CatWithoutBreedMatchUsesFallbacks(t *testing.T) {
	draft := "```json\n" + `{"name":"Plan Michi","food_type":"wet","goal":"mantener peso","meals_per_day":3,"justification":"Gato adulto sin datos de raza."}` + "\n```"
	fx := newAssemblerFixture("k", fakeReply{text: draft})

	req := Request{Animal: AnimalProfile{ID: "cat-0007", Species: "cat", Name: "Michi", Breed: "Mestizo", WeightKg: ptr(5.0)}}
	got, err := fx.asm.Assemble(context.Background(), req)
	require.NoError(t, err)

	kcal, ok := EstimateDailyCalories("cat", ptr(5.0), ConditionUndetermined, "")
	require.True(t, ok)
	require.Equal(t, int(math.Round(70*math.Pow(5, 0.75)*1.2)), kcal)

	want := DietProposal{
		AnimalID:      "cat-0007",
		Name:          "Plan Michi",
		FoodType:      "wet",
		Goal:          "mantener peso",
		StartDate:     "2026-05-01",
		Status:        StatusProposed,
		MealsPerDay:   3,
		DailyCalories: ptr(kcal),
		// el draft pidió "wet": solo cat-b (380 kcal/100g) es candidato
		FoodID:        ptr("cat-b"),
		PortionGrams:  ptr(74),
		Schedule:      ptr(GenerateSchedule("cat-0007", 3, "cat")),
		Justification: "Gato adulto sin datos de raza.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("proposal mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "07:37,12:52,19:22", *got.Schedule)
	assert.Equal(t, []string{"complete"}, fx.metrics.assemblies)
}

func TestAssemble_UnusableOutputFallsBackToHeuristics(t *testing.T) {
	fx := newAssemblerFixture("k", fakeReply{text: "Lo siento, no puedo ayudar con eso."})

	req := Request{Animal: AnimalProfile{ID: "dog-12", Species: "perro", Name: "Toby", Breed: "beagle", WeightKg: ptr(12.0)}}
	got, err := fx.asm.Assemble(context.Background(), req)
	require.NoError(t, err)

	kcal, _ := EstimateDailyCalories("perro", ptr(12.0), ConditionOver, "")
	portion := PortionGrams(&kcal, food("dog-light", catalog.TargetDog, "dry", 310))

	assert.Equal(t, "Diet plan for Toby", got.Name)
	assert.Equal(t, DefaultGoal(ConditionOver), got.Goal)
	assert.Equal(t, 2, got.MealsPerDay)
	assert.Equal(t, kcal, *got.DailyCalories)
	assert.Equal(t, "dog-light", *got.FoodID)
	assert.Equal(t, *portion, *got.PortionGrams)
	assert.Equal(t, "dry", got.FoodType)
	require.NotNil(t, got.MonthlyCost)
	assert.InDelta(t, math.Round(float64(*portion)*30/1000*8*100)/100, *got.MonthlyCost, 0.001)
	assert.Equal(t, GenerateSchedule("dog-12", 2, "perro"), *got.Schedule)
	assert.Contains(t, got.Justification, "Current weight is 12 kg (above for its breed range).")
	assert.Contains(t, got.Justification, "Based on dry food.")
}

func TestAssemble_NoWeightDropsModelCaloriesAndGrams(t *testing.T) {
	fx := newAssemblerFixture("k", fakeReply{text: `{"daily_calories": 900, "portion_grams": 120, "meals_per_day": 2}`})

	req := Request{Animal: AnimalProfile{ID: "c-1", Species: "gato"}}
	got, err := fx.asm.Assemble(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, got.DailyCalories)
	assert.Nil(t, got.PortionGrams)
	assert.NotNil(t, got.FoodID)
	assert.NotEmpty(t, got.Justification)
}

func TestAssemble_DraftOverInputOverDefaults(t *testing.T) {
	fx := newAssemblerFixture("k", fakeReply{text: `{"meals_per_day": 3, "status": "borrador"}`})

	req := Request{
		Animal:      AnimalProfile{ID: "d-5", Species: "dog", WeightKg: ptr(10.0)},
		Preferences: Preferences{Goal: "bajar de peso", PreferredFoodType: "wet"},
		Input: UserInput{
			MealsPerDay:   ptr(4),
			FoodType:      ptr("barf"),
			Schedule:      "9:00, 21:00",
			DailyCalories: ptr(500),
			MonthlyBudget: ptr(35.0),
		},
	}
	got, err := fx.asm.Assemble(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 3, got.MealsPerDay)
	assert.Equal(t, StatusDraft, got.Status)
	assert.Equal(t, "barf", got.FoodType)
	assert.Equal(t, "bajar de peso", got.Goal)
	assert.Equal(t, "09:00,21:00", *got.Schedule)
	assert.Equal(t, 500, *got.DailyCalories)
	assert.Equal(t, 35.0, *got.MonthlyCost)
	// no hay alimentos "barf" en el catálogo
	assert.Nil(t, got.FoodID)
	assert.Nil(t, got.PortionGrams)
}

func TestAssemble_DraftFoodTypeFiltersPick(t *testing.T) {
	cases := []struct {
		name     string
		draft    string
		wantType string
		wantIDs  []string
	}{
		{"draft wet", `{"food_type": "wet"}`, "wet", []string{"cat-b"}},
		{"draft dry", `{"food_type": "dry"}`, "dry", []string{"cat-a", "both-c", "cat-d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newAssemblerFixture("k", fakeReply{text: tc.draft})

			req := Request{
				Animal:      AnimalProfile{ID: "cat-0007", Species: "cat", WeightKg: ptr(5.0)},
				Preferences: Preferences{PreferredFoodType: "barf"},
			}
			got, err := fx.asm.Assemble(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, tc.wantType, got.FoodType)
			require.NotNil(t, got.FoodID)
			assert.Contains(t, tc.wantIDs, *got.FoodID)

			item, ok := NewFoodSelector(fx.foods, nil).FindByID(context.Background(), *got.FoodID)
			require.True(t, ok)
			assert.Equal(t, got.FoodType, item.Type)
		})
	}
}

func TestAssemble_DraftFoodIDGetsPortionFromCatalog(t *testing.T) {
	fx := newAssemblerFixture("k", fakeReply{text: `{"food_id": "cat-b", "daily_calories": 190}`})

	req := Request{Animal: AnimalProfile{ID: "c-9", Species: "cat", WeightKg: ptr(4.0)}}
	got, err := fx.asm.Assemble(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "cat-b", *got.FoodID)
	assert.Equal(t, 190, *got.DailyCalories)
	assert.Equal(t, 50, *got.PortionGrams)
	assert.Equal(t, "wet", got.FoodType)
}

func TestAssemble_MissingCredential(t *testing.T) {
	fx := newAssemblerFixture("", fakeReply{text: "{}"})

	req := Request{Animal: AnimalProfile{ID: "a", Species: "dog", Breed: "beagle", WeightKg: ptr(10.0)}}
	_, err := fx.asm.Assemble(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Empty(t, fx.backend.calls)
	// ni la raza ni el catálogo de alimentos se consultan sin credencial
	assert.Zero(t, fx.breeds.calls)
	assert.Zero(t, fx.foods.calls)
	assert.Equal(t, []string{"error"}, fx.metrics.assemblies)
}

func TestAssemble_UpstreamFailure(t *testing.T) {
	fx := newAssemblerFixture("k",
		fakeReply{err: errors.New("500 from provider")},
		fakeReply{err: errors.New("503 from provider")},
	)

	_, err := fx.asm.Assemble(context.Background(), Request{Animal: AnimalProfile{ID: "a", Species: "dog"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.False(t, errors.Is(err, ErrConfiguration))
	assert.Len(t, fx.backend.calls, 2)
}

func TestAssemble_BrokenDraftRaisesSchemaValidation(t *testing.T) {
	fx := newAssemblerFixture("k", fakeReply{text: `{"start_date": "2026-06-10", "end_date": "2026-06-01"}`})

	_, err := fx.asm.Assemble(context.Background(), Request{Animal: AnimalProfile{ID: "a", Species: "dog"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaValidation))
	assert.False(t, errors.Is(err, ErrUpstream))
}

func TestAssemble_InvalidInputMakesNoCalls(t *testing.T) {
	cases := []struct {
		name string
		req  Request
	}{
		{"missing id", Request{Animal: AnimalProfile{Species: "dog"}}},
		{"zero meals", Request{Animal: AnimalProfile{ID: "a"}, Input: UserInput{MealsPerDay: ptr(0)}}},
		{"negative calories", Request{Animal: AnimalProfile{ID: "a"}, Input: UserInput{DailyCalories: ptr(-1)}}},
		{"bad date", Request{Animal: AnimalProfile{ID: "a"}, Input: UserInput{StartDate: ptr("mañana")}}},
		{"bad status", Request{Animal: AnimalProfile{ID: "a"}, Input: UserInput{Status: ptr("archived")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newAssemblerFixture("k", fakeReply{text: "{}"})

			_, err := fx.asm.Assemble(context.Background(), tc.req)

			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Empty(t, fx.backend.calls)
		})
	}
}

func TestAssemble_LogsEveryStage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	asm := NewAssembler(AssemblerDeps{
		Breeds:  testBreeds(),
		Foods:   testFoods(),
		Drafter: newTestDrafter(&fakeBackend{replies: []fakeReply{{text: "{}"}}}, "k"),
		Log:     logger.FromZap(zap.New(core)),
		Now:     func() time.Time { return fixedNow },
	})

	_, err := asm.Assemble(context.Background(), Request{Animal: AnimalProfile{ID: "a-1", Species: "dog"}})
	require.NoError(t, err)

	stages := make([]string, 0)
	for _, e := range logs.FilterMessage("diet assembly stage").All() {
		stages = append(stages, e.ContextMap()["stage"].(string))
		assert.Equal(t, "a-1", e.ContextMap()["animal_id"])
	}
	assert.Equal(t, []string{"new", "drafted", "sanitized", "enriched", "validated", "complete"}, stages)
}
