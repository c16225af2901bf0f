package diet

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-diet-planner/internal/domain/catalog"
)

func testDraftContext() DraftContext {
	return DraftContext{
		Animal:       AnimalProfile{ID: "a-42", Species: "dog", Name: "Toby", Breed: "Beagle", WeightKg: ptr(12.0)},
		Preferences:  Preferences{DislikedFoods: []string{"pescado"}},
		Input:        UserInput{MealsPerDay: ptr(3)},
		Condition:    ConditionOver,
		BreedRange:   &catalog.BreedWeightRange{Breed: "Beagle", MinKg: 9, MaxKg: 11},
		CaloriesHint: ptr(654),
		Today:        "2026-05-01",
	}
}

func TestDrafter_MissingCredentialMakesNoCalls(t *testing.T) {
	b := &fakeBackend{replies: []fakeReply{{text: `{"name":"x"}`}}}
	d := newTestDrafter(b, "")

	_, err := d.Draft(context.Background(), testDraftContext())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Empty(t, b.calls)
}

func TestDrafter_MissingBackend(t *testing.T) {
	d := NewDrafter(DrafterConfig{APIKey: "k", Primary: Route{Model: "m"}}, nil, nil)

	_, err := d.Draft(context.Background(), testDraftContext())
	assert.True(t, errors.Is(err, ErrConfiguration))

	var nilDrafter *Drafter
	_, err = nilDrafter.Draft(context.Background(), testDraftContext())
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestDrafter_PrimarySucceeds(t *testing.T) {
	b := &fakeBackend{replies: []fakeReply{{text: `{"name":"Plan"}`}}}
	m := &fakeMetrics{}
	d := NewDrafter(DrafterConfig{
		APIKey:      "k",
		Primary:     Route{Backend: b, Model: "model-primary"},
		Fallback:    Route{Model: "model-fallback"},
		Temperature: 0.2,
	}, nil, m)

	text, err := d.Draft(context.Background(), testDraftContext())

	require.NoError(t, err)
	assert.Equal(t, `{"name":"Plan"}`, text)
	require.Len(t, b.calls, 1)
	assert.Equal(t, "model-primary", b.calls[0].Model)
	assert.True(t, b.calls[0].JSON)
	assert.InDelta(t, 0.2, b.calls[0].Temperature, 1e-6)
	assert.Equal(t, []string{"primary/model-primary/ok"}, m.attempts)
}

func TestDrafter_FallsBackExactlyOnce(t *testing.T) {
	b := &fakeBackend{replies: []fakeReply{
		{err: errors.New("quota exceeded")},
		{text: `{"name":"From fallback"}`},
	}}
	d := newTestDrafter(b, "k")

	text, err := d.Draft(context.Background(), testDraftContext())

	require.NoError(t, err)
	assert.Equal(t, `{"name":"From fallback"}`, text)
	assert.Equal(t, []string{"model-primary", "model-fallback"}, b.models())
}

func TestDrafter_EmptyCompletionCountsAsFailure(t *testing.T) {
	b := &fakeBackend{replies: []fakeReply{{text: "  "}, {text: "{}"}}}
	d := newTestDrafter(b, "k")

	text, err := d.Draft(context.Background(), testDraftContext())

	require.NoError(t, err)
	assert.Equal(t, "{}", text)
	assert.Len(t, b.calls, 2)
}

func TestDrafter_BothFailRaisesUpstream(t *testing.T) {
	b := &fakeBackend{replies: []fakeReply{
		{err: errors.New("primary boom")},
		{err: errors.New("fallback boom")},
		{text: "never used"},
	}}
	m := &fakeMetrics{}
	d := NewDrafter(DrafterConfig{
		APIKey:   "k",
		Primary:  Route{Backend: b, Model: "model-primary"},
		Fallback: Route{Model: "model-fallback"},
	}, nil, m)

	_, err := d.Draft(context.Background(), testDraftContext())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
	var ue *UpstreamServiceError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "model-primary", ue.PrimaryModel)
	assert.Equal(t, "model-fallback", ue.FallbackModel)
	assert.Contains(t, err.Error(), "fallback boom")
	assert.Len(t, b.calls, 2)
	assert.Equal(t, []string{"primary/model-primary/error", "fallback/model-fallback/error"}, m.attempts)
}

func TestDrafter_FallbackReusesPrimaryModelWhenUnset(t *testing.T) {
	b := &fakeBackend{replies: []fakeReply{{err: errors.New("timeout")}, {text: "{}"}}}
	d := NewDrafter(DrafterConfig{APIKey: "k", Primary: Route{Backend: b, Model: "only-model"}}, nil, nil)

	_, err := d.Draft(context.Background(), testDraftContext())

	require.NoError(t, err)
	assert.Equal(t, []string{"only-model", "only-model"}, b.models())
}

func TestDrafter_AlternateFallbackBackend(t *testing.T) {
	primary := &fakeBackend{replies: []fakeReply{{err: errors.New("503")}}}
	alternate := &fakeBackend{replies: []fakeReply{{text: `{"goal":"x"}`}}}
	d := NewDrafter(DrafterConfig{
		APIKey:   "k",
		Primary:  Route{Backend: primary, Model: "gemini-2.5-flash"},
		Fallback: Route{Variant: VariantAlternate, Backend: alternate, Model: "gpt-4o-mini"},
	}, nil, nil)

	text, err := d.Draft(context.Background(), testDraftContext())

	require.NoError(t, err)
	assert.Equal(t, `{"goal":"x"}`, text)
	assert.Len(t, primary.calls, 1)
	assert.Equal(t, []string{"gpt-4o-mini"}, alternate.models())
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(testDraftContext())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, draftInstructions))
	assert.Contains(t, prompt, "Never estimate grams or calories without a known body weight")
	assert.Contains(t, prompt, `"id": "a-42"`)
	assert.Contains(t, prompt, `"weight_condition": "over"`)
	assert.Contains(t, prompt, `"daily_calories_hint": 654`)
	assert.Contains(t, prompt, `"max_kg": 11`)
	assert.Contains(t, prompt, `"pescado"`)
	assert.Contains(t, prompt, `"meals_per_day": 3`)
}

func TestBuildPrompt_OmitsUnusableWeight(t *testing.T) {
	dc := testDraftContext()
	dc.Animal.WeightKg = ptr(0.0)
	dc.BreedRange = nil
	dc.CaloriesHint = nil

	prompt, err := BuildPrompt(dc)
	require.NoError(t, err)

	i := strings.Index(prompt, "CONTEXT:")
	require.Positive(t, i)
	ctxPart := prompt[i:]
	assert.NotContains(t, ctxPart, "weight_kg")
	assert.NotContains(t, ctxPart, "healthy_weight_range")
	assert.NotContains(t, ctxPart, "daily_calories_hint")
}
