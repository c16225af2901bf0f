package diet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-diet-planner/internal/domain/catalog"
)

func ids(items []catalog.FoodItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestPickFood_OverPicksLowestKcal(t *testing.T) {
	pool := []catalog.FoodItem{
		food("a", catalog.TargetDog, "dry", 500),
		food("b", catalog.TargetDog, "dry", 300),
		food("c", catalog.TargetDog, "dry", 400),
		{ID: "unknown", Type: "dry", Species: catalog.TargetDog},
	}

	for _, key := range []string{"", "1", "22", "animal-987", "999"} {
		got, ok := PickFood(pool, ConditionOver, key)
		require.True(t, ok)
		assert.Equal(t, "b", got.ID, "key %q", key)
	}
}

func TestPickFood_UnderPicksHighestKcal(t *testing.T) {
	pool := []catalog.FoodItem{
		food("a", catalog.TargetCat, "wet", 500),
		food("b", catalog.TargetCat, "wet", 300),
		food("c", catalog.TargetCat, "wet", 400),
	}
	got, ok := PickFood(pool, ConditionUnder, "7")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestPickFood_TiesBrokenBySeed(t *testing.T) {
	pool := []catalog.FoodItem{
		food("x", catalog.TargetDog, "dry", 300),
		food("y", catalog.TargetDog, "dry", 300),
		food("z", catalog.TargetDog, "dry", 450),
	}
	got0, _ := PickFood(pool, ConditionOver, "0")
	got1, _ := PickFood(pool, ConditionOver, "1")

	assert.Equal(t, "x", got0.ID)
	assert.Equal(t, "y", got1.ID)
}

func TestPickFood_HealthyUsesMiddleWindow(t *testing.T) {
	pool := []catalog.FoodItem{
		food("k500", catalog.TargetDog, "dry", 500),
		food("k100", catalog.TargetDog, "dry", 100),
		food("k300", catalog.TargetDog, "dry", 300),
		food("k200", catalog.TargetDog, "dry", 200),
		food("k400", catalog.TargetDog, "dry", 400),
	}

	picked := map[string]bool{}
	for _, key := range []string{"0", "1", "2", "3", "4", "5"} {
		got, ok := PickFood(pool, ConditionHealthy, key)
		require.True(t, ok)
		picked[got.ID] = true
	}
	assert.Equal(t, map[string]bool{"k200": true, "k300": true, "k400": true}, picked)

	got, _ := PickFood(pool, ConditionUndetermined, "0")
	assert.Equal(t, "k200", got.ID)
}

func TestPickFood_NoKnownKcalUsesWholePool(t *testing.T) {
	pool := []catalog.FoodItem{{ID: "p"}, {ID: "q"}, {ID: "r"}}
	got, ok := PickFood(pool, ConditionOver, "2")
	require.True(t, ok)
	assert.Equal(t, "r", got.ID)

	_, ok = PickFood(nil, ConditionHealthy, "2")
	assert.False(t, ok)
}

func TestPortionGrams(t *testing.T) {
	it := food("a", catalog.TargetDog, "dry", 350)

	g := PortionGrams(ptr(500), it)
	require.NotNil(t, g)
	assert.Equal(t, 143, *g)

	assert.Nil(t, PortionGrams(nil, it))
	assert.Nil(t, PortionGrams(ptr(500), catalog.FoodItem{ID: "nokcal"}))
}

func TestMonthlyCost(t *testing.T) {
	it := food("a", catalog.TargetDog, "dry", 350)
	assert.Nil(t, MonthlyCost(ptr(143), it))

	it.PricePerKg = ptr(10.0)
	c := MonthlyCost(ptr(143), it)
	require.NotNil(t, c)
	assert.InDelta(t, 42.9, *c, 0.001)

	assert.Nil(t, MonthlyCost(nil, it))
}

func TestFoodSelector_Candidates(t *testing.T) {
	repo := &fakeFoods{items: []catalog.FoodItem{
		food("dog-dry", catalog.TargetDog, "dry", 350),
		food("dog-wet", catalog.TargetDog, "wet", 90),
		food("cat-dry", catalog.TargetCat, "dry", 380),
		food("both-dry", catalog.TargetBoth, "Dry", 400),
	}}
	s := NewFoodSelector(repo, nil)
	ctx := context.Background()

	got, err := s.Candidates(ctx, "perro", "")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"dog-dry", "dog-wet", "both-dry"}, ids(got)); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}

	got, err = s.Candidates(ctx, "cat", "dry")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-dry", "both-dry"}, ids(got))

	got, err = s.Candidates(ctx, "hurón", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"both-dry"}, ids(got))
}

func TestFoodSelector_SelectSoftFailsOnCatalogError(t *testing.T) {
	s := NewFoodSelector(&fakeFoods{err: errors.New("catalog down")}, nil)

	_, ok := s.Select(context.Background(), "dog", "", ConditionOver, "1", ptr(600))
	assert.False(t, ok)
}

func TestFoodSelector_SelectComputesPortion(t *testing.T) {
	s := NewFoodSelector(&fakeFoods{items: []catalog.FoodItem{
		food("light", catalog.TargetDog, "dry", 320),
		food("rich", catalog.TargetDog, "dry", 450),
	}}, nil)

	sel, ok := s.Select(context.Background(), "dog", "dry", ConditionOver, "abc", ptr(640))
	require.True(t, ok)
	assert.Equal(t, "light", sel.Item.ID)
	require.NotNil(t, sel.PortionGrams)
	assert.Equal(t, 200, *sel.PortionGrams)

	sel, ok = s.Select(context.Background(), "dog", "dry", ConditionOver, "abc", nil)
	require.True(t, ok)
	assert.Nil(t, sel.PortionGrams)
}

func TestFoodSelector_FindByID(t *testing.T) {
	s := NewFoodSelector(&fakeFoods{items: []catalog.FoodItem{food("f1", catalog.TargetCat, "wet", 95)}}, nil)

	it, ok := s.FindByID(context.Background(), "f1")
	require.True(t, ok)
	assert.Equal(t, "wet", it.Type)

	_, ok = s.FindByID(context.Background(), "missing")
	assert.False(t, ok)
}
