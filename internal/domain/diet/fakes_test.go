package diet

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-diet-planner/internal/domain/catalog"
)

// -------------------------
// Catálogos fake
// -------------------------

type fakeBreeds struct {
	rows  []catalog.Breed
	err   error
	calls int
}

func (f *fakeBreeds) FindBreeds(_ context.Context, q string) ([]catalog.Breed, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]catalog.Breed, 0)
	for _, b := range f.rows {
		if b.Matches(q) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeFoods struct {
	items []catalog.FoodItem
	err   error
	calls int
}

func (f *fakeFoods) ListFoods(_ context.Context, flt catalog.FoodFilter) ([]catalog.FoodItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]catalog.FoodItem, 0)
	for _, it := range f.items {
		if flt.ID != "" && it.ID != flt.ID {
			continue
		}
		if flt.Species != "" && it.Species != flt.Species {
			continue
		}
		if flt.Type != "" && !strings.EqualFold(it.Type, flt.Type) {
			continue
		}
		if flt.Name != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(flt.Name)) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func food(id string, species catalog.TargetSpecies, typ string, kcal float64) catalog.FoodItem {
	return catalog.FoodItem{ID: id, Name: "food " + id, Type: typ, Species: species, KcalPer100g: &kcal}
}

// -------------------------
// Backend fake (cuenta llamadas)
// -------------------------

type fakeReply struct {
	text string
	err  error
}

type fakeBackend struct {
	mu      sync.Mutex
	replies []fakeReply
	calls   []GenerateRequest
}

func (b *fakeBackend) Generate(_ context.Context, req GenerateRequest) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, req)
	if len(b.replies) == 0 {
		return "", errors.New("fake backend: no reply queued")
	}
	r := b.replies[0]
	b.replies = b.replies[1:]
	return r.text, r.err
}

func (b *fakeBackend) models() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.calls))
	for _, c := range b.calls {
		out = append(out, c.Model)
	}
	return out
}

func newTestDrafter(b Backend, key string) *Drafter {
	return NewDrafter(DrafterConfig{
		APIKey:      key,
		Primary:     Route{Backend: b, Model: "model-primary"},
		Fallback:    Route{Model: "model-fallback"},
		Temperature: 0.2,
	}, nil, nil)
}

// -------------------------
// Métricas fake
// -------------------------

type fakeMetrics struct {
	attempts   []string // variant/model/outcome
	assemblies []string
}

func (m *fakeMetrics) DraftAttempt(variant, model, outcome string, _ time.Duration) {
	m.attempts = append(m.attempts, variant+"/"+model+"/"+outcome)
}

func (m *fakeMetrics) Assembly(outcome string) {
	m.assemblies = append(m.assemblies, outcome)
}

// -------------------------
// Store fake
// -------------------------

type fakeProposalRepo struct {
	byID map[string]StoredProposal
	err  error
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{byID: map[string]StoredProposal{}}
}

func (r *fakeProposalRepo) Save(_ context.Context, p StoredProposal) error {
	if r.err != nil {
		return r.err
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProposalRepo) GetByID(_ context.Context, id string) (StoredProposal, error) {
	p, ok := r.byID[id]
	if !ok {
		return StoredProposal{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeProposalRepo) ListByAnimal(_ context.Context, animalID string) ([]StoredProposal, error) {
	out := make([]StoredProposal, 0)
	for _, p := range r.byID {
		if p.Proposal.AnimalID == animalID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func ptr[T any](v T) *T { return &v }
