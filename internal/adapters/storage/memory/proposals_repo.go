package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-diet-planner/internal/domain/diet"
)

type proposalRepo struct {
	mu   sync.RWMutex
	byID map[string]diet.StoredProposal
}

func NewProposalRepo() diet.ProposalRepository {
	return &proposalRepo{
		byID: make(map[string]diet.StoredProposal),
	}
}

func (r *proposalRepo) Save(ctx context.Context, p diet.StoredProposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("proposal id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("proposal already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *proposalRepo) GetByID(ctx context.Context, id string) (diet.StoredProposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return diet.StoredProposal{}, diet.ErrNotFound
	}
	return p, nil
}

func (r *proposalRepo) ListByAnimal(ctx context.Context, animalID string) ([]diet.StoredProposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]diet.StoredProposal, 0)
	for _, p := range r.byID {
		if p.Proposal.AnimalID == animalID {
			out = append(out, p)
		}
	}

	// más reciente primero; id como desempate para orden estable
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
