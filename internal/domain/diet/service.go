package diet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Engine arma una propuesta validada. *Assembler la implementa.
type Engine interface {
	Assemble(ctx context.Context, req Request) (DietProposal, error)
}

type Service struct {
	engine Engine
	repo   ProposalRepository
	now    func() time.Time
	newID  func() string
}

func NewService(engine Engine, repo ProposalRepository) *Service {
	return &Service{
		engine: engine,
		repo:   repo,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Generate arma la propuesta y solo si valida la entrega al store.
func (s *Service) Generate(ctx context.Context, req Request) (StoredProposal, error) {
	p, err := s.engine.Assemble(ctx, req)
	if err != nil {
		return StoredProposal{}, err
	}

	sp := StoredProposal{
		ID:        s.newID(),
		Proposal:  p,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, sp); err != nil {
		return StoredProposal{}, fmt.Errorf("save diet proposal: %w", err)
	}
	return sp, nil
}

func (s *Service) Get(ctx context.Context, id string) (StoredProposal, error) {
	if strings.TrimSpace(id) == "" {
		return StoredProposal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]StoredProposal, error) {
	if strings.TrimSpace(animalID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID)
}
