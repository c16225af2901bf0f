package diet

import "context"

// ProposalRepository es el store externo de propuestas validadas.
// GetByID devuelve ErrNotFound si no existe.
type ProposalRepository interface {
	Save(ctx context.Context, p StoredProposal) error
	GetByID(ctx context.Context, id string) (StoredProposal, error)
	ListByAnimal(ctx context.Context, animalID string) ([]StoredProposal, error)
}
