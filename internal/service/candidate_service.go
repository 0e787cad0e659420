package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/cinemate/cinemate/internal/domain"
	"github.com/cinemate/cinemate/internal/repository"
)

type CandidateService struct {
	interestRepo repository.InterestRepository
}

func NewCandidateService(interestRepo repository.InterestRepository) *CandidateService {
	return &CandidateService{interestRepo: interestRepo}
}

// Rank lists other users sharing at least one liked movie with the viewer,
// largest overlap first, freshest shared like breaking ties. A non-positive
// limit quietly becomes 1; there is no upper clamp here, callers impose their
// own. Unknown users simply have no likes to intersect, so they get an empty
// list rather than an error.
func (s *CandidateService) Rank(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Candidate, error) {
	if limit < 1 {
		limit = 1
	}

	candidates, err := s.interestRepo.RankCandidates(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	return candidates, nil
}
