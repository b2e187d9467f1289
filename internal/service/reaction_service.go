package service

import (
	"context"

	"recshelf/internal/models"
	"recshelf/internal/repository"
	"recshelf/internal/validation"
)

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	recRepo      repository.RecommendationRepository
}

func NewReactionService(reactionRepo repository.ReactionRepository, recRepo repository.RecommendationRepository) *ReactionService {
	return &ReactionService{reactionRepo: reactionRepo, recRepo: recRepo}
}

// React records the caller's reaction. created is false when an existing
// reaction was flipped in place.
func (s *ReactionService) React(ctx context.Context, userID, recommendationID uint, in models.ReactionCreate) (reaction *models.Reaction, created bool, err error) {
	ctx, span := traced(ctx, "reactions", "React")
	defer func() { endSpan(span, err) }()

	if _, err := s.recRepo.GetByID(ctx, recommendationID, false); err != nil {
		return nil, false, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, false, err
	}

	reaction = &models.Reaction{
		IsPositive:       *in.IsPositive,
		UserID:           userID,
		RecommendationID: recommendationID,
	}
	created, err = s.reactionRepo.Upsert(ctx, reaction)
	if err != nil {
		return nil, false, err
	}
	return reaction, created, nil
}

func (s *ReactionService) List(ctx context.Context, recommendationID uint, isPositive *bool) ([]models.Reaction, error) {
	if _, err := s.recRepo.GetByID(ctx, recommendationID, false); err != nil {
		return nil, err
	}
	return s.reactionRepo.ListByRecommendation(ctx, recommendationID, isPositive)
}

func (s *ReactionService) Mine(ctx context.Context, userID, recommendationID uint) (*models.Reaction, error) {
	if _, err := s.recRepo.GetByID(ctx, recommendationID, false); err != nil {
		return nil, err
	}
	return s.reactionRepo.GetByRecommendationAndUser(ctx, recommendationID, userID)
}

func (s *ReactionService) DeleteMine(ctx context.Context, userID, recommendationID uint) (err error) {
	ctx, span := traced(ctx, "reactions", "DeleteMine")
	defer func() { endSpan(span, err) }()

	reaction, err := s.Mine(ctx, userID, recommendationID)
	if err != nil {
		return err
	}
	return s.reactionRepo.Delete(ctx, reaction.ID)
}
