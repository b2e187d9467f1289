package service

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"recshelf/internal/models"
	"recshelf/internal/repository"
	"recshelf/internal/validation"
)

type RecommendationService struct {
	recRepo      repository.RecommendationRepository
	fictionTypes repository.FictionTypeRepository
	tags         repository.TagRepository
	now          Clock
}

func NewRecommendationService(
	recRepo repository.RecommendationRepository,
	fictionTypes repository.FictionTypeRepository,
	tags repository.TagRepository,
) *RecommendationService {
	return &RecommendationService{
		recRepo:      recRepo,
		fictionTypes: fictionTypes,
		tags:         tags,
		now:          utcNow,
	}
}

// List returns every recommendation, or those filed under the fiction type
// with the given slug. An unknown slug yields an empty list.
func (s *RecommendationService) List(ctx context.Context, fictionTypeSlug string) ([]models.Recommendation, error) {
	var filter models.RecommendationFilter
	if slug := strings.TrimSpace(fictionTypeSlug); slug != "" {
		ft, err := s.fictionTypes.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if ft == nil {
			return []models.Recommendation{}, nil
		}
		filter.FictionTypeID = &ft.ID
	}
	return s.recRepo.List(ctx, filter)
}

func (s *RecommendationService) Get(ctx context.Context, id uint) (*models.Recommendation, error) {
	return s.recRepo.GetByID(ctx, id, true)
}

// Create files a new recommendation owned by userID.
func (s *RecommendationService) Create(ctx context.Context, userID uint, in models.RecommendationCreate) (rec *models.Recommendation, err error) {
	ctx, span := traced(ctx, "recommendations", "Create")
	defer func() { endSpan(span, err) }()

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.fictionTypes.GetByID(ctx, in.FictionTypeID); err != nil {
		return nil, err
	}
	if _, err := s.tags.GetByIDs(ctx, in.TagIDs); err != nil {
		return nil, err
	}

	rec = &models.Recommendation{
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		Opinion:          in.Opinion,
		Published:        s.now(),
		UserID:           userID,
		FictionTypeID:    in.FictionTypeID,
	}
	if err := s.recRepo.Create(ctx, rec, in.TagIDs); err != nil {
		return nil, err
	}
	return s.recRepo.GetByID(ctx, rec.ID, true)
}

// Update applies the present fields of in. Only the owner may edit.
func (s *RecommendationService) Update(ctx context.Context, userID, id uint, in models.RecommendationUpdate) (rec *models.Recommendation, err error) {
	ctx, span := traced(ctx, "recommendations", "Update")
	defer func() { endSpan(span, err) }()

	rec, err = s.recRepo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, forbidden("update", "recommendation", id)
	}

	for _, f := range []struct {
		name string
		null bool
	}{
		{"title", in.Title.Null},
		{"short_description", in.ShortDescription.Null},
		{"opinion", in.Opinion.Null},
		{"fiction_type_id", in.FictionTypeID.Null},
		{"tag_ids", in.TagIDs.Null},
	} {
		if f.null {
			return nil, nullField(f.name)
		}
	}

	if in.Title.Set {
		if err := checkText("title", in.Title.Value, 255); err != nil {
			return nil, err
		}
		rec.Title = in.Title.Value
	}
	if in.ShortDescription.Set {
		if err := checkText("short_description", in.ShortDescription.Value, 0); err != nil {
			return nil, err
		}
		rec.ShortDescription = in.ShortDescription.Value
	}
	if in.Opinion.Set {
		if err := checkText("opinion", in.Opinion.Value, 0); err != nil {
			return nil, err
		}
		rec.Opinion = in.Opinion.Value
	}
	if in.FictionTypeID.Set {
		if _, err := s.fictionTypes.GetByID(ctx, in.FictionTypeID.Value); err != nil {
			return nil, err
		}
		rec.FictionTypeID = in.FictionTypeID.Value
	}

	var tagIDs []uint
	if in.TagIDs.Set {
		if len(in.TagIDs.Value) == 0 {
			return nil, models.NewValidationError("tag_ids must contain at least 1 item(s)")
		}
		if _, err := s.tags.GetByIDs(ctx, in.TagIDs.Value); err != nil {
			return nil, err
		}
		tagIDs = in.TagIDs.Value
	}

	now := s.now()
	rec.Updated = &now
	if err := s.recRepo.Update(ctx, rec, tagIDs); err != nil {
		return nil, err
	}
	return s.recRepo.GetByID(ctx, rec.ID, true)
}

// Delete removes the recommendation with its comments, reactions and tag
// links. Only the owner may delete.
func (s *RecommendationService) Delete(ctx context.Context, userID, id uint) (err error) {
	ctx, span := traced(ctx, "recommendations", "Delete")
	defer func() { endSpan(span, err) }()

	rec, err := s.recRepo.GetByID(ctx, id, false)
	if err != nil {
		return err
	}
	if rec.UserID != userID {
		return forbidden("delete", "recommendation", id)
	}
	return s.recRepo.Delete(ctx, id)
}

// checkText rejects blank values and, when max > 0, values longer than max.
func checkText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return models.NewValidationError(field + " is required")
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		return models.NewValidationError(field + " must not exceed " + strconv.Itoa(max) + " characters")
	}
	return nil
}
