package service

import (
	"context"

	"recshelf/internal/models"
	"recshelf/internal/repository"
	"recshelf/internal/validation"
)

// CatalogService manages the shared reference data: fiction types and tags.
type CatalogService struct {
	fictionTypes repository.FictionTypeRepository
	tags         repository.TagRepository
}

func NewCatalogService(fictionTypes repository.FictionTypeRepository, tags repository.TagRepository) *CatalogService {
	return &CatalogService{fictionTypes: fictionTypes, tags: tags}
}

func (s *CatalogService) ListFictionTypes(ctx context.Context) ([]models.FictionType, error) {
	return s.fictionTypes.List(ctx)
}

func (s *CatalogService) CreateFictionType(ctx context.Context, in models.FictionTypeCreate) (*models.FictionType, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	ft := &models.FictionType{Name: in.Name, Slug: in.Slug}
	if err := s.fictionTypes.Create(ctx, ft); err != nil {
		return nil, err
	}
	return ft, nil
}

// EnsureFictionTypes creates any missing entries, keyed by slug.
func (s *CatalogService) EnsureFictionTypes(ctx context.Context, defaults []models.FictionType) (created int, err error) {
	for _, d := range defaults {
		existing, err := s.fictionTypes.GetBySlug(ctx, d.Slug)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		ft := d
		if err := s.fictionTypes.Create(ctx, &ft); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// DeleteFictionType removes the type and every recommendation filed under it.
func (s *CatalogService) DeleteFictionType(ctx context.Context, id uint) (err error) {
	ctx, span := traced(ctx, "catalog", "DeleteFictionType")
	defer func() { endSpan(span, err) }()

	return s.fictionTypes.Delete(ctx, id)
}

func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.List(ctx)
}

func (s *CatalogService) CreateTag(ctx context.Context, in models.TagCreate) (*models.Tag, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	tag := &models.Tag{Name: in.Name}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}
