package service

import (
	"context"

	"recshelf/internal/models"
	"recshelf/internal/repository"
	"recshelf/internal/validation"
)

// CommentService resolves the parent recommendation before the comment, so
// a missing parent is always reported ahead of a missing child.
type CommentService struct {
	commentRepo repository.CommentRepository
	recRepo     repository.RecommendationRepository
	now         Clock
}

func NewCommentService(commentRepo repository.CommentRepository, recRepo repository.RecommendationRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, recRepo: recRepo, now: utcNow}
}

func (s *CommentService) requireRecommendation(ctx context.Context, recommendationID uint) error {
	_, err := s.recRepo.GetByID(ctx, recommendationID, false)
	return err
}

// resolve loads the comment under its recommendation.
func (s *CommentService) resolve(ctx context.Context, recommendationID, commentID uint) (*models.Comment, error) {
	if err := s.requireRecommendation(ctx, recommendationID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByIDAndRecommendation(ctx, recommendationID, commentID)
}

func (s *CommentService) CreateComment(ctx context.Context, userID, recommendationID uint, in models.CommentCreate) (comment *models.Comment, err error) {
	ctx, span := traced(ctx, "comments", "Create")
	defer func() { endSpan(span, err) }()

	if err := s.requireRecommendation(ctx, recommendationID); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	comment = &models.Comment{
		Content:          in.Content,
		Published:        s.now(),
		UserID:           userID,
		RecommendationID: recommendationID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, recommendationID, commentID uint) (*models.Comment, error) {
	return s.resolve(ctx, recommendationID, commentID)
}

// ListComments validates paging and returns the ordered page.
func (s *CommentService) ListComments(ctx context.Context, recommendationID uint, q models.ListCommentsQuery) ([]models.Comment, error) {
	if err := s.requireRecommendation(ctx, recommendationID); err != nil {
		return nil, err
	}
	if q.Offset < 0 {
		return nil, models.NewValidationError("offset must be greater than or equal to 0")
	}
	if q.Limit != nil && *q.Limit < 0 {
		return nil, models.NewValidationError("limit must be greater than or equal to 0")
	}
	return s.commentRepo.ListByRecommendation(ctx, recommendationID, q)
}

// UpdateComment replaces the content and stamps updated. An empty content
// string keeps the old text but still counts as an edit.
func (s *CommentService) UpdateComment(ctx context.Context, userID, recommendationID, commentID uint, in models.CommentUpdate) (comment *models.Comment, err error) {
	ctx, span := traced(ctx, "comments", "Update")
	defer func() { endSpan(span, err) }()

	comment, err = s.resolve(ctx, recommendationID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, forbidden("update", "comment", commentID)
	}
	if !in.Content.Set {
		return nil, models.NewValidationError("No Body provided")
	}
	if in.Content.Null {
		return nil, nullField("content")
	}

	if in.Content.Value != "" {
		comment.Content = in.Content.Value
	}
	now := s.now()
	comment.Updated = &now
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, recommendationID, commentID uint) (err error) {
	ctx, span := traced(ctx, "comments", "Delete")
	defer func() { endSpan(span, err) }()

	comment, err := s.resolve(ctx, recommendationID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return forbidden("delete", "comment", commentID)
	}
	return s.commentRepo.Delete(ctx, comment.ID)
}
