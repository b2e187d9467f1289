package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"recshelf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "reader", Email: "reader@example.com"}, nil
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// recRepoStub is a stub for repository.RecommendationRepository.
type recRepoStub struct {
	getByIDFn func(context.Context, uint, bool) (*models.Recommendation, error)
	listFn    func(context.Context, models.RecommendationFilter) ([]models.Recommendation, error)
	createFn  func(context.Context, *models.Recommendation, []uint) error
	updateFn  func(context.Context, *models.Recommendation, []uint) error
	deleteFn  func(context.Context, uint) error
}

func (s *recRepoStub) GetByID(ctx context.Context, id uint, details bool) (*models.Recommendation, error) {
	return s.getByIDFn(ctx, id, details)
}
func (s *recRepoStub) List(ctx context.Context, f models.RecommendationFilter) ([]models.Recommendation, error) {
	return s.listFn(ctx, f)
}
func (s *recRepoStub) Create(ctx context.Context, rec *models.Recommendation, tagIDs []uint) error {
	return s.createFn(ctx, rec, tagIDs)
}
func (s *recRepoStub) Update(ctx context.Context, rec *models.Recommendation, tagIDs []uint) error {
	return s.updateFn(ctx, rec, tagIDs)
}
func (s *recRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// noopRecRepo knows recommendation 1, owned by user 10.
func noopRecRepo() *recRepoStub {
	return &recRepoStub{
		getByIDFn: func(_ context.Context, id uint, _ bool) (*models.Recommendation, error) {
			if id != 1 {
				return nil, models.NewNotFoundError("Recommendation", id)
			}
			return &models.Recommendation{ID: 1, Title: "Dune", UserID: 10, FictionTypeID: 1}, nil
		},
		listFn: func(_ context.Context, _ models.RecommendationFilter) ([]models.Recommendation, error) {
			return []models.Recommendation{}, nil
		},
		createFn: func(_ context.Context, _ *models.Recommendation, _ []uint) error { return nil },
		updateFn: func(_ context.Context, _ *models.Recommendation, _ []uint) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// fictionTypeRepoStub is a stub for repository.FictionTypeRepository.
type fictionTypeRepoStub struct {
	listFn      func(context.Context) ([]models.FictionType, error)
	getByIDFn   func(context.Context, uint) (*models.FictionType, error)
	getBySlugFn func(context.Context, string) (*models.FictionType, error)
	createFn    func(context.Context, *models.FictionType) error
	deleteFn    func(context.Context, uint) error
}

func (s *fictionTypeRepoStub) List(ctx context.Context) ([]models.FictionType, error) {
	return s.listFn(ctx)
}
func (s *fictionTypeRepoStub) GetByID(ctx context.Context, id uint) (*models.FictionType, error) {
	return s.getByIDFn(ctx, id)
}
func (s *fictionTypeRepoStub) GetBySlug(ctx context.Context, slug string) (*models.FictionType, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *fictionTypeRepoStub) Create(ctx context.Context, ft *models.FictionType) error {
	return s.createFn(ctx, ft)
}
func (s *fictionTypeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// noopFictionTypeRepo knows fiction type 1 ("book").
func noopFictionTypeRepo() *fictionTypeRepoStub {
	return &fictionTypeRepoStub{
		listFn: func(_ context.Context) ([]models.FictionType, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.FictionType, error) {
			if id != 1 {
				return nil, models.NewNotFoundError("Fiction type", id)
			}
			return &models.FictionType{ID: 1, Name: "Book", Slug: "book"}, nil
		},
		getBySlugFn: func(_ context.Context, slug string) (*models.FictionType, error) {
			if slug != "book" {
				return nil, nil
			}
			return &models.FictionType{ID: 1, Name: "Book", Slug: "book"}, nil
		},
		createFn: func(_ context.Context, _ *models.FictionType) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	listFn     func(context.Context) ([]models.Tag, error)
	getByIDsFn func(context.Context, []uint) ([]models.Tag, error)
	createFn   func(context.Context, *models.Tag) error
}

func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) { return s.listFn(ctx) }
func (s *tagRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error { return s.createFn(ctx, tag) }

// noopTagRepo knows tags 1 to 3.
func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		listFn: func(_ context.Context) ([]models.Tag, error) { return nil, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Tag, error) {
			out := make([]models.Tag, 0, len(ids))
			for _, id := range ids {
				if id == 0 || id > 3 {
					return nil, models.NewNotFoundError("Tag", id)
				}
				out = append(out, models.Tag{ID: id})
			}
			return out, nil
		},
		createFn: func(_ context.Context, _ *models.Tag) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn func(context.Context, *models.Comment) error
	getFn    func(context.Context, uint, uint) (*models.Comment, error)
	listFn   func(context.Context, uint, models.ListCommentsQuery) ([]models.Comment, error)
	updateFn func(context.Context, *models.Comment) error
	deleteFn func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByIDAndRecommendation(ctx context.Context, recID, commentID uint) (*models.Comment, error) {
	return s.getFn(ctx, recID, commentID)
}
func (s *commentRepoStub) ListByRecommendation(ctx context.Context, recID uint, q models.ListCommentsQuery) ([]models.Comment, error) {
	return s.listFn(ctx, recID, q)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// noopCommentRepo knows comment 5 on recommendation 1, written by user 20.
func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getFn: func(_ context.Context, recID, commentID uint) (*models.Comment, error) {
			if recID != 1 || commentID != 5 {
				return nil, models.NewScopedNotFoundError("Comment", commentID, "recommendation", recID)
			}
			return &models.Comment{ID: 5, Content: "original", UserID: 20, RecommendationID: 1}, nil
		},
		listFn: func(_ context.Context, _ uint, _ models.ListCommentsQuery) ([]models.Comment, error) {
			return []models.Comment{}, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// reactionRepoStub is a stub for repository.ReactionRepository.
type reactionRepoStub struct {
	getFn    func(context.Context, uint, uint) (*models.Reaction, error)
	listFn   func(context.Context, uint, *bool) ([]models.Reaction, error)
	upsertFn func(context.Context, *models.Reaction) (bool, error)
	deleteFn func(context.Context, uint) error
}

func (s *reactionRepoStub) GetByRecommendationAndUser(ctx context.Context, recID, userID uint) (*models.Reaction, error) {
	return s.getFn(ctx, recID, userID)
}
func (s *reactionRepoStub) ListByRecommendation(ctx context.Context, recID uint, isPositive *bool) ([]models.Reaction, error) {
	return s.listFn(ctx, recID, isPositive)
}
func (s *reactionRepoStub) Upsert(ctx context.Context, r *models.Reaction) (bool, error) {
	return s.upsertFn(ctx, r)
}
func (s *reactionRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		getFn: func(_ context.Context, recID, userID uint) (*models.Reaction, error) {
			return nil, models.NewScopedNotFoundError("Reaction of user", userID, "recommendation", recID)
		},
		listFn:   func(_ context.Context, _ uint, _ *bool) ([]models.Reaction, error) { return []models.Reaction{}, nil },
		upsertFn: func(_ context.Context, _ *models.Reaction) (bool, error) { return true, nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}
