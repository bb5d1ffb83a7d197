package relation

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RelationService interface {
		Add(ctx context.Context, kind domain.RelationKind, userID, targetID string) (interface{}, error)
		Remove(ctx context.Context, kind domain.RelationKind, userID, targetID string) error
		GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error)
	}

	// relationKind describes how one relation kind resolves its target,
	// which errors it reports and what Add returns.
	relationKind struct {
		lookup    func(ctx context.Context, targetID string) (interface{}, error)
		validate  func(userID, targetID string) error
		project   func(ctx context.Context, target interface{}) (interface{}, error)
		duplicate error
		missing   error
	}

	relationService struct {
		relationRepository RelationRepository
		recipeRepository   recipe.RecipeRepository
		userRepository     user.UserRepository
		kinds              map[domain.RelationKind]relationKind
	}
)

func NewRelationService(relationRepository RelationRepository, recipeRepository recipe.RecipeRepository, userRepository user.UserRepository) RelationService {
	s := &relationService{
		relationRepository: relationRepository,
		recipeRepository:   recipeRepository,
		userRepository:     userRepository,
	}

	recipeShort := func(_ context.Context, target interface{}) (interface{}, error) {
		return recipe.ToRecipeShortResponse(target.(*entities.Recipe)), nil
	}
	s.kinds = map[domain.RelationKind]relationKind{
		domain.RelationFavorite: {
			lookup:    s.findRecipe,
			project:   recipeShort,
			duplicate: domain.ErrAlreadyFavorited,
			missing:   domain.ErrFavoriteNotExists,
		},
		domain.RelationShoppingCart: {
			lookup:    s.findRecipe,
			project:   recipeShort,
			duplicate: domain.ErrAlreadyInCart,
			missing:   domain.ErrCartNotExists,
		},
		domain.RelationSubscription: {
			lookup: s.findUser,
			validate: func(userID, targetID string) error {
				if userID == targetID {
					return domain.ErrSelfSubscription
				}
				return nil
			},
			project: func(ctx context.Context, target interface{}) (interface{}, error) {
				return s.subscriptionView(ctx, target.(*entities.User), 0)
			},
			duplicate: domain.ErrAlreadySubscribed,
			missing:   domain.ErrSubscriptionMissing,
		},
	}
	return s
}

func (s *relationService) Add(ctx context.Context, kind domain.RelationKind, userID, targetID string) (interface{}, error) {
	k, target, err := s.resolve(ctx, kind, userID, targetID)
	if err != nil {
		return nil, err
	}

	exists, err := s.relationRepository.Exists(ctx, kind, userID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, k.duplicate
	}

	if err := s.relationRepository.Create(ctx, kind, userID, targetID); err != nil {
		return nil, err
	}

	return k.project(ctx, target)
}

func (s *relationService) Remove(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	k, _, err := s.resolve(ctx, kind, userID, targetID)
	if err != nil {
		return err
	}

	deleted, err := s.relationRepository.Delete(ctx, kind, userID, targetID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return k.missing
	}
	return nil
}

func (s *relationService) GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error) {
	authors, count, err := s.relationRepository.GetSubscribedAuthors(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		view, err := s.subscriptionView(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, view)
	}
	return result, count, nil
}

// resolve loads the target and runs the kind's own checks. The target is
// checked before anything else so a missing target is always NotFound.
func (s *relationService) resolve(ctx context.Context, kind domain.RelationKind, userID, targetID string) (relationKind, interface{}, error) {
	k, ok := s.kinds[kind]
	if !ok {
		return relationKind{}, nil, domain.ErrUnknownRelation
	}

	target, err := k.lookup(ctx, targetID)
	if err != nil {
		return relationKind{}, nil, err
	}

	if k.validate != nil {
		if err := k.validate(userID, targetID); err != nil {
			return relationKind{}, nil, err
		}
	}
	return k, target, nil
}

func (s *relationService) findRecipe(ctx context.Context, id string) (interface{}, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRecipeNotFound
	}
	r, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *relationService) findUser(ctx context.Context, id string) (interface{}, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	u, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// subscriptionView renders an author the viewer follows. recipesLimit <= 0
// returns every recipe of the author.
func (s *relationService) subscriptionView(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	authorID := author.ID.String()

	recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, authorID, recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	count, err := s.recipeRepository.CountRecipesByAuthor(ctx, authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	preview := make([]domain.RecipeShortResponse, 0, len(recipes))
	for _, r := range recipes {
		preview = append(preview, recipe.ToRecipeShortResponse(r))
	}

	return domain.SubscriptionResponse{
		UserResponse: user.ToUserResponse(author, true),
		Recipes:      preview,
		RecipesCount: count,
	}, nil
}
