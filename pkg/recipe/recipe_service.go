package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/tag"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		GetRecipeByID(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]domain.RecipeResponse, int64, error)
	}

	// RelationLookup reports which of targetIDs the user is linked to
	// through a relation kind.
	RelationLookup interface {
		TargetsOf(ctx context.Context, kind domain.RelationKind, userID string, targetIDs []string) (map[string]bool, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		relations            RelationLookup
		storage              storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	relations RelationLookup,
	storage storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		relations:            relations,
		storage:              storage,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, authorID string) (domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	comp, err := s.validateComposition(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if strings.TrimSpace(req.Image) == "" {
		return domain.RecipeResponse{}, domain.ErrImageRequired
	}
	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        strings.TrimSpace(req.Name),
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe, comp.tagIDs, comp.lines); err != nil {
		s.removeImage(ctx, imageURL)
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeByID(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	comp, err := s.validateComposition(ctx, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	oldImage := recipe.ImageURL
	if strings.TrimSpace(req.Image) != "" {
		imageURL, err := s.uploadImage(ctx, req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
	}

	recipe.Name = strings.TrimSpace(req.Name)
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, comp.tagIDs, comp.lines); err != nil {
		if recipe.ImageURL != oldImage {
			s.removeImage(ctx, recipe.ImageURL)
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.ImageURL != oldImage {
		s.removeImage(ctx, oldImage)
	}
	return s.GetRecipeByID(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID.String()); err != nil {
		return err
	}
	s.removeImage(ctx, recipe.ImageURL)
	return nil
}

func (s *recipeService) GetRecipeByID(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.RecipeResponse{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeDetail(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	result, err := s.project(ctx, []*entities.Recipe{recipe}, viewerID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return result[0], nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]domain.RecipeResponse, int64, error) {
	if filter.AuthorID != "" {
		if _, err := uuid.Parse(filter.AuthorID); err != nil {
			return []domain.RecipeResponse{}, 0, nil
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID)
	if err != nil {
		return nil, 0, err
	}

	result, err := s.project(ctx, recipes, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return result, count, nil
}

func (s *recipeService) ownedRecipe(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

// project builds the read views with flags relative to viewerID. An empty
// viewerID is an anonymous request and every flag stays false.
func (s *recipeService) project(ctx context.Context, recipes []*entities.Recipe, viewerID string) ([]domain.RecipeResponse, error) {
	result := make([]domain.RecipeResponse, 0, len(recipes))
	if len(recipes) == 0 {
		return result, nil
	}

	favorited := map[string]bool{}
	inCart := map[string]bool{}
	subscribed := map[string]bool{}
	if viewerID != "" {
		recipeIDs := make([]string, 0, len(recipes))
		authorIDs := make([]string, 0, len(recipes))
		for _, r := range recipes {
			recipeIDs = append(recipeIDs, r.ID.String())
			authorIDs = append(authorIDs, r.AuthorID.String())
		}

		var err error
		if favorited, err = s.relations.TargetsOf(ctx, domain.RelationFavorite, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = s.relations.TargetsOf(ctx, domain.RelationShoppingCart, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if subscribed, err = s.relations.TargetsOf(ctx, domain.RelationSubscription, viewerID, authorIDs); err != nil {
			return nil, err
		}
	}

	for _, r := range recipes {
		id := r.ID.String()
		resp := ToRecipeResponse(r, subscribed[r.AuthorID.String()])
		resp.IsFavorited = favorited[id]
		resp.IsInShoppingCart = inCart[id]
		result = append(result, resp)
	}
	return result, nil
}

// ToRecipeResponse expects Author, Tags and Ingredients.Ingredient to be
// loaded. Ingredient lines are ordered by name. Viewer flags other than the
// author subscription are left false.
func ToRecipeResponse(recipe *entities.Recipe, authorSubscribed bool) domain.RecipeResponse {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, tag.ToTagResponse(t))
	}

	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		item := domain.RecipeIngredientResponse{
			ID:     line.IngredientID.String(),
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			item.Name = line.Ingredient.Name
			item.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, item)
	}
	// Lines come back from the preload in storage order.
	sort.SliceStable(ingredients, func(i, j int) bool {
		a, b := ingredients[i], ingredients[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.MeasurementUnit != b.MeasurementUnit {
			return a.MeasurementUnit < b.MeasurementUnit
		}
		return a.ID < b.ID
	})

	var author domain.UserResponse
	if recipe.Author != nil {
		author = user.ToUserResponse(recipe.Author, authorSubscribed)
	} else {
		author = domain.UserResponse{ID: recipe.AuthorID.String(), IsSubscribed: authorSubscribed}
	}

	return domain.RecipeResponse{
		ID:          recipe.ID.String(),
		Tags:        tags,
		Author:      author,
		Ingredients: ingredients,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		CreatedAt:   recipe.CreatedAt,
	}
}

func ToRecipeShortResponse(recipe *entities.Recipe) domain.RecipeShortResponse {
	return domain.RecipeShortResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}
