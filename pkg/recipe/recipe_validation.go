package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// composition is a validated set of tag links and ingredient lines ready
// to be written.
type composition struct {
	tagIDs []uuid.UUID
	lines  []*entities.RecipeIngredient
}

// validateComposition checks tags, then ingredients, then cooking time and
// stops at the first failure.
func (s *recipeService) validateComposition(ctx context.Context, req domain.RecipeRequest) (composition, error) {
	tagIDs, err := s.validateTags(ctx, req.Tags)
	if err != nil {
		return composition{}, err
	}

	lines, err := s.validateIngredients(ctx, req.Ingredients)
	if err != nil {
		return composition{}, err
	}

	if err := ValidateCookingTime(req.CookingTime); err != nil {
		return composition{}, err
	}

	return composition{tagIDs: tagIDs, lines: lines}, nil
}

func (s *recipeService) validateTags(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, domain.ErrTagsRequired
	}

	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, domain.ErrTagNotFound
		}
		if seen[id] {
			return nil, domain.ErrDuplicateTag
		}
		seen[id] = true
		ids = append(ids, id)
	}

	found, err := s.tagRepository.GetTagsByIDs(ctx, uuidStrings(ids))
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, domain.ErrTagNotFound
	}
	return ids, nil
}

func (s *recipeService) validateIngredients(ctx context.Context, raw []domain.RecipeIngredientRequest) ([]*entities.RecipeIngredient, error) {
	if len(raw) == 0 {
		return nil, domain.ErrIngredientsRequired
	}

	ids := make([]uuid.UUID, 0, len(raw))
	unique := make(map[uuid.UUID]bool, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r.ID))
		if err != nil {
			return nil, domain.ErrIngredientNotFound
		}
		ids = append(ids, id)
		unique[id] = true
	}

	lookup := make([]string, 0, len(unique))
	for id := range unique {
		lookup = append(lookup, id.String())
	}
	found, err := s.ingredientRepository.GetIngredientsByIDs(ctx, lookup)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, domain.ErrIngredientNotFound
	}

	amounts := make([]int, 0, len(raw))
	for _, r := range raw {
		amount, err := ParseAmount(r.Amount.String())
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, amount)
	}

	if len(unique) != len(ids) {
		return nil, domain.ErrDuplicateIngredient
	}

	lines := make([]*entities.RecipeIngredient, 0, len(ids))
	for i, id := range ids {
		lines = append(lines, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: id,
			Amount:       amounts[i],
		})
	}
	return lines, nil
}

// ParseAmount accepts a decimal integer within the allowed ingredient
// amount range.
func ParseAmount(raw string) (int, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidAmount
	}
	if amount < domain.MinIngredientAmount || amount > domain.MaxIngredientAmount {
		return 0, domain.ErrInvalidAmount
	}
	return amount, nil
}

func ValidateCookingTime(minutes int) error {
	if minutes < domain.MinCookingTime || minutes > domain.MaxCookingTime {
		return domain.ErrInvalidCookingTime
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, id.String())
	}
	return result
}
