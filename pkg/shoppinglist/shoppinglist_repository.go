package shoppinglist

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ShoppingListRepository interface {
		GetCartLines(ctx context.Context, userID string) ([]domain.ShoppingLine, error)
	}

	shoppingListRepository struct {
		db *gorm.DB
	}
)

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// GetCartLines returns every ingredient line of every recipe in the user's
// cart, one row per line and without grouping.
func (r *shoppingListRepository) GetCartLines(ctx context.Context, userID string) ([]domain.ShoppingLine, error) {
	var lines []domain.ShoppingLine
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
