package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	MinCookingTime = 1
	MaxCookingTime = 2880

	MinIngredientAmount = 1
	MaxIngredientAmount = 32767
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = fmt.Errorf("%w: recipe not found", ErrNotFound)
	ErrUnauthorizedRecipeAccess = fmt.Errorf("%w: only the author can change a recipe", ErrForbidden)

	ErrTagsRequired        = fmt.Errorf("%w: at least one tag is required", ErrValidation)
	ErrDuplicateTag        = fmt.Errorf("%w: tags must not repeat", ErrValidation)
	ErrIngredientsRequired = fmt.Errorf("%w: at least one ingredient is required", ErrValidation)
	ErrInvalidAmount       = fmt.Errorf("%w: ingredient amount must be an integer between %d and %d", ErrValidation, MinIngredientAmount, MaxIngredientAmount)
	ErrDuplicateIngredient = fmt.Errorf("%w: ingredients must not repeat", ErrValidation)
	ErrInvalidCookingTime  = fmt.Errorf("%w: cooking time must be between %d and %d minutes", ErrValidation, MinCookingTime, MaxCookingTime)
	ErrImageRequired       = fmt.Errorf("%w: image is required", ErrValidation)
	ErrInvalidImage        = fmt.Errorf("%w: image must be a base64 encoded data URI", ErrValidation)
)

type (
	RecipeIngredientRequest struct {
		ID     string      `json:"id"`
		Amount json.Number `json:"amount"`
	}

	// RecipeRequest is the write payload for create and update. Tags,
	// ingredients and cooking time are checked by the recipe service in a
	// fixed order, not by struct tags.
	RecipeRequest struct {
		Tags        []string                  `json:"tags"`
		Ingredients []RecipeIngredientRequest `json:"ingredients"`
		Name        string                    `json:"name" validate:"required,max=200"`
		Image       string                    `json:"image"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time"`
	}

	RecipeFilter struct {
		AuthorID         string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
		Page             int
		Limit            int
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                     `json:"id"`
		Tags             []TagResponse              `json:"tags"`
		Author           UserResponse               `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		Name             string                     `json:"name"`
		Image            string                     `json:"image"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
		CreatedAt        time.Time                  `json:"created_at"`
	}

	// RecipeShortResponse is returned by favorite/cart toggles and in
	// subscription previews.
	RecipeShortResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}
)
