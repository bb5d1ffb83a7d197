package domain

import "fmt"

// RelationKind names a (user, target) link type.
type RelationKind string

const (
	RelationFavorite     RelationKind = "favorite"
	RelationShoppingCart RelationKind = "shopping_cart"
	RelationSubscription RelationKind = "subscription"
)

var (
	MessageSuccessAddFavorite      = "recipe added to favorites"
	MessageSuccessAddShoppingCart  = "recipe added to shopping cart"
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedAddFavorite      = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite   = "failed to remove recipe from favorites"
	MessageFailedAddShoppingCart  = "failed to add recipe to shopping cart"
	MessageFailedRemoveCart       = "failed to remove recipe from shopping cart"
	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrAlreadyFavorited    = fmt.Errorf("%w: recipe is already in favorites", ErrValidation)
	ErrAlreadyInCart       = fmt.Errorf("%w: recipe is already in the shopping cart", ErrValidation)
	ErrAlreadySubscribed   = fmt.Errorf("%w: already subscribed to this author", ErrValidation)
	ErrSelfSubscription    = fmt.Errorf("%w: cannot subscribe to yourself", ErrValidation)
	ErrFavoriteNotExists   = fmt.Errorf("%w: recipe is not in favorites", ErrValidation)
	ErrCartNotExists       = fmt.Errorf("%w: recipe is not in the shopping cart", ErrValidation)
	ErrSubscriptionMissing = fmt.Errorf("%w: subscription does not exist", ErrValidation)
	ErrRelationConflict    = fmt.Errorf("%w: relation was created concurrently", ErrConflict)
	ErrUnknownRelation     = fmt.Errorf("%w: unknown relation kind", ErrValidation)
)

type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}
