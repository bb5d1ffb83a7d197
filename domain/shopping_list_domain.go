package domain

const (
	ShoppingListFileName = "shopping_list.txt"
	ShoppingListHeader   = "Shopping list:"
)

var (
	MessageFailedDownloadShoppingList = "failed to build shopping list"
)

type (
	// ShoppingLine is one raw ingredient line of a recipe in the cart.
	ShoppingLine struct {
		Name            string
		MeasurementUnit string
		Amount          int
	}

	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Total           int    `json:"total"`
	}
)
