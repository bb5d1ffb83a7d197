package shoppinglist

import (
	"Foodgram-Backend/domain"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const cartLinesQuery = `SELECT ingredients\.name AS name, ingredients\.measurement_unit AS measurement_unit, recipe_ingredients\.amount AS amount ` +
	`FROM "shopping_carts" ` +
	`JOIN recipe_ingredients ON recipe_ingredients\.recipe_id = shopping_carts\.recipe_id ` +
	`JOIN ingredients ON ingredients\.id = recipe_ingredients\.ingredient_id ` +
	`WHERE shopping_carts\.user_id = \$1$`

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestGetCartLinesJoinsCartToIngredients(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.NewString()

	mock.ExpectQuery(cartLinesQuery).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"name", "measurement_unit", "amount"}).
			AddRow("Flour", "g", 200).
			AddRow("Milk", "ml", 300).
			AddRow("Flour", "g", 100))

	lines, err := NewShoppingListRepository(db).GetCartLines(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingLine{
		{Name: "Flour", MeasurementUnit: "g", Amount: 200},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 300},
		{Name: "Flour", MeasurementUnit: "g", Amount: 100},
	}, lines)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildShoppingListFromCartRows(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.NewString()

	mock.ExpectQuery(cartLinesQuery).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"name", "measurement_unit", "amount"}).
			AddRow("Sugar", "g", 50).
			AddRow("Flour", "g", 200).
			AddRow("Flour", "g", 100))

	service := NewShoppingListService(NewShoppingListRepository(db))
	items, err := service.BuildShoppingList(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListItem{
		{Name: "Flour", MeasurementUnit: "g", Total: 300},
		{Name: "Sugar", MeasurementUnit: "g", Total: 50},
	}, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartLinesEmptyCart(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.NewString()

	mock.ExpectQuery(cartLinesQuery).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"name", "measurement_unit", "amount"}))

	lines, err := NewShoppingListRepository(db).GetCartLines(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartLinesPropagatesQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.NewString()
	boom := errors.New("connection reset")

	mock.ExpectQuery(cartLinesQuery).WithArgs(userID).WillReturnError(boom)

	_, err := NewShoppingListRepository(db).GetCartLines(context.Background(), userID)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
