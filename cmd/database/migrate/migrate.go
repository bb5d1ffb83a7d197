package migration

import (
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"

	"gorm.io/gorm"
)

// Migrate creates the schema. Tables are migrated parents first so that the
// foreign keys and cascades can be created along with each child table.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	models := []struct {
		name  string
		model interface{}
	}{
		{"user", &entities.User{}},
		{"ingredient", &entities.Ingredient{}},
		{"tag", &entities.Tag{}},
		{"recipe", &entities.Recipe{}},
		{"recipe ingredient", &entities.RecipeIngredient{}},
		{"favorite", &entities.Favorite{}},
		{"shopping cart", &entities.ShoppingCart{}},
		{"subscription", &entities.Subscription{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			logging.Error().Err(err).Str("table", m.name).Msg("error migrating database")
			return err
		}
	}

	logging.Info().Msg("database migration complete")
	return nil
}
