package main

import (
	"Foodgram-Backend/cmd/config"
	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/cmd/database/seed"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/tag"
	"context"
	"flag"
	"fmt"
)

func main() {
	seedData := flag.Bool("seed", false, "import ingredients from INGREDIENTS_CSV and create the default tags, then exit")
	flag.Parse()

	utils.LoadConfig()
	logging.Init(logging.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})

	db, err := config.ConnectDB()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect database")
	}

	if err := migration.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	if *seedData {
		ctx := context.Background()
		if path := utils.GetConfig("INGREDIENTS_CSV"); path != "" {
			if _, err := seed.ImportIngredients(ctx, ingredient.NewIngredientRepository(db), path); err != nil {
				logging.Fatal().Err(err).Msg("failed to import ingredients")
			}
		}
		if err := seed.SeedTags(ctx, tag.NewTagRepository(db), seed.DefaultTags); err != nil {
			logging.Fatal().Err(err).Msg("failed to seed tags")
		}
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build app")
	}

	port := utils.GetConfig("APP_PORT")
	logging.Info().Str("port", port).Msg("starting server")
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}
