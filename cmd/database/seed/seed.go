package seed

import (
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/tag"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

var ErrBadIngredientsHeader = errors.New("ingredients csv must start with a name,measurement_unit header")

type TagSeed struct {
	Name  string `validate:"required,max=200"`
	Color string `validate:"required,hexcolor,len=7"`
	Slug  string `validate:"required,max=200,slug"`
}

var DefaultTags = []TagSeed{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

// ParseIngredientsCSV reads rows of name,measurement_unit after a header
// row. Blank rows and repeated (name, unit) pairs are skipped.
func ParseIngredientsCSV(r io.Reader) ([]*entities.Ingredient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrBadIngredientsHeader
		}
		return nil, err
	}
	if strings.TrimPrefix(strings.TrimSpace(header[0]), "\ufeff") != "name" || strings.TrimSpace(header[1]) != "measurement_unit" {
		return nil, ErrBadIngredientsHeader
	}

	var ingredients []*entities.Ingredient
	seen := map[[2]string]bool{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		name, unit := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			continue
		}
		key := [2]string{name, unit}
		if seen[key] {
			continue
		}
		seen[key] = true

		ingredients = append(ingredients, &entities.Ingredient{
			ID:              uuid.New(),
			Name:            name,
			MeasurementUnit: unit,
		})
	}
	return ingredients, nil
}

func ImportIngredients(ctx context.Context, repo ingredient.IngredientRepository, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	ingredients, err := ParseIngredientsCSV(file)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	inserted, err := repo.CreateIngredients(ctx, ingredients)
	if err != nil {
		return 0, err
	}
	logging.Info().Int("rows", len(ingredients)).Int64("inserted", inserted).Msg("ingredients imported")
	return inserted, nil
}

func SeedTags(ctx context.Context, repo tag.TagRepository, seeds []TagSeed) error {
	utils.InitValidator()

	tags := make([]*entities.Tag, 0, len(seeds))
	for _, s := range seeds {
		if err := utils.Validate.Struct(s); err != nil {
			return fmt.Errorf("tag %q: %w", s.Slug, err)
		}
		tags = append(tags, &entities.Tag{
			ID:    uuid.New(),
			Name:  s.Name,
			Color: strings.ToUpper(s.Color),
			Slug:  s.Slug,
		})
	}

	if err := repo.CreateTags(ctx, tags); err != nil {
		return err
	}
	logging.Info().Int("tags", len(tags)).Msg("tags seeded")
	return nil
}
