package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTagStore struct {
	tags map[string]*entities.Tag
}

func (f *fakeTagStore) GetTags(context.Context) ([]*entities.Tag, error) {
	return nil, nil
}

func (f *fakeTagStore) GetTagByID(_ context.Context, id string) (*entities.Tag, error) {
	t, ok := f.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (f *fakeTagStore) GetTagsByIDs(_ context.Context, ids []string) ([]*entities.Tag, error) {
	var result []*entities.Tag
	for _, id := range ids {
		if t, ok := f.tags[id]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

func (f *fakeTagStore) CreateTags(context.Context, []*entities.Tag) error {
	return nil
}

type fakeIngredientStore struct {
	ingredients map[string]*entities.Ingredient
}

func (f *fakeIngredientStore) GetIngredients(context.Context, string) ([]*entities.Ingredient, error) {
	return nil, nil
}

func (f *fakeIngredientStore) GetIngredientByID(_ context.Context, id string) (*entities.Ingredient, error) {
	i, ok := f.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (f *fakeIngredientStore) GetIngredientsByIDs(_ context.Context, ids []string) ([]*entities.Ingredient, error) {
	var result []*entities.Ingredient
	for _, id := range ids {
		if i, ok := f.ingredients[id]; ok {
			result = append(result, i)
		}
	}
	return result, nil
}

func (f *fakeIngredientStore) CreateIngredients(context.Context, []*entities.Ingredient) (int64, error) {
	return 0, nil
}

// fakeRecipeStore keeps recipes fully composed, the way GetRecipeDetail
// returns them from the database.
type fakeRecipeStore struct {
	recipes     map[string]*entities.Recipe
	author      *entities.User
	tags        *fakeTagStore
	ingredients *fakeIngredientStore
	writes      int
}

func (f *fakeRecipeStore) compose(recipe *entities.Recipe, tagIDs []uuid.UUID, lines []*entities.RecipeIngredient) {
	recipe.Author = f.author
	recipe.Tags = nil
	for _, id := range tagIDs {
		recipe.Tags = append(recipe.Tags, f.tags.tags[id.String()])
	}
	recipe.Ingredients = nil
	for _, line := range lines {
		line.RecipeID = recipe.ID
		line.Ingredient = f.ingredients.ingredients[line.IngredientID.String()]
		recipe.Ingredients = append(recipe.Ingredients, line)
	}
	f.recipes[recipe.ID.String()] = recipe
	f.writes++
}

func (f *fakeRecipeStore) CreateRecipe(_ context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, lines []*entities.RecipeIngredient) error {
	f.compose(recipe, tagIDs, lines)
	return nil
}

func (f *fakeRecipeStore) UpdateRecipe(_ context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, lines []*entities.RecipeIngredient) error {
	f.compose(recipe, tagIDs, lines)
	return nil
}

func (f *fakeRecipeStore) DeleteRecipe(_ context.Context, id string) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeStore) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeRecipeStore) GetRecipeDetail(ctx context.Context, id string) (*entities.Recipe, error) {
	return f.GetRecipeByID(ctx, id)
}

func (f *fakeRecipeStore) GetRecipes(context.Context, domain.RecipeFilter, string) ([]*entities.Recipe, int64, error) {
	var result []*entities.Recipe
	for _, r := range f.recipes {
		result = append(result, r)
	}
	return result, int64(len(result)), nil
}

func (f *fakeRecipeStore) GetRecipesByAuthor(context.Context, string, int) ([]*entities.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeStore) CountRecipesByAuthor(context.Context, string) (int64, error) {
	return 0, nil
}

type fakeRelations struct {
	linked map[domain.RelationKind]map[string]bool
}

func (f *fakeRelations) TargetsOf(_ context.Context, kind domain.RelationKind, _ string, targetIDs []string) (map[string]bool, error) {
	result := map[string]bool{}
	for _, id := range targetIDs {
		if f.linked[kind][id] {
			result[id] = true
		}
	}
	return result, nil
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeStorage) UploadFile(_ context.Context, fileName string, _ []byte, _ string, folder string, _ ...string) (string, error) {
	key := folder + "/" + fileName
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.local/" + objectKey
}

func (f *fakeStorage) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.s3.local/")
}

type fixture struct {
	service   RecipeService
	recipes   *fakeRecipeStore
	relations *fakeRelations
	storage   *fakeStorage
	author    *entities.User
	breakfast *entities.Tag
	dinner    *entities.Tag
	flour     *entities.Ingredient
	sugar     *entities.Ingredient
}

func newFixture() fixture {
	author := &entities.User{ID: uuid.New(), Username: "chef"}
	breakfast := &entities.Tag{ID: uuid.New(), Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}
	dinner := &entities.Tag{ID: uuid.New(), Name: "Dinner", Color: "#49B64E", Slug: "dinner"}
	flour := &entities.Ingredient{ID: uuid.New(), Name: "Flour", MeasurementUnit: "g"}
	sugar := &entities.Ingredient{ID: uuid.New(), Name: "Sugar", MeasurementUnit: "g"}

	tags := &fakeTagStore{tags: map[string]*entities.Tag{
		breakfast.ID.String(): breakfast,
		dinner.ID.String():    dinner,
	}}
	ingredients := &fakeIngredientStore{ingredients: map[string]*entities.Ingredient{
		flour.ID.String(): flour,
		sugar.ID.String(): sugar,
	}}
	recipes := &fakeRecipeStore{
		recipes:     map[string]*entities.Recipe{},
		author:      author,
		tags:        tags,
		ingredients: ingredients,
	}
	relations := &fakeRelations{linked: map[domain.RelationKind]map[string]bool{}}
	store := &fakeStorage{}

	return fixture{
		service:   NewRecipeService(recipes, tags, ingredients, relations, store),
		recipes:   recipes,
		relations: relations,
		storage:   store,
		author:    author,
		breakfast: breakfast,
		dinner:    dinner,
		flour:     flour,
		sugar:     sugar,
	}
}

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not really a png"))
}

func (f fixture) validRequest() domain.RecipeRequest {
	return domain.RecipeRequest{
		Tags: []string{f.breakfast.ID.String(), f.dinner.ID.String()},
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: f.flour.ID.String(), Amount: json.Number("200")},
			{ID: f.sugar.ID.String(), Amount: json.Number("50")},
		},
		Name:        "Pancakes",
		Image:       pngDataURI(),
		Text:        "Mix and fry.",
		CookingTime: 20,
	}
}

func TestCreateRecipeRoundTrip(t *testing.T) {
	f := newFixture()

	created, err := f.service.CreateRecipe(context.Background(), f.validRequest(), f.author.ID.String())
	require.NoError(t, err)

	got, err := f.service.GetRecipeByID(context.Background(), created.ID, "")
	require.NoError(t, err)

	amounts := map[string]int{}
	for _, line := range got.Ingredients {
		amounts[line.ID] = line.Amount
	}
	assert.Equal(t, map[string]int{f.flour.ID.String(): 200, f.sugar.ID.String(): 50}, amounts)

	var tagIDs []string
	for _, tg := range got.Tags {
		tagIDs = append(tagIDs, tg.ID)
	}
	assert.ElementsMatch(t, []string{f.breakfast.ID.String(), f.dinner.ID.String()}, tagIDs)

	assert.Equal(t, f.author.ID.String(), got.Author.ID)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Equal(t, 20, got.CookingTime)
	require.Len(t, f.storage.uploaded, 1)
	assert.Equal(t, "https://bucket.s3.local/"+f.storage.uploaded[0], got.Image)
}

func TestCreateRecipeValidationOrder(t *testing.T) {
	f := newFixture()
	missing := uuid.NewString()

	tests := []struct {
		name    string
		mutate  func(req *domain.RecipeRequest)
		wantErr error
	}{
		{
			name:    "empty tags",
			mutate:  func(req *domain.RecipeRequest) { req.Tags = nil },
			wantErr: domain.ErrTagsRequired,
		},
		{
			name: "duplicate tag",
			mutate: func(req *domain.RecipeRequest) {
				req.Tags = []string{f.dinner.ID.String(), f.dinner.ID.String()}
			},
			wantErr: domain.ErrDuplicateTag,
		},
		{
			name:    "unknown tag",
			mutate:  func(req *domain.RecipeRequest) { req.Tags = []string{missing} },
			wantErr: domain.ErrTagNotFound,
		},
		{
			name:    "empty ingredients",
			mutate:  func(req *domain.RecipeRequest) { req.Ingredients = nil },
			wantErr: domain.ErrIngredientsRequired,
		},
		{
			name: "unknown ingredient",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients[1].ID = missing
			},
			wantErr: domain.ErrIngredientNotFound,
		},
		{
			name:    "zero amount",
			mutate:  func(req *domain.RecipeRequest) { req.Ingredients[0].Amount = json.Number("0") },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "fractional amount",
			mutate:  func(req *domain.RecipeRequest) { req.Ingredients[0].Amount = json.Number("1.5") },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "duplicate ingredient",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients[1].ID = f.flour.ID.String()
			},
			wantErr: domain.ErrDuplicateIngredient,
		},
		{
			name:    "cooking time too long",
			mutate:  func(req *domain.RecipeRequest) { req.CookingTime = domain.MaxCookingTime + 1 },
			wantErr: domain.ErrInvalidCookingTime,
		},
		{
			name: "tags checked before cooking time",
			mutate: func(req *domain.RecipeRequest) {
				req.Tags = nil
				req.CookingTime = 0
			},
			wantErr: domain.ErrTagsRequired,
		},
		{
			name: "missing ingredient wins over bad amount",
			mutate: func(req *domain.RecipeRequest) {
				req.Ingredients[0].Amount = json.Number("-3")
				req.Ingredients[1].ID = missing
			},
			wantErr: domain.ErrIngredientNotFound,
		},
		{
			name:    "image required on create",
			mutate:  func(req *domain.RecipeRequest) { req.Image = "" },
			wantErr: domain.ErrImageRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.validRequest()
			tt.mutate(&req)

			_, err := f.service.CreateRecipe(context.Background(), req, f.author.ID.String())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.recipes.writes)
		})
	}
}

func TestUpdateRecipeReplacesComposition(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.validRequest(), f.author.ID.String())
	require.NoError(t, err)

	req := f.validRequest()
	req.Image = ""
	req.Tags = []string{f.dinner.ID.String()}
	req.Ingredients = []domain.RecipeIngredientRequest{{ID: f.sugar.ID.String(), Amount: json.Number("10")}}

	updated, err := f.service.UpdateRecipe(ctx, created.ID, req, f.author.ID.String())
	require.NoError(t, err)

	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "dinner", updated.Tags[0].Slug)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, f.sugar.ID.String(), updated.Ingredients[0].ID)
	assert.Equal(t, 10, updated.Ingredients[0].Amount)
	assert.Equal(t, created.Image, updated.Image)
	assert.Empty(t, f.storage.deleted)
}

func TestUpdateRecipeWithEmptyTagsKeepsComposition(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.validRequest(), f.author.ID.String())
	require.NoError(t, err)

	req := f.validRequest()
	req.Tags = []string{}
	_, err = f.service.UpdateRecipe(ctx, created.ID, req, f.author.ID.String())
	assert.ErrorIs(t, err, domain.ErrTagsRequired)

	got, err := f.service.GetRecipeByID(ctx, created.ID, "")
	require.NoError(t, err)
	assert.Len(t, got.Tags, 2)
	assert.Len(t, got.Ingredients, 2)
}

func TestUpdateRecipeReplacesImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.validRequest(), f.author.ID.String())
	require.NoError(t, err)

	updated, err := f.service.UpdateRecipe(ctx, created.ID, f.validRequest(), f.author.ID.String())
	require.NoError(t, err)

	assert.NotEqual(t, created.Image, updated.Image)
	assert.Equal(t, []string{f.storage.uploaded[0]}, f.storage.deleted)
}

func TestOnlyAuthorCanChangeRecipe(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.validRequest(), f.author.ID.String())
	require.NoError(t, err)

	stranger := uuid.NewString()
	_, err = f.service.UpdateRecipe(ctx, created.ID, f.validRequest(), stranger)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = f.service.DeleteRecipe(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.service.DeleteRecipe(ctx, created.ID, f.author.ID.String()))
	_, err = f.service.GetRecipeByID(ctx, created.ID, "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestViewerFlags(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.CreateRecipe(ctx, f.validRequest(), f.author.ID.String())
	require.NoError(t, err)

	f.relations.linked[domain.RelationFavorite] = map[string]bool{created.ID: true}
	f.relations.linked[domain.RelationShoppingCart] = map[string]bool{created.ID: true}
	f.relations.linked[domain.RelationSubscription] = map[string]bool{f.author.ID.String(): true}

	anonymous, err := f.service.GetRecipeByID(ctx, created.ID, "")
	require.NoError(t, err)
	assert.False(t, anonymous.IsFavorited)
	assert.False(t, anonymous.IsInShoppingCart)
	assert.False(t, anonymous.Author.IsSubscribed)

	viewer, err := f.service.GetRecipeByID(ctx, created.ID, uuid.NewString())
	require.NoError(t, err)
	assert.True(t, viewer.IsFavorited)
	assert.True(t, viewer.IsInShoppingCart)
	assert.True(t, viewer.Author.IsSubscribed)
}

func TestGetRecipesWithMalformedAuthorIsEmpty(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateRecipe(context.Background(), f.validRequest(), f.author.ID.String())
	require.NoError(t, err)

	recipes, count, err := f.service.GetRecipes(context.Background(), domain.RecipeFilter{AuthorID: "abc", Page: 1, Limit: 10}, "")
	require.NoError(t, err)
	assert.Empty(t, recipes)
	assert.Zero(t, count)
}

func TestDecodeImage(t *testing.T) {
	contentType, body, err := DecodeImage(pngDataURI())
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, []byte("not really a png"), body)

	for _, bad := range []string{"plain text", "data:text/plain;base64,aGk=", "data:image/png;base64,!!!", "data:image/png,aGk="} {
		_, _, err := DecodeImage(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidImage, bad)
	}
}

func TestParseAmountBounds(t *testing.T) {
	amount, err := ParseAmount("32767")
	require.NoError(t, err)
	assert.Equal(t, domain.MaxIngredientAmount, amount)

	for _, bad := range []string{"", "0", "32768", "abc", "2.0"} {
		_, err := ParseAmount(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, bad)
	}
}

func TestRecipeResponseOrdersIngredientLines(t *testing.T) {
	salt := &entities.Ingredient{ID: uuid.New(), Name: "salt", MeasurementUnit: "g"}
	flour := &entities.Ingredient{ID: uuid.New(), Name: "flour", MeasurementUnit: "g"}
	milk := &entities.Ingredient{ID: uuid.New(), Name: "milk", MeasurementUnit: "ml"}
	recipe := &entities.Recipe{
		ID:       uuid.New(),
		AuthorID: uuid.New(),
		Ingredients: []*entities.RecipeIngredient{
			{IngredientID: salt.ID, Ingredient: salt, Amount: 5},
			{IngredientID: milk.ID, Ingredient: milk, Amount: 300},
			{IngredientID: flour.ID, Ingredient: flour, Amount: 200},
		},
	}

	first := ToRecipeResponse(recipe, false)
	recipe.Ingredients[0], recipe.Ingredients[2] = recipe.Ingredients[2], recipe.Ingredients[0]
	second := ToRecipeResponse(recipe, false)

	names := make([]string, 0, len(first.Ingredients))
	for _, line := range first.Ingredients {
		names = append(names, line.Name)
	}
	assert.Equal(t, []string{"flour", "milk", "salt"}, names)
	assert.Equal(t, first.Ingredients, second.Ingredients)
}
