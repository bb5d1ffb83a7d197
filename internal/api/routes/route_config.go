package routes

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	TagHandler        handlers.TagHandler
	IngredientHandler handlers.IngredientHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Recipe()
	c.Catalog()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/api/auth/token/login", c.UserHandler.Login)
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	user := c.App.Group("/api/users")
	{
		user.Post("", c.UserHandler.Register)
		user.Get("", optional, c.UserHandler.GetUsers)
		// static paths must be registered before /:id
		user.Get("/me", auth, c.UserHandler.Me)
		user.Get("/subscriptions", auth, c.UserHandler.GetSubscriptions)
		user.Get("/:id", optional, c.UserHandler.GetUserByID)
		user.Post("/:id/subscribe", auth, c.UserHandler.Subscribe)
		user.Delete("/:id/subscribe", auth, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Recipe() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipe := c.App.Group("/api/recipes")
	{
		recipe.Get("/download_shopping_cart", auth, c.RecipeHandler.DownloadShoppingCart)
		recipe.Get("", optional, c.RecipeHandler.GetRecipes)
		recipe.Post("", auth, c.RecipeHandler.CreateRecipe)
		recipe.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
		recipe.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
		recipe.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
		recipe.Post("/:id/favorite", auth, c.RecipeHandler.AddFavorite)
		recipe.Delete("/:id/favorite", auth, c.RecipeHandler.RemoveFavorite)
		recipe.Post("/:id/shopping_cart", auth, c.RecipeHandler.AddToShoppingCart)
		recipe.Delete("/:id/shopping_cart", auth, c.RecipeHandler.RemoveFromShoppingCart)
	}
}

func (c *Config) Catalog() {
	c.App.Get("/api/tags", c.TagHandler.GetTags)
	c.App.Get("/api/tags/:id", c.TagHandler.GetTagByID)
	c.App.Get("/api/ingredients", c.IngredientHandler.GetIngredients)
	c.App.Get("/api/ingredients/:id", c.IngredientHandler.GetIngredientByID)
}
