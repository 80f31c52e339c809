package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Temni23/foodgram-backend/internal/api/handlers"
	"github.com/Temni23/foodgram-backend/internal/middleware"
	"github.com/Temni23/foodgram-backend/pkg/jwt"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	RecipeHandler  handlers.RecipeHandler
	CatalogHandler handlers.CatalogHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Users()
	c.Recipes()
	c.Catalog()
	c.GuestRoute()
}

func (c *Config) Users() {
	users := c.App.Group("/api/users")
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	{
		users.Post("/register", c.UserHandler.Register)
		users.Post("/login", c.UserHandler.Login)
		users.Get("/me", auth, c.UserHandler.Me)
		// fixed paths before the :id parameter
		users.Get("/subscriptions", auth, c.UserHandler.GetSubscriptions)
		users.Get("", auth, c.UserHandler.GetUsers)
		users.Get("/:id", auth, c.UserHandler.GetUser)
		users.Post("/:id/subscribe", auth, c.UserHandler.Subscribe)
		users.Delete("/:id/subscribe", auth, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	{
		recipes.Get("/download_shopping_cart", c.RecipeHandler.DownloadShoppingCart)
		recipes.Get("", c.RecipeHandler.GetRecipes)
		recipes.Post("", c.RecipeHandler.CreateRecipe)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/favorite", c.RecipeHandler.FavoriteRecipe)
		recipes.Delete("/:id/favorite", c.RecipeHandler.UnfavoriteRecipe)
		recipes.Post("/:id/shopping_cart", c.RecipeHandler.AddToCart)
		recipes.Delete("/:id/shopping_cart", c.RecipeHandler.RemoveFromCart)
	}
}

func (c *Config) Catalog() {
	ingredients := c.App.Group("/api/ingredients")
	{
		ingredients.Get("", c.CatalogHandler.GetIngredients)
		ingredients.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.CatalogHandler.CreateIngredient)
		ingredients.Get("/:id", c.CatalogHandler.GetIngredientDetail)
	}

	tags := c.App.Group("/api/tags")
	{
		tags.Get("", c.CatalogHandler.GetTags)
		tags.Get("/:id", c.CatalogHandler.GetTagDetail)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
