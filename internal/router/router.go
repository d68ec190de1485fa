package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recipeshare/internal/handlers"
	"recipeshare/internal/middleware"
	"recipeshare/internal/services"
	"recipeshare/internal/store"
)

type Services struct {
	Auth     *services.AuthService
	Recipes  *services.RecipeService
	Ratings  *services.RatingService
	Comments *services.CommentService
	Store    store.Pinger
}

// New builds an engine with the standard middleware chain and all routes.
func New(svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	RegisterRoutes(r, svc)
	return r
}

func RegisterRoutes(r *gin.Engine, svc Services) {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	recipeHandler := handlers.NewRecipeHandler(svc.Recipes, svc.Ratings)
	commentHandler := handlers.NewCommentHandler(svc.Comments)
	healthHandler := handlers.NewHealthHandler(svc.Store)

	r.Use(middleware.LoadUser(svc.Auth))

	r.GET("/", healthHandler.Welcome)
	r.GET("/healthz", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	r.GET("/recipes", recipeHandler.List)
	r.GET("/recipes/top", recipeHandler.Top)
	r.GET("/recipes/:id", recipeHandler.Detail)
	r.GET("/comments/:recipeId", commentHandler.List)

	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/recipes", recipeHandler.Create)
		authorized.PATCH("/recipes/:id", recipeHandler.Update)
		authorized.DELETE("/recipes/:id", recipeHandler.Delete)
		authorized.POST("/recipes/:id/rate", recipeHandler.Rate)
		authorized.POST("/comments", commentHandler.Create)
	}
}
