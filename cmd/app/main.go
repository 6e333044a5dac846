package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"wander/cmd/fx/account_fx"
	"wander/cmd/fx/controllers_fx"
	"wander/cmd/fx/db_fx"
	"wander/cmd/fx/explore_fx"
	"wander/cmd/fx/generation_fx"
	"wander/cmd/fx/itinerary_fx"
	"wander/cmd/fx/places_fx"
	"wander/cmd/fx/quota_fx"
	"wander/cmd/fx/redis_fx"
	"wander/cmd/fx/search_fx"
	"wander/cmd/fx/trip_fx"
	"wander/internal/api/controllers"
	"wander/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		redis_fx.Module,
		trip_fx.Module,
		quota_fx.Module,
		account_fx.Module,
		explore_fx.Module,
		places_fx.Module,
		itinerary_fx.Module,
		search_fx.Module,
		generation_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	exploreController *controllers.ExploreController,
	searchController *controllers.SearchController,
	accountController *controllers.AccountController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, itineraryController, exploreController, searchController, accountController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	exploreController *controllers.ExploreController,
	searchController *controllers.SearchController,
	accountController *controllers.AccountController) {

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/signup", accountController.SignUp)
	accountGroup.POST("/login", accountController.Login)

	itineraryGroup := r.Group("/trips/:tripId/itinerary")
	itineraryGroup.Use(middleware.JWTAuthMiddleware())
	itineraryGroup.GET("", itineraryController.GetItinerary)
	itineraryGroup.POST("/replace-activity", itineraryController.ReplaceActivity)
	itineraryGroup.POST("/distribute-liked", itineraryController.DistributeLiked)
	itineraryGroup.POST("/add-from-search", searchController.AddFromSearch)
	itineraryGroup.POST("/generate", itineraryController.Generate)

	exploreGroup := r.Group("/trips/:tripId/explore")
	exploreGroup.Use(middleware.JWTAuthMiddleware())
	exploreGroup.GET("/session", exploreController.GetSession)
	exploreGroup.POST("/swipe", exploreController.Swipe)
	exploreGroup.POST("/undo", exploreController.Undo)
	exploreGroup.POST("/reset", exploreController.Reset)

	searchGroup := r.Group("/places")
	searchGroup.Use(middleware.JWTAuthMiddleware())
	searchGroup.POST("/search", searchController.SearchPlaces)
}
