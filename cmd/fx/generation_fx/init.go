package generation_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"wander/internal/repositories"
	"wander/internal/services"
	"wander/pkg/utils"
)

var Module = fx.Provide(providePlanner, provideGenerationService)

func providePlanner() utils.ItineraryPlannerInterface {
	planner, err := utils.NewGeminiPlannerClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to create itinerary planner: %v", err)
	}
	return planner
}

func provideGenerationService(
	planner utils.ItineraryPlannerInterface,
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	quota services.QuotaServiceInterface,
) services.GenerationServiceInterface {
	return services.NewGenerationService(planner, tripRepo, itineraryRepo, quota)
}
