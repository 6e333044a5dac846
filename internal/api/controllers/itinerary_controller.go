package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wander/internal/models/request_models"
	"wander/internal/services"
	"wander/pkg/utils"
)

type ItineraryController struct {
	itineraryService  services.ItineraryServiceInterface
	generationService services.GenerationServiceInterface
}

func NewItineraryController(
	itineraryService services.ItineraryServiceInterface,
	generationService services.GenerationServiceInterface,
) *ItineraryController {
	return &ItineraryController{
		itineraryService:  itineraryService,
		generationService: generationService,
	}
}

func requestIDs(c *gin.Context) (tripID, accountID uuid.UUID, ok bool) {
	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid trip ID")
		return uuid.Nil, uuid.Nil, false
	}
	accountID, err = uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session identity")
		return uuid.Nil, uuid.Nil, false
	}
	return tripID, accountID, true
}

// GetItinerary godoc
// @Summary Get the itinerary document for a trip
// @Description Fetch the full itinerary (days, slots, places) for a trip, optionally scoped to a segment
// @Tags Itinerary
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param segment query string false "Trip segment ID"
// @Success 200 {object} doc_models.ItineraryDocument
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/itinerary [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	tripID, accountID, ok := requestIDs(c)
	if !ok {
		return
	}

	doc, err := i.itineraryService.GetItinerary(c.Request.Context(), tripID, c.Query("segment"), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, doc, "Itinerary fetched successfully")
}

// ReplaceActivity godoc
// @Summary Replace one place in a day with another
// @Description Swap the target place for the incoming one at the same position, enforcing dedupe, past-day and quota rules
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.ReplaceActivityRequest true "Day ID, target place ID, incoming place"
// @Success 200 {object} response_models.ReplaceActivityResponse
// @Failure 403 {object} utils.APIResponse "Quota reached or no trip access"
// @Failure 409 {object} utils.APIResponse "Duplicate place or past day"
// @Security BearerAuth
// @Router /trips/{tripId}/itinerary/replace-activity [post]
func (i *ItineraryController) ReplaceActivity(c *gin.Context) {
	tripID, accountID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req request_models.ReplaceActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DayID == "" || req.TargetPlaceID == "" {
		utils.RespondError(c, http.StatusBadRequest, "DayID and TargetPlaceID are required")
		return
	}

	result, err := i.itineraryService.ReplaceActivity(c.Request.Context(), tripID, accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Activity replaced successfully")
}

// DistributeLiked godoc
// @Summary Distribute liked places across the remaining schedule
// @Description Spread the member's liked places over the least-loaded upcoming days, then clear the liked set
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.DistributeLikedRequest true "Liked place IDs"
// @Success 200 {object} response_models.DistributeResponse
// @Security BearerAuth
// @Router /trips/{tripId}/itinerary/distribute-liked [post]
func (i *ItineraryController) DistributeLiked(c *gin.Context) {
	tripID, accountID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req request_models.DistributeLikedRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.LikedPlaceIDs) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "At least one liked place ID is required")
		return
	}

	summary, err := i.itineraryService.DistributeLikedPlaces(c.Request.Context(), tripID, req.Segment, accountID, req.LikedPlaceIDs)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Liked places distributed successfully")
}

// Generate godoc
// @Summary Generate a fresh itinerary for a trip
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.GenerateItineraryRequest true "Destination, day count, interests"
// @Success 200 {object} doc_models.ItineraryDocument
// @Security BearerAuth
// @Router /trips/{tripId}/itinerary/generate [post]
func (i *ItineraryController) Generate(c *gin.Context) {
	tripID, accountID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Destination and day count are required")
		return
	}

	doc, err := i.generationService.GenerateItinerary(c.Request.Context(), tripID, accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, doc, "Itinerary generated successfully")
}
