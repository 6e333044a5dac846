package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wander/internal/models/request_models"
	"wander/internal/services"
	"wander/pkg/utils"
)

type SearchController struct {
	searchService services.SearchServiceInterface
}

func NewSearchController(searchService services.SearchServiceInterface) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

func (s *SearchController) SearchPlaces(c *gin.Context) {
	var req request_models.SearchPlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Query is required")
		return
	}

	results, err := s.searchService.SearchPlaces(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, results, "Places fetched successfully")
}

// AddFromSearch places a searched place into the best open slot of the
// trip's itinerary, consuming one search-add.
func (s *SearchController) AddFromSearch(c *gin.Context) {
	tripID, accountID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req request_models.AddFromSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PlaceID == "" {
		utils.RespondError(c, http.StatusBadRequest, "PlaceID is required")
		return
	}

	result, err := s.searchService.AddFromSearch(c.Request.Context(), tripID, req.Segment, accountID, req.PlaceID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Place added to itinerary")
}
