package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wander/internal/models/request_models"
	"wander/internal/services"
	"wander/pkg/utils"
)

type ExploreController struct {
	exploreService services.ExploreServiceInterface
}

func NewExploreController(exploreService services.ExploreServiceInterface) *ExploreController {
	return &ExploreController{
		exploreService: exploreService,
	}
}

// GetSession godoc
// @Summary Get the member's explore session for a trip
// @Description Liked and discarded place IDs, swipe count and remaining swipes for the current discovery round
// @Tags Explore
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param segment query string false "Trip segment ID"
// @Success 200 {object} response_models.ExploreSessionResponse
// @Security BearerAuth
// @Router /trips/{tripId}/explore/session [get]
func (e *ExploreController) GetSession(c *gin.Context) {
	tripID, accountID, ok := requestIDs(c)
	if !ok {
		return
	}

	session, err := e.exploreService.GetSession(c.Request.Context(), tripID, accountID, c.Query("segment"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Explore session fetched successfully")
}

// Swipe godoc
// @Summary Record a like or discard swipe
// @Tags Explore
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.SwipeRequest true "Place ID and direction"
// @Success 200 {object} response_models.ExploreSessionResponse
// @Failure 403 {object} utils.APIResponse "Swipe quota reached"
// @Security BearerAuth
// @Router /trips/{tripId}/explore/swipe [post]
func (e *ExploreController) Swipe(c *gin.Context) {
	tripID, accountID, ok := requestIDs(c)
	if !ok {
		return
	}

	var req request_models.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PlaceID == "" {
		utils.RespondError(c, http.StatusBadRequest, "PlaceID and direction are required")
		return
	}

	session, err := e.exploreService.RecordSwipe(c.Request.Context(), tripID, accountID, req.Segment, req.PlaceID, req.Direction)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Swipe recorded")
}

// Undo godoc
// @Summary Undo the most recent swipe
// @Tags Explore
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param segment query string false "Trip segment ID"
// @Success 200 {object} response_models.ExploreSessionResponse
// @Security BearerAuth
// @Router /trips/{tripId}/explore/undo [post]
func (e *ExploreController) Undo(c *gin.Context) {
	tripID, accountID, ok := requestIDs(c)
	if !ok {
		return
	}

	session, err := e.exploreService.UndoSwipe(c.Request.Context(), tripID, accountID, c.Query("segment"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Swipe undone")
}

// Reset godoc
// @Summary Reset the explore session for a new discovery round
// @Tags Explore
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param segment query string false "Trip segment ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/explore/reset [post]
func (e *ExploreController) Reset(c *gin.Context) {
	tripID, accountID, ok := requestIDs(c)
	if !ok {
		return
	}

	if err := e.exploreService.ResetSession(c.Request.Context(), tripID, accountID, c.Query("segment")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Explore session reset")
}
