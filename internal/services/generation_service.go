package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"wander/internal/models/doc_models"
	"wander/internal/models/request_models"
	"wander/internal/repositories"
	"wander/pkg/utils"
)

// GenerationServiceInterface is the external generation collaborator: it
// produces a complete document and hands it to the document store. The
// mutation engine never calls back into it.
type GenerationServiceInterface interface {
	GenerateItinerary(ctx context.Context, tripID uuid.UUID, accountID uuid.UUID, req request_models.GenerateItineraryRequest) (*doc_models.ItineraryDocument, error)
}

type generationService struct {
	planner       utils.ItineraryPlannerInterface
	tripRepo      repositories.TripRepository
	itineraryRepo repositories.ItineraryRepository
	quota         QuotaServiceInterface
}

func NewGenerationService(
	planner utils.ItineraryPlannerInterface,
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	quota QuotaServiceInterface,
) GenerationServiceInterface {
	return &generationService{
		planner:       planner,
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		quota:         quota,
	}
}

func (g *generationService) GenerateItinerary(ctx context.Context, tripID uuid.UUID, accountID uuid.UUID, req request_models.GenerateItineraryRequest) (*doc_models.ItineraryDocument, error) {
	if req.Destination == "" || req.Days < 1 {
		return nil, utils.ErrInvalidInput
	}

	trip, err := g.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if _, _, err := g.quota.ResolveMemberAndTier(ctx, trip, accountID); err != nil {
		return nil, err
	}

	startDate := req.StartDate
	if startDate == "" {
		startDate = trip.StartDate
	}

	raw, err := g.planner.GenerateItineraryJSON(ctx, req.Destination, req.Days, startDate, req.Interests)
	if err != nil {
		log.Printf("Itinerary generation failed for trip %s: %v", tripID, err)
		return nil, fmt.Errorf("%w: generation", utils.ErrUpstreamFailure)
	}

	var doc doc_models.ItineraryDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		log.Printf("Generated itinerary is not valid JSON for trip %s: %v", tripID, err)
		return nil, fmt.Errorf("%w: malformed generation output", utils.ErrUpstreamFailure)
	}

	normalizeGeneratedDocument(&doc, startDate)

	if err := g.itineraryRepo.SaveDocument(ctx, tripID, req.Segment, &doc); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &doc, nil
}

// normalizeGeneratedDocument enforces the structural invariants the model
// output can't be trusted with: day IDs, 1-based indexes, consecutive dates
// and the three canonical slots on every day.
func normalizeGeneratedDocument(doc *doc_models.ItineraryDocument, startDate string) {
	start, startErr := time.Parse(doc_models.DayDateLayout, startDate)

	for i := range doc.Days {
		day := &doc.Days[i]
		if day.ID == "" {
			day.ID = uuid.NewString()
		}
		day.Index = i + 1
		if startErr == nil {
			day.Date = start.AddDate(0, 0, i).Format(doc_models.DayDateLayout)
		}

		for _, label := range []string{doc_models.SlotMorning, doc_models.SlotAfternoon, doc_models.SlotEvening} {
			if day.SlotByLabel(label) < 0 {
				day.Slots = append(day.Slots, doc_models.Slot{Label: label})
			}
		}
	}
}
