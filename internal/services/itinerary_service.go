package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"wander/internal/models/doc_models"
	"wander/internal/models/request_models"
	"wander/internal/models/response_models"
	"wander/internal/repositories"
	"wander/pkg/utils"
)

// ItineraryServiceInterface is the facade over the itinerary document: it
// owns the load → validate → mutate → persist cycle for every operation.
type ItineraryServiceInterface interface {
	GetItinerary(ctx context.Context, tripID uuid.UUID, segment string, accountID uuid.UUID) (*doc_models.ItineraryDocument, error)
	ReplaceActivity(ctx context.Context, tripID uuid.UUID, accountID uuid.UUID, req request_models.ReplaceActivityRequest) (*response_models.ReplaceActivityResponse, error)
	DistributeLikedPlaces(ctx context.Context, tripID uuid.UUID, segment string, accountID uuid.UUID, likedIDs []string) (*response_models.DistributeResponse, error)
	SaveDocument(ctx context.Context, tripID uuid.UUID, segment string, doc *doc_models.ItineraryDocument) error
}

type itineraryService struct {
	tripRepo      repositories.TripRepository
	itineraryRepo repositories.ItineraryRepository
	memberRepo    repositories.TripMemberRepository
	quota         QuotaServiceInterface
	activity      ActivityServiceInterface
	allocator     AllocatorServiceInterface
	explore       ExploreServiceInterface
}

func NewItineraryService(
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	memberRepo repositories.TripMemberRepository,
	quota QuotaServiceInterface,
	activity ActivityServiceInterface,
	allocator AllocatorServiceInterface,
	explore ExploreServiceInterface,
) ItineraryServiceInterface {
	return &itineraryService{
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		memberRepo:    memberRepo,
		quota:         quota,
		activity:      activity,
		allocator:     allocator,
		explore:       explore,
	}
}

func (s *itineraryService) GetItinerary(ctx context.Context, tripID uuid.UUID, segment string, accountID uuid.UUID) (*doc_models.ItineraryDocument, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if _, _, err := s.quota.ResolveMemberAndTier(ctx, trip, accountID); err != nil {
		return nil, err
	}

	doc, err := s.itineraryRepo.LoadDocument(ctx, tripID, segment)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if doc == nil {
		return nil, utils.ErrItineraryNotFound
	}
	return doc, nil
}

func (s *itineraryService) ReplaceActivity(ctx context.Context, tripID uuid.UUID, accountID uuid.UUID, req request_models.ReplaceActivityRequest) (*response_models.ReplaceActivityResponse, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	member, upgraded, err := s.quota.ResolveMemberAndTier(ctx, trip, accountID)
	if err != nil {
		return nil, err
	}

	doc, err := s.itineraryRepo.LoadDocument(ctx, tripID, req.Segment)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if doc == nil {
		return nil, utils.ErrItineraryNotFound
	}

	result, err := s.activity.Replace(ctx, ReplaceInput{
		Trip:          trip,
		Member:        member,
		Upgraded:      upgraded,
		Doc:           doc,
		DayID:         req.DayID,
		TargetPlaceID: req.TargetPlaceID,
		Incoming:      req.Place,
		AsOf:          utils.TripToday(trip.Timezone),
	})
	if err != nil {
		return nil, err
	}

	// counter first: a replace must never commit without its quota charge
	if err := s.memberRepo.IncrementCounter(ctx, member.ID, repositories.CounterChanges, 1); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := s.itineraryRepo.SaveDocument(ctx, tripID, req.Segment, doc); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return result, nil
}

func (s *itineraryService) DistributeLikedPlaces(ctx context.Context, tripID uuid.UUID, segment string, accountID uuid.UUID, likedIDs []string) (*response_models.DistributeResponse, error) {
	if len(likedIDs) == 0 {
		return nil, utils.ErrInvalidInput
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if _, _, err := s.quota.ResolveMemberAndTier(ctx, trip, accountID); err != nil {
		return nil, err
	}

	doc, err := s.itineraryRepo.LoadDocument(ctx, tripID, segment)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if doc == nil {
		return nil, utils.ErrItineraryNotFound
	}

	summary := s.allocator.Distribute(ctx, tripID, doc, likedIDs, utils.TripToday(trip.Timezone))
	if summary.Distributed > 0 {
		if err := s.itineraryRepo.SaveDocument(ctx, tripID, segment, doc); err != nil {
			return nil, utils.ErrDatabaseError
		}
		// best-effort: placements are already committed, a failed clear
		// only means the member sees stale likes
		if err := s.explore.ClearLiked(ctx, tripID, accountID, segment); err != nil {
			log.Printf("Failed to clear liked set for trip %s member %s: %v", tripID, accountID, err)
		}
	}
	return summary, nil
}

func (s *itineraryService) SaveDocument(ctx context.Context, tripID uuid.UUID, segment string, doc *doc_models.ItineraryDocument) error {
	if err := s.itineraryRepo.SaveDocument(ctx, tripID, segment, doc); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
