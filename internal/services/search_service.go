package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"wander/internal/models/response_models"
	"wander/internal/repositories"
	"wander/pkg/utils"
)

// SearchServiceInterface backs the "find a place and drop it into the trip"
// flow. Search itself is free; adding a result consumes the search-add quota.
type SearchServiceInterface interface {
	SearchPlaces(ctx context.Context, query string, limit int) ([]response_models.PlaceSearchResult, error)
	AddFromSearch(ctx context.Context, tripID uuid.UUID, segment string, accountID uuid.UUID, placeID string) (*response_models.ReplaceActivityResponse, error)
}

type searchService struct {
	embeddingRepo repositories.PlaceEmbeddingRepository
	aiClient      utils.EmbeddingClientInterface
	tripRepo      repositories.TripRepository
	itineraryRepo repositories.ItineraryRepository
	memberRepo    repositories.TripMemberRepository
	quota         QuotaServiceInterface
	allocator     AllocatorServiceInterface
	lookup        PlaceLookupProvider
	images        ImageServiceInterface
}

func NewSearchService(
	embeddingRepo repositories.PlaceEmbeddingRepository,
	aiClient utils.EmbeddingClientInterface,
	tripRepo repositories.TripRepository,
	itineraryRepo repositories.ItineraryRepository,
	memberRepo repositories.TripMemberRepository,
	quota QuotaServiceInterface,
	allocator AllocatorServiceInterface,
	lookup PlaceLookupProvider,
	images ImageServiceInterface,
) SearchServiceInterface {
	return &searchService{
		embeddingRepo: embeddingRepo,
		aiClient:      aiClient,
		tripRepo:      tripRepo,
		itineraryRepo: itineraryRepo,
		memberRepo:    memberRepo,
		quota:         quota,
		allocator:     allocator,
		lookup:        lookup,
		images:        images,
	}
}

func (s *searchService) SearchPlaces(ctx context.Context, query string, limit int) ([]response_models.PlaceSearchResult, error) {
	if query == "" {
		return nil, utils.ErrInvalidInput
	}

	vector, err := s.aiClient.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding", utils.ErrUpstreamFailure)
	}

	rows, err := s.embeddingRepo.SearchByVector(ctx, vector, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	results := make([]response_models.PlaceSearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, response_models.PlaceSearchResult{
			PlaceID:     row.PlaceID,
			Name:        row.Name,
			Address:     row.Address,
			Categories:  row.Categories,
			Description: row.Description,
			Similarity:  row.Similarity,
		})
	}
	return results, nil
}

func (s *searchService) AddFromSearch(ctx context.Context, tripID uuid.UUID, segment string, accountID uuid.UUID, placeID string) (*response_models.ReplaceActivityResponse, error) {
	if placeID == "" {
		return nil, utils.ErrInvalidInput
	}

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
	if err := s.quota.Check(repositories.CounterSearchAdd, member.SearchAddCount, upgraded); err != nil {
		return nil, err
	}

	doc, err := s.itineraryRepo.LoadDocument(ctx, tripID, segment)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if doc == nil {
		return nil, utils.ErrItineraryNotFound
	}

	if _, exists := DocumentKeySet(doc)[ResolvePlaceKey(PlaceKeyInput{ID: placeID})]; exists {
		return nil, utils.ErrDuplicatePlace
	}

	asOf := utils.TripToday(trip.Timezone)
	target, ok := s.allocator.FindBestSlot(doc, asOf)
	if !ok {
		target, ok = s.allocator.ForcedFallback(doc, asOf)
	}
	if !ok {
		return nil, utils.ErrPastDayLocked
	}

	details, err := s.lookup.GetDetails(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("%w: place lookup", utils.ErrUpstreamFailure)
	}
	if details == nil {
		return nil, utils.ErrPlaceNotFound
	}

	place := buildEnrichedPlace(nil, details)
	photoRef := ""
	if len(details.PhotoRefs) > 0 {
		photoRef = details.PhotoRefs[0]
	}
	if publicURL := s.images.Cache(ctx, ImageRequest{
		TripID:   tripID,
		PlaceID:  place.ID,
		Title:    place.Name,
		PhotoRef: photoRef,
		Lat:      details.Lat,
		Lng:      details.Lng,
	}); publicURL != "" {
		place.ImageURL = &publicURL
	}

	day := &doc.Days[target.DayIndex]
	day.Slots[target.SlotIndex].Places = append(day.Slots[target.SlotIndex].Places, place)

	if err := s.memberRepo.IncrementCounter(ctx, member.ID, repositories.CounterSearchAdd, 1); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := s.itineraryRepo.SaveDocument(ctx, tripID, segment, doc); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.ReplaceActivityResponse{
		Activity: place,
		Day:      *day,
	}, nil
}
