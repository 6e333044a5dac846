package services

import (
	"context"
	"fmt"
	"time"

	"wander/internal/models/db_models"
	"wander/internal/models/doc_models"
	"wander/internal/models/request_models"
	"wander/internal/models/response_models"
	"wander/internal/repositories"
	"wander/pkg/utils"
)

// ReplaceInput is a replace-activity call after the facade has loaded the
// trip, the member's counter row and the document.
type ReplaceInput struct {
	Trip          *db_models.Trip
	Member        *db_models.TripMember
	Upgraded      bool
	Doc           *doc_models.ItineraryDocument
	DayID         string
	TargetPlaceID string
	Incoming      request_models.IncomingPlace
	AsOf          time.Time
}

// ActivityServiceInterface swaps one place for another inside a day while
// preserving the ordinal position. It mutates the document in memory only;
// the facade owns persistence ordering.
type ActivityServiceInterface interface {
	Replace(ctx context.Context, in ReplaceInput) (*response_models.ReplaceActivityResponse, error)
}

type activityService struct {
	lookup PlaceLookupProvider
	images ImageServiceInterface
	quota  QuotaServiceInterface
}

func NewActivityService(lookup PlaceLookupProvider, images ImageServiceInterface, quota QuotaServiceInterface) ActivityServiceInterface {
	return &activityService{
		lookup: lookup,
		images: images,
		quota:  quota,
	}
}

func (a *activityService) Replace(ctx context.Context, in ReplaceInput) (*response_models.ReplaceActivityResponse, error) {
	// Preconditions run in a fixed order and each one is a hard stop taken
	// before anything is written.
	if in.Incoming.ID == "" {
		return nil, utils.ErrInvalidInput
	}

	var day *doc_models.Day
	for di := range in.Doc.Days {
		if in.Doc.Days[di].ID == in.DayID {
			day = &in.Doc.Days[di]
			break
		}
	}
	if day == nil {
		return nil, utils.ErrDayNotFound
	}
	if day.IsPast(in.AsOf) {
		return nil, utils.ErrPastDayLocked
	}

	if err := a.quota.Check(repositories.CounterChanges, in.Member.ChangeCount, in.Upgraded); err != nil {
		return nil, err
	}

	incomingKey := ResolvePlaceKey(PlaceKeyInput{
		ID:           in.Incoming.ID,
		Name:         in.Incoming.Name,
		Address:      in.Incoming.Address,
		Neighborhood: derefOr(in.Incoming.Neighborhood, in.Incoming.Area),
	})
	if incomingKey != "" {
		if _, exists := DocumentKeySet(in.Doc)[incomingKey]; exists {
			return nil, utils.ErrDuplicatePlace
		}
	}

	slotIdx, placeIdx := -1, -1
	for si := range day.Slots {
		for pi := range day.Slots[si].Places {
			if day.Slots[si].Places[pi].ID == in.TargetPlaceID {
				slotIdx, placeIdx = si, pi
				break
			}
		}
		if slotIdx >= 0 {
			break
		}
	}
	if slotIdx < 0 {
		return nil, utils.ErrPlaceNotFound
	}

	var details *PlaceDetails
	if !in.Incoming.HasFullDetails() {
		var err error
		details, err = a.lookup.GetDetails(ctx, in.Incoming.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: place lookup", utils.ErrUpstreamFailure)
		}
		if details == nil {
			return nil, utils.ErrPlaceNotFound
		}
	}

	place := buildEnrichedPlace(&in.Incoming, details)

	photoRef := ""
	lat, lng := 0.0, 0.0
	if details != nil {
		if len(details.PhotoRefs) > 0 {
			photoRef = details.PhotoRefs[0]
		}
		lat, lng = details.Lat, details.Lng
	}
	if publicURL := a.images.Cache(ctx, ImageRequest{
		TripID:     in.Trip.ID,
		PlaceID:    place.ID,
		Title:      place.Name,
		PayloadURL: in.Incoming.ImageURL,
		PhotoRef:   photoRef,
		Lat:        lat,
		Lng:        lng,
	}); publicURL != "" {
		place.ImageURL = &publicURL
	}

	// splice in place, same ordinal index as the outgoing place
	day.Slots[slotIdx].Places[placeIdx] = place

	return &response_models.ReplaceActivityResponse{
		Activity: place,
		Day:      *day,
	}, nil
}

func derefOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
