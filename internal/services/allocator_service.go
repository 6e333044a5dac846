package services

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"wander/internal/models/doc_models"
	"wander/internal/models/response_models"
)

const defaultDayCapacity = 6

// SlotRef addresses one slot inside a document.
type SlotRef struct {
	DayIndex  int
	SlotIndex int
}

type AllocatorServiceInterface interface {
	// FindBestSlot picks the least-loaded eligible (day, slot) pair: days
	// not in the past and under the per-day capacity, slots with a
	// canonical label. Ties go to the earlier-in-day slot, then encounter
	// order.
	FindBestSlot(doc *doc_models.ItineraryDocument, asOf time.Time) (SlotRef, bool)
	// ForcedFallback targets the last chronological day even over capacity:
	// its evening slot when present, otherwise its least crowded slot.
	ForcedFallback(doc *doc_models.ItineraryDocument, asOf time.Time) (SlotRef, bool)
	// Distribute spreads a candidate pool across the document in input
	// order, enriching each candidate through the lookup provider. One bad
	// candidate never aborts the batch.
	Distribute(ctx context.Context, tripID uuid.UUID, doc *doc_models.ItineraryDocument, candidateIDs []string, asOf time.Time) *response_models.DistributeResponse
}

type allocatorService struct {
	dayCapacity int
	lookup      PlaceLookupProvider
	images      ImageServiceInterface
}

func NewAllocatorService(lookup PlaceLookupProvider, images ImageServiceInterface) AllocatorServiceInterface {
	capacity := defaultDayCapacity
	if raw := os.Getenv("DAY_PLACE_CAPACITY"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			capacity = parsed
		}
	}
	return &allocatorService{
		dayCapacity: capacity,
		lookup:      lookup,
		images:      images,
	}
}

func (a *allocatorService) FindBestSlot(doc *doc_models.ItineraryDocument, asOf time.Time) (SlotRef, bool) {
	best := SlotRef{}
	bestDayTotal, bestSlotCount, bestRank := 0, 0, 0
	found := false

	for di := range doc.Days {
		day := &doc.Days[di]
		if day.IsPast(asOf) {
			continue
		}
		dayTotal := day.TotalPlaces()
		if dayTotal >= a.dayCapacity {
			continue
		}
		for si := range day.Slots {
			rank := doc_models.SlotRank(day.Slots[si].Label)
			if rank < 0 {
				continue
			}
			slotCount := len(day.Slots[si].Places)
			if !found || lessSlotTuple(dayTotal, slotCount, rank, bestDayTotal, bestSlotCount, bestRank) {
				best = SlotRef{DayIndex: di, SlotIndex: si}
				bestDayTotal, bestSlotCount, bestRank = dayTotal, slotCount, rank
				found = true
			}
		}
	}
	return best, found
}

// lessSlotTuple compares (day total, slot count, slot rank) lexicographically.
// Strict less keeps the earlier pair on ties, so the scan is a stable sort.
func lessSlotTuple(dayTotal, slotCount, rank, bestDayTotal, bestSlotCount, bestRank int) bool {
	if dayTotal != bestDayTotal {
		return dayTotal < bestDayTotal
	}
	if slotCount != bestSlotCount {
		return slotCount < bestSlotCount
	}
	return rank < bestRank
}

func (a *allocatorService) ForcedFallback(doc *doc_models.ItineraryDocument, asOf time.Time) (SlotRef, bool) {
	if len(doc.Days) == 0 {
		return SlotRef{}, false
	}
	di := len(doc.Days) - 1
	day := &doc.Days[di]
	if day.IsPast(asOf) || len(day.Slots) == 0 {
		return SlotRef{}, false
	}

	if si := day.SlotByLabel(doc_models.SlotEvening); si >= 0 {
		return SlotRef{DayIndex: di, SlotIndex: si}, true
	}

	leanest := 0
	for si := range day.Slots {
		if len(day.Slots[si].Places) < len(day.Slots[leanest].Places) {
			leanest = si
		}
	}
	return SlotRef{DayIndex: di, SlotIndex: leanest}, true
}

func (a *allocatorService) Distribute(ctx context.Context, tripID uuid.UUID, doc *doc_models.ItineraryDocument, candidateIDs []string, asOf time.Time) *response_models.DistributeResponse {
	summary := &response_models.DistributeResponse{Considered: len(candidateIDs)}
	keys := DocumentKeySet(doc)

	for _, candidateID := range candidateIDs {
		key := ResolvePlaceKey(PlaceKeyInput{ID: candidateID})
		if _, exists := keys[key]; exists {
			// already somewhere in the document, nothing to fetch
			summary.Distributed++
			continue
		}

		target, ok := a.FindBestSlot(doc, asOf)
		forced := false
		if !ok {
			target, ok = a.ForcedFallback(doc, asOf)
			forced = true
		}
		if !ok {
			summary.NotPlaced = append(summary.NotPlaced, candidateID)
			continue
		}

		details, err := a.lookup.GetDetails(ctx, candidateID)
		if err != nil || details == nil {
			if err != nil {
				log.Printf("Skipping candidate %s, lookup failed: %v", candidateID, err)
			}
			summary.NotPlaced = append(summary.NotPlaced, candidateID)
			continue
		}

		place := buildEnrichedPlace(nil, details)
		photoRef := ""
		if len(details.PhotoRefs) > 0 {
			photoRef = details.PhotoRefs[0]
		}
		if publicURL := a.images.Cache(ctx, ImageRequest{
			TripID:   tripID,
			PlaceID:  place.ID,
			Title:    place.Name,
			PhotoRef: photoRef,
			Lat:      details.Lat,
			Lng:      details.Lng,
		}); publicURL != "" {
			place.ImageURL = &publicURL
		}

		slot := &doc.Days[target.DayIndex].Slots[target.SlotIndex]
		slot.Places = append(slot.Places, place)
		keys[key] = struct{}{}
		summary.Distributed++
		if forced {
			summary.ForcedToLastDay = true
		}
	}

	return summary
}
