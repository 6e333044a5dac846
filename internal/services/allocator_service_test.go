package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wander/internal/models/doc_models"
)

type fakeLookup struct {
	failIDs    map[string]bool
	missingIDs map[string]bool
	calls      []string
}

func (f *fakeLookup) GetDetails(_ context.Context, placeID string) (*PlaceDetails, error) {
	f.calls = append(f.calls, placeID)
	if f.failIDs[placeID] {
		return nil, errors.New("lookup blew up")
	}
	if f.missingIDs[placeID] {
		return nil, nil
	}
	return &PlaceDetails{
		PlaceID:          placeID,
		Name:             "Place " + placeID,
		FormattedAddress: "1 Main St, Shibuya, Tokyo, Japan",
		Categories:       []string{"tourist_attraction", "point_of_interest"},
	}, nil
}

type fakeImages struct{}

func (fakeImages) Cache(context.Context, ImageRequest) string { return "" }

func testAllocator(lookup PlaceLookupProvider) *allocatorService {
	return &allocatorService{
		dayCapacity: 6,
		lookup:      lookup,
		images:      fakeImages{},
	}
}

func emptySlots() []doc_models.Slot {
	return []doc_models.Slot{
		{Label: doc_models.SlotMorning},
		{Label: doc_models.SlotAfternoon},
		{Label: doc_models.SlotEvening},
	}
}

func dayWithPlaces(id, date string, counts ...int) doc_models.Day {
	day := doc_models.Day{ID: id, Date: date, Slots: emptySlots()}
	for si, count := range counts {
		for p := 0; p < count; p++ {
			day.Slots[si].Places = append(day.Slots[si].Places, doc_models.Place{
				ID:   id + "-" + day.Slots[si].Label + "-" + string(rune('a'+p)),
				Name: "existing",
			})
		}
	}
	return day
}

func asOf(date string) time.Time {
	t, _ := time.ParseInLocation(doc_models.DayDateLayout, date, time.UTC)
	return t
}

func TestFindBestSlot_PrefersLeastLoadedDay(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("day-a", "2025-06-01", 1, 1, 0), // 2 places
		dayWithPlaces("day-b", "2025-06-02", 2, 1, 1), // 4 places
	}}

	ref, ok := testAllocator(&fakeLookup{}).FindBestSlot(doc, asOf("2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, 0, ref.DayIndex)
	// evening is the emptiest slot of day A
	assert.Equal(t, 2, ref.SlotIndex)
}

func TestFindBestSlot_TieBreaksToMorning(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("day-a", "2025-06-01"),
	}}

	ref, ok := testAllocator(&fakeLookup{}).FindBestSlot(doc, asOf("2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, doc_models.SlotMorning, doc.Days[ref.DayIndex].Slots[ref.SlotIndex].Label)
}

func TestFindBestSlot_SkipsPastDaysAndFullDays(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("day-past", "2025-05-30"),
		dayWithPlaces("day-full", "2025-06-01", 2, 2, 2),
		dayWithPlaces("day-open", "2025-06-02", 1, 0, 0),
	}}

	ref, ok := testAllocator(&fakeLookup{}).FindBestSlot(doc, asOf("2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, "day-open", doc.Days[ref.DayIndex].ID)
}

func TestFindBestSlot_IgnoresUnknownSlotLabels(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		{ID: "day-odd", Date: "2025-06-01", Slots: []doc_models.Slot{
			{Label: "brunch"},
			{Label: doc_models.SlotAfternoon},
		}},
	}}

	ref, ok := testAllocator(&fakeLookup{}).FindBestSlot(doc, asOf("2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, doc_models.SlotAfternoon, doc.Days[0].Slots[ref.SlotIndex].Label)
}

func TestForcedFallback_TargetsLastDayEvening(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("day-a", "2025-06-01", 2, 2, 2),
		dayWithPlaces("day-b", "2025-06-02", 2, 2, 2),
	}}

	alloc := testAllocator(&fakeLookup{})
	_, ok := alloc.FindBestSlot(doc, asOf("2025-06-01"))
	require.False(t, ok)

	ref, ok := alloc.ForcedFallback(doc, asOf("2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, 1, ref.DayIndex)
	assert.Equal(t, doc_models.SlotEvening, doc.Days[1].Slots[ref.SlotIndex].Label)
}

func TestForcedFallback_NoEveningPicksLeastCrowded(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		{ID: "day-b", Date: "2025-06-02", Slots: []doc_models.Slot{
			{Label: doc_models.SlotMorning, Places: make([]doc_models.Place, 3)},
			{Label: doc_models.SlotAfternoon, Places: make([]doc_models.Place, 1)},
		}},
	}}

	ref, ok := testAllocator(&fakeLookup{}).ForcedFallback(doc, asOf("2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, 1, ref.SlotIndex)
}

func TestForcedFallback_RefusesPastLastDay(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("day-a", "2025-05-01"),
	}}

	_, ok := testAllocator(&fakeLookup{}).ForcedFallback(doc, asOf("2025-06-01"))
	assert.False(t, ok)
}

func TestDistribute_ExampleScenario(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("d1", "2025-06-01"),
		dayWithPlaces("d2", "2025-06-02"),
	}}

	alloc := testAllocator(&fakeLookup{})
	summary := alloc.Distribute(context.Background(), uuid.New(), doc, []string{"place-A", "place-B"}, asOf("2025-06-01"))

	assert.Equal(t, 2, summary.Considered)
	assert.Equal(t, 2, summary.Distributed)
	assert.False(t, summary.ForcedToLastDay)

	// A lands in D1.morning; D2 is then globally emptiest, so B lands in
	// D2.morning. Everything else stays empty.
	require.Len(t, doc.Days[0].Slots[0].Places, 1)
	assert.Equal(t, "place-A", doc.Days[0].Slots[0].Places[0].ID)
	require.Len(t, doc.Days[1].Slots[0].Places, 1)
	assert.Equal(t, "place-B", doc.Days[1].Slots[0].Places[0].ID)
	for di := range doc.Days {
		for si := 1; si < 3; si++ {
			assert.Empty(t, doc.Days[di].Slots[si].Places)
		}
	}
}

func TestDistribute_BatchSurvivesOneBadCandidate(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("d1", "2025-06-01"),
		dayWithPlaces("d2", "2025-06-02"),
	}}

	lookup := &fakeLookup{failIDs: map[string]bool{"c3": true}}
	alloc := testAllocator(lookup)
	summary := alloc.Distribute(context.Background(), uuid.New(), doc,
		[]string{"c1", "c2", "c3", "c4", "c5"}, asOf("2025-06-01"))

	assert.Equal(t, 5, summary.Considered)
	assert.Equal(t, 4, summary.Distributed)
	assert.Equal(t, []string{"c3"}, summary.NotPlaced)
}

func TestDistribute_DuplicateSkippedWithoutLookup(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("d1", "2025-06-01"),
	}}
	doc.Days[0].Slots[0].Places = []doc_models.Place{{ID: "already-there", Name: "x"}}

	lookup := &fakeLookup{}
	summary := testAllocator(lookup).Distribute(context.Background(), uuid.New(), doc,
		[]string{"already-there"}, asOf("2025-06-01"))

	assert.Equal(t, 1, summary.Distributed)
	assert.Empty(t, lookup.calls)
	assert.Len(t, doc.Days[0].Slots[0].Places, 1)
}

func TestDistribute_ForcedIntoLastDayOverCapacity(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("d1", "2025-06-01", 2, 2, 2),
		dayWithPlaces("d2", "2025-06-02", 2, 2, 2),
	}}

	summary := testAllocator(&fakeLookup{}).Distribute(context.Background(), uuid.New(), doc,
		[]string{"overflow"}, asOf("2025-06-01"))

	assert.Equal(t, 1, summary.Distributed)
	assert.True(t, summary.ForcedToLastDay)
	assert.Len(t, doc.Days[1].Slots[2].Places, 3)
}

func TestDistribute_NoDuplicateKeysAfterAnyBatch(t *testing.T) {
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		dayWithPlaces("d1", "2025-06-01"),
		dayWithPlaces("d2", "2025-06-02"),
	}}

	ids := []string{"p1", "p2", "p1", "p3", "p2"}
	testAllocator(&fakeLookup{}).Distribute(context.Background(), uuid.New(), doc, ids, asOf("2025-06-01"))

	seen := map[string]int{}
	for _, day := range doc.Days {
		for _, slot := range day.Slots {
			for _, place := range slot.Places {
				seen[place.ID]++
			}
		}
	}
	for id, count := range seen {
		assert.Equalf(t, 1, count, "place %s appears %d times", id, count)
	}
}
