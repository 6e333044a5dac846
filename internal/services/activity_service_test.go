package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wander/internal/models/db_models"
	"wander/internal/models/doc_models"
	"wander/internal/models/request_models"
	"wander/pkg/utils"
)

func testActivityService(lookup PlaceLookupProvider) ActivityServiceInterface {
	return &activityService{
		lookup: lookup,
		images: fakeImages{},
		quota:  &quotaService{free: TierLimits{SwipeLimit: 50, ChangeLimit: 10, SearchAddLimit: 10}},
	}
}

func replaceFixture() ReplaceInput {
	trip := &db_models.Trip{}
	trip.ID = uuid.New()
	member := &db_models.TripMember{ChangeCount: 0}
	doc := &doc_models.ItineraryDocument{Days: []doc_models.Day{
		{ID: "d1", Date: "2025-06-01", Slots: []doc_models.Slot{
			{Label: doc_models.SlotMorning, Places: []doc_models.Place{
				{ID: "keep-1", Name: "Keep One"},
				{ID: "target", Name: "Old Place"},
				{ID: "keep-2", Name: "Keep Two"},
			}},
			{Label: doc_models.SlotEvening, Places: []doc_models.Place{
				{ID: "elsewhere", Name: "Elsewhere"},
			}},
		}},
	}}
	return ReplaceInput{
		Trip:          trip,
		Member:        member,
		Doc:           doc,
		DayID:         "d1",
		TargetPlaceID: "target",
		Incoming:      request_models.IncomingPlace{ID: "new-place"},
		AsOf:          asOf("2025-06-01"),
	}
}

func TestReplace_PreservesOrdinalPosition(t *testing.T) {
	in := replaceFixture()
	resp, err := testActivityService(&fakeLookup{}).Replace(context.Background(), in)
	require.NoError(t, err)

	places := in.Doc.Days[0].Slots[0].Places
	require.Len(t, places, 3)
	assert.Equal(t, "keep-1", places[0].ID)
	assert.Equal(t, "new-place", places[1].ID)
	assert.Equal(t, "keep-2", places[2].ID)

	assert.Equal(t, "new-place", resp.Activity.ID)
	assert.Equal(t, "d1", resp.Day.ID)
}

func TestReplace_MissingIncomingID(t *testing.T) {
	in := replaceFixture()
	in.Incoming.ID = ""
	_, err := testActivityService(&fakeLookup{}).Replace(context.Background(), in)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestReplace_DayNotFound(t *testing.T) {
	in := replaceFixture()
	in.DayID = "no-such-day"
	_, err := testActivityService(&fakeLookup{}).Replace(context.Background(), in)
	assert.ErrorIs(t, err, utils.ErrDayNotFound)
}

func TestReplace_PastDayLocked(t *testing.T) {
	in := replaceFixture()
	in.AsOf = asOf("2025-06-02")
	_, err := testActivityService(&fakeLookup{}).Replace(context.Background(), in)
	assert.ErrorIs(t, err, utils.ErrPastDayLocked)
}

func TestReplace_QuotaDenialLeavesDocumentUntouched(t *testing.T) {
	in := replaceFixture()
	in.Member.ChangeCount = 10

	_, err := testActivityService(&fakeLookup{}).Replace(context.Background(), in)

	var limitErr *utils.LimitReachedError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 10, limitErr.Limit)
	assert.Equal(t, 10, limitErr.Used)
	assert.Equal(t, "target", in.Doc.Days[0].Slots[0].Places[1].ID)
}

func TestReplace_UpgradedTierIgnoresCounter(t *testing.T) {
	in := replaceFixture()
	in.Member.ChangeCount = 9999
	in.Upgraded = true

	_, err := testActivityService(&fakeLookup{}).Replace(context.Background(), in)
	assert.NoError(t, err)
}

func TestReplace_RejectsDuplicateAnywhereInDocument(t *testing.T) {
	in := replaceFixture()
	// incoming place already lives in a different slot
	in.Incoming.ID = "elsewhere"

	_, err := testActivityService(&fakeLookup{}).Replace(context.Background(), in)
	assert.ErrorIs(t, err, utils.ErrDuplicatePlace)
}

func TestReplace_TargetNotFound(t *testing.T) {
	in := replaceFixture()
	in.TargetPlaceID = "ghost"
	_, err := testActivityService(&fakeLookup{}).Replace(context.Background(), in)
	assert.ErrorIs(t, err, utils.ErrPlaceNotFound)
}

func TestReplace_UnknownPlaceFromLookup(t *testing.T) {
	in := replaceFixture()
	lookup := &fakeLookup{missingIDs: map[string]bool{"new-place": true}}
	_, err := testActivityService(lookup).Replace(context.Background(), in)
	assert.ErrorIs(t, err, utils.ErrPlaceNotFound)
}

func TestReplace_LookupOutage(t *testing.T) {
	in := replaceFixture()
	lookup := &fakeLookup{failIDs: map[string]bool{"new-place": true}}

	_, err := testActivityService(lookup).Replace(context.Background(), in)

	assert.ErrorIs(t, err, utils.ErrUpstreamFailure)
	// nothing was swapped
	assert.Equal(t, "target", in.Doc.Days[0].Slots[0].Places[1].ID)
}

func TestReplace_FullPayloadSkipsLookup(t *testing.T) {
	in := replaceFixture()
	in.Incoming = request_models.IncomingPlace{
		ID:      "new-place",
		Name:    "Handed Over",
		Address: "1 Main St, Shibuya, Tokyo, Japan",
	}
	lookup := &fakeLookup{}

	resp, err := testActivityService(lookup).Replace(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, lookup.calls)
	assert.Equal(t, "Handed Over", resp.Activity.Name)
	assert.Equal(t, "Tokyo", resp.Activity.Area)
}

func TestReplace_PreconditionOrderQuotaBeforeDuplicate(t *testing.T) {
	// both violations present at once, the quota denial must surface
	in := replaceFixture()
	in.Member.ChangeCount = 10
	in.Incoming.ID = "elsewhere"

	_, err := testActivityService(&fakeLookup{}).Replace(context.Background(), in)

	var limitErr *utils.LimitReachedError
	assert.ErrorAs(t, err, &limitErr)
}
