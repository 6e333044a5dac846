package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wander/internal/models/db_models"
	"wander/internal/models/doc_models"
	"wander/internal/models/request_models"
	"wander/internal/models/response_models"
	"wander/pkg/utils"
)

type fakeItineraryRepo struct {
	doc     *doc_models.ItineraryDocument
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeItineraryRepo) LoadDocument(context.Context, uuid.UUID, string) (*doc_models.ItineraryDocument, error) {
	return f.doc, f.loadErr
}
func (f *fakeItineraryRepo) SaveDocument(_ context.Context, _ uuid.UUID, _ string, doc *doc_models.ItineraryDocument) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.doc = doc
	return nil
}

type fakeExplore struct {
	cleared  int
	clearErr error
}

func (f *fakeExplore) GetSession(context.Context, uuid.UUID, uuid.UUID, string) (*response_models.ExploreSessionResponse, error) {
	return nil, nil
}
func (f *fakeExplore) RecordSwipe(context.Context, uuid.UUID, uuid.UUID, string, string, string) (*response_models.ExploreSessionResponse, error) {
	return nil, nil
}
func (f *fakeExplore) UndoSwipe(context.Context, uuid.UUID, uuid.UUID, string) (*response_models.ExploreSessionResponse, error) {
	return nil, nil
}
func (f *fakeExplore) ResetSession(context.Context, uuid.UUID, uuid.UUID, string) error { return nil }
func (f *fakeExplore) LikedPlaces(context.Context, uuid.UUID, uuid.UUID, string) ([]string, error) {
	return nil, nil
}
func (f *fakeExplore) ClearLiked(context.Context, uuid.UUID, uuid.UUID, string) error {
	f.cleared++
	return f.clearErr
}

type facadeHarness struct {
	svc           ItineraryServiceInterface
	itineraryRepo *fakeItineraryRepo
	memberRepo    *fakeMemberRepo
	explore       *fakeExplore
	lookup        *fakeLookup
	tripID        uuid.UUID
	accountID     uuid.UUID
}

// dates far in the future so nothing is ever "in the past" relative to the
// wall clock the facade reads
func futureDoc() *doc_models.ItineraryDocument {
	return &doc_models.ItineraryDocument{Days: []doc_models.Day{
		{ID: "d1", Date: "2100-01-01", Slots: []doc_models.Slot{
			{Label: doc_models.SlotMorning, Places: []doc_models.Place{
				{ID: "target", Name: "Old Place"},
			}},
			{Label: doc_models.SlotAfternoon},
			{Label: doc_models.SlotEvening},
		}},
	}}
}

func newFacadeHarness(t *testing.T) *facadeHarness {
	t.Helper()
	tripID := uuid.New()
	accountID := uuid.New()
	trip := &db_models.Trip{OwnerID: accountID}
	trip.ID = tripID
	member := &db_models.TripMember{TripID: tripID, AccountID: accountID}
	member.ID = uuid.New()

	tripRepo := &stubTripStore{trip: trip, member: member}
	memberRepo := &fakeMemberRepo{}
	itineraryRepo := &fakeItineraryRepo{doc: futureDoc()}
	explore := &fakeExplore{}
	quota := newTestQuota(tripRepo, memberRepo, &fakeSubscriptionRepo{})

	lookup := &fakeLookup{}
	activity := &activityService{lookup: lookup, images: fakeImages{}, quota: quota}
	allocator := &allocatorService{dayCapacity: 6, lookup: lookup, images: fakeImages{}}

	return &facadeHarness{
		svc:           NewItineraryService(tripRepo, itineraryRepo, memberRepo, quota, activity, allocator, explore),
		itineraryRepo: itineraryRepo,
		memberRepo:    memberRepo,
		explore:       explore,
		lookup:        lookup,
		tripID:        tripID,
		accountID:     accountID,
	}
}

func replaceRequest() request_models.ReplaceActivityRequest {
	return request_models.ReplaceActivityRequest{
		DayID:         "d1",
		TargetPlaceID: "target",
		Place:         request_models.IncomingPlace{ID: "new-place"},
	}
}

func TestFacadeReplaceActivity_ChargesCounterAndSaves(t *testing.T) {
	h := newFacadeHarness(t)

	resp, err := h.svc.ReplaceActivity(context.Background(), h.tripID, h.accountID, replaceRequest())
	require.NoError(t, err)
	assert.Equal(t, "new-place", resp.Activity.ID)

	assert.Equal(t, []string{"change_count"}, h.memberRepo.increments)
	assert.Equal(t, 1, h.itineraryRepo.saves)
	assert.Equal(t, "new-place", h.itineraryRepo.doc.Days[0].Slots[0].Places[0].ID)
}

func TestFacadeReplaceActivity_NoSaveWhenCounterFails(t *testing.T) {
	h := newFacadeHarness(t)
	h.memberRepo.incErr = errors.New("deadlock")

	_, err := h.svc.ReplaceActivity(context.Background(), h.tripID, h.accountID, replaceRequest())

	assert.ErrorIs(t, err, utils.ErrDatabaseError)
	assert.Equal(t, 0, h.itineraryRepo.saves)
}

func TestFacadeReplaceActivity_NoCounterChargeOnRejection(t *testing.T) {
	h := newFacadeHarness(t)
	req := replaceRequest()
	req.TargetPlaceID = "ghost"

	_, err := h.svc.ReplaceActivity(context.Background(), h.tripID, h.accountID, req)

	assert.ErrorIs(t, err, utils.ErrPlaceNotFound)
	assert.Empty(t, h.memberRepo.increments)
	assert.Equal(t, 0, h.itineraryRepo.saves)
}

func TestFacadeReplaceActivity_MissingDocument(t *testing.T) {
	h := newFacadeHarness(t)
	h.itineraryRepo.doc = nil

	_, err := h.svc.ReplaceActivity(context.Background(), h.tripID, h.accountID, replaceRequest())
	assert.ErrorIs(t, err, utils.ErrItineraryNotFound)
}

func TestFacadeDistributeLiked(t *testing.T) {
	h := newFacadeHarness(t)

	summary, err := h.svc.DistributeLikedPlaces(context.Background(), h.tripID, "", h.accountID, []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Distributed)
	assert.Equal(t, 1, h.itineraryRepo.saves)
	assert.Equal(t, 1, h.explore.cleared)
}

func TestFacadeDistributeLiked_EmptyPool(t *testing.T) {
	h := newFacadeHarness(t)

	_, err := h.svc.DistributeLikedPlaces(context.Background(), h.tripID, "", h.accountID, nil)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestFacadeDistributeLiked_NothingPlacedNothingSaved(t *testing.T) {
	h := newFacadeHarness(t)
	// every candidate fails lookup, so nothing lands
	h.lookup.failIDs = map[string]bool{"p1": true}

	summary, err := h.svc.DistributeLikedPlaces(context.Background(), h.tripID, "", h.accountID, []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Distributed)
	assert.Equal(t, 0, h.itineraryRepo.saves)
	assert.Equal(t, 0, h.explore.cleared)
}

func TestFacadeDistributeLiked_ClearFailureDoesNotFailTheCall(t *testing.T) {
	h := newFacadeHarness(t)
	h.explore.clearErr = errors.New("redis down")

	summary, err := h.svc.DistributeLikedPlaces(context.Background(), h.tripID, "", h.accountID, []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Distributed)
	assert.Equal(t, 1, h.itineraryRepo.saves)
}

func TestFacadeGetItinerary(t *testing.T) {
	h := newFacadeHarness(t)

	doc, err := h.svc.GetItinerary(context.Background(), h.tripID, "", h.accountID)
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.Days[0].ID)

	_, err = h.svc.GetItinerary(context.Background(), uuid.New(), "", h.accountID)
	assert.ErrorIs(t, err, utils.ErrTripNotFound)
}
