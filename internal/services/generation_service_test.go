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
	"wander/pkg/utils"
)

type fakePlanner struct {
	raw string
	err error
}

func (f *fakePlanner) GenerateItineraryJSON(context.Context, string, int, string, []string) (string, error) {
	return f.raw, f.err
}

func newGenerationService(planner utils.ItineraryPlannerInterface, itineraryRepo *fakeItineraryRepo) (GenerationServiceInterface, uuid.UUID, uuid.UUID) {
	tripID := uuid.New()
	accountID := uuid.New()
	trip := &db_models.Trip{OwnerID: accountID}
	trip.ID = tripID
	member := &db_models.TripMember{TripID: tripID, AccountID: accountID}
	member.ID = uuid.New()

	tripRepo := &stubTripStore{trip: trip, member: member}
	quota := newTestQuota(tripRepo, &fakeMemberRepo{}, &fakeSubscriptionRepo{})
	return NewGenerationService(planner, tripRepo, itineraryRepo, quota), tripID, accountID
}

const plannerOutput = `{
	"title": "Tokyo in two days",
	"days": [
		{"date": "wrong", "slots": [{"label": "morning", "places": [{"id": "p1", "name": "Senso-ji"}]}]},
		{"slots": []}
	]
}`

func TestGenerateItinerary_NormalizesPlannerOutput(t *testing.T) {
	repo := &fakeItineraryRepo{}
	svc, tripID, accountID := newGenerationService(&fakePlanner{raw: plannerOutput}, repo)

	doc, err := svc.GenerateItinerary(context.Background(), tripID, accountID, request_models.GenerateItineraryRequest{
		Destination: "Tokyo",
		Days:        2,
		StartDate:   "2025-06-01",
	})
	require.NoError(t, err)
	require.Len(t, doc.Days, 2)

	// dates become consecutive from the start date, indexes 1-based
	assert.Equal(t, "2025-06-01", doc.Days[0].Date)
	assert.Equal(t, "2025-06-02", doc.Days[1].Date)
	assert.Equal(t, 1, doc.Days[0].Index)
	assert.Equal(t, 2, doc.Days[1].Index)

	// every day carries the three canonical slots and a generated ID
	for _, day := range doc.Days {
		assert.NotEmpty(t, day.ID)
		for _, label := range []string{doc_models.SlotMorning, doc_models.SlotAfternoon, doc_models.SlotEvening} {
			assert.GreaterOrEqual(t, day.SlotByLabel(label), 0)
		}
	}

	// planner content survives normalization
	assert.Equal(t, "p1", doc.Days[0].Slots[0].Places[0].ID)
	assert.Equal(t, 1, repo.saves)
}

func TestGenerateItinerary_InvalidRequest(t *testing.T) {
	svc, tripID, accountID := newGenerationService(&fakePlanner{}, &fakeItineraryRepo{})

	_, err := svc.GenerateItinerary(context.Background(), tripID, accountID, request_models.GenerateItineraryRequest{Days: 2})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.GenerateItinerary(context.Background(), tripID, accountID, request_models.GenerateItineraryRequest{Destination: "Tokyo"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestGenerateItinerary_PlannerFailure(t *testing.T) {
	repo := &fakeItineraryRepo{}
	svc, tripID, accountID := newGenerationService(&fakePlanner{err: errors.New("503")}, repo)

	_, err := svc.GenerateItinerary(context.Background(), tripID, accountID, request_models.GenerateItineraryRequest{
		Destination: "Tokyo",
		Days:        2,
	})
	assert.ErrorIs(t, err, utils.ErrUpstreamFailure)
	assert.Equal(t, 0, repo.saves)
}

func TestGenerateItinerary_MalformedPlannerJSON(t *testing.T) {
	repo := &fakeItineraryRepo{}
	svc, tripID, accountID := newGenerationService(&fakePlanner{raw: "not json at all"}, repo)

	_, err := svc.GenerateItinerary(context.Background(), tripID, accountID, request_models.GenerateItineraryRequest{
		Destination: "Tokyo",
		Days:        2,
	})
	assert.ErrorIs(t, err, utils.ErrUpstreamFailure)
	assert.Equal(t, 0, repo.saves)
}
