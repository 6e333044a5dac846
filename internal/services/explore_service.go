package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"wander/internal/models/request_models"
	"wander/internal/models/response_models"
	"wander/internal/repositories"
	"wander/pkg/utils"
)

// ExploreServiceInterface is the swipe-session store. Sessions are scoped to
// (trip, member) and optionally a trip segment; they live in redis so swipe
// bursts never touch postgres.
type ExploreServiceInterface interface {
	GetSession(ctx context.Context, tripID, accountID uuid.UUID, segment string) (*response_models.ExploreSessionResponse, error)
	RecordSwipe(ctx context.Context, tripID, accountID uuid.UUID, segment, placeID, direction string) (*response_models.ExploreSessionResponse, error)
	UndoSwipe(ctx context.Context, tripID, accountID uuid.UUID, segment string) (*response_models.ExploreSessionResponse, error)
	ResetSession(ctx context.Context, tripID, accountID uuid.UUID, segment string) error
	LikedPlaces(ctx context.Context, tripID, accountID uuid.UUID, segment string) ([]string, error)
	ClearLiked(ctx context.Context, tripID, accountID uuid.UUID, segment string) error
}

type exploreService struct {
	rdb        *redis.Client
	tripRepo   repositories.TripRepository
	memberRepo repositories.TripMemberRepository
	quota      QuotaServiceInterface
}

func NewExploreService(
	rdb *redis.Client,
	tripRepo repositories.TripRepository,
	memberRepo repositories.TripMemberRepository,
	quota QuotaServiceInterface,
) ExploreServiceInterface {
	return &exploreService{
		rdb:        rdb,
		tripRepo:   tripRepo,
		memberRepo: memberRepo,
		quota:      quota,
	}
}

func sessionKey(tripID, accountID uuid.UUID, segment, field string) string {
	if segment == "" {
		segment = "-"
	}
	return fmt.Sprintf("explore:%s:%s:%s:%s", tripID, segment, accountID, field)
}

func (s *exploreService) resolve(ctx context.Context, tripID, accountID uuid.UUID) (bool, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return false, utils.ErrDatabaseError
	}
	if trip == nil {
		return false, utils.ErrTripNotFound
	}
	_, upgraded, err := s.quota.ResolveMemberAndTier(ctx, trip, accountID)
	return upgraded, err
}

func (s *exploreService) GetSession(ctx context.Context, tripID, accountID uuid.UUID, segment string) (*response_models.ExploreSessionResponse, error) {
	upgraded, err := s.resolve(ctx, tripID, accountID)
	if err != nil {
		return nil, err
	}
	return s.sessionResponse(ctx, tripID, accountID, segment, upgraded)
}

func (s *exploreService) RecordSwipe(ctx context.Context, tripID, accountID uuid.UUID, segment, placeID, direction string) (*response_models.ExploreSessionResponse, error) {
	if placeID == "" || (direction != request_models.SwipeLike && direction != request_models.SwipeDiscard) {
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

	count, err := s.swipeCount(ctx, tripID, accountID, segment)
	if err != nil {
		return nil, err
	}
	// denied swipes must leave the session untouched
	if err := s.quota.Check(repositories.CounterSwipes, count, upgraded); err != nil {
		return nil, err
	}

	set := "discarded"
	if direction == request_models.SwipeLike {
		set = "liked"
	}

	pipe := s.rdb.TxPipeline()
	pipe.SAdd(ctx, sessionKey(tripID, accountID, segment, set), placeID)
	pipe.Incr(ctx, sessionKey(tripID, accountID, segment, "count"))
	pipe.Set(ctx, sessionKey(tripID, accountID, segment, "last"), set+"|"+placeID, 0)
	pipe.Set(ctx, sessionKey(tripID, accountID, segment, "last_swipe_at"), time.Now().UTC().Format(time.RFC3339), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := s.memberRepo.IncrementCounter(ctx, member.ID, repositories.CounterSwipes, 1); err != nil {
		log.Printf("Swipe counter mirror failed for member %s: %v", member.ID, err)
	}

	return s.sessionResponse(ctx, tripID, accountID, segment, upgraded)
}

func (s *exploreService) UndoSwipe(ctx context.Context, tripID, accountID uuid.UUID, segment string) (*response_models.ExploreSessionResponse, error) {
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

	last, err := s.rdb.Get(ctx, sessionKey(tripID, accountID, segment, "last")).Result()
	if errors.Is(err, redis.Nil) || last == "" {
		// nothing recorded to undo
		return s.sessionResponse(ctx, tripID, accountID, segment, upgraded)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	set, placeID, ok := strings.Cut(last, "|")
	if !ok {
		return s.sessionResponse(ctx, tripID, accountID, segment, upgraded)
	}

	removed, err := s.rdb.SRem(ctx, sessionKey(tripID, accountID, segment, set), placeID).Result()
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if removed > 0 {
		count, _ := s.swipeCount(ctx, tripID, accountID, segment)
		if count > 0 {
			count--
		}
		if err := s.rdb.Set(ctx, sessionKey(tripID, accountID, segment, "count"), count, 0).Err(); err != nil {
			return nil, utils.ErrDatabaseError
		}
		if err := s.memberRepo.IncrementCounter(ctx, member.ID, repositories.CounterSwipes, -1); err != nil {
			log.Printf("Swipe counter mirror failed for member %s: %v", member.ID, err)
		}
	}
	s.rdb.Del(ctx, sessionKey(tripID, accountID, segment, "last"))

	return s.sessionResponse(ctx, tripID, accountID, segment, upgraded)
}

// ResetSession clears both sets and the counter. last_swipe_at survives for
// future time-windowed policies.
func (s *exploreService) ResetSession(ctx context.Context, tripID, accountID uuid.UUID, segment string) error {
	if _, err := s.resolve(ctx, tripID, accountID); err != nil {
		return err
	}
	return s.rdb.Del(ctx,
		sessionKey(tripID, accountID, segment, "liked"),
		sessionKey(tripID, accountID, segment, "discarded"),
		sessionKey(tripID, accountID, segment, "count"),
		sessionKey(tripID, accountID, segment, "last"),
	).Err()
}

func (s *exploreService) LikedPlaces(ctx context.Context, tripID, accountID uuid.UUID, segment string) ([]string, error) {
	liked, err := s.rdb.SMembers(ctx, sessionKey(tripID, accountID, segment, "liked")).Result()
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return liked, nil
}

func (s *exploreService) ClearLiked(ctx context.Context, tripID, accountID uuid.UUID, segment string) error {
	return s.rdb.Del(ctx, sessionKey(tripID, accountID, segment, "liked")).Err()
}

func (s *exploreService) swipeCount(ctx context.Context, tripID, accountID uuid.UUID, segment string) (int, error) {
	count, err := s.rdb.Get(ctx, sessionKey(tripID, accountID, segment, "count")).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return count, nil
}

func (s *exploreService) sessionResponse(ctx context.Context, tripID, accountID uuid.UUID, segment string, upgraded bool) (*response_models.ExploreSessionResponse, error) {
	liked, err := s.rdb.SMembers(ctx, sessionKey(tripID, accountID, segment, "liked")).Result()
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	discarded, err := s.rdb.SMembers(ctx, sessionKey(tripID, accountID, segment, "discarded")).Result()
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	count, err := s.swipeCount(ctx, tripID, accountID, segment)
	if err != nil {
		return nil, err
	}

	resp := &response_models.ExploreSessionResponse{
		Liked:      liked,
		Discarded:  discarded,
		SwipeCount: count,
	}
	limits := s.quota.GetLimits(upgraded)
	if limits.Unlimited {
		resp.Unlimited = true
	} else {
		remaining := limits.SwipeLimit - count
		if remaining < 0 {
			remaining = 0
		}
		resp.RemainingSwipes = &remaining
	}
	return resp, nil
}
