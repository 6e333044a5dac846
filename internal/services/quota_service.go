package services

import (
	"context"
	"os"
	"strconv"

	"github.com/google/uuid"
	"wander/internal/models/db_models"
	"wander/internal/repositories"
	"wander/pkg/utils"
)

const (
	defaultFreeSwipes     = 50
	defaultFreeChanges    = 10
	defaultFreeSearchAdds = 10
)

// TierLimits holds the ceilings for one quota tier. Unlimited is a distinct
// state, never a large sentinel number, so clients can render "unlimited".
type TierLimits struct {
	SwipeLimit     int
	ChangeLimit    int
	SearchAddLimit int
	Unlimited      bool
}

type QuotaServiceInterface interface {
	GetLimits(upgraded bool) TierLimits
	// ResolveMemberAndTier checks trip access, lazily creating the counter
	// row for the trip owner, and resolves the effective tier as the OR of
	// the trip-level upgrade and an active account subscription.
	ResolveMemberAndTier(ctx context.Context, trip *db_models.Trip, accountID uuid.UUID) (*db_models.TripMember, bool, error)
	// Check returns nil when one more use of the counter is admissible, or
	// a *utils.LimitReachedError describing the denial.
	Check(counter string, used int, upgraded bool) error
}

type quotaService struct {
	subscriptionRepo repositories.SubscriptionRepository
	tripMemberRepo   repositories.TripMemberRepository
	tripRepo         repositories.TripRepository
	free             TierLimits
}

func NewQuotaService(
	subscriptionRepo repositories.SubscriptionRepository,
	tripMemberRepo repositories.TripMemberRepository,
	tripRepo repositories.TripRepository,
) QuotaServiceInterface {
	return &quotaService{
		subscriptionRepo: subscriptionRepo,
		tripMemberRepo:   tripMemberRepo,
		tripRepo:         tripRepo,
		free: TierLimits{
			SwipeLimit:     envInt("QUOTA_FREE_SWIPES", defaultFreeSwipes),
			ChangeLimit:    envInt("QUOTA_FREE_CHANGES", defaultFreeChanges),
			SearchAddLimit: envInt("QUOTA_FREE_SEARCH_ADDS", defaultFreeSearchAdds),
		},
	}
}

func envInt(name string, fallback int) int {
	if raw := os.Getenv(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func (q *quotaService) GetLimits(upgraded bool) TierLimits {
	if upgraded {
		return TierLimits{Unlimited: true}
	}
	return q.free
}

func (q *quotaService) ResolveMemberAndTier(ctx context.Context, trip *db_models.Trip, accountID uuid.UUID) (*db_models.TripMember, bool, error) {
	member, err := q.tripRepo.FindMember(ctx, trip.ID, accountID)
	if err != nil {
		return nil, false, utils.ErrDatabaseError
	}
	if member == nil {
		if trip.OwnerID != accountID {
			return nil, false, utils.ErrForbidden
		}
		// owner predates counter bookkeeping, create the row now
		member, err = q.tripMemberRepo.GetOrCreate(ctx, trip.ID, accountID, "owner")
		if err != nil {
			return nil, false, utils.ErrDatabaseError
		}
	}

	upgraded := trip.IsUpgraded
	if !upgraded {
		upgraded, err = q.subscriptionRepo.HasActiveSubscription(ctx, accountID, utils.NowUnixSeconds())
		if err != nil {
			return nil, false, utils.ErrDatabaseError
		}
	}
	return member, upgraded, nil
}

func (q *quotaService) Check(counter string, used int, upgraded bool) error {
	limits := q.GetLimits(upgraded)
	if limits.Unlimited {
		return nil
	}

	var limit int
	var label string
	switch counter {
	case repositories.CounterSwipes:
		limit, label = limits.SwipeLimit, "swipes"
	case repositories.CounterChanges:
		limit, label = limits.ChangeLimit, "changes"
	case repositories.CounterSearchAdd:
		limit, label = limits.SearchAddLimit, "search adds"
	default:
		return utils.ErrInvalidInput
	}

	if used >= limit {
		return utils.NewLimitReachedError(label, limit, used, upgraded)
	}
	return nil
}
