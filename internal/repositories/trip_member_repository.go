package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wander/internal/models/db_models"
)

const (
	CounterSwipes    = "swipe_count"
	CounterChanges   = "change_count"
	CounterSearchAdd = "search_add_count"
)

type TripMemberRepository interface {
	// GetOrCreate returns the counter row for a trip+account pair, creating
	// it lazily for members (trip owners included) that predate counter
	// bookkeeping.
	GetOrCreate(ctx context.Context, tripID, accountID uuid.UUID, role string) (*db_models.TripMember, error)
	// IncrementCounter applies an atomic SQL delta to one counter column.
	IncrementCounter(ctx context.Context, memberRowID uuid.UUID, counter string, delta int) error
	SetTripUpgraded(ctx context.Context, tripID uuid.UUID, upgraded bool) error
}

type tripMemberRepository struct {
	db *gorm.DB
}

func NewTripMemberRepository(db *gorm.DB) TripMemberRepository {
	return &tripMemberRepository{db: db}
}

func (r *tripMemberRepository) GetOrCreate(ctx context.Context, tripID, accountID uuid.UUID, role string) (*db_models.TripMember, error) {
	var member db_models.TripMember
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND account_id = ?", tripID, accountID).
		First(&member).Error
	if err == nil {
		return &member, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if role == "" {
		role = "member"
	}
	member = db_models.TripMember{
		TripID:    tripID,
		AccountID: accountID,
		Role:      role,
	}
	if err := r.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *tripMemberRepository) IncrementCounter(ctx context.Context, memberRowID uuid.UUID, counter string, delta int) error {
	switch counter {
	case CounterSwipes, CounterChanges, CounterSearchAdd:
	default:
		return fmt.Errorf("unknown counter column %q", counter)
	}

	// GREATEST floors the undo-swipe decrement at zero.
	res := r.db.WithContext(ctx).
		Model(&db_models.TripMember{}).
		Where("id = ?", memberRowID).
		UpdateColumn(counter, gorm.Expr("GREATEST("+counter+" + ?, 0)", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tripMemberRepository) SetTripUpgraded(ctx context.Context, tripID uuid.UUID, upgraded bool) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Where("id = ?", tripID).
		UpdateColumn("is_upgraded", upgraded).Error
}
