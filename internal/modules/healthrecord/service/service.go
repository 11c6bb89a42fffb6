package record

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/healthrecord/dto"
	"anoa.com/healthmanage/internal/modules/healthrecord/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/internal/service"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

// ErrNoRecord is returned by ViewRecord when the actor has no active record.
var ErrNoRecord = fmt.Errorf("no health record found: %w", apperror.ErrNotFound)

type HealthRecordService interface {
	Create(ctx context.Context, actor *authz.Actor, req dto.RecordRequest) (*entity.HealthRecord, error)
	// AddRecord always records for the actor.
	AddRecord(ctx context.Context, actor *authz.Actor, req dto.RecordRequest) (*entity.HealthRecord, error)
	// ViewRecord returns the newest active record of the actor.
	ViewRecord(ctx context.Context, actor *authz.Actor) (*entity.HealthRecord, error)
	Stats(ctx context.Context, actor *authz.Actor, query dto.StatsQuery) (*dto.StatsResponse, error)
	List(ctx context.Context, actor *authz.Actor, query dto.RecordQuery) (*commonDto.PageResult[entity.HealthRecord], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.HealthRecord, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateRecordRequest) (*entity.HealthRecord, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type healthRecordService struct {
	repo  repository.HealthRecordRepository
	authz *authz.Engine
	owned service.Owned[entity.HealthRecord]
	now   func() time.Time
}

// NewHealthRecordService builds the service. A nil now uses time.Now.
func NewHealthRecordService(repo repository.HealthRecordRepository, users service.Accounts, engine *authz.Engine, pageSize int, now func() time.Time) HealthRecordService {
	if now == nil {
		now = time.Now
	}
	return &healthRecordService{
		repo:  repo,
		authz: engine,
		owned: service.Owned[entity.HealthRecord]{
			Repo:     repo,
			Users:    users,
			Authz:    engine,
			Resource: authz.ResourceHealthRecord,
			PageSize: pageSize,
		},
		now: now,
	}
}

func (s *healthRecordService) Create(ctx context.Context, actor *authz.Actor, req dto.RecordRequest) (*entity.HealthRecord, error) {
	owner, err := s.owned.Owner(ctx, actor, req.User)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, actor, owner, req)
}

func (s *healthRecordService) AddRecord(ctx context.Context, actor *authz.Actor, req dto.RecordRequest) (*entity.HealthRecord, error) {
	if actor == nil {
		return nil, apperror.ErrUnauthorized
	}
	return s.create(ctx, actor, actor.ID, req)
}

func (s *healthRecordService) create(ctx context.Context, actor *authz.Actor, owner uuid.UUID, req dto.RecordRequest) (*entity.HealthRecord, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceHealthRecord); err != nil {
		return nil, err
	}

	date := entity.Day(s.now())
	if req.Date != nil {
		date = req.Date.Time
	}

	r := &entity.HealthRecord{
		Base:        entity.NewBase(),
		UserID:      owner,
		Date:        date,
		WaterIntake: req.WaterIntake,
		Steps:       req.Steps,
		HeartRate:   req.HeartRate,
		Height:      req.Height,
		Weight:      req.Weight,
		SleepTime:   req.SleepTime,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, fmt.Errorf("a health record for %s already exists: %w", date.Format(commonDto.DateLayout), err)
		}
		return nil, err
	}
	return r, nil
}

func (s *healthRecordService) ViewRecord(ctx context.Context, actor *authz.Actor) (*entity.HealthRecord, error) {
	if err := s.authz.Allow(actor, authz.ActionRetrieve, authz.ResourceHealthRecord); err != nil {
		return nil, err
	}

	r, err := s.repo.First(ctx, baseRepo.Query{
		Scope: baseRepo.AllRows,
		Where: map[string]any{"user_id": actor.ID},
		Order: "date DESC, created_at DESC",
	})
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrNoRecord
	}
	return r, err
}

func (s *healthRecordService) Stats(ctx context.Context, actor *authz.Actor, query dto.StatsQuery) (*dto.StatsResponse, error) {
	if err := s.authz.Allow(actor, authz.ActionList, authz.ResourceHealthRecord); err != nil {
		return nil, err
	}
	if query.From != nil && query.To != nil && query.From.After(query.To.Time) {
		return nil, apperror.Field("from", "must not be after to")
	}

	owner := service.OwnerFor(actor, query.UserID())
	from, to := query.From.TimePtr(), query.To.TimePtr()

	sum, err := s.repo.Summarize(ctx, owner, from, to)
	if err != nil {
		return nil, err
	}

	stats := &dto.StatsResponse{
		User:               owner,
		From:               query.From,
		To:                 query.To,
		Count:              sum.Count,
		AverageWeight:      round2(sum.AvgWeight),
		AverageSteps:       round2(sum.AvgSteps),
		AverageHeartRate:   round2(sum.AvgHeartRate),
		AverageSleepTime:   round2(sum.AvgSleepTime),
		AverageWaterIntake: round2(sum.AvgWaterIntake),
	}
	if sum.Count == 0 {
		return stats, nil
	}

	latest, err := s.repo.LatestMeasured(ctx, owner, from, to)
	switch {
	case err == nil:
		stats.LatestBMI = latest.BMI()
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, err
	}
	return stats, nil
}

func (s *healthRecordService) List(ctx context.Context, actor *authz.Actor, query dto.RecordQuery) (*commonDto.PageResult[entity.HealthRecord], error) {
	return s.owned.List(ctx, actor, query.PageQuery, baseRepo.Query{
		Order:  "date DESC, created_at DESC",
		Scopes: []func(*gorm.DB) *gorm.DB{baseRepo.DateRange("date", query.From.TimePtr(), query.To.TimePtr())},
	})
}

func (s *healthRecordService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.HealthRecord, error) {
	return s.owned.Load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *healthRecordService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateRecordRequest) (*entity.HealthRecord, error) {
	r, err := s.owned.Load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		r.Date = req.Date.Time
	}
	if req.WaterIntake != nil {
		r.WaterIntake = req.WaterIntake
	}
	if req.Steps != nil {
		r.Steps = req.Steps
	}
	if req.HeartRate != nil {
		r.HeartRate = req.HeartRate
	}
	if req.Height != nil {
		r.Height = req.Height
	}
	if req.Weight != nil {
		r.Weight = req.Weight
	}
	if req.SleepTime != nil {
		r.SleepTime = req.SleepTime
	}

	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *healthRecordService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	return s.owned.Delete(ctx, actor, id)
}

func round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*100) / 100
	return &r
}
