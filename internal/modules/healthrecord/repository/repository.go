package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

// Summary aggregates the active records of one user. Averages are nil when
// no record in the window carries the measurement.
type Summary struct {
	Count          int64
	AvgWeight      *float64
	AvgSteps       *float64
	AvgHeartRate   *float64
	AvgSleepTime   *float64
	AvgWaterIntake *float64
}

type HealthRecordRepository interface {
	repository.Repository[entity.HealthRecord]
	Summarize(ctx context.Context, userID uuid.UUID, from, to *time.Time) (Summary, error)
	// LatestMeasured returns the newest record in the window with both height and weight.
	LatestMeasured(ctx context.Context, userID uuid.UUID, from, to *time.Time) (*entity.HealthRecord, error)
}

type healthRecordRepository struct {
	*repository.Store[entity.HealthRecord]
}

func NewHealthRecordRepository(db *gorm.DB) HealthRecordRepository {
	return &healthRecordRepository{Store: repository.NewStore[entity.HealthRecord](db)}
}

func (r *healthRecordRepository) Summarize(ctx context.Context, userID uuid.UUID, from, to *time.Time) (Summary, error) {
	var s Summary
	err := r.DB(ctx).Model(&entity.HealthRecord{}).
		Select(`count(*) AS count,
			avg(weight)::float8 AS avg_weight,
			avg(steps)::float8 AS avg_steps,
			avg(heart_rate)::float8 AS avg_heart_rate,
			avg(sleep_time)::float8 AS avg_sleep_time,
			avg(water_intake)::float8 AS avg_water_intake`).
		Where("user_id = ? AND active = ?", userID, true).
		Scopes(repository.DateRange("date", from, to)).
		Scan(&s).Error
	return s, repository.Translate(err)
}

func (r *healthRecordRepository) LatestMeasured(ctx context.Context, userID uuid.UUID, from, to *time.Time) (*entity.HealthRecord, error) {
	return r.First(ctx, repository.Query{
		Scope: repository.AllRows,
		Where: map[string]any{"user_id": userID},
		Order: "date DESC, created_at DESC",
		Scopes: []func(*gorm.DB) *gorm.DB{
			repository.DateRange("date", from, to),
			func(db *gorm.DB) *gorm.DB {
				return db.Where("height IS NOT NULL AND height > 0 AND weight IS NOT NULL")
			},
		},
	})
}
