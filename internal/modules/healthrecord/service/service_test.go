package record

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/healthrecord/dto"
	"anoa.com/healthmanage/internal/modules/healthrecord/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/internal/repository/repotest"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type fakeRecordRepo struct {
	*repotest.Memory[entity.HealthRecord, *entity.HealthRecord]
	summary repository.Summary
}

func (r *fakeRecordRepo) Summarize(context.Context, uuid.UUID, *time.Time, *time.Time) (repository.Summary, error) {
	return r.summary, nil
}

func (r *fakeRecordRepo) LatestMeasured(ctx context.Context, userID uuid.UUID, _, _ *time.Time) (*entity.HealthRecord, error) {
	items, _, _ := r.List(ctx, baseRepo.Query{Scope: baseRepo.AllRows, Where: map[string]any{"user_id": userID}})
	for _, item := range items {
		if item.Height != nil && item.Weight != nil {
			return &item, nil
		}
	}
	return nil, apperror.ErrNotFound
}

var today = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func newService() (HealthRecordService, *fakeRecordRepo) {
	mem := repotest.NewMemory[entity.HealthRecord](authz.ResourceHealthRecord)
	mem.Unique = func(r *entity.HealthRecord) string {
		return r.UserID.String() + "/" + r.Date.Format(commonDto.DateLayout)
	}
	mem.Match = func(r *entity.HealthRecord, q baseRepo.Query) bool {
		if id, ok := q.Where["user_id"].(uuid.UUID); ok {
			return r.UserID == id
		}
		return true
	}
	mem.Less = func(a, b *entity.HealthRecord) bool { return a.Date.After(b.Date) }

	repo := &fakeRecordRepo{Memory: mem}
	return NewHealthRecordService(repo, repotest.Users{}, authz.New(), 10, func() time.Time { return today }), repo
}

func ptr[T any](v T) *T { return &v }

func day(s string) *commonDto.Date {
	d, err := commonDto.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestAddRecord_DefaultsToTodayForActor(t *testing.T) {
	svc, _ := newService()
	actor := &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}

	r, err := svc.AddRecord(context.Background(), actor, dto.RecordRequest{User: ptr(uuid.New()), Steps: ptr(4000)})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, r.UserID)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), r.Date)
}

func TestAddRecord_SameDayConflicts(t *testing.T) {
	svc, _ := newService()
	actor := &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, actor, dto.RecordRequest{})
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, actor, dto.RecordRequest{})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svc.AddRecord(ctx, actor, dto.RecordRequest{Date: day("2024-03-09")})
	assert.NoError(t, err)
}

func TestViewRecord_NewestFirst(t *testing.T) {
	svc, _ := newService()
	actor := &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}
	ctx := context.Background()

	_, err := svc.ViewRecord(ctx, actor)
	assert.ErrorIs(t, err, ErrNoRecord)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.AddRecord(ctx, actor, dto.RecordRequest{Date: day("2024-03-01"), Weight: ptr(70.0)})
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, actor, dto.RecordRequest{Date: day("2024-03-05"), Weight: ptr(69.0)})
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}, dto.RecordRequest{Date: day("2024-03-08")})
	require.NoError(t, err)

	r, err := svc.ViewRecord(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, 69.0, *r.Weight)
}

func TestStats(t *testing.T) {
	svc, repo := newService()
	actor := &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, actor, dto.RecordRequest{Date: day("2024-03-01"), Height: ptr(1.75), Weight: ptr(70.0)})
	require.NoError(t, err)
	repo.summary = repository.Summary{Count: 3, AvgWeight: ptr(70.3333), AvgSteps: ptr(5000.0)}

	stats, err := svc.Stats(ctx, actor, dto.StatsQuery{User: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, stats.User)
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, 70.33, *stats.AverageWeight)
	assert.Nil(t, stats.AverageHeartRate)
	require.NotNil(t, stats.LatestBMI)
	assert.Equal(t, 22.86, *stats.LatestBMI)
}

func TestStats_RejectsInvertedWindow(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Stats(context.Background(), &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser},
		dto.StatsQuery{From: day("2024-03-05"), To: day("2024-03-01")})

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "from")
}

func TestList_NonAdminSeesOwnRecordsOnly(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	mine := &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}
	theirs := &authz.Actor{ID: uuid.New(), Role: entity.RoleExpert}

	for _, d := range []string{"2024-03-01", "2024-03-02"} {
		_, err := svc.AddRecord(ctx, mine, dto.RecordRequest{Date: day(d)})
		require.NoError(t, err)
	}
	_, err := svc.AddRecord(ctx, theirs, dto.RecordRequest{Date: day("2024-03-01")})
	require.NoError(t, err)

	page, err := svc.List(ctx, mine, dto.RecordQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	for _, r := range page.Items {
		assert.Equal(t, mine.ID, r.UserID)
	}
}
