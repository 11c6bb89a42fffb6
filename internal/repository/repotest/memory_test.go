package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/pkg/apperror"
)

func TestMemory_UniqueCoversDeactivatedRows(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory[entity.HealthDiary](authz.ResourceHealthDiary)
	mem.Unique = func(d *entity.HealthDiary) string { return d.UserID.String() + d.Date.Format(time.DateOnly) }

	owner := uuid.New()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	first := &entity.HealthDiary{Base: entity.NewBase(), UserID: owner, Date: day, Content: "rest day"}
	require.NoError(t, mem.Create(ctx, first))
	require.NoError(t, mem.Deactivate(ctx, first.ID))

	again := &entity.HealthDiary{Base: entity.NewBase(), UserID: owner, Date: day, Content: "second try"}
	assert.ErrorIs(t, mem.Create(ctx, again), apperror.ErrConflict)

	other := &entity.HealthDiary{Base: entity.NewBase(), UserID: owner, Date: day.AddDate(0, 0, 1), Content: "walk"}
	require.NoError(t, mem.Create(ctx, other))
	other.Date = day
	assert.ErrorIs(t, mem.Save(ctx, other), apperror.ErrConflict)
}
