package diary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/healthdiary/dto"
	"anoa.com/healthmanage/internal/repository/repotest"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

func newService() HealthDiaryService {
	repo := repotest.NewMemory[entity.HealthDiary](authz.ResourceHealthDiary)
	repo.Unique = func(d *entity.HealthDiary) string {
		return d.UserID.String() + "/" + d.Date.Format(commonDto.DateLayout)
	}
	now := func() time.Time { return time.Date(2024, 4, 2, 23, 0, 0, 0, time.UTC) }
	return NewHealthDiaryService(repo, authz.New(), 10, now)
}

var (
	author = &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}
	admin  = &authz.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
)

func TestCreate_SanitizesContent(t *testing.T) {
	svc := newService()

	d, err := svc.Create(context.Background(), author, dto.CreateDiaryRequest{
		Content: `<p>Slept well</p><script>alert(1)</script>`,
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>Slept well</p>", d.Content)
	assert.Equal(t, author.ID, d.UserID)
	assert.Equal(t, "2024-04-02", d.Date.Format(commonDto.DateLayout))
}

func TestCreate_ContentBlankAfterSanitizing(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), author, dto.CreateDiaryRequest{Content: `<script>alert(1)</script>`})

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "content")
}

func TestCreate_OnePerDay(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, author, dto.CreateDiaryRequest{Content: "first"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, author, dto.CreateDiaryRequest{Content: "second"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAdminCanReadButNotEdit(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	d, err := svc.Create(ctx, author, dto.CreateDiaryRequest{Content: "private"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, admin, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Content)

	content := "edited by admin"
	_, err = svc.Update(ctx, admin, d.ID, dto.UpdateDiaryRequest{Content: &content})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, admin, d.ID), apperror.ErrForbidden)

	updated, err := svc.Update(ctx, author, d.ID, dto.UpdateDiaryRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
	require.NoError(t, svc.Delete(ctx, author, d.ID))
}
