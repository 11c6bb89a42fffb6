package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/catalog/dto"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type fakeTagRepo struct {
	tags map[uuid.UUID]*entity.Tag
}

func (r *fakeTagRepo) Create(_ context.Context, t *entity.Tag) error {
	for _, existing := range r.tags {
		if existing.Name == t.Name {
			return apperror.ErrConflict
		}
	}
	t.ID = uuid.New()
	r.tags[t.ID] = t
	return nil
}

func (r *fakeTagRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Tag, error) {
	if t, ok := r.tags[id]; ok && t.Active {
		cp := *t
		return &cp, nil
	}
	return nil, apperror.ErrNotFound
}

func (r *fakeTagRepo) FindAll(_ context.Context, q baseRepo.Query) ([]entity.Tag, int64, error) {
	var out []entity.Tag
	for _, t := range r.tags {
		if t.Active {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTagRepo) Save(_ context.Context, t *entity.Tag) error {
	r.tags[t.ID] = t
	return nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id uuid.UUID) error {
	t, ok := r.tags[id]
	if !ok || !t.Active {
		return apperror.ErrNotFound
	}
	t.Active = false
	return nil
}

func TestTagCatalog(t *testing.T) {
	ctx := context.Background()
	repo := &fakeTagRepo{tags: map[uuid.UUID]*entity.Tag{}}
	svc := NewCatalogService[entity.Tag](repo, authz.New(), TagEntry, 10)

	admin := &authz.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	exerciser := &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser}

	_, err := svc.Create(ctx, exerciser, dto.EntryRequest{Name: "cardio"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	tag, err := svc.Create(ctx, admin, dto.EntryRequest{Name: "  cardio "})
	require.NoError(t, err)
	assert.Equal(t, "cardio", tag.Name)
	assert.True(t, tag.Active)

	_, err = svc.Create(ctx, admin, dto.EntryRequest{Name: "cardio"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	page, err := svc.List(ctx, exerciser, commonDto.PageQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	blank := "  "
	_, err = svc.Update(ctx, admin, tag.ID, dto.UpdateEntryRequest{Name: &blank})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	assert.ErrorIs(t, svc.Delete(ctx, exerciser, tag.ID), apperror.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, tag.ID))

	_, err = svc.Get(ctx, exerciser, tag.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSpecializationEntryApply(t *testing.T) {
	s := SpecializationEntry.New("Nutrition", "diet plans")
	desc := "meal planning"
	SpecializationEntry.Apply(s, nil, &desc)
	assert.Equal(t, "Nutrition", s.Name)
	assert.Equal(t, "meal planning", s.Description)
}
