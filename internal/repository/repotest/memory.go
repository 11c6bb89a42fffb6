// Package repotest provides an in-memory repository for service tests.
package repotest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/pkg/apperror"
)

type Entity[T any] interface {
	*T
	Meta() *entity.Base
}

// Memory keeps rows in insertion order. Owner scopes are evaluated with the
// authz owner table of Resource.
type Memory[T any, PT Entity[T]] struct {
	Resource authz.Resource
	// Unique returns a key that must not repeat among stored rows, deactivated
	// ones included, like the table's unique index. Optional.
	Unique func(*T) string
	// Match filters rows for First and List beyond the owner scope. Optional.
	Match func(*T, repository.Query) bool
	// Less orders rows for First and List. Optional.
	Less func(a, b *T) bool

	mu    sync.Mutex
	rows  []*T
	owner authz.Owner
}

func NewMemory[T any, PT Entity[T]](resource authz.Resource) *Memory[T, PT] {
	return &Memory[T, PT]{Resource: resource, owner: authz.DefaultOwners()[resource]}
}

// Rows returns every stored row, including inactive ones.
func (m *Memory[T, PT]) Rows() []*T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*T(nil), m.rows...)
}

// Seed stores rows as they are.
func (m *Memory[T, PT]) Seed(items ...*T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		if PT(item).Meta().ID == uuid.Nil {
			PT(item).Meta().ID = uuid.New()
		}
		m.rows = append(m.rows, item)
	}
}

func (m *Memory[T, PT]) Create(_ context.Context, item *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Unique != nil {
		key := m.Unique(item)
		for _, row := range m.rows {
			if m.Unique(row) == key {
				return apperror.ErrConflict
			}
		}
	}

	meta := PT(item).Meta()
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	cp := *item
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *Memory[T, PT]) FindByID(_ context.Context, id uuid.UUID, _ ...string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if meta := PT(row).Meta(); meta.ID == id && meta.Active {
			cp := *row
			return &cp, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *Memory[T, PT]) First(ctx context.Context, q repository.Query) (*T, error) {
	items := m.filter(q)
	if len(items) == 0 {
		return nil, apperror.ErrNotFound
	}
	return &items[0], nil
}

func (m *Memory[T, PT]) List(_ context.Context, q repository.Query) ([]T, int64, error) {
	items := m.filter(q)
	total := int64(len(items))

	if q.Offset > len(items) {
		return []T{}, total, nil
	}
	items = items[q.Offset:]
	if q.Limit > 0 && q.Limit < len(items) {
		items = items[:q.Limit]
	}
	return items, total, nil
}

func (m *Memory[T, PT]) Save(_ context.Context, item *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := PT(item).Meta().ID
	at := -1
	for i, row := range m.rows {
		meta := PT(row).Meta()
		if meta.ID == id {
			at = i
			continue
		}
		if m.Unique != nil && m.Unique(row) == m.Unique(item) {
			return apperror.ErrConflict
		}
	}
	if at < 0 {
		return apperror.ErrNotFound
	}
	cp := *item
	m.rows[at] = &cp
	return nil
}

func (m *Memory[T, PT]) Deactivate(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if meta := PT(row).Meta(); meta.ID == id && meta.Active {
			meta.Active = false
			return nil
		}
	}
	return apperror.ErrNotFound
}

func (m *Memory[T, PT]) filter(q repository.Query) []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []T{}
	for _, row := range m.rows {
		if !PT(row).Meta().Active || !m.inScope(row, q.Scope) {
			continue
		}
		if m.Match != nil && !m.Match(row, q) {
			continue
		}
		out = append(out, *row)
	}
	if m.Less != nil {
		sort.SliceStable(out, func(i, j int) bool { return m.Less(&out[i], &out[j]) })
	}
	return out
}

func (m *Memory[T, PT]) inScope(row *T, scope authz.Scope) bool {
	if scope.All {
		return true
	}
	if scope.OwnerID == uuid.Nil || m.owner.IDs == nil {
		return false
	}
	ids, ok := m.owner.IDs(row)
	if !ok {
		return false
	}
	for _, id := range ids {
		if id == scope.OwnerID {
			return true
		}
	}
	return false
}

var _ repository.Repository[entity.Tag] = (*Memory[entity.Tag, *entity.Tag])(nil)
