package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/pkg/apperror"
)

// Query describes a read over active rows of one table.
type Query struct {
	Scope authz.Scope

	// Search is matched case-insensitively against SearchColumns.
	Search        string
	SearchColumns []string

	Where    map[string]any
	Order    string
	Preloads []string
	Joins    []string
	Offset   int
	Limit    int
	Scopes   []func(*gorm.DB) *gorm.DB
}

// AllRows is the scope of queries not restricted to an owner.
var AllRows = authz.Scope{All: true}

// Store implements the persistence operations shared by every entity.
type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

func (s *Store[T]) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// WithTx returns a store bound to tx.
func (s *Store[T]) WithTx(tx *gorm.DB) *Store[T] {
	return &Store[T]{db: tx}
}

func (s *Store[T]) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return Translate(s.db.WithContext(ctx).Transaction(fn))
}

// Create inserts item without touching its associations.
func (s *Store[T]) Create(ctx context.Context, item *T) error {
	return Translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

// FindByID loads an active row.
func (s *Store[T]) FindByID(ctx context.Context, id uuid.UUID, preloads ...string) (*T, error) {
	return s.First(ctx, Query{
		Scope:    AllRows,
		Where:    map[string]any{"id": id},
		Preloads: preloads,
	})
}

func (s *Store[T]) First(ctx context.Context, q Query) (*T, error) {
	var item T
	db := q.apply(s.db.WithContext(ctx).Model(new(T)))
	for _, p := range q.Preloads {
		db = db.Preload(p)
	}
	if q.Order != "" {
		db = db.Order(q.Order)
	}
	if err := db.First(&item).Error; err != nil {
		return nil, Translate(err)
	}
	return &item, nil
}

// List returns one window of rows and the total number of matching rows.
func (s *Store[T]) List(ctx context.Context, q Query) ([]T, int64, error) {
	var total int64
	if err := q.apply(s.db.WithContext(ctx).Model(new(T))).Count(&total).Error; err != nil {
		return nil, 0, Translate(err)
	}

	items := []T{}
	if total == 0 {
		return items, 0, nil
	}

	db := q.apply(s.db.WithContext(ctx).Model(new(T)))
	for _, p := range q.Preloads {
		db = db.Preload(p)
	}
	if q.Order != "" {
		db = db.Order(q.Order)
	}
	if q.Limit > 0 {
		db = db.Offset(q.Offset).Limit(q.Limit)
	}
	if err := db.Find(&items).Error; err != nil {
		return nil, 0, Translate(err)
	}
	return items, total, nil
}

// Save writes every column of item. Associations are left untouched.
func (s *Store[T]) Save(ctx context.Context, item *T) error {
	return Translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error)
}

// UpdateColumns writes only the given columns of the row with id.
func (s *Store[T]) UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ? AND active = ?", id, true).Updates(columns)
	if res.Error != nil {
		return Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// Deactivate marks the row inactive. Rows are never hard-deleted.
func (s *Store[T]) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ? AND active = ?", id, true).Update("active", false)
	if res.Error != nil {
		return Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// CountActive counts active rows whose column is one of values.
func (s *Store[T]) CountActive(ctx context.Context, column string, values any) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(new(T)).
		Where(clause.IN{Column: clause.Column{Table: clause.CurrentTable, Name: column}, Values: toValues(values)}).
		Where(activeOnly()).
		Count(&n).Error
	return n, Translate(err)
}

func (q Query) apply(db *gorm.DB) *gorm.DB {
	for _, j := range q.Joins {
		db = db.Joins(j)
	}
	db = db.Where(activeOnly())

	if !q.Scope.All {
		if q.Scope.OwnerID == uuid.Nil || len(q.Scope.Columns) == 0 {
			return db.Where("1 = 0")
		}
		owners := make([]clause.Expression, 0, len(q.Scope.Columns))
		for _, col := range q.Scope.Columns {
			owners = append(owners, clause.Eq{Column: current(col), Value: q.Scope.OwnerID})
		}
		db = db.Where(clause.Or(owners...))
	}

	for col, v := range q.Where {
		db = db.Where(clause.Eq{Column: current(col), Value: v})
	}

	if q.Search != "" && len(q.SearchColumns) > 0 {
		pattern := "%" + escapeLike(q.Search) + "%"
		matches := make([]clause.Expression, 0, len(q.SearchColumns))
		for _, col := range q.SearchColumns {
			matches = append(matches, clause.Expr{SQL: fmt.Sprintf("%s ILIKE ?", col), Vars: []any{pattern}})
		}
		db = db.Where(clause.Or(matches...))
	}

	for _, scope := range q.Scopes {
		db = scope(db)
	}
	return db
}

func current(col string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: col}
}

func activeOnly() clause.Eq {
	return clause.Eq{Column: current("active"), Value: true}
}

func toValues(values any) []any {
	switch v := values.(type) {
	case []uuid.UUID:
		out := make([]any, len(v))
		for i, id := range v {
			out[i] = id
		}
		return out
	case []any:
		return v
	}
	return []any{values}
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// Translate maps gorm errors to application errors.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", apperror.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: referenced record does not exist", apperror.ErrInvalidInput)
	}
	return err
}

// DateRange keeps rows whose column lies within [from, to]. Either bound may be nil.
func DateRange(column string, from, to *time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(clause.Gte{Column: current(column), Value: *from})
		}
		if to != nil {
			db = db.Where(clause.Lte{Column: current(column), Value: *to})
		}
		return db
	}
}
