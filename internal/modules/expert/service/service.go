package expert

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/expert/dto"
	"anoa.com/healthmanage/internal/modules/expert/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/internal/service"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

// Users resolves active accounts.
type Users interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type ExpertProfileService interface {
	Create(ctx context.Context, actor *authz.Actor, req dto.CreateExpertProfileRequest) (*entity.ExpertProfile, error)
	List(ctx context.Context, actor *authz.Actor, query dto.ExpertQuery) (*commonDto.PageResult[entity.ExpertProfile], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.ExpertProfile, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateExpertProfileRequest) (*entity.ExpertProfile, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type expertProfileService struct {
	repo  repository.ExpertProfileRepository
	users Users
	authz *authz.Engine
	owned service.Owned[entity.ExpertProfile]
}

func NewExpertProfileService(repo repository.ExpertProfileRepository, users Users, engine *authz.Engine, pageSize int) ExpertProfileService {
	return &expertProfileService{
		repo:  repo,
		users: users,
		authz: engine,
		owned: service.Owned[entity.ExpertProfile]{
			Repo:     repo,
			Authz:    engine,
			Resource: authz.ResourceExpertProfile,
			PageSize: pageSize,
			Preloads: []string{"User", "Specializations"},
		},
	}
}

func (s *expertProfileService) Create(ctx context.Context, actor *authz.Actor, req dto.CreateExpertProfileRequest) (*entity.ExpertProfile, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceExpertProfile); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, service.OwnerFor(actor, req.User))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Field("user", "user does not exist or is inactive")
	}
	if err != nil {
		return nil, err
	}
	if user.Role != entity.RoleExpert {
		return nil, apperror.Field("user", "only users with the expert role can have an expert profile")
	}

	specs, err := s.specializations(ctx, req.SpecializationIDs)
	if err != nil {
		return nil, err
	}

	p := &entity.ExpertProfile{
		Base:            entity.NewBase(),
		UserID:          user.ID,
		User:            *user,
		Specializations: specs,
		Bio:             strings.TrimSpace(req.Bio),
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
	}
	if err := s.repo.CreateProfile(ctx, p); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, fmt.Errorf("user already has an expert profile: %w", err)
		}
		return nil, err
	}
	return p, nil
}

func (s *expertProfileService) List(ctx context.Context, actor *authz.Actor, query dto.ExpertQuery) (*commonDto.PageResult[entity.ExpertProfile], error) {
	q := baseRepo.Query{
		Search:        strings.TrimSpace(query.Search),
		SearchColumns: []string{`"User"."first_name"`, `"User"."last_name"`, "expert_profiles.bio"},
		Joins:         []string{"User"},
		Preloads:      []string{"Specializations"},
		Order:         "expert_profiles.created_at DESC",
	}
	if query.Specialization != "" {
		spec := query.Specialization
		q.Scopes = append(q.Scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("expert_profiles.id IN (?)", db.Session(&gorm.Session{NewDB: true}).
				Table("expert_profile_specializations").
				Select("expert_profile_id").
				Where("expert_specialization_id = ?", spec))
		})
	}
	return s.owned.List(ctx, actor, query.PageQuery, q)
}

func (s *expertProfileService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.ExpertProfile, error) {
	return s.owned.Load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *expertProfileService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateExpertProfileRequest) (*entity.ExpertProfile, error) {
	p, err := s.owned.Load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		p.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.ExperienceYears != nil {
		p.ExperienceYears = req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		p.ConsultationFee = req.ConsultationFee
	}

	replace := req.SpecializationIDs != nil
	if replace {
		if p.Specializations, err = s.specializations(ctx, *req.SpecializationIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.SaveProfile(ctx, p, replace); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *expertProfileService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	return s.owned.Delete(ctx, actor, id)
}

func (s *expertProfileService) specializations(ctx context.Context, ids []uuid.UUID) ([]entity.ExpertSpecialization, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	found, err := s.repo.ActiveSpecializations(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, apperror.Field("specialization_ids", "every specialization must exist and be active")
	}
	return found, nil
}
