package connection

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/connection/dto"
	"anoa.com/healthmanage/internal/modules/connection/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/internal/service"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

// Users resolves active accounts.
type Users interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type ConnectionService interface {
	Create(ctx context.Context, actor *authz.Actor, req dto.CreateConnectionRequest) (*entity.UserConnection, error)
	List(ctx context.Context, actor *authz.Actor, query dto.ConnectionQuery) (*commonDto.PageResult[entity.UserConnection], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.UserConnection, error)
	// Update moves the connection to a new status. Accepting and rejecting
	// belong to the expert; either party may block.
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateConnectionRequest) (*entity.UserConnection, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type connectionService struct {
	repo  repository.ConnectionRepository
	users Users
	authz *authz.Engine
	owned service.Owned[entity.UserConnection]
}

func NewConnectionService(repo repository.ConnectionRepository, users Users, engine *authz.Engine, pageSize int) ConnectionService {
	return &connectionService{
		repo:  repo,
		users: users,
		authz: engine,
		owned: service.Owned[entity.UserConnection]{
			Repo:     repo,
			Users:    users,
			Authz:    engine,
			Resource: authz.ResourceUserConnection,
			PageSize: pageSize,
		},
	}
}

func (s *connectionService) Create(ctx context.Context, actor *authz.Actor, req dto.CreateConnectionRequest) (*entity.UserConnection, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceUserConnection); err != nil {
		return nil, err
	}

	userID, err := s.owned.Owner(ctx, actor, req.User)
	if err != nil {
		return nil, err
	}
	if userID == req.Expert {
		return nil, apperror.Field("expert", "you cannot connect to yourself")
	}

	expert, err := s.users.FindByID(ctx, req.Expert)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Field("expert", "expert does not exist or is inactive")
	}
	if err != nil {
		return nil, err
	}
	if expert.Role != entity.RoleExpert {
		return nil, apperror.Field("expert", "user is not an expert")
	}

	conn := &entity.UserConnection{
		Base:     entity.NewBase(),
		UserID:   userID,
		ExpertID: expert.ID,
		Status:   entity.ConnectionPending,
	}
	if err := s.repo.Create(ctx, conn); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, fmt.Errorf("connection with this expert already exists: %w", err)
		}
		return nil, err
	}
	return conn, nil
}

func (s *connectionService) List(ctx context.Context, actor *authz.Actor, query dto.ConnectionQuery) (*commonDto.PageResult[entity.UserConnection], error) {
	q := baseRepo.Query{}
	if query.Status != "" {
		q.Where = map[string]any{"status": query.Status}
	}
	return s.owned.List(ctx, actor, query.PageQuery, q)
}

func (s *connectionService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.UserConnection, error) {
	return s.owned.Load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *connectionService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateConnectionRequest) (*entity.UserConnection, error) {
	conn, err := s.owned.Load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	next := req.Status
	if !next.Valid() {
		return nil, apperror.Field("status", "must be one of pending, accepted, rejected, blocked")
	}
	if next == conn.Status {
		return conn, nil
	}
	if !conn.Status.CanTransitionTo(next) {
		return nil, apperror.Field("status", fmt.Sprintf("cannot change status from %s to %s", conn.Status, next))
	}
	if (next == entity.ConnectionAccepted || next == entity.ConnectionRejected) &&
		!actor.IsAdmin() && actor.ID != conn.ExpertID {
		return nil, fmt.Errorf("only the expert may %s a connection: %w", verb(next), apperror.ErrForbidden)
	}

	conn.Status = next
	if err := s.repo.Save(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func (s *connectionService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	return s.owned.Delete(ctx, actor, id)
}

func verb(status entity.ConnectionStatus) string {
	if status == entity.ConnectionAccepted {
		return "accept"
	}
	return "reject"
}
