package chat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/chat/dto"
	"anoa.com/healthmanage/internal/modules/chat/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/internal/service"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/ratelimit"
	"anoa.com/healthmanage/pkg/sanitize"
)

// ErrReceiverNotFound means the receiver does not exist or is inactive.
var ErrReceiverNotFound = fmt.Errorf("receiver not found: %w", apperror.ErrNotFound)

const sendAction = "send_message"

// Users resolves active accounts.
type Users interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type ChatService interface {
	// SendMessage sends from the actor to req.Receiver.
	SendMessage(ctx context.Context, actor *authz.Actor, req dto.SendMessageRequest) (*entity.ChatMessage, error)
	List(ctx context.Context, actor *authz.Actor, query dto.ChatQuery) (*commonDto.PageResult[entity.ChatMessage], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.ChatMessage, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateMessageRequest) (*entity.ChatMessage, error)
	MarkRead(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.ChatMessage, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type Config struct {
	PageSize int
	// SendInterval is the minimum time between two sends of one user. Zero disables it.
	SendInterval time.Duration
	Now          func() time.Time
}

type chatService struct {
	repo    repository.ChatMessageRepository
	users   Users
	authz   *authz.Engine
	limiter ratelimit.Limiter
	owned   service.Owned[entity.ChatMessage]
	cfg     Config
	log     *zap.Logger
}

func NewChatService(repo repository.ChatMessageRepository, users Users, engine *authz.Engine, limiter ratelimit.Limiter, cfg Config, log *zap.Logger) ChatService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if limiter == nil {
		limiter = ratelimit.Noop{}
	}
	return &chatService{
		repo:    repo,
		users:   users,
		authz:   engine,
		limiter: limiter,
		owned: service.Owned[entity.ChatMessage]{
			Repo:     repo,
			Authz:    engine,
			Resource: authz.ResourceChatMessage,
			PageSize: cfg.PageSize,
		},
		cfg: cfg,
		log: log,
	}
}

func (s *chatService) SendMessage(ctx context.Context, actor *authz.Actor, req dto.SendMessageRequest) (*entity.ChatMessage, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceChatMessage); err != nil {
		return nil, err
	}

	body := sanitize.RichText(req.Message)
	if body == "" {
		return nil, apperror.Field("message", "this field may not be blank")
	}
	if req.Receiver == actor.ID {
		return nil, apperror.Field("receiver", "you cannot send a message to yourself")
	}

	if _, err := s.users.FindByID(ctx, req.Receiver); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	if err := s.throttle(ctx, actor.ID); err != nil {
		return nil, err
	}

	m := &entity.ChatMessage{
		Base:       entity.NewBase(),
		SenderID:   actor.ID,
		ReceiverID: req.Receiver,
		Message:    body,
		Timestamp:  s.cfg.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// throttle fails open when the limiter backend is unavailable.
func (s *chatService) throttle(ctx context.Context, userID uuid.UUID) error {
	if s.cfg.SendInterval <= 0 {
		return nil
	}
	ok, wait, err := s.limiter.Allow(ctx, userID, sendAction, s.cfg.SendInterval)
	if err != nil {
		s.log.Warn("message throttle unavailable", zap.String("user_id", userID.String()), zap.Error(err))
		return nil
	}
	if ok {
		return nil
	}

	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return apperror.New(http.StatusTooManyRequests,
		fmt.Sprintf("you are sending messages too quickly, try again in %d seconds", secs),
		apperror.ErrRateLimitExceeded)
}

func (s *chatService) List(ctx context.Context, actor *authz.Actor, query dto.ChatQuery) (*commonDto.PageResult[entity.ChatMessage], error) {
	q := baseRepo.Query{
		Search:        strings.TrimSpace(query.Search),
		SearchColumns: []string{"message"},
		Order:         `"timestamp" ASC`,
	}
	if with := query.WithID(); with != nil {
		q.Scopes = append(q.Scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("sender_id = ? OR receiver_id = ?", *with, *with)
		})
	}
	return s.owned.List(ctx, actor, query.PageQuery, q)
}

func (s *chatService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.ChatMessage, error) {
	return s.owned.Load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *chatService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateMessageRequest) (*entity.ChatMessage, error) {
	m, err := s.owned.Load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if req.Message != nil {
		if !actor.IsAdmin() && actor.ID != m.SenderID {
			return nil, fmt.Errorf("only the sender may edit a message: %w", apperror.ErrForbidden)
		}
		body := sanitize.RichText(*req.Message)
		if body == "" {
			return nil, apperror.Field("message", "this field may not be blank")
		}
		m.Message = body
	}
	if req.IsRead != nil {
		if !actor.IsAdmin() && actor.ID != m.ReceiverID {
			return nil, fmt.Errorf("only the receiver may change the read state: %w", apperror.ErrForbidden)
		}
		m.IsRead = *req.IsRead
	}

	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *chatService) MarkRead(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.ChatMessage, error) {
	read := true
	return s.Update(ctx, actor, id, dto.UpdateMessageRequest{IsRead: &read})
}

func (s *chatService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	return s.owned.Delete(ctx, actor, id)
}
