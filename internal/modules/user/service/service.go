package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/user/dto"
	"anoa.com/healthmanage/internal/modules/user/repository"
	baseRepo "anoa.com/healthmanage/internal/repository"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/storage"
)

type UserService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Register(ctx context.Context, actor *authz.Actor, req dto.RegisterRequest) (*entity.User, error)
	// BuildAccount validates and hashes a registration without persisting it,
	// so callers can store the account together with a profile.
	BuildAccount(ctx context.Context, req dto.RegisterRequest, role entity.Role, active bool) (*entity.User, error)
	Current(ctx context.Context, actor *authz.Actor) (*entity.User, error)
	List(ctx context.Context, actor *authz.Actor, query commonDto.PageQuery) (*commonDto.PageResult[entity.User], error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateUserRequest) (*entity.User, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
	ChangePassword(ctx context.Context, actor *authz.Actor, req dto.ChangePasswordRequest) error
	Activate(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
	UploadAvatar(ctx context.Context, actor *authz.Actor, id uuid.UUID, file commonDto.UploadFile) (*entity.User, error)
}

type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	PageSize  int
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

type userService struct {
	repo         repository.UserRepository
	authz        *authz.Engine
	imageStorage storage.ImageStorage
	cfg          Config
	log          *zap.Logger
	now          func() time.Time
}

func NewUserService(repo repository.UserRepository, engine *authz.Engine, imageStorage storage.ImageStorage, cfg Config, log *zap.Logger) UserService {
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:         repo,
		authz:        engine,
		imageStorage: imageStorage,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

func (s *userService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	invalid := apperror.Field("non_field_errors", "unable to log in with provided credentials")

	user, err := s.repo.FindByLogin(ctx, input.Login)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, invalid
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	resp := dto.ToUserResponse(*user)
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        &resp,
	}, nil
}

func (s *userService) generateToken(user *entity.User) (string, int64, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt.Unix(), nil
}

func (s *userService) Register(ctx context.Context, actor *authz.Actor, req dto.RegisterRequest) (*entity.User, error) {
	if err := s.authz.Allow(actor, authz.ActionCreate, authz.ResourceUser); err != nil {
		return nil, err
	}

	role := entity.RoleExerciser
	if req.Role != nil {
		if !actor.IsAdmin() && *req.Role != entity.RoleExerciser {
			return nil, fmt.Errorf("only admins may assign role %s: %w", *req.Role, apperror.ErrForbidden)
		}
		role = *req.Role
	}

	user, err := s.BuildAccount(ctx, req, role, true)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) BuildAccount(ctx context.Context, req dto.RegisterRequest, role entity.Role, active bool) (*entity.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	verr := &apperror.ValidationError{}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		verr.Add("confirm_password", "passwords do not match")
	}
	if taken, err := s.repo.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		verr.Add("username", "a user with that username already exists")
	}
	if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		verr.Add("email", "a user with that email already exists")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.HashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &entity.User{
		Base:         entity.Base{Active: active},
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Birthday:     req.Birthday.TimePtr(),
		Role:         role,
	}, nil
}

func (s *userService) Current(ctx context.Context, actor *authz.Actor) (*entity.User, error) {
	if actor == nil {
		return nil, apperror.ErrUnauthorized
	}
	user, err := s.repo.FindByID(ctx, actor.ID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ErrUnauthorized
	}
	return user, err
}

func (s *userService) List(ctx context.Context, actor *authz.Actor, query commonDto.PageQuery) (*commonDto.PageResult[entity.User], error) {
	if err := s.authz.Allow(actor, authz.ActionList, authz.ResourceUser); err != nil {
		return nil, err
	}

	page, offset, limit := query.Window(s.cfg.PageSize)
	users, total, err := s.repo.List(ctx, baseRepo.Query{
		Scope:         s.authz.ListScope(actor, authz.ResourceUser),
		Search:        query.Search,
		SearchColumns: []string{"username", "email", "first_name", "last_name"},
		Order:         "created_at ASC",
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}
	return commonDto.NewPage(users, total, page, limit), nil
}

// load fetches the target user and authorizes action on it.
func (s *userService) load(ctx context.Context, actor *authz.Actor, action authz.Action, id uuid.UUID) (*entity.User, error) {
	if err := s.authz.Allow(actor, action, authz.ResourceUser); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(actor, action, authz.ResourceUser, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*entity.User, error) {
	return s.load(ctx, actor, authz.ActionRetrieve, id)
}

func (s *userService) Update(ctx context.Context, actor *authz.Actor, id uuid.UUID, req dto.UpdateUserRequest) (*entity.User, error) {
	user, err := s.load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if (req.Role != nil || req.Active != nil) && !actor.IsAdmin() {
		return nil, fmt.Errorf("only admins may change role or active: %w", apperror.ErrForbidden)
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Birthday != nil {
		user.Birthday = req.Birthday.TimePtr()
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, authz.ActionDelete, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *userService) ChangePassword(ctx context.Context, actor *authz.Actor, req dto.ChangePasswordRequest) error {
	if actor == nil {
		return apperror.ErrUnauthorized
	}
	user, err := s.load(ctx, actor, authz.ActionChangePassword, actor.ID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return apperror.ErrInvalidCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cfg.HashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, user.ID, string(hash))
}

func (s *userService) Activate(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	if err := s.authz.Allow(actor, authz.ActionActivate, authz.ResourceUser); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, id, true)
}

func (s *userService) UploadAvatar(ctx context.Context, actor *authz.Actor, id uuid.UUID, file commonDto.UploadFile) (*entity.User, error) {
	user, err := s.load(ctx, actor, authz.ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, file.Reader, "avatars", file.FileName)
	if err != nil {
		return nil, err
	}

	previous := user.AvatarURL
	if err := s.repo.UpdateColumns(ctx, user.ID, map[string]any{"avatar_url": url}); err != nil {
		return nil, err
	}
	user.AvatarURL = &url

	if previous != nil && *previous != "" {
		if err := s.imageStorage.DeleteImage(ctx, *previous); err != nil {
			s.log.Warn("failed to delete previous avatar", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}
	return user, nil
}
