package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/modules/chat/dto"
	"anoa.com/healthmanage/internal/repository/repotest"
	"anoa.com/healthmanage/pkg/apperror"
)

type fakeUsers map[uuid.UUID]*entity.User

func (f fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f[id]; ok && u.Active {
		return u, nil
	}
	return nil, apperror.ErrNotFound
}

// fakeLimiter allows the first call of every user.
type fakeLimiter struct {
	seen map[uuid.UUID]bool
	err  error
}

func (l *fakeLimiter) Allow(_ context.Context, userID uuid.UUID, _ string, _ time.Duration) (bool, time.Duration, error) {
	if l.err != nil {
		return false, 0, l.err
	}
	if l.seen[userID] {
		return false, 400 * time.Millisecond, nil
	}
	l.seen[userID] = true
	return true, 0, nil
}

type fixture struct {
	svc      ChatService
	repo     *repotest.Memory[entity.ChatMessage, *entity.ChatMessage]
	limiter  *fakeLimiter
	alice    *authz.Actor
	bob      *authz.Actor
	carol    *authz.Actor
	inactive uuid.UUID
}

func setup(now time.Time) fixture {
	return setupWithInterval(now, time.Second)
}

func setupWithInterval(now time.Time, interval time.Duration) fixture {
	f := fixture{
		alice:    &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser},
		bob:      &authz.Actor{ID: uuid.New(), Role: entity.RoleExpert},
		carol:    &authz.Actor{ID: uuid.New(), Role: entity.RoleExerciser},
		inactive: uuid.New(),
		limiter:  &fakeLimiter{seen: map[uuid.UUID]bool{}},
	}
	users := fakeUsers{
		f.alice.ID: {Base: entity.Base{ID: f.alice.ID, Active: true}},
		f.bob.ID:   {Base: entity.Base{ID: f.bob.ID, Active: true}},
		f.carol.ID: {Base: entity.Base{ID: f.carol.ID, Active: true}},
		f.inactive: {Base: entity.Base{ID: f.inactive, Active: false}},
	}
	f.repo = repotest.NewMemory[entity.ChatMessage](authz.ResourceChatMessage)
	f.repo.Unique = func(m *entity.ChatMessage) string {
		return m.SenderID.String() + m.ReceiverID.String() + m.Timestamp.String()
	}
	f.svc = NewChatService(f.repo, users, authz.New(), f.limiter, Config{
		PageSize:     10,
		SendInterval: interval,
		Now:          func() time.Time { return now },
	}, zap.NewNop())
	return f
}

func TestSendMessage(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 123456789, time.UTC)
	f := setup(now)

	m, err := f.svc.SendMessage(context.Background(), f.alice, dto.SendMessageRequest{Receiver: f.bob.ID, Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, m.SenderID)
	assert.Equal(t, f.bob.ID, m.ReceiverID)
	assert.False(t, m.IsRead)
	assert.Equal(t, now.Truncate(time.Microsecond), m.Timestamp)
}

func TestSendMessage_ReceiverMustBeActive(t *testing.T) {
	f := setup(time.Now())

	_, err := f.svc.SendMessage(context.Background(), f.alice, dto.SendMessageRequest{Receiver: f.inactive, Message: "hi"})
	assert.ErrorIs(t, err, ErrReceiverNotFound)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.SendMessage(context.Background(), f.alice, dto.SendMessageRequest{Receiver: uuid.New(), Message: "hi"})
	assert.ErrorIs(t, err, ErrReceiverNotFound)
	assert.Empty(t, f.repo.Rows())
}

func TestSendMessage_NotToSelf(t *testing.T) {
	f := setup(time.Now())
	_, err := f.svc.SendMessage(context.Background(), f.alice, dto.SendMessageRequest{Receiver: f.alice.ID, Message: "me"})

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "receiver")
}

func TestSendMessage_Throttled(t *testing.T) {
	f := setup(time.Now())
	ctx := context.Background()

	_, err := f.svc.SendMessage(ctx, f.alice, dto.SendMessageRequest{Receiver: f.bob.ID, Message: "one"})
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, f.alice, dto.SendMessageRequest{Receiver: f.bob.ID, Message: "two"})
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
	assert.Equal(t, 429, apperror.MapErrorToStatus(err))

	_, err = f.svc.SendMessage(ctx, f.bob, dto.SendMessageRequest{Receiver: f.alice.ID, Message: "reply"})
	assert.NoError(t, err)
}

func TestSendMessage_SameInstantIsConflict(t *testing.T) {
	f := setupWithInterval(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), 0)
	ctx := context.Background()

	_, err := f.svc.SendMessage(ctx, f.alice, dto.SendMessageRequest{Receiver: f.bob.ID, Message: "first"})
	require.NoError(t, err)

	_, err = f.svc.SendMessage(ctx, f.alice, dto.SendMessageRequest{Receiver: f.bob.ID, Message: "second"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 409, apperror.MapErrorToStatus(err))
	assert.Empty(t, f.limiter.seen)

	_, err = f.svc.SendMessage(ctx, f.alice, dto.SendMessageRequest{Receiver: f.carol.ID, Message: "other thread"})
	assert.NoError(t, err)
	assert.Len(t, f.repo.Rows(), 2)
}

func TestSendMessage_ThrottleUnavailableAllows(t *testing.T) {
	f := setup(time.Now())
	f.limiter.err = errors.New("redis down")

	_, err := f.svc.SendMessage(context.Background(), f.alice, dto.SendMessageRequest{Receiver: f.bob.ID, Message: "hi"})
	assert.NoError(t, err)
}

func TestUpdate_PartyRules(t *testing.T) {
	f := setup(time.Now())
	ctx := context.Background()
	m, err := f.svc.SendMessage(ctx, f.alice, dto.SendMessageRequest{Receiver: f.bob.ID, Message: "hello"})
	require.NoError(t, err)

	edited := "hello there"
	_, err = f.svc.Update(ctx, f.bob, m.ID, dto.UpdateMessageRequest{Message: &edited})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.MarkRead(ctx, f.alice, m.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.MarkRead(ctx, f.carol, m.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	read, err := f.svc.MarkRead(ctx, f.bob, m.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	updated, err := f.svc.Update(ctx, f.alice, m.ID, dto.UpdateMessageRequest{Message: &edited})
	require.NoError(t, err)
	assert.Equal(t, edited, updated.Message)
}

func TestList_OnlyOwnConversations(t *testing.T) {
	f := setup(time.Now())
	ctx := context.Background()
	f.repo.Seed(
		&entity.ChatMessage{Base: entity.NewBase(), SenderID: f.alice.ID, ReceiverID: f.bob.ID, Message: "a->b"},
		&entity.ChatMessage{Base: entity.NewBase(), SenderID: f.bob.ID, ReceiverID: f.alice.ID, Message: "b->a"},
		&entity.ChatMessage{Base: entity.NewBase(), SenderID: f.bob.ID, ReceiverID: f.carol.ID, Message: "b->c"},
	)

	page, err := f.svc.List(ctx, f.alice, dto.ChatQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = f.svc.List(ctx, f.carol, dto.ChatQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b->c", page.Items[0].Message)
}
