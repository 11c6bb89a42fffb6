// Package authz decides whether an actor may perform an action on a resource.
//
// Decisions are pure: the caller loads the target (for instance actions) and
// the engine only inspects the role-gate table and the owner table.
package authz

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/pkg/apperror"
)

type Action string

const (
	ActionList           Action = "list"
	ActionRetrieve       Action = "retrieve"
	ActionCreate         Action = "create"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionChangePassword Action = "change_password"
	ActionActivate       Action = "activate"
)

type Resource string

const (
	ResourceUser                 Resource = "user"
	ResourceExerciser            Resource = "exerciser"
	ResourceCoach                Resource = "coach"
	ResourceActivity             Resource = "activity"
	ResourceWorkoutPlan          Resource = "workout_plan"
	ResourceMealPlan             Resource = "meal_plan"
	ResourceHealthRecord         Resource = "health_record"
	ResourceHealthDiary          Resource = "health_diary"
	ResourceChatMessage          Resource = "chat_message"
	ResourceUserGoal             Resource = "user_goal"
	ResourceExpertSpecialization Resource = "expert_specialization"
	ResourceExpertProfile        Resource = "expert_profile"
	ResourceUserConnection       Resource = "user_connection"
	ResourceTag                  Resource = "tag"
)

// Actor is the authenticated principal of a request.
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == entity.RoleAdmin
}

// Outcome labels reported to an Observer.
const (
	OutcomeAllow           = "allow"
	OutcomeForbidden       = "forbidden"
	OutcomeUnauthenticated = "unauthenticated"
)

// Observer receives every decision. Used for metrics.
type Observer func(resource Resource, action Action, outcome string)

type Engine struct {
	rules    map[Resource]map[Action]Rule
	owners   map[Resource]Owner
	observer Observer
}

type Option func(*Engine)

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// New builds an engine over the default policy and owner tables.
func New(opts ...Option) *Engine {
	e := &Engine{rules: DefaultPolicy(), owners: DefaultOwners()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Authorize runs the role gate and, for owned rules, the ownership gate
// against target. target must be a pointer to the entity named by resource.
func (e *Engine) Authorize(actor *Actor, action Action, resource Resource, target any) error {
	err := e.decide(actor, action, resource, target, true)
	e.observe(resource, action, err)
	return err
}

// Allow runs only the role gate. Used for collection actions, where the
// ownership gate is replaced by ListScope.
func (e *Engine) Allow(actor *Actor, action Action, resource Resource) error {
	err := e.decide(actor, action, resource, nil, false)
	e.observe(resource, action, err)
	return err
}

func (e *Engine) decide(actor *Actor, action Action, resource Resource, target any, instance bool) error {
	rule, ok := e.rules[resource][action]
	if !ok {
		return fmt.Errorf("%s %s: no rule: %w", action, resource, apperror.ErrForbidden)
	}

	if actor == nil {
		if rule.Public && !rule.Owned {
			return nil
		}
		return apperror.ErrUnauthorized
	}

	if !rule.Roles.Has(actor.Role) {
		return fmt.Errorf("%s %s: role %s: %w", action, resource, actor.Role, apperror.ErrForbidden)
	}

	if !rule.Owned || !instance {
		return nil
	}

	if actor.IsAdmin() && !rule.StrictOwner {
		return nil
	}

	if target == nil {
		return fmt.Errorf("%s %s: no target: %w", action, resource, apperror.ErrForbidden)
	}

	if e.IsOwner(actor, resource, target) {
		return nil
	}
	return fmt.Errorf("%s %s: not an owner: %w", action, resource, apperror.ErrForbidden)
}

// IsOwner reports whether actor is one of the owner parties of target.
func (e *Engine) IsOwner(actor *Actor, resource Resource, target any) bool {
	if actor == nil {
		return false
	}
	owner, ok := e.owners[resource]
	if !ok {
		return false
	}
	ids, ok := owner.IDs(target)
	if !ok {
		return false
	}
	for _, id := range ids {
		if id != uuid.Nil && id == actor.ID {
			return true
		}
	}
	return false
}

// Scope restricts a listing. All is set for admins and for resources
// without owners; otherwise rows must match OwnerID on one of Columns.
type Scope struct {
	All     bool
	OwnerID uuid.UUID
	Columns []string
}

// ListScope returns the rows a list action may show to actor. Call Allow first.
func (e *Engine) ListScope(actor *Actor, resource Resource) Scope {
	rule := e.rules[resource][ActionList]
	if !rule.Owned || actor.IsAdmin() && !rule.StrictOwner {
		return Scope{All: true}
	}
	if actor == nil {
		return Scope{}
	}
	return Scope{OwnerID: actor.ID, Columns: e.owners[resource].Columns}
}

func (e *Engine) observe(resource Resource, action Action, err error) {
	if e.observer == nil {
		return
	}
	switch {
	case err == nil:
		e.observer(resource, action, OutcomeAllow)
	case errors.Is(err, apperror.ErrUnauthorized):
		e.observer(resource, action, OutcomeUnauthenticated)
	default:
		e.observer(resource, action, OutcomeForbidden)
	}
}
