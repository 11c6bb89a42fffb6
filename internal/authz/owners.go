package authz

import (
	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
)

// Owner names the columns holding owner ids of a resource and extracts
// their values from a loaded target.
type Owner struct {
	Columns []string
	IDs     func(target any) ([]uuid.UUID, bool)
}

func ownedBy[T any](columns []string, ids func(*T) []uuid.UUID) Owner {
	return Owner{
		Columns: columns,
		IDs: func(target any) ([]uuid.UUID, bool) {
			t, ok := target.(*T)
			if !ok || t == nil {
				return nil, false
			}
			return ids(t), true
		},
	}
}

// DefaultOwners is the explicit owner table. Resources absent here have no owner.
func DefaultOwners() map[Resource]Owner {
	user := []string{"user_id"}
	return map[Resource]Owner{
		ResourceUser: ownedBy([]string{"id"}, func(u *entity.User) []uuid.UUID {
			return []uuid.UUID{u.ID}
		}),
		ResourceExerciser: ownedBy(user, func(p *entity.Exerciser) []uuid.UUID {
			return []uuid.UUID{p.UserID}
		}),
		ResourceCoach: ownedBy(user, func(p *entity.Coach) []uuid.UUID {
			return []uuid.UUID{p.UserID}
		}),
		ResourceWorkoutPlan: ownedBy(user, func(p *entity.WorkoutPlan) []uuid.UUID {
			return []uuid.UUID{p.UserID}
		}),
		ResourceMealPlan: ownedBy(user, func(p *entity.MealPlan) []uuid.UUID {
			return []uuid.UUID{p.UserID}
		}),
		ResourceHealthRecord: ownedBy(user, func(r *entity.HealthRecord) []uuid.UUID {
			return []uuid.UUID{r.UserID}
		}),
		ResourceHealthDiary: ownedBy(user, func(d *entity.HealthDiary) []uuid.UUID {
			return []uuid.UUID{d.UserID}
		}),
		ResourceUserGoal: ownedBy(user, func(g *entity.UserGoal) []uuid.UUID {
			return []uuid.UUID{g.UserID}
		}),
		ResourceExpertProfile: ownedBy(user, func(p *entity.ExpertProfile) []uuid.UUID {
			return []uuid.UUID{p.UserID}
		}),
		ResourceChatMessage: ownedBy([]string{"sender_id", "receiver_id"}, func(m *entity.ChatMessage) []uuid.UUID {
			return []uuid.UUID{m.SenderID, m.ReceiverID}
		}),
		ResourceUserConnection: ownedBy([]string{"user_id", "expert_id"}, func(c *entity.UserConnection) []uuid.UUID {
			return []uuid.UUID{c.UserID, c.ExpertID}
		}),
	}
}
