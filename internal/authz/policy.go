package authz

import "anoa.com/healthmanage/internal/entity"

type roleSet uint8

func roles(rs ...entity.Role) roleSet {
	var s roleSet
	for _, r := range rs {
		s |= 1 << r
	}
	return s
}

func (s roleSet) Has(r entity.Role) bool {
	return r.Valid() && s&(1<<r) != 0
}

var (
	anyRole   = roles(entity.RoleAdmin, entity.RoleExerciser, entity.RoleExpert)
	adminOnly = roles(entity.RoleAdmin)
)

// Rule is one role-gate entry.
//
// Public lets unauthenticated callers through a non-owned rule. Owned adds the
// ownership gate for instance actions. StrictOwner removes the admin bypass.
type Rule struct {
	Roles       roleSet
	Public      bool
	Owned       bool
	StrictOwner bool
}

func ownedCRUD() map[Action]Rule {
	owned := Rule{Roles: anyRole, Owned: true}
	return map[Action]Rule{
		ActionList:     owned,
		ActionRetrieve: owned,
		ActionCreate:   {Roles: anyRole},
		ActionUpdate:   owned,
		ActionDelete:   owned,
	}
}

func catalog() map[Action]Rule {
	return map[Action]Rule{
		ActionList:     {Roles: anyRole},
		ActionRetrieve: {Roles: anyRole},
		ActionCreate:   {Roles: adminOnly},
		ActionUpdate:   {Roles: adminOnly},
		ActionDelete:   {Roles: adminOnly},
	}
}

func roleProfile() map[Action]Rule {
	return map[Action]Rule{
		ActionList:     {Roles: anyRole},
		ActionRetrieve: {Roles: anyRole},
		ActionCreate:   {Roles: anyRole, Public: true},
		ActionUpdate:   {Roles: anyRole, Owned: true},
		ActionDelete:   {Roles: anyRole, Owned: true},
	}
}

// DefaultPolicy is the role-gate table. A missing (resource, action) pair denies.
func DefaultPolicy() map[Resource]map[Action]Rule {
	self := Rule{Roles: anyRole, Owned: true}

	diary := ownedCRUD()
	diary[ActionUpdate] = Rule{Roles: anyRole, Owned: true, StrictOwner: true}
	diary[ActionDelete] = Rule{Roles: anyRole, Owned: true, StrictOwner: true}

	expert := catalog()
	expert[ActionCreate] = Rule{Roles: roles(entity.RoleAdmin, entity.RoleExpert)}
	expert[ActionUpdate] = Rule{Roles: anyRole, Owned: true}
	expert[ActionDelete] = Rule{Roles: anyRole, Owned: true}

	connection := ownedCRUD()
	connection[ActionCreate] = Rule{Roles: roles(entity.RoleAdmin, entity.RoleExerciser)}

	return map[Resource]map[Action]Rule{
		ResourceUser: {
			ActionList:           {Roles: adminOnly},
			ActionCreate:         {Roles: anyRole, Public: true},
			ActionRetrieve:       self,
			ActionUpdate:         self,
			ActionDelete:         self,
			ActionChangePassword: self,
			ActionActivate:       {Roles: adminOnly},
		},
		ResourceExerciser:            roleProfile(),
		ResourceCoach:                roleProfile(),
		ResourceActivity:             catalog(),
		ResourceTag:                  catalog(),
		ResourceExpertSpecialization: catalog(),
		ResourceWorkoutPlan:          ownedCRUD(),
		ResourceMealPlan:             ownedCRUD(),
		ResourceHealthRecord:         ownedCRUD(),
		ResourceUserGoal:             ownedCRUD(),
		ResourceHealthDiary:          diary,
		ResourceChatMessage:          ownedCRUD(),
		ResourceExpertProfile:        expert,
		ResourceUserConnection:       connection,
	}
}
