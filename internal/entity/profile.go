package entity

import "github.com/google/uuid"

// RoleProfile links one account to its exerciser or coach specialization.
// Deactivating the profile deactivates the account with it.
type RoleProfile struct {
	Base
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
}

type Exerciser struct {
	RoleProfile
}

func (Exerciser) TableName() string { return "exercisers" }

func (e *Exerciser) Profile() *RoleProfile { return &e.RoleProfile }

type Coach struct {
	RoleProfile
}

func (Coach) TableName() string { return "coaches" }

func (c *Coach) Profile() *RoleProfile { return &c.RoleProfile }
