package entity

import "github.com/google/uuid"

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
	ConnectionBlocked  ConnectionStatus = "blocked"
)

// Transitions only move forward; blocked is absorbing.
var connectionTransitions = map[ConnectionStatus][]ConnectionStatus{
	ConnectionPending:  {ConnectionAccepted, ConnectionRejected, ConnectionBlocked},
	ConnectionAccepted: {ConnectionBlocked},
	ConnectionRejected: {ConnectionBlocked},
	ConnectionBlocked:  nil,
}

func (s ConnectionStatus) Valid() bool {
	_, ok := connectionTransitions[s]
	return ok
}

// CanTransitionTo reports whether a connection in status s may move to next.
// Staying in the same status is always allowed.
func (s ConnectionStatus) CanTransitionTo(next ConnectionStatus) bool {
	if s == next {
		return s.Valid()
	}
	for _, allowed := range connectionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// UserConnection is a request from an exerciser to an expert, unique per ordered pair.
type UserConnection struct {
	Base
	UserID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_user_connections_pair,priority:1" json:"user_id"`
	User     User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	ExpertID uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_connections_pair,priority:2" json:"expert_id"`
	Expert   User             `gorm:"foreignKey:ExpertID;constraint:OnDelete:CASCADE" json:"expert"`
	Status   ConnectionStatus `gorm:"size:50;not null" json:"status"`
}
