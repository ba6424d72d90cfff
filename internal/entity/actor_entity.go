package entity

import "github.com/google/uuid"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	Id   uuid.UUID
	Role UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == UserRoleAdmin
}

// CanModify reports whether the actor may change a resource owned by ownerId.
func (a Actor) CanModify(ownerId uuid.UUID) bool {
	return a.IsAdmin() || a.Id == ownerId
}
