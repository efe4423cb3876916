package user

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// User is provisioned outside this service and is read-only here.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Phone        *string
	HireDate     *time.Time
	DepartmentID *int
	RoleID       *int
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	DepartmentName string
	RoleName       string
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
