package user

import (
	"context"
)

type UserRepository interface {
	// GetByEmail returns the user with department and role names joined.
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, query ListUsersRequest) ([]User, int64, error)
}
