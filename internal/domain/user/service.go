package user

import "context"

type UserService interface {
	ListUsers(ctx context.Context, req ListUsersRequest) (ListUsersResponse, error)
}
