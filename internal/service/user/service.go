package user

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository}
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, req user.ListUsersRequest) (user.ListUsersResponse, error) {
	users, total, err := s.UserRepository.List(ctx, req)
	if err != nil {
		return user.ListUsersResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	resp := user.ListUsersResponse{
		Users:      make([]user.UserResponse, 0, len(users)),
		TotalCount: total,
		Page:       req.Page,
		Limit:      req.Limit,
	}
	if req.Limit > 0 {
		resp.TotalPages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}
	for _, u := range users {
		resp.Users = append(resp.Users, user.NewUserResponse(u))
	}
	return resp, nil
}
