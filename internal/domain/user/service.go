package user

import "context"

// UserService runs user operations on behalf of the principal in ctx.
type UserService interface {
	Me(ctx context.Context) (UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context, filter UserFilter) (ListUserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}
