package users

import (
	"context"
)

// Repository persists accounts.
//
// Create must fail with common.ErrUsernameTaken when a record with the same
// case-insensitive username exists; GetUserByName must fail with
// common.ErrUserNotFound when none does.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetUserByName(ctx context.Context, userName string) (*User, error)
	Count(ctx context.Context) (int, error)
}
