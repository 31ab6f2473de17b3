// Package users is the credential store: durable registration and login of
// console accounts over a flat text file.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/volt/internal/common"
	"github.com/dmitrijs2005/volt/internal/cryptox"
	"github.com/dmitrijs2005/volt/internal/linefmt"
	"github.com/dmitrijs2005/volt/internal/logging"
)

// Service registers and authenticates users against a Repository.
type Service struct {
	repo Repository
	log  logging.Logger
}

// NewService constructs a Service bound to repo.
func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Register creates a new account.
//
// name and email are trimmed. It fails with common.ErrInvalidInput for an
// empty name or fields that would break the record format, and with
// common.ErrUsernameTaken if the name exists in any letter case; in both
// cases nothing is written. The password is stored only as a salted hash.
func (s *Service) Register(ctx context.Context, name, email string, password []byte) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, fmt.Errorf("%w: username is empty", common.ErrInvalidInput)
	}
	if linefmt.HasReserved(name) || linefmt.HasReserved(email) {
		return nil, fmt.Errorf("%w: username and email must not contain %q or line breaks", common.ErrInvalidInput, linefmt.Delimiter)
	}

	// fail fast before paying for the hash; Create checks again under lock
	if _, err := s.repo.GetUserByName(ctx, name); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	user := &User{
		UserName:     name,
		Email:        email,
		PasswordHash: cryptox.HashPassword(password),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user", name)
	return user, nil
}

// Login verifies password for the account matching name case-insensitively
// and returns the stored record, whose UserName is the canonical spelling.
//
// It fails with common.ErrUserNotFound or common.ErrInvalidCredentials and
// never writes to the store.
func (s *Service) Login(ctx context.Context, name string, password []byte) (*User, error) {
	user, err := s.repo.GetUserByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			s.log.Info(ctx, "login for unknown user", "user", name)
		}
		return nil, err
	}

	ok, err := cryptox.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		s.log.Warn(ctx, "stored password hash unreadable", "user", user.UserName, "error", err)
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		s.log.Info(ctx, "wrong password", "user", user.UserName)
		return nil, common.ErrInvalidCredentials
	}

	s.log.Info(ctx, "user logged in", "user", user.UserName)
	return user, nil
}
