package user

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmailRegistered is returned when a create would reuse an existing email.
var ErrEmailRegistered = errors.New("email already registered")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateUser registers a new user. The duplicate-email check is a lookup
// rather than a constraint violation decode, matching the rest of the suite's
// check-then-insert style.
func (s *Service) CreateUser(ctx context.Context, in Input) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailRegistered
	}

	u := &User{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, limit, skip int) ([]*User, error) {
	return s.repo.List(ctx, limit, skip)
}

// UpdateUser replaces the full record.
func (s *Service) UpdateUser(ctx context.Context, id int64, in Input) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Username = in.Username
	u.Email = in.Email
	u.Password = in.Password
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the row and returns it, matching the wire contract of
// the delete endpoints across the suite.
func (s *Service) DeleteUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return u, nil
}
