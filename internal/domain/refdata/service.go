package refdata

import (
	"context"
	"errors"
	"fmt"
)

// Service wraps one lookup table's CRUD surface. Two instances exist per
// refdata process, one per table.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in Input) (*Lookup, error) {
	existing, err := s.repo.GetByName(ctx, in.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check name: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	row := &Lookup{Name: in.Name}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("create lookup row: %w", err)
	}
	return row, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Lookup, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, skip int) ([]*Lookup, error) {
	return s.repo.List(ctx, limit, skip)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*Lookup, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Name = in.Name
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*Lookup, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return row, nil
}
