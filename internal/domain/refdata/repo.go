package refdata

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("lookup row not found")
	ErrDuplicateName = errors.New("name already exists")
)

type Repository interface {
	Create(ctx context.Context, row *Lookup) error
	GetByID(ctx context.Context, id int64) (*Lookup, error)
	GetByName(ctx context.Context, name string) (*Lookup, error)
	List(ctx context.Context, limit, skip int) ([]*Lookup, error)
	Update(ctx context.Context, row *Lookup) error
	Delete(ctx context.Context, id int64) error
}
