package store

import (
	"context"
)

// Posaism is a recurring in-universe catchphrase or running gag,
// tracked as a reference table separate from the tag authority system.
type Posaism struct {
	ID              int32
	UID             string
	CreatedTs       int64
	Name            string
	Description     string
	ExampleVideoUID string
}

// FindPosaism is the find condition for posaism.
type FindPosaism struct {
	ID  *int32
	UID *string
}

// DeletePosaism is the delete request for posaism.
type DeletePosaism struct {
	ID int32
}

func (s *Store) CreatePosaism(ctx context.Context, create *Posaism) (*Posaism, error) {
	return s.driver.CreatePosaism(ctx, create)
}

func (s *Store) ListPosaisms(ctx context.Context, find *FindPosaism) ([]*Posaism, error) {
	return s.driver.ListPosaisms(ctx, find)
}

func (s *Store) DeletePosaism(ctx context.Context, delete *DeletePosaism) error {
	return s.driver.DeletePosaism(ctx, delete)
}
