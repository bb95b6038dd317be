package store

import (
	"context"
)

// Dog is a canine cast member of the channel.
type Dog struct {
	ID             int32
	UID            string
	CreatedTs      int64
	Name           string
	BirthDate      string
	BreedPrimary   string
	BreedSecondary string
	Color          string
	Description    string
	Notes          string
}

// FindDog is the find condition for dog.
type FindDog struct {
	ID  *int32
	UID *string
}

// DeleteDog is the delete request for dog.
type DeleteDog struct {
	ID int32
}

func (s *Store) CreateDog(ctx context.Context, create *Dog) (*Dog, error) {
	return s.driver.CreateDog(ctx, create)
}

func (s *Store) ListDogs(ctx context.Context, find *FindDog) ([]*Dog, error) {
	return s.driver.ListDogs(ctx, find)
}

func (s *Store) DeleteDog(ctx context.Context, delete *DeleteDog) error {
	return s.driver.DeleteDog(ctx, delete)
}
