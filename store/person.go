package store

import (
	"context"
)

// Person is a recurring human companion in the channel archive.
type Person struct {
	ID            int32
	UID           string
	CreatedTs     int64
	CanonicalName string
	YoutubeHandle string
	YoutubeURL    string
	Aliases       []string
	Bio           string
	Notes         string
}

// FindPerson is the find condition for person.
type FindPerson struct {
	ID  *int32
	UID *string
}

// DeletePerson is the delete request for person.
type DeletePerson struct {
	ID int32
}

func (s *Store) CreatePerson(ctx context.Context, create *Person) (*Person, error) {
	return s.driver.CreatePerson(ctx, create)
}

func (s *Store) ListPeople(ctx context.Context, find *FindPerson) ([]*Person, error) {
	return s.driver.ListPeople(ctx, find)
}

func (s *Store) DeletePerson(ctx context.Context, delete *DeletePerson) error {
	return s.driver.DeletePerson(ctx, delete)
}
