package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Authority model related methods.
	// CreateAuthority inserts the authority and its initial aliases in one
	// transaction; either everything is applied or nothing is.
	CreateAuthority(ctx context.Context, create *Authority, aliases []*AuthorityAlias) (*Authority, error)
	ListAuthorities(ctx context.Context, find *FindAuthority) ([]*Authority, error)
	UpdateAuthority(ctx context.Context, update *UpdateAuthority) error

	// AuthorityAlias model related methods.
	// CreateAliases inserts the whole batch in one transaction.
	CreateAliases(ctx context.Context, creates []*AuthorityAlias) ([]*AuthorityAlias, error)
	ListAliases(ctx context.Context, find *FindAuthorityAlias) ([]*AuthorityAlias, error)
	DeleteAlias(ctx context.Context, delete *DeleteAuthorityAlias) error

	// Video model related methods.
	CreateVideo(ctx context.Context, create *Video) (*Video, error)
	UpsertVideo(ctx context.Context, upsert *Video) (*Video, error)
	ListVideos(ctx context.Context, find *FindVideo) ([]*Video, error)
	UpdateVideo(ctx context.Context, update *UpdateVideo) error
	DeleteVideo(ctx context.Context, delete *DeleteVideo) error

	// Person model related methods.
	CreatePerson(ctx context.Context, create *Person) (*Person, error)
	ListPeople(ctx context.Context, find *FindPerson) ([]*Person, error)
	DeletePerson(ctx context.Context, delete *DeletePerson) error

	// Dog model related methods.
	CreateDog(ctx context.Context, create *Dog) (*Dog, error)
	ListDogs(ctx context.Context, find *FindDog) ([]*Dog, error)
	DeleteDog(ctx context.Context, delete *DeleteDog) error

	// Trip model related methods.
	CreateTrip(ctx context.Context, create *Trip) (*Trip, error)
	ListTrips(ctx context.Context, find *FindTrip) ([]*Trip, error)
	AddTripVideo(ctx context.Context, add *TripVideo) error
	ListTripVideos(ctx context.Context, tripID int32) ([]*TripVideo, error)

	// Posaism model related methods.
	CreatePosaism(ctx context.Context, create *Posaism) (*Posaism, error)
	ListPosaisms(ctx context.Context, find *FindPosaism) ([]*Posaism, error)
	DeletePosaism(ctx context.Context, delete *DeletePosaism) error
}
