package store

import (
	"context"
)

// Trip groups the videos of one multi-part outing.
type Trip struct {
	ID          int32
	UID         string
	CreatedTs   int64
	TripName    string
	Description string
	StartDate   string
	EndDate     string
	Notes       string
}

// FindTrip is the find condition for trip.
type FindTrip struct {
	ID  *int32
	UID *string
}

// TripVideo links a video into a trip as one numbered part.
type TripVideo struct {
	TripID     int32
	VideoID    int32
	PartNumber int32
}

func (s *Store) CreateTrip(ctx context.Context, create *Trip) (*Trip, error) {
	return s.driver.CreateTrip(ctx, create)
}

func (s *Store) ListTrips(ctx context.Context, find *FindTrip) ([]*Trip, error) {
	return s.driver.ListTrips(ctx, find)
}

func (s *Store) AddTripVideo(ctx context.Context, add *TripVideo) error {
	return s.driver.AddTripVideo(ctx, add)
}

func (s *Store) ListTripVideos(ctx context.Context, tripID int32) ([]*TripVideo, error) {
	return s.driver.ListTripVideos(ctx, tripID)
}
