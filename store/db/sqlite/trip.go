package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/posawiki/posawiki/store"
)

func (d *DB) CreateTrip(ctx context.Context, create *store.Trip) (*store.Trip, error) {
	stmt := `INSERT INTO trip (uid, trip_name, description, start_date, end_date, notes)
		VALUES (` + placeholders(6) + `)
		RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.TripName, create.Description, create.StartDate, create.EndDate, create.Notes,
	).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return create, nil
}

func (d *DB) ListTrips(ctx context.Context, find *store.FindTrip) ([]*store.Trip, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "trip.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "trip.uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, trip_name, description, start_date, end_date, notes
		FROM trip
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY trip.start_date DESC, trip.id DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Trip, 0)
	for rows.Next() {
		var trip store.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.UID,
			&trip.CreatedTs,
			&trip.TripName,
			&trip.Description,
			&trip.StartDate,
			&trip.EndDate,
			&trip.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		list = append(list, &trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}
	return list, nil
}

func (d *DB) AddTripVideo(ctx context.Context, add *store.TripVideo) error {
	stmt := `INSERT INTO trip_video (trip_id, video_id, part_number)
		VALUES (` + placeholders(3) + `)
		ON CONFLICT (trip_id, video_id) DO UPDATE SET part_number = EXCLUDED.part_number`
	if _, err := d.db.ExecContext(ctx, stmt, add.TripID, add.VideoID, add.PartNumber); err != nil {
		return fmt.Errorf("failed to add trip video: %w", err)
	}
	return nil
}

func (d *DB) ListTripVideos(ctx context.Context, tripID int32) ([]*store.TripVideo, error) {
	query := `SELECT trip_id, video_id, part_number FROM trip_video
		WHERE trip_id = ` + placeholder(1) + ` ORDER BY part_number ASC`

	rows, err := d.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip videos: %w", err)
	}
	defer rows.Close()

	list := make([]*store.TripVideo, 0)
	for rows.Next() {
		var tv store.TripVideo
		if err := rows.Scan(&tv.TripID, &tv.VideoID, &tv.PartNumber); err != nil {
			return nil, fmt.Errorf("failed to scan trip video: %w", err)
		}
		list = append(list, &tv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trip videos: %w", err)
	}
	return list, nil
}
