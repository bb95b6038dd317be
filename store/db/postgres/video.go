package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/posawiki/posawiki/store"
)

func (d *DB) CreateVideo(ctx context.Context, create *store.Video) (*store.Video, error) {
	youtubeTags, err := marshalStringList(create.YoutubeTags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal youtube tags: %w", err)
	}
	validatedTags, err := marshalStringList(create.ValidatedTags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal validated tags: %w", err)
	}
	unvalidatedTags, err := marshalStringList(create.UnvalidatedTags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal unvalidated tags: %w", err)
	}

	stmt := `INSERT INTO video (
			uid, youtube_id, title, description, upload_date, duration,
			view_count, thumbnail_url, number_of_nights, season,
			weather_conditions, series_notes,
			youtube_tags, validated_tags, unvalidated_tags
		)
		VALUES (` + placeholders(15) + `)
		RETURNING id, created_ts, updated_ts, row_status`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID, create.YoutubeID, create.Title, create.Description, create.UploadDate, create.Duration,
		create.ViewCount, create.ThumbnailURL, create.NumberOfNights, create.Season,
		create.WeatherConditions, create.SeriesNotes,
		youtubeTags, validatedTags, unvalidatedTags,
	).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.RowStatus,
	); err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}
	return create, nil
}

func (d *DB) UpsertVideo(ctx context.Context, upsert *store.Video) (*store.Video, error) {
	existing, err := d.ListVideos(ctx, &store.FindVideo{YoutubeID: &upsert.YoutubeID})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return d.CreateVideo(ctx, upsert)
	}

	current := existing[0]
	update := &store.UpdateVideo{
		ID:          current.ID,
		Title:       &upsert.Title,
		Description: &upsert.Description,
		ViewCount:   &upsert.ViewCount,
		YoutubeTags: &upsert.YoutubeTags,
	}
	if err := d.UpdateVideo(ctx, update); err != nil {
		return nil, err
	}

	refreshed, err := d.ListVideos(ctx, &store.FindVideo{ID: &current.ID})
	if err != nil {
		return nil, err
	}
	if len(refreshed) == 0 {
		return nil, fmt.Errorf("video vanished during upsert")
	}
	return refreshed[0], nil
}

func (d *DB) ListVideos(ctx context.Context, find *store.FindVideo) ([]*store.Video, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "video.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "video.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.YoutubeID; v != nil {
		where, args = append(where, "video.youtube_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "video.row_status = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, row_status, created_ts, updated_ts,
			youtube_id, title, description, upload_date, duration,
			view_count, thumbnail_url, number_of_nights, season,
			weather_conditions, series_notes,
			youtube_tags, validated_tags, unvalidated_tags
		FROM video
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY video.upload_date DESC, video.id DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Video, 0)
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}
	return list, nil
}

func scanVideo(rows *sql.Rows) (*store.Video, error) {
	var video store.Video
	var numberOfNights sql.NullInt32
	var season, weatherConditions, seriesNotes sql.NullString
	var youtubeTags, validatedTags, unvalidatedTags string

	if err := rows.Scan(
		&video.ID,
		&video.UID,
		&video.RowStatus,
		&video.CreatedTs,
		&video.UpdatedTs,
		&video.YoutubeID,
		&video.Title,
		&video.Description,
		&video.UploadDate,
		&video.Duration,
		&video.ViewCount,
		&video.ThumbnailURL,
		&numberOfNights,
		&season,
		&weatherConditions,
		&seriesNotes,
		&youtubeTags,
		&validatedTags,
		&unvalidatedTags,
	); err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	if numberOfNights.Valid {
		video.NumberOfNights = &numberOfNights.Int32
	}
	if season.Valid {
		video.Season = &season.String
	}
	if weatherConditions.Valid {
		video.WeatherConditions = &weatherConditions.String
	}
	if seriesNotes.Valid {
		video.SeriesNotes = &seriesNotes.String
	}

	var err error
	if video.YoutubeTags, err = unmarshalStringList(youtubeTags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal youtube tags: %w", err)
	}
	if video.ValidatedTags, err = unmarshalStringList(validatedTags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal validated tags: %w", err)
	}
	if video.UnvalidatedTags, err = unmarshalStringList(unvalidatedTags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unvalidated tags: %w", err)
	}
	return &video, nil
}

func (d *DB) UpdateVideo(ctx context.Context, update *store.UpdateVideo) error {
	set, args := []string{}, []any{}

	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Title; v != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.ViewCount; v != nil {
		set, args = append(set, "view_count = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.NumberOfNights; v != nil {
		set, args = append(set, "number_of_nights = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Season; v != nil {
		set, args = append(set, "season = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.WeatherConditions; v != nil {
		set, args = append(set, "weather_conditions = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.SeriesNotes; v != nil {
		set, args = append(set, "series_notes = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.YoutubeTags; v != nil {
		tags, err := marshalStringList(*v)
		if err != nil {
			return fmt.Errorf("failed to marshal youtube tags: %w", err)
		}
		set, args = append(set, "youtube_tags = "+placeholder(len(args)+1)), append(args, tags)
	}
	if v := update.ValidatedTags; v != nil {
		tags, err := marshalStringList(*v)
		if err != nil {
			return fmt.Errorf("failed to marshal validated tags: %w", err)
		}
		set, args = append(set, "validated_tags = "+placeholder(len(args)+1)), append(args, tags)
	}
	if v := update.UnvalidatedTags; v != nil {
		tags, err := marshalStringList(*v)
		if err != nil {
			return fmt.Errorf("failed to marshal unvalidated tags: %w", err)
		}
		set, args = append(set, "unvalidated_tags = "+placeholder(len(args)+1)), append(args, tags)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)
	stmt := `UPDATE video SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

func (d *DB) DeleteVideo(ctx context.Context, delete *store.DeleteVideo) error {
	stmt := `DELETE FROM video WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("video not found")
	}
	return nil
}
