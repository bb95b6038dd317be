package store

import (
	"context"
)

// Video is the object representing one cataloged YouTube video.
type Video struct {
	ID        int32
	UID       string
	RowStatus RowStatus
	CreatedTs int64
	UpdatedTs int64

	// YoutubeID is the 11-character video id from the channel scrape.
	YoutubeID    string
	Title        string
	Description  string
	UploadDate   string
	Duration     string
	ViewCount    int64
	ThumbnailURL string

	// Trip metadata mined from descriptions.
	NumberOfNights    *int32
	Season            *string
	WeatherConditions *string
	SeriesNotes       *string

	// YoutubeTags is the raw creator-typed tag list.
	// ValidatedTags / UnvalidatedTags hold the latest revalidation split:
	// canonical authority names for matched tags, raw strings for the rest.
	YoutubeTags     []string
	ValidatedTags   []string
	UnvalidatedTags []string
}

// FindVideo is the find condition for video.
type FindVideo struct {
	ID        *int32
	UID       *string
	YoutubeID *string
	RowStatus *RowStatus

	Limit  *int
	Offset *int
}

// UpdateVideo is the update request for video.
type UpdateVideo struct {
	ID                int32
	UpdatedTs         *int64
	RowStatus         *RowStatus
	Title             *string
	Description       *string
	ViewCount         *int64
	NumberOfNights    *int32
	Season            *string
	WeatherConditions *string
	SeriesNotes       *string
	YoutubeTags       *[]string
	ValidatedTags     *[]string
	UnvalidatedTags   *[]string
}

// DeleteVideo is the delete request for video.
type DeleteVideo struct {
	ID int32
}

// TagInstance is one occurrence of a raw tag on a video. The flattened
// list of instances across all videos is the tag corpus the coverage
// analyzer consumes.
type TagInstance struct {
	VideoUID string
	RawTag   string
}

// CreateVideo creates a new video.
func (s *Store) CreateVideo(ctx context.Context, create *Video) (*Video, error) {
	return s.driver.CreateVideo(ctx, create)
}

// UpsertVideo creates or updates a video keyed by its youtube id.
func (s *Store) UpsertVideo(ctx context.Context, upsert *Video) (*Video, error) {
	return s.driver.UpsertVideo(ctx, upsert)
}

// ListVideos lists videos with filter.
func (s *Store) ListVideos(ctx context.Context, find *FindVideo) ([]*Video, error) {
	return s.driver.ListVideos(ctx, find)
}

// GetVideo gets a single video, or nil if not found.
func (s *Store) GetVideo(ctx context.Context, find *FindVideo) (*Video, error) {
	list, err := s.driver.ListVideos(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateVideo updates a video.
func (s *Store) UpdateVideo(ctx context.Context, update *UpdateVideo) error {
	return s.driver.UpdateVideo(ctx, update)
}

// DeleteVideo deletes a video.
func (s *Store) DeleteVideo(ctx context.Context, delete *DeleteVideo) error {
	return s.driver.DeleteVideo(ctx, delete)
}

// ListTagCorpus flattens the raw tag lists of all normal videos into
// (video, raw tag) instances, in stored video order.
func (s *Store) ListTagCorpus(ctx context.Context) ([]TagInstance, error) {
	normal := Normal
	videos, err := s.driver.ListVideos(ctx, &FindVideo{RowStatus: &normal})
	if err != nil {
		return nil, err
	}

	corpus := make([]TagInstance, 0, len(videos)*8)
	for _, video := range videos {
		for _, tag := range video.YoutubeTags {
			corpus = append(corpus, TagInstance{
				VideoUID: video.UID,
				RawTag:   tag,
			})
		}
	}
	return corpus, nil
}
