package youtube

import (
	"context"
	"log/slog"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/posawiki/posawiki/store"
)

// ImportResult summarizes one scrape import.
type ImportResult struct {
	Total    int
	Imported int
	Skipped  int
}

// Importer upserts scraped videos into the catalog. Re-importing a
// scrape refreshes title, description, view count and raw tags of
// known videos and creates the rest.
type Importer struct {
	store *store.Store
}

func NewImporter(s *store.Store) *Importer {
	return &Importer{store: s}
}

func (i *Importer) Import(ctx context.Context, path string) (*ImportResult, error) {
	scrape, err := LoadScrape(path)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Total: len(scrape.Videos)}
	for _, video := range scrape.Videos {
		if video.ID == "" {
			result.Skipped++
			continue
		}
		_, err := i.store.UpsertVideo(ctx, &store.Video{
			UID:          shortuuid.New(),
			YoutubeID:    video.ID,
			Title:        video.Snippet.Title,
			Description:  video.Snippet.Description,
			UploadDate:   video.UploadDate(),
			Duration:     ParseDuration(video.ContentDetails.Duration),
			ViewCount:    video.ViewCount(),
			ThumbnailURL: video.ThumbnailURL(),
			YoutubeTags:  video.Snippet.Tags,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to upsert video %s", video.ID)
		}
		result.Imported++
	}

	slog.Info("scrape import finished",
		slog.String("path", path),
		slog.Int("total", result.Total),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped))
	return result, nil
}
