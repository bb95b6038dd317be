package tagauthority

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/posawiki/posawiki/store"
)

// RevalidateResult summarizes one revalidation pass.
type RevalidateResult struct {
	Videos          int   `json:"videos"`
	UpdatedVideos   int   `json:"updatedVideos"`
	ValidatedTags   int   `json:"validatedTags"`
	UnvalidatedTags int   `json:"unvalidatedTags"`
	IndexVersion    int64 `json:"indexVersion"`
}

// Revalidate re-splits every normal video's raw tag list into validated
// (canonical authority names, deduplicated) and unvalidated (raw
// strings) against the current snapshot, persisting the split. Videos
// whose split is unchanged are not written.
func (s *Service) Revalidate(ctx context.Context) (*RevalidateResult, error) {
	idx := s.idx.Load()
	normal := store.Normal
	videos, err := s.store.ListVideos(ctx, &store.FindVideo{RowStatus: &normal})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list videos")
	}

	result := &RevalidateResult{IndexVersion: idx.Version()}
	for _, video := range videos {
		result.Videos++
		validated, unvalidated := SplitTags(video.YoutubeTags, idx)
		result.ValidatedTags += len(validated)
		result.UnvalidatedTags += len(unvalidated)

		if slices.Equal(video.ValidatedTags, validated) && slices.Equal(video.UnvalidatedTags, unvalidated) {
			continue
		}

		now := time.Now().Unix()
		if err := s.store.UpdateVideo(ctx, &store.UpdateVideo{
			ID:              video.ID,
			UpdatedTs:       &now,
			ValidatedTags:   &validated,
			UnvalidatedTags: &unvalidated,
		}); err != nil {
			return nil, errors.Wrapf(err, "failed to update video %s", video.UID)
		}
		result.UpdatedVideos++
	}

	slog.Info("revalidation pass finished",
		slog.Int("videos", result.Videos),
		slog.Int("updated", result.UpdatedVideos),
		slog.Int64("indexVersion", result.IndexVersion))
	return result, nil
}

// SplitTags resolves one video's raw tags into canonical authority
// names and leftover raw strings. Matched names are deduplicated in
// first-seen order; two raw variants of the same concept validate to
// one canonical entry.
func SplitTags(rawTags []string, idx *Index) (validated, unvalidated []string) {
	validated = []string{}
	unvalidated = []string{}
	seen := make(map[int32]struct{})

	for _, raw := range rawTags {
		outcome := Resolve(raw, idx)
		if !outcome.Matched {
			unvalidated = append(unvalidated, raw)
			continue
		}
		if _, dup := seen[outcome.Authority.ID]; dup {
			continue
		}
		seen[outcome.Authority.ID] = struct{}{}
		validated = append(validated, outcome.Authority.CanonicalName)
	}
	return validated, unvalidated
}
