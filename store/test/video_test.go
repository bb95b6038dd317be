package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/posawiki/posawiki/store"
)

func TestVideoStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	video, err := ts.CreateVideo(ctx, &store.Video{
		UID:          "vid-1",
		YoutubeID:    "abc12345678",
		Title:        "Winter Camping with Monty",
		Description:  "A cold night out.",
		UploadDate:   "2024-01-15",
		Duration:     "28:41",
		ViewCount:    123456,
		ThumbnailURL: "https://img.example/high.jpg",
		YoutubeTags:  []string{"winter camping", "bwca"},
	})
	require.NoError(t, err)
	require.NotZero(t, video.ID)
	require.Equal(t, store.Normal, video.RowStatus)

	fetched, err := ts.GetVideo(ctx, &store.FindVideo{UID: &video.UID})
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, []string{"winter camping", "bwca"}, fetched.YoutubeTags)
	require.Empty(t, fetched.ValidatedTags)
	require.Nil(t, fetched.NumberOfNights)

	// Upsert by youtube id updates in place.
	refreshed, err := ts.UpsertVideo(ctx, &store.Video{
		UID:         "vid-ignored",
		YoutubeID:   "abc12345678",
		Title:       "Winter Camping with Monty (remastered)",
		ViewCount:   200000,
		YoutubeTags: []string{"winter camping", "bwca", "snow"},
	})
	require.NoError(t, err)
	require.Equal(t, video.ID, refreshed.ID)
	require.Equal(t, "vid-1", refreshed.UID)
	require.Equal(t, int64(200000), refreshed.ViewCount)
	require.Len(t, refreshed.YoutubeTags, 3)

	// Trip metadata update.
	nights := int32(3)
	season := "winter"
	require.NoError(t, ts.UpdateVideo(ctx, &store.UpdateVideo{
		ID:             video.ID,
		NumberOfNights: &nights,
		Season:         &season,
	}))
	fetched, err = ts.GetVideo(ctx, &store.FindVideo{ID: &video.ID})
	require.NoError(t, err)
	require.NotNil(t, fetched.NumberOfNights)
	require.Equal(t, int32(3), *fetched.NumberOfNights)

	require.NoError(t, ts.DeleteVideo(ctx, &store.DeleteVideo{ID: video.ID}))
	require.Error(t, ts.DeleteVideo(ctx, &store.DeleteVideo{ID: video.ID}))
}

func TestListTagCorpus(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	_, err := ts.CreateVideo(ctx, &store.Video{
		UID: "v1", YoutubeID: "yt1", Title: "one", UploadDate: "2024-01-01",
		YoutubeTags: []string{"bwca", "winter camping"},
	})
	require.NoError(t, err)
	_, err = ts.CreateVideo(ctx, &store.Video{
		UID: "v2", YoutubeID: "yt2", Title: "two", UploadDate: "2024-01-02",
		YoutubeTags: []string{"BWCA", "fishing"},
	})
	require.NoError(t, err)

	// Archived videos drop out of the corpus.
	archivedVideo, err := ts.CreateVideo(ctx, &store.Video{
		UID: "v3", YoutubeID: "yt3", Title: "three", UploadDate: "2024-01-03",
		YoutubeTags: []string{"hidden"},
	})
	require.NoError(t, err)
	archived := store.Archived
	require.NoError(t, ts.UpdateVideo(ctx, &store.UpdateVideo{ID: archivedVideo.ID, RowStatus: &archived}))

	corpus, err := ts.ListTagCorpus(ctx)
	require.NoError(t, err)
	require.Len(t, corpus, 4)
	for _, instance := range corpus {
		require.NotEqual(t, "hidden", instance.RawTag)
	}
}
