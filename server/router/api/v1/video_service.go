package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/posawiki/posawiki/store"
)

type VideoPayload struct {
	UID          string `json:"uid"`
	YoutubeID    string `json:"youtubeId"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	UploadDate   string `json:"uploadDate"`
	Duration     string `json:"duration,omitempty"`
	ViewCount    int64  `json:"viewCount"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`

	NumberOfNights    *int32  `json:"numberOfNights,omitempty"`
	Season            *string `json:"season,omitempty"`
	WeatherConditions *string `json:"weatherConditions,omitempty"`
	SeriesNotes       *string `json:"seriesNotes,omitempty"`

	YoutubeTags     []string `json:"youtubeTags"`
	ValidatedTags   []string `json:"validatedTags"`
	UnvalidatedTags []string `json:"unvalidatedTags"`
}

const (
	defaultVideoPageSize = 50
	maxVideoPageSize     = 200
)

// ListVideos returns the catalog newest-first, with limit/offset
// pagination.
func (s *APIV1Service) ListVideos(c echo.Context) error {
	ctx := c.Request().Context()

	limit := defaultVideoPageSize
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = min(parsed, maxVideoPageSize)
	}
	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset")
		}
		offset = parsed
	}

	normal := store.Normal
	videos, err := s.Store.ListVideos(ctx, &store.FindVideo{
		RowStatus: &normal,
		Limit:     &limit,
		Offset:    &offset,
	})
	if err != nil {
		return mapServiceError(err)
	}

	payload := make([]*VideoPayload, 0, len(videos))
	for _, video := range videos {
		payload = append(payload, convertVideo(video))
	}
	return c.JSON(http.StatusOK, payload)
}

func (s *APIV1Service) GetVideo(c echo.Context) error {
	ctx := c.Request().Context()
	uid := c.Param("uid")

	video, err := s.Store.GetVideo(ctx, &store.FindVideo{UID: &uid})
	if err != nil {
		return mapServiceError(err)
	}
	if video == nil {
		return echo.NewHTTPError(http.StatusNotFound, "video not found")
	}
	return c.JSON(http.StatusOK, convertVideo(video))
}

func convertVideo(video *store.Video) *VideoPayload {
	return &VideoPayload{
		UID:               video.UID,
		YoutubeID:         video.YoutubeID,
		Title:             video.Title,
		Description:       video.Description,
		UploadDate:        video.UploadDate,
		Duration:          video.Duration,
		ViewCount:         video.ViewCount,
		ThumbnailURL:      video.ThumbnailURL,
		NumberOfNights:    video.NumberOfNights,
		Season:            video.Season,
		WeatherConditions: video.WeatherConditions,
		SeriesNotes:       video.SeriesNotes,
		YoutubeTags:       video.YoutubeTags,
		ValidatedTags:     video.ValidatedTags,
		UnvalidatedTags:   video.UnvalidatedTags,
	}
}
