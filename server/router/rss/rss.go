// Package rss serves the public archive feed.
package rss

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"

	"github.com/posawiki/posawiki/internal/profile"
	"github.com/posawiki/posawiki/store"
)

const maxFeedItems = 20

type RSSService struct {
	Profile *profile.Profile
	Store   *store.Store

	markdown goldmark.Markdown
}

func NewRSSService(profile *profile.Profile, store *store.Store) *RSSService {
	return &RSSService{
		Profile:  profile,
		Store:    store,
		markdown: goldmark.New(),
	}
}

func (s *RSSService) RegisterRoutes(echoServer *echo.Echo) {
	echoServer.GET("/explore/rss.xml", s.GetExploreRSS)
}

// GetExploreRSS renders the newest cataloged videos as an RSS feed.
func (s *RSSService) GetExploreRSS(c echo.Context) error {
	ctx := c.Request().Context()

	normal := store.Normal
	limit := maxFeedItems
	videos, err := s.Store.ListVideos(ctx, &store.FindVideo{
		RowStatus: &normal,
		Limit:     &limit,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list videos").SetInternal(err)
	}

	baseURL := s.Profile.InstanceURL
	feed := &feeds.Feed{
		Title:       "Posa Wiki Archive",
		Link:        &feeds.Link{Href: baseURL + "/explore"},
		Description: "Newest videos in the catalog",
		Created:     time.Now(),
	}

	for _, video := range videos {
		description, err := s.renderDescription(video.Description)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to render description").SetInternal(err)
		}
		item := &feeds.Item{
			Title:       video.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("https://www.youtube.com/watch?v=%s", video.YoutubeID)},
			Description: description,
			Id:          baseURL + "/videos/" + video.UID,
			Created:     time.Unix(video.CreatedTs, 0),
		}
		if uploadDate, err := time.Parse("2006-01-02", video.UploadDate); err == nil {
			item.Created = uploadDate
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate rss").SetInternal(err)
	}
	return c.Blob(http.StatusOK, "text/xml", []byte(rss))
}

func (s *RSSService) renderDescription(raw string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(raw), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
