// Package youtube parses channel scrape files into catalog records.
package youtube

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ScrapeFile is the channel scrape layout: one entry per video in the
// YouTube Data API shape.
type ScrapeFile struct {
	Videos []*ScrapeVideo `json:"videos"`
}

type ScrapeVideo struct {
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	ContentDetails ContentDetails `json:"contentDetails"`
	Statistics     Statistics     `json:"statistics"`
}

type Snippet struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	PublishedAt string               `json:"publishedAt"`
	Tags        []string             `json:"tags"`
	Thumbnails  map[string]Thumbnail `json:"thumbnails"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

type ContentDetails struct {
	Duration string `json:"duration"`
}

type Statistics struct {
	ViewCount string `json:"viewCount"`
}

// LoadScrape reads and decodes a scrape file.
func LoadScrape(path string) (*ScrapeFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read scrape file %s", path)
	}
	scrape := &ScrapeFile{}
	if err := json.Unmarshal(raw, scrape); err != nil {
		return nil, errors.Wrapf(err, "failed to decode scrape file %s", path)
	}
	return scrape, nil
}

// UploadDate returns the date part of the published timestamp.
func (v *ScrapeVideo) UploadDate() string {
	if len(v.Snippet.PublishedAt) >= 10 {
		return v.Snippet.PublishedAt[:10]
	}
	return v.Snippet.PublishedAt
}

// ViewCount parses the stringly-typed view counter; 0 when absent.
func (v *ScrapeVideo) ViewCount() int64 {
	count, err := strconv.ParseInt(v.Statistics.ViewCount, 10, 64)
	if err != nil {
		return 0
	}
	return count
}

// ThumbnailURL prefers the high resolution thumbnail.
func (v *ScrapeVideo) ThumbnailURL() string {
	for _, quality := range []string{"high", "medium", "default"} {
		if thumbnail, ok := v.Snippet.Thumbnails[quality]; ok && thumbnail.URL != "" {
			return thumbnail.URL
		}
	}
	return ""
}

// ParseDuration converts an ISO 8601 duration like PT1H36M19S into the
// display form 1:36:19 (or 4:19 without hours). Unrecognized input is
// returned unchanged.
func ParseDuration(iso string) string {
	rest, ok := strings.CutPrefix(iso, "PT")
	if !ok {
		return iso
	}

	var hours, minutes, seconds int
	if head, tail, found := strings.Cut(rest, "H"); found {
		hours, _ = strconv.Atoi(head)
		rest = tail
	}
	if head, tail, found := strings.Cut(rest, "M"); found {
		minutes, _ = strconv.Atoi(head)
		rest = tail
	}
	if head, found := strings.CutSuffix(rest, "S"); found {
		seconds, _ = strconv.Atoi(head)
	}

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
