package youtube

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		iso  string
		want string
	}{
		{"PT1H36M19S", "1:36:19"},
		{"PT4M19S", "4:19"},
		{"PT45S", "0:45"},
		{"PT2H5S", "2:00:05"},
		{"PT12M", "12:00"},
		{"", ""},
		{"1:23", "1:23"},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.iso); got != tt.want {
			t.Errorf("ParseDuration(%q) = %q, want %q", tt.iso, got, tt.want)
		}
	}
}

func TestLoadScrape(t *testing.T) {
	raw := `{
		"videos": [
			{
				"id": "abc12345678",
				"snippet": {
					"title": "Winter Camping with Monty",
					"description": "A cold night out.",
					"publishedAt": "2024-01-15T12:00:00Z",
					"tags": ["winter camping", "bwca"],
					"thumbnails": {"high": {"url": "https://img.example/high.jpg"}}
				},
				"contentDetails": {"duration": "PT28M41S"},
				"statistics": {"viewCount": "123456"}
			}
		]
	}`
	path := filepath.Join(t.TempDir(), "scrape.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	scrape, err := LoadScrape(path)
	require.NoError(t, err)
	require.Len(t, scrape.Videos, 1)

	video := scrape.Videos[0]
	require.Equal(t, "abc12345678", video.ID)
	require.Equal(t, "2024-01-15", video.UploadDate())
	require.Equal(t, int64(123456), video.ViewCount())
	require.Equal(t, "https://img.example/high.jpg", video.ThumbnailURL())
	require.Equal(t, "28:41", ParseDuration(video.ContentDetails.Duration))
}
