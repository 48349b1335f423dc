package core

import (
	"net/url"
	"regexp"
	"strings"
)

var youTubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractYouTubeID returns the 11-character video ID from a YouTube link,
// or "" if raw is not one. Accepted forms include watch?v=, youtu.be/,
// /embed/, /shorts/, /live/ and /v/ links as well as a bare ID.
func ExtractYouTubeID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if youTubeIDPattern.MatchString(raw) {
		return raw
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if u.Path == "/watch" {
			id = u.Query().Get("v")
		} else if len(segments) >= 2 {
			switch segments[0] {
			case "embed", "shorts", "live", "v", "e":
				id = segments[1]
			}
		}
	}

	if youTubeIDPattern.MatchString(id) {
		return id
	}
	return ""
}

// YouTubeEmbedURL returns the iframe source for a video ID.
func YouTubeEmbedURL(id string) string {
	return "https://www.youtube-nocookie.com/embed/" + id
}

// YouTubeWatchURL returns the canonical watch link for a video ID.
func YouTubeWatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// YouTubeThumbnailURL returns the high-quality thumbnail for a video ID.
func YouTubeThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
