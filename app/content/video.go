package content

import (
	"regexp"
	"strings"
)

const videoIDLength = 11

var videoIDPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// ExtractVideoID returns the 11-character video identifier embedded in url.
func ExtractVideoID(url string) (string, bool) {
	match := videoIDPattern.FindStringSubmatch(strings.TrimSpace(url))
	if match == nil || len(match[2]) != videoIDLength {
		return "", false
	}
	return match[2], true
}

func VideoEmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

// PostURL builds a status link the post widget can upgrade into an embed.
func PostURL(id string) string {
	return "https://twitter.com/x/status/" + id
}
