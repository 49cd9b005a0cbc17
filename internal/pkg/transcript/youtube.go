package transcript

import (
	"fmt"
	"net/url"
	"strings"
)

const videoIDLength = 11

// ExtractVideoID pulls the 11-character YouTube video ID out of a raw ID or
// any of the common URL forms: youtu.be short links, watch?v= links, and
// /shorts/, /embed/, /live/ paths.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty video reference")
	}

	if isVideoID(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid video reference: %s", raw)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtu.be":
		if id := firstPathSegment(u.Path); isVideoID(id) {
			return id, nil
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id := u.Query().Get("v"); isVideoID(id) {
			return id, nil
		}
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) >= 2 {
			switch segments[0] {
			case "shorts", "embed", "live":
				if isVideoID(segments[1]) {
					return segments[1], nil
				}
			}
		}
	}

	return "", fmt.Errorf("could not extract video id from: %s", raw)
}

func firstPathSegment(path string) string {
	return strings.SplitN(strings.Trim(path, "/"), "/", 2)[0]
}

// isVideoID reports whether s is exactly 11 characters of the YouTube ID
// alphabet.
func isVideoID(s string) bool {
	if len(s) != videoIDLength {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
