package media

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
)

var allowedMimeTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"image/svg+xml":   ".svg",
	"image/x-icon":    ".ico",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"application/pdf": ".pdf",
}

func sniffMimeType(value string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", fmt.Errorf("mime type required")
	}
	mediaType, _, err := mime.ParseMediaType(clean)
	if err != nil {
		return "", fmt.Errorf("mime type invalid: %w", err)
	}
	if mediaType == "" {
		return "", fmt.Errorf("mime type missing")
	}
	return strings.ToLower(mediaType), nil
}

func extensionFor(mimeType string) (string, bool) {
	ext, ok := allowedMimeTypes[mimeType]
	return ext, ok
}

// verifyContentMatches sniffs the payload magic bytes and rejects a declared
// type the bytes contradict. Inconclusive sniff results pass unchallenged,
// since text-based formats like SVG have no recognizable signature.
func verifyContentMatches(declared string, data []byte) error {
	detected := strings.ToLower(http.DetectContentType(data))
	if idx := strings.Index(detected, ";"); idx >= 0 {
		detected = strings.TrimSpace(detected[:idx])
	}
	switch detected {
	case "application/octet-stream", "text/plain", "text/xml", "text/html":
		return nil
	}
	if detected != declared {
		return fmt.Errorf("file content is %s, declared %s", detected, declared)
	}
	return nil
}
