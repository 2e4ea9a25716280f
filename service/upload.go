package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Accepted upload extensions and the MIME type their content must sniff as.
var allowedUploads = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ValidateUpload checks size, extension and sniffed content type and returns
// the MIME type the content should be extracted as. maxBytes <= 0 disables the
// size check.
func ValidateUpload(filename string, content []byte, maxBytes int64) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyUpload
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFileTooLarge, len(content), maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	want, ok := allowedUploads[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFileType, ext)
	}

	detected := mimetype.Detect(content)
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(want) {
			return want, nil
		}
	}
	return "", fmt.Errorf("%w: %s content detected as %s", ErrUnsupportedFileType, ext, detected.String())
}
