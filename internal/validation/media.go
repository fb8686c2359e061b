package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

var allowedMediaExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// MediaExtension returns the lowercased extension of filename if it is an
// accepted image type.
func MediaExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedMediaExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported file extension %q, allowed: png, jpg, jpeg, gif", ext)
	}
	return ext, nil
}
