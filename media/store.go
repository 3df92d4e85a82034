package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var dataURIPattern = regexp.MustCompile(`^data:([a-zA-Z0-9]+/[a-zA-Z0-9-.+]+);base64,(.+)$`)

// DecodeDataURI validates and decodes a `data:<mime>;base64,<payload>`
// string into its MIME type and raw bytes.
func DecodeDataURI(dataURI string) (string, []byte, error) {
	match := dataURIPattern.FindStringSubmatch(dataURI)
	if match == nil {
		return "", nil, fmt.Errorf("invalid base64 image format")
	}
	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return match[1], data, nil
}

// EncodeDataURI is the inverse of DecodeDataURI.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// PhotoFileName builds the on-disk name for a final photo:
// <uuid>-<sanitized-user-name>.png
func PhotoFileName(id, userName string) string {
	sanitized := unsafeFileChars.ReplaceAllString(strings.TrimSpace(userName), "-")
	return id + "-" + sanitized + ".png"
}

// PhotoStore writes final photos into the application's private photos
// directory. It does not deduplicate and never removes old files; there is
// no retention policy.
type PhotoStore struct {
	basePath string
}

// NewPhotoStore creates the photos directory if absent and returns a store
// rooted there.
func NewPhotoStore(basePath string) (*PhotoStore, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid photo storage path '%s': %w", basePath, err)
	}
	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo storage directory '%s': %w", absBasePath, err)
	}
	log.Printf("media.store: Initialized photo store at %s", absBasePath)
	return &PhotoStore{basePath: absBasePath}, nil
}

// BasePath returns the absolute photos directory.
func (ps *PhotoStore) BasePath() string {
	return ps.basePath
}

// SavePhoto decodes a data-URI image and writes it under the photos
// directory, returning the absolute path of the written file. The input must
// match the data:<mime>;base64,<payload> shape; anything else is rejected
// before any side effect.
func (ps *PhotoStore) SavePhoto(dataURI, fileName string) (string, error) {
	_, data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	return ps.SaveBytes(data, fileName)
}

// SaveBytes writes raw image bytes under the photos directory.
func (ps *PhotoStore) SaveBytes(data []byte, fileName string) (string, error) {
	fullPath, err := ps.fullPath(fileName)
	if err != nil {
		return "", err
	}

	outFile, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create photo file '%s': %w", fullPath, err)
	}
	defer outFile.Close()

	if _, err := outFile.Write(data); err != nil {
		outFile.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write photo file '%s': %w", fullPath, err)
	}
	if err := outFile.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush photo file '%s': %w", fullPath, err)
	}

	log.Printf("media.store: Saved photo to %s", fullPath)
	return fullPath, nil
}

// Open returns a reader for a previously saved photo.
func (ps *PhotoStore) Open(fileName string) (io.ReadCloser, error) {
	fullPath, err := ps.fullPath(fileName)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("photo not found at '%s': %w", fileName, err)
		}
		return nil, fmt.Errorf("failed to open photo '%s': %w", fileName, err)
	}
	return file, nil
}

// fullPath calculates the absolute path and performs the traversal check
func (ps *PhotoStore) fullPath(fileName string) (string, error) {
	cleaned := filepath.Clean(fileName)
	fullPath := filepath.Join(ps.basePath, cleaned)

	absFullPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", fileName, err)
	}
	if !strings.HasPrefix(absFullPath, ps.basePath) {
		return "", fmt.Errorf("invalid path: access denied for '%s'", fileName)
	}
	return absFullPath, nil
}
