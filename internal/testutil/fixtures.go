package testutil

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
)

// TinyPNG returns a valid PNG of the given size.
func TinyPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// MediaStoreStub is an in-memory media store that records saves and deletes.
type MediaStoreStub struct {
	mu      sync.Mutex
	Saved   map[string][]byte
	Deleted []string
	SaveErr error
	next    int
}

// NewMediaStoreStub creates an empty MediaStoreStub.
func NewMediaStoreStub() *MediaStoreStub {
	return &MediaStoreStub{Saved: make(map[string][]byte)}
}

// Save stores data under a predictable relative path.
func (s *MediaStoreStub) Save(_ context.Context, filename string, data []byte, isAvatar bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	s.next++
	dir := "tweets"
	if isAvatar {
		dir = "avatars"
	}
	path := fmt.Sprintf("%s/%d_%s", dir, s.next, filename)
	s.Saved[path] = data
	return path, nil
}

// Delete records the paths and forgets their contents.
func (s *MediaStoreStub) Delete(_ context.Context, paths []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		delete(s.Saved, p)
		s.Deleted = append(s.Deleted, p)
	}
}
