// Package media stores uploaded images on the local filesystem.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/validation"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

const (
	tweetsDir   = "tweets"
	avatarsDir  = "avatars"
	AvatarSize  = 400
	WebPQuality = 80
)

// Store writes media under a root directory and hands out paths relative to it.
type Store struct {
	root string
	now  func() time.Time
}

// NewStore returns a Store rooted at root. The directory is created lazily.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root), now: time.Now}
}

// Root returns the absolute or working-directory-relative root.
func (s *Store) Root() string {
	return s.root
}

// Save validates and writes one upload, returning its slash-separated path
// relative to the store root. Tweet images are stored as uploaded under
// tweets/YYYY/M/D. Avatars are cropped square, scaled down and re-encoded
// as WebP under avatars/.
func (s *Store) Save(ctx context.Context, filename string, data []byte, isAvatar bool) (string, error) {
	ext, err := validation.MediaExtension(filename)
	if err != nil {
		observability.MediaEvents.WithLabelValues("save", "rejected").Inc()
		return "", models.NewValidationError(err.Error())
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		observability.MediaEvents.WithLabelValues("save", "rejected").Inc()
		return "", models.NewValidationError("Invalid image file")
	}

	var rel string
	if isAvatar {
		encoded, err := normalizeAvatar(data)
		if err != nil {
			observability.MediaEvents.WithLabelValues("save", "rejected").Inc()
			return "", err
		}
		data = encoded
		rel = filepath.ToSlash(filepath.Join(avatarsDir, uuid.NewString()+".webp"))
	} else {
		now := s.now().UTC()
		rel = filepath.ToSlash(filepath.Join(
			tweetsDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%d", int(now.Month())),
			fmt.Sprintf("%d", now.Day()),
			uuid.NewString()+ext,
		))
	}

	if err := writeBytesToFile(filepath.Join(s.root, filepath.FromSlash(rel)), data); err != nil {
		observability.MediaEvents.WithLabelValues("save", "error").Inc()
		return "", models.NewInternalError(err)
	}

	observability.MediaEvents.WithLabelValues("save", "ok").Inc()
	middleware.Logger.DebugContext(ctx, "media saved", slog.String("path", rel), slog.Bool("avatar", isAvatar))
	return rel, nil
}

// Delete removes the given files and prunes directories left empty, up to
// but excluding the root. Missing files and directories are logged only.
func (s *Store) Delete(ctx context.Context, paths []string) {
	for _, rel := range paths {
		abs, ok := s.resolve(rel)
		if !ok {
			middleware.Logger.WarnContext(ctx, "media path escapes root, skipping", slog.String("path", rel))
			continue
		}

		if err := os.Remove(abs); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				observability.MediaEvents.WithLabelValues("delete", "missing").Inc()
				middleware.Logger.WarnContext(ctx, "media file not found", slog.String("path", rel))
			} else {
				observability.MediaEvents.WithLabelValues("delete", "error").Inc()
				middleware.Logger.ErrorContext(ctx, "failed to delete media file",
					slog.String("path", rel), slog.String("error", err.Error()))
				continue
			}
		} else {
			observability.MediaEvents.WithLabelValues("delete", "ok").Inc()
		}

		s.pruneEmptyDirs(ctx, filepath.Dir(abs))
	}
}

func (s *Store) pruneEmptyDirs(ctx context.Context, dir string) {
	for dir != s.root && strings.HasPrefix(dir, s.root+string(filepath.Separator)) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				middleware.Logger.DebugContext(ctx, "media directory already removed", slog.String("dir", dir))
			}
			return
		}
		if len(entries) > 0 {
			return
		}
		// A concurrent delete may win the race; either way the directory is gone.
		if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			middleware.Logger.DebugContext(ctx, "media directory not removed",
				slog.String("dir", dir), slog.String("error", err.Error()))
			return
		}
		dir = filepath.Dir(dir)
	}
}

func (s *Store) resolve(rel string) (string, bool) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", false
	}
	return filepath.Join(s.root, clean), true
}

func normalizeAvatar(data []byte) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	square := cropSquare(decoded)
	scaled := resizeToFit(square, AvatarSize, AvatarSize)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, scaled, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func cropSquare(src image.Image) image.Image {
	b := src.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	if side <= 0 || (b.Dx() == side && b.Dy() == side) {
		return src
	}
	x := b.Min.X + (b.Dx()-side)/2
	y := b.Min.Y + (b.Dy()-side)/2
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)
	return dst
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
