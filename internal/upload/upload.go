// Package upload stores multipart image files on disk before business logic
// runs and cleans them up again when the surrounding request fails.
package upload

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"placeshare/internal/middleware"
	"placeshare/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LocalPathKey is the Fiber locals key under which the stored file path is
// exposed to handlers.
const LocalPathKey = "uploadedImagePath"

// mimeExtensions is the allow-list of accepted content types and the
// canonical extension stored for each.
var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// Saver validates and persists uploaded images under a fixed directory.
type Saver struct {
	dir      string
	maxBytes int64
}

// NewSaver creates a Saver rooted at dir, creating the directory if needed.
func NewSaver(dir string, maxKB int) (*Saver, error) {
	if maxKB <= 0 {
		maxKB = 500
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create directory %q: %w", dir, err)
	}
	return &Saver{dir: dir, maxBytes: int64(maxKB) * 1024}, nil
}

// Dir returns the directory files are stored under.
func (s *Saver) Dir() string {
	return s.dir
}

// Save validates the file's content type against the allow-list, assigns a
// collision-resistant filename with the canonical extension and writes the
// file to disk. It returns the stored path.
func (s *Saver) Save(fh *multipart.FileHeader) (string, error) {
	declared := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	ext, ok := mimeExtensions[declared]
	if !ok {
		return "", models.NewValidationError("Invalid mime type!")
	}

	if fh.Size > s.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dKB)", s.maxBytes/1024))
	}

	src, err := fh.Open()
	if err != nil {
		return "", models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return "", models.NewValidationError("Unable to read uploaded file")
	}
	if int64(len(content)) > s.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dKB)", s.maxBytes/1024))
	}

	// The declared type is client-controlled; sniff the bytes as a backstop.
	if sniffed := http.DetectContentType(content); !strings.HasPrefix(sniffed, "image/") {
		return "", models.NewValidationError("Invalid mime type!")
	}

	name := uuid.New().String() + "." + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}
	return path, nil
}

// Remove deletes a previously stored file. Removal failure is logged, never
// surfaced; only paths under the upload directory are touched.
func (s *Saver) Remove(path string) {
	if path == "" {
		return
	}
	cleaned := filepath.Clean(path)
	if !strings.HasPrefix(cleaned, filepath.Clean(s.dir)+string(filepath.Separator)) {
		middleware.Logger.Warn("refusing to remove file outside upload directory",
			slog.String("path", path))
		return
	}
	if err := os.Remove(cleaned); err != nil && !os.IsNotExist(err) {
		middleware.Logger.Warn("failed to remove uploaded file",
			slog.String("path", cleaned), slog.String("error", err.Error()))
	}
}

// Middleware persists the named form file before the handler runs and exposes
// its path via c.Locals(LocalPathKey). If the request subsequently fails,
// either by handler error or an error response status, the stored file is
// removed again so no orphan survives a failed request.
func Middleware(s *Saver, field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile(field)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
				models.NewValidationError("An image file is required"))
		}

		path, err := s.Save(fh)
		if err != nil {
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
		c.Locals(LocalPathKey, path)

		handlerErr := c.Next()

		if handlerErr != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			s.Remove(path)
		}
		return handlerErr
	}
}
