// Package filemgr stores product images on disk and generates thumbnails.
// It stands in for the object-storage bucket of the hosted platform: files
// get opaque uuid names and are served back as public URLs under /static.
package filemgr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	photoDir   = "static/uploads/products/photo"
	thumbDir   = "static/uploads/products/thumb"
	thumbWidth = 300
	maxSize    = 10 << 20 // 10 MB
)

var (
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")

	allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	allowedMIMEs      = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

func isExtensionAllowed(ext string) bool {
	for _, a := range allowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

func isMIMEAllowed(mimeType string) bool {
	for _, a := range allowedMIMEs {
		if mimeType == a {
			return true
		}
	}
	return false
}

// publicURL maps a stored file path to the URL the static route serves.
func publicURL(dir, filename string) string {
	return "/" + filepath.ToSlash(filepath.Join(dir, filename))
}

// SaveProductImage validates and stores an uploaded product image, writes a
// jpeg thumbnail next to it, and returns the public URLs for both.
func SaveProductImage(file multipart.File, header *multipart.FileHeader) (imageURL, thumbURL string, err error) {
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !isExtensionAllowed(ext) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidExtension, ext)
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return "", "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(buf)) > maxSize {
		return "", "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(buf)
	if mimeType == "application/octet-stream" {
		if formMime := header.Header.Get("Content-Type"); formMime != "" {
			mimeType = formMime
		}
	}
	if !isMIMEAllowed(mimeType) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	for _, dir := range []string{photoDir, thumbDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	name := uuid.New().String()
	fullPath := filepath.Join(photoDir, name+ext)
	if err := os.WriteFile(fullPath, buf, 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", fullPath, err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(thumbDir, name+".jpg")
	out, err := os.Create(thumbPath)
	if err != nil {
		return "", "", fmt.Errorf("create %s: %w", thumbPath, err)
	}
	defer out.Close()
	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return "", "", fmt.Errorf("encode thumbnail: %w", err)
	}

	return publicURL(photoDir, name+ext), publicURL(thumbDir, name+".jpg"), nil
}
