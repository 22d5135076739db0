package filemgr

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	ProductPicDir = "static/productpic"
	ThumbSubdir   = "thumb"

	maxImageSize = int64(8 << 20) // 8 MB
	thumbWidth   = 320
)

var (
	allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	allowedMIMEs      = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
)

func extensionAllowed(ext string) bool {
	for _, e := range allowedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func mimeAllowed(mimeType string) bool {
	for _, m := range allowedMIMEs {
		if strings.EqualFold(m, mimeType) {
			return true
		}
	}
	return false
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveProductImage validates and stores an uploaded product image under a
// uuid filename and writes a JPEG thumbnail next to it. Returns the stored
// image filename and the thumbnail filename.
func SaveProductImage(file multipart.File, header *multipart.FileHeader) (string, string, error) {
	if header.Size > maxImageSize {
		return "", "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extensionAllowed(ext) {
		return "", "", ErrInvalidExtension
	}
	if mimeType := header.Header.Get("Content-Type"); mimeType != "" && !mimeAllowed(mimeType) {
		return "", "", ErrInvalidMIME
	}

	if err := ensureDir(ProductPicDir); err != nil {
		return "", "", fmt.Errorf("creating image dir: %w", err)
	}

	base := uuid.New().String()
	imageName := base + ext
	dstPath := filepath.Join(ProductPicDir, imageName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", "", fmt.Errorf("creating image file: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", "", fmt.Errorf("writing image: %w", err)
	}
	dst.Close()

	thumbName, err := generateThumbnail(dstPath, base)
	if err != nil {
		// The full-size image is still usable without its thumbnail.
		return imageName, "", nil
	}
	return imageName, thumbName, nil
}

func generateThumbnail(srcPath, base string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", err
	}

	thumbDir := filepath.Join(ProductPicDir, ThumbSubdir)
	if err := ensureDir(thumbDir); err != nil {
		return "", err
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbName := base + ".jpg"
	if err := imaging.Save(thumb, filepath.Join(thumbDir, thumbName)); err != nil {
		return "", err
	}
	return thumbName, nil
}

// RemoveProductImage deletes a stored image and its thumbnail. Best-effort;
// callers only log failures.
func RemoveProductImage(imageName, thumbName string) error {
	var firstErr error
	if imageName != "" {
		if err := os.Remove(filepath.Join(ProductPicDir, imageName)); err != nil && !os.IsNotExist(err) {
			firstErr = err
		}
	}
	if thumbName != "" {
		if err := os.Remove(filepath.Join(ProductPicDir, ThumbSubdir, thumbName)); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
