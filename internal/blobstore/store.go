// Package blobstore defines the file-storage capability: byte blobs under
// path keys, with image-aware upload helpers, a mock in-memory
// implementation and an S3 implementation.
package blobstore

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Formats accepted by UploadImage.
	_ "image/jpeg"
	_ "image/png"

	"context"
)

// Closed error set for the capability. Implementations map every
// backend-specific failure into one of these (or wrap an unknown message).
var (
	ErrFileNotFound   = errors.New("file not found")
	ErrUploadFailed   = errors.New("failed to upload file")
	ErrDownloadFailed = errors.New("failed to download file")
	ErrInvalidImage   = errors.New("invalid image format")
	ErrNetwork        = errors.New("network error, check your connection")
)

// Store is the blob-store capability.
//
// Upload returns the stored path. Download, Delete, and URL fail with
// ErrFileNotFound when nothing exists at the path. UploadImage additionally
// requires the payload to decode as a JPEG or PNG.
type Store interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	UploadImage(ctx context.Context, path string, data []byte) (string, error)
	Download(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	URL(ctx context.Context, path string) (string, error)
}

// ProfileImagePath is the canonical storage path for a user's profile image.
func ProfileImagePath(userID string) string {
	return fmt.Sprintf("profile-images/%s.jpg", userID)
}

// validateImage rejects payloads that do not decode as a supported image.
func validateImage(data []byte) error {
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return ErrInvalidImage
	}
	return nil
}
