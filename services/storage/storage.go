package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores generated dossier documents and returns their
// public URLs.
type StorageService interface {
	Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
}

// CloudinaryStorage implements StorageService on Cloudinary. PDFs are
// uploaded as raw assets so Cloudinary serves them byte-for-byte.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld}
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "raw",
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload failed: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: no URL returned for %q", publicID)
	}
	return result.SecureURL, nil
}
