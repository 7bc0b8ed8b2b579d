package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/storage"
)

type FileService interface {
	// Attendance proof uploads
	UploadAttendanceProof(ctx context.Context, userID string, date string, file io.Reader, filename string, phase string) (string, error)

	// GetFileURL returns the public URL for a stored path
	GetFileURL(path string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAttendanceProof uploads the photo attesting a check-in or check-out.
// phase is "check-in" or "check-out".
func (s *fileServiceImpl) UploadAttendanceProof(ctx context.Context, userID string, date string, file io.Reader, filename string, phase string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := []string{".jpg", ".jpeg", ".png"}

	isValid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			isValid = true
			break
		}
	}

	if !isValid {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	// Generate unique filename
	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s-%s-%s%s", date, phase, uniqueID, ext)
	path := filepath.Join("attendance", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) GetFileURL(path string) string {
	return s.storage.GetURL(path)
}
