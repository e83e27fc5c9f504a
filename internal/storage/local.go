package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorageService stores survey artifacts on the local filesystem and
// hands out upload/download URLs served by this process.
type LocalStorageService struct {
	baseURL string
	rootDir string
}

func NewLocalStorageService(baseURL, rootDir string) (*LocalStorageService, error) {
	for _, kind := range []ArtifactKind{ArtifactKindReportFile, ArtifactKindSiteImage, ArtifactKindBorewellImage} {
		if err := os.MkdirAll(filepath.Join(rootDir, string(kind)), 0755); err != nil {
			return nil, fmt.Errorf("create %s directory: %w", kind, err)
		}
	}
	return &LocalStorageService{
		baseURL: baseURL,
		rootDir: rootDir,
	}, nil
}

func (s *LocalStorageService) path(kind ArtifactKind, key string) string {
	return filepath.Join(s.rootDir, string(kind), filepath.Clean("/"+key))
}

func (s *LocalStorageService) GenerateUploadURL(ctx context.Context, kind ArtifactKind, key, contentType string, expiresIn time.Duration) (string, error) {
	// The token makes each generated URL unique; the handler saves under the
	// kind/key carried in the query.
	token := uuid.NewString()
	return fmt.Sprintf("%s/api/v1/artifacts/upload/%s?kind=%s&key=%s", s.baseURL, token, kind, key), nil
}

func (s *LocalStorageService) GenerateDownloadURL(ctx context.Context, kind ArtifactKind, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/v1/artifacts/download?kind=%s&key=%s", s.baseURL, kind, key), nil
}

func (s *LocalStorageService) FileExists(ctx context.Context, kind ArtifactKind, key string) (bool, int64, error) {
	info, err := os.Stat(s.path(kind, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalStorageService) DeleteFile(ctx context.Context, kind ArtifactKind, key string) error {
	err := os.Remove(s.path(kind, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

func (s *LocalStorageService) SaveFile(kind ArtifactKind, key string, reader io.Reader) error {
	if strings.Contains(key, "..") {
		return fmt.Errorf("invalid artifact key %q", key)
	}
	fullPath := s.path(kind, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create artifact file: %w", err)
	}
	defer file.Close()
	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("write artifact file: %w", err)
	}
	return nil
}

func (s *LocalStorageService) ReadFile(kind ArtifactKind, key string) (io.ReadCloser, error) {
	file, err := os.Open(s.path(kind, key))
	if err != nil {
		return nil, fmt.Errorf("open artifact file: %w", err)
	}
	return file, nil
}
