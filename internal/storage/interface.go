package storage

import (
	"context"
	"io"
	"time"
)

// ArtifactKind partitions stored files by what they document.
type ArtifactKind string

const (
	ArtifactKindReportFile    ArtifactKind = "reports"
	ArtifactKindSiteImage     ArtifactKind = "site-images"
	ArtifactKindBorewellImage ArtifactKind = "borewell-images"
)

// ArtifactStorage abstracts where survey artifacts (report PDFs, site photos,
// borewell photos) live. The local implementation backs development and tests;
// a cloud implementation can replace it behind the same interface.
type ArtifactStorage interface {
	// GenerateUploadURL returns a URL the client PUTs the file to.
	GenerateUploadURL(ctx context.Context, kind ArtifactKind, key, contentType string, expiresIn time.Duration) (string, error)

	// GenerateDownloadURL returns a URL the client GETs the file from.
	GenerateDownloadURL(ctx context.Context, kind ArtifactKind, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if an artifact exists and returns its size.
	FileExists(ctx context.Context, kind ArtifactKind, key string) (exists bool, size int64, err error)

	// DeleteFile removes an artifact.
	DeleteFile(ctx context.Context, kind ArtifactKind, key string) error

	// SaveFile persists an uploaded artifact (used by the local HTTP handler).
	SaveFile(kind ArtifactKind, key string, reader io.Reader) error

	// ReadFile opens an artifact for reading (used by the local HTTP handler).
	ReadFile(kind ArtifactKind, key string) (io.ReadCloser, error)
}

// Config holds storage configuration.
type Config struct {
	Type     string // "local" is the only backend implemented
	LocalDir string // directory for local storage
	BaseURL  string // server base URL for generated upload/download links
}
