package http

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"aquascout-backend/internal/storage"

	"github.com/gorilla/mux"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// ArtifactHandler serves the local artifact storage backend: vendors and
// users PUT survey files to generated upload URLs and fetch them back by key.
type ArtifactHandler struct {
	store storage.ArtifactStorage
}

func NewArtifactHandler(store storage.ArtifactStorage) *ArtifactHandler {
	return &ArtifactHandler{store: store}
}

func artifactKind(r *http.Request) (storage.ArtifactKind, bool) {
	kind := storage.ArtifactKind(r.URL.Query().Get("kind"))
	switch kind {
	case storage.ArtifactKindReportFile, storage.ArtifactKindSiteImage, storage.ArtifactKindBorewellImage:
		return kind, true
	}
	return "", false
}

func (h *ArtifactHandler) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	kind, ok := artifactKind(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown artifact kind")
		return
	}
	key := r.URL.Query().Get("key")
	contentType := r.URL.Query().Get("content_type")
	if key == "" || !allowedContentTypes[contentType] {
		writeError(w, http.StatusBadRequest, "missing key or unsupported content type")
		return
	}
	url, err := h.store.GenerateUploadURL(r.Context(), kind, key, contentType, 15*time.Minute)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"upload_url": url})
}

func (h *ArtifactHandler) Upload(w http.ResponseWriter, r *http.Request) {
	kind, ok := artifactKind(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown artifact kind")
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key parameter")
		return
	}
	if !allowedContentTypes[r.Header.Get("Content-Type")] {
		writeError(w, http.StatusBadRequest, "unsupported content type")
		return
	}
	if err := h.store.SaveFile(kind, key, r.Body); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save artifact")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ArtifactHandler) Download(w http.ResponseWriter, r *http.Request) {
	kind, ok := artifactKind(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown artifact kind")
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key parameter")
		return
	}
	file, err := h.store.ReadFile(kind, key)
	if err != nil {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	io.Copy(w, file)
}

// RegisterArtifactRoutes wires the artifact endpoints onto the router. Upload
// and download are reached through generated URLs and skip auth middleware.
func RegisterArtifactRoutes(router *mux.Router, store storage.ArtifactStorage) {
	handler := NewArtifactHandler(store)
	router.HandleFunc("/api/v1/artifacts/upload/{token}", handler.Upload).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/artifacts/download", handler.Download).Methods(http.MethodGet)
}
