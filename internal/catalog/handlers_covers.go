package catalog

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"openmusic/internal/httpx"
)

// maxCoverSize bounds the multipart body for cover uploads.
const maxCoverSize = 512000

func (s *Server) handleUploadCover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	albumID := chi.URLParam(r, "id")

	if _, err := s.store.GetAlbum(ctx, albumID); err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			httpx.WriteFail(w, http.StatusNotFound, "album not found")
			return
		}
		log.Printf("openmusic: upload cover fetch album: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCoverSize)
	if err := r.ParseMultipartForm(maxCoverSize); err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		httpx.WriteFail(w, http.StatusBadRequest, "cover file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		httpx.WriteFail(w, http.StatusBadRequest, "unsupported file type (allowed: png, jpg, jpeg, webp)")
		return
	}

	if err := os.MkdirAll(s.coverDir, 0o755); err != nil {
		log.Printf("openmusic: mkdir covers: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	filename := uuid.NewString() + ext
	dstPath := filepath.Join(s.coverDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		log.Printf("openmusic: create cover file: %v", err)
		httpx.WriteErr(w, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("openmusic: write cover file: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	coverURL := "/upload/covers/" + filename
	if err := s.store.SetAlbumCover(ctx, albumID, coverURL); err != nil {
		log.Printf("openmusic: save cover url: %v", err)
		httpx.WriteErr(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "cover uploaded", map[string]string{"coverUrl": coverURL})
}
