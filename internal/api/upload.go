package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Dasen603/typeset/internal/store"
)

const maxUploadBytes = 32 << 20

// upload accepts one multipart file field and stores it with a timestamp
// prefix so repeated uploads of the same filename never collide.
func upload(uploadsDir string) any {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) (map[string]string, error) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return nil, fmt.Errorf("invalid multipart request: %w", err)
		}

		for _, headers := range r.MultipartForm.File {
			for _, header := range headers {
				src, err := header.Open()
				if err != nil {
					return nil, writeStoreError(ctx, err)
				}
				defer src.Close()

				if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
					return nil, writeStoreError(ctx, err)
				}

				filename := fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(header.Filename))
				dst, err := os.Create(filepath.Join(uploadsDir, filename))
				if err != nil {
					return nil, writeStoreError(ctx, err)
				}
				defer dst.Close()

				if _, err := io.Copy(dst, src); err != nil {
					return nil, writeStoreError(ctx, err)
				}

				return map[string]string{
					"url":      "/uploads/" + filename,
					"filename": filename,
				}, nil
			}
		}

		w.WriteHeader(http.StatusBadRequest)
		return nil, fmt.Errorf("no file field in request")
	}
}

func serveUploads(uploadsDir string) any {
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	return func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	}
}

type exportPDFRequest struct {
	DocumentID int64  `json:"document_id"`
	Template   string `json:"template"`
}

// exportPDF acknowledges the request; PDF rendering happens client-side for
// now. The document is looked up so a bad id still answers 404.
func exportPDF(s *store.Store) any {
	return func(ctx context.Context, input *exportPDFRequest) (map[string]any, error) {
		if _, err := s.GetDocument(ctx, input.DocumentID); err != nil {
			return nil, writeStoreError(ctx, err)
		}

		return map[string]any{
			"message":     "PDF export not yet implemented",
			"document_id": input.DocumentID,
			"template":    input.Template,
		}, nil
	}
}
