// Package api exposes the document store over HTTP for the web frontend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/fulldump/box"

	"github.com/Dasen603/typeset/internal/store"
)

// Build wires the REST surface. All /api responses are JSON; uploads are
// served back as static files under /uploads.
func Build(s *store.Store, uploadsDir, version string) *box.B {
	b := box.NewBox()

	b.WithInterceptors(
		recoverFromPanic,
		interceptorPrintError,
	)

	b.Handle("GET", "/health", health(s))
	b.Handle("GET", "/health/detailed", detailedHealth(s))
	b.Handle("GET", "/release", func() string {
		return version
	})

	api := b.Resource("/api")
	api.WithInterceptors(
		box.SetResponseHeader("Content-Type", "application/json"),
	)

	api.Resource("/documents").
		WithActions(
			box.Get(listDocuments(s)),
			box.Post(createDocument(s)),
		)

	api.Resource("/documents/{documentId}").
		WithActions(
			box.Get(getDocument(s)),
			box.Put(updateDocument(s)),
			box.Delete(deleteDocument(s)),
		)

	api.Resource("/documents/{documentId}/nodes").
		WithActions(
			box.Get(listNodes(s)),
		)

	api.Resource("/nodes").
		WithActions(
			box.Post(createNode(s)),
		)

	api.Resource("/nodes/{nodeId}").
		WithActions(
			box.Get(getNode(s)),
			box.Put(updateNode(s)),
			box.Delete(deleteNode(s)),
		)

	api.Resource("/content/{nodeId}").
		WithActions(
			box.Get(getContent(s)),
			box.Put(saveContent(s)),
		)

	api.Resource("/upload").
		WithActions(
			box.Post(upload(uploadsDir)),
		)

	api.Resource("/export/pdf").
		WithActions(
			box.Post(exportPDF(s)),
		)

	b.Resource("/uploads/*").
		WithActions(
			box.Get(serveUploads(uploadsDir)),
		)

	return b
}

// AccessLog logs one line per request.
func AccessLog(l *log.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			next(ctx)
			l.Println(r.Method, r.URL.String())
		}
	}
}

func recoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				debug.PrintStack()
				w := box.GetResponse(ctx)
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next(ctx)
	}
}

func interceptorPrintError(next box.H) box.H {
	return func(ctx context.Context) {
		next(ctx)
		if err := box.GetError(ctx); err != nil {
			json.NewEncoder(box.GetResponse(ctx)).Encode(map[string]any{
				"error": err.Error(),
			})
		}
	}
}

// paramInt64 reads a numeric URL parameter; non-numeric values read as 0,
// which no row ever matches, so they surface as not found.
func paramInt64(ctx context.Context, name string) int64 {
	raw := box.GetUrlParameter(ctx, name)
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func writeStoreError(ctx context.Context, err error) error {
	w := box.GetResponse(ctx)
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
	} else {
		w.WriteHeader(http.StatusInternalServerError)
	}
	return err
}
