package api

import (
	"context"
	"net/http"

	"github.com/Dasen603/typeset/internal/store"
)

type documentRequest struct {
	Title string `json:"title"`
}

func listDocuments(s *store.Store) any {
	return func(ctx context.Context) ([]store.Document, error) {
		docs, err := s.ListDocuments(ctx)
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}
		return docs, nil
	}
}

func createDocument(s *store.Store) any {
	return func(ctx context.Context, w http.ResponseWriter, input *documentRequest) (*store.Document, error) {
		doc, err := s.CreateDocument(ctx, input.Title)
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}

		w.WriteHeader(http.StatusCreated)
		return &doc, nil
	}
}

func getDocument(s *store.Store) any {
	return func(ctx context.Context) (*store.Document, error) {
		doc, err := s.GetDocument(ctx, paramInt64(ctx, "documentId"))
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}
		return &doc, nil
	}
}

func updateDocument(s *store.Store) any {
	return func(ctx context.Context, input *documentRequest) (*store.Document, error) {
		doc, err := s.UpdateDocument(ctx, paramInt64(ctx, "documentId"), input.Title)
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}
		return &doc, nil
	}
}

func deleteDocument(s *store.Store) any {
	return func(ctx context.Context, w http.ResponseWriter) error {
		if err := s.DeleteDocument(ctx, paramInt64(ctx, "documentId")); err != nil {
			return writeStoreError(ctx, err)
		}

		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}
