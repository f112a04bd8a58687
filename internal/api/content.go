package api

import (
	"context"

	"github.com/Dasen603/typeset/internal/store"
)

type saveContentRequest struct {
	ContentJSON string `json:"content_json"`
}

func getContent(s *store.Store) any {
	return func(ctx context.Context) (*store.Content, error) {
		c, err := s.GetContent(ctx, paramInt64(ctx, "nodeId"))
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}
		return &c, nil
	}
}

func saveContent(s *store.Store) any {
	return func(ctx context.Context, input *saveContentRequest) (*store.Content, error) {
		c, err := s.SaveContent(ctx, paramInt64(ctx, "nodeId"), input.ContentJSON)
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}
		return &c, nil
	}
}
