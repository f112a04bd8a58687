package api

import (
	"context"
	"net/http"

	"github.com/Dasen603/typeset/internal/store"
)

func listNodes(s *store.Store) any {
	return func(ctx context.Context) ([]store.Node, error) {
		nodes, err := s.ListNodes(ctx, paramInt64(ctx, "documentId"))
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}
		return nodes, nil
	}
}

func createNode(s *store.Store) any {
	return func(ctx context.Context, w http.ResponseWriter, input *store.NewNode) (*store.Node, error) {
		node, err := s.CreateNode(ctx, *input)
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}

		w.WriteHeader(http.StatusCreated)
		return &node, nil
	}
}

func getNode(s *store.Store) any {
	return func(ctx context.Context) (*store.Node, error) {
		node, err := s.GetNode(ctx, paramInt64(ctx, "nodeId"))
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}
		return &node, nil
	}
}

func updateNode(s *store.Store) any {
	return func(ctx context.Context, input *store.NodeUpdate) (*store.Node, error) {
		node, err := s.UpdateNode(ctx, paramInt64(ctx, "nodeId"), *input)
		if err != nil {
			return nil, writeStoreError(ctx, err)
		}
		return &node, nil
	}
}

func deleteNode(s *store.Store) any {
	return func(ctx context.Context, w http.ResponseWriter) error {
		if err := s.DeleteNode(ctx, paramInt64(ctx, "nodeId")); err != nil {
			return writeStoreError(ctx, err)
		}

		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}
