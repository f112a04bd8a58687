package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"

	"github.com/Dasen603/typeset/internal/store"
)

type JSON = map[string]any

func TestAcceptance(t *testing.T) {

	biff.Alternative("Setup", func(a *biff.A) {

		dir := t.TempDir()
		s, err := store.Open(filepath.Join(dir, "typeset.db"))
		biff.AssertNil(err)
		defer s.Close()

		b := Build(s, filepath.Join(dir, "uploads"), "test")
		api := apitest.NewWithHandler(b)

		a.Alternative("Health", func(a *biff.A) {
			resp := api.Request("GET", "/health").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyJson().(JSON)["status"], "healthy")
		})

		a.Alternative("Create document", func(a *biff.A) {
			resp := api.Request("POST", "/api/documents").
				WithBodyJson(JSON{"title": "My thesis"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			body := resp.BodyJson().(JSON)
			biff.AssertEqual(body["title"], "My thesis")
			docID := body["id"]

			a.Alternative("List documents", func(a *biff.A) {
				resp := api.Request("GET", "/api/documents").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				docs := resp.BodyJson().([]any)
				biff.AssertEqual(len(docs), 1)
				biff.AssertEqual(docs[0].(JSON)["title"], "My thesis")
			})

			a.Alternative("Rename document", func(a *biff.A) {
				resp := api.Request("PUT", urlf("/api/documents/%v", docID)).
					WithBodyJson(JSON{"title": "Revised thesis"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(resp.BodyJson().(JSON)["title"], "Revised thesis")
			})

			a.Alternative("Create node", func(a *biff.A) {
				resp := api.Request("POST", "/api/nodes").
					WithBodyJson(JSON{
						"document_id": docID,
						"node_type":   "section",
						"title":       "Introduction",
						"order_index": 0,
					}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				node := resp.BodyJson().(JSON)
				biff.AssertEqual(node["title"], "Introduction")
				nodeID := node["id"]

				a.Alternative("List document nodes", func(a *biff.A) {
					resp := api.Request("GET", urlf("/api/documents/%v/nodes", docID)).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusOK)

					nodes := resp.BodyJson().([]any)
					biff.AssertEqual(len(nodes), 1)
				})

				a.Alternative("Partial node update", func(a *biff.A) {
					resp := api.Request("PUT", urlf("/api/nodes/%v", nodeID)).
						WithBodyJson(JSON{"indent_level": 1}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					node := resp.BodyJson().(JSON)
					biff.AssertEqual(node["indent_level"], float64(1))
					biff.AssertEqual(node["title"], "Introduction")
				})

				a.Alternative("Save and fetch content", func(a *biff.A) {
					resp := api.Request("PUT", urlf("/api/content/%v", nodeID)).
						WithBodyJson(JSON{"content_json": `{"markdown":"Hello"}`}).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusOK)

					resp = api.Request("GET", urlf("/api/content/%v", nodeID)).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(
						resp.BodyJson().(JSON)["content_json"],
						`{"markdown":"Hello"}`,
					)
				})

				a.Alternative("Delete node", func(a *biff.A) {
					resp := api.Request("DELETE", urlf("/api/nodes/%v", nodeID)).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

					resp = api.Request("GET", urlf("/api/nodes/%v", nodeID)).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				})
			})

			a.Alternative("Delete document", func(a *biff.A) {
				resp := api.Request("DELETE", urlf("/api/documents/%v", docID)).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

				resp = api.Request("GET", urlf("/api/documents/%v", docID)).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Export placeholder", func(a *biff.A) {
				resp := api.Request("POST", "/api/export/pdf").
					WithBodyJson(JSON{"document_id": docID, "template": "ieee"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(
					resp.BodyJson().(JSON)["message"],
					"PDF export not yet implemented",
				)
			})
		})

		a.Alternative("Missing document is 404", func(a *biff.A) {
			resp := api.Request("GET", "/api/documents/9999").Do()
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})
	})
}

// urlf formats a path; JSON ids decode as float64 and %v prints integral
// floats without a decimal point.
func urlf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
